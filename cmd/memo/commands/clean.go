package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove all stored run records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cacheDir, _ := cmd.Flags().GetString("cache-dir")
			if err := c.components.App.Clean(cacheDir); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "cache cleared")
			return nil
		},
	}
}
