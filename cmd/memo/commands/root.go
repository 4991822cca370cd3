// Package commands implements the CLI commands for the memo tool.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/memo/internal/app"
	"go.trai.ch/memo/internal/build"
)

// CLI represents the command line interface for memo.
type CLI struct {
	components *app.Components
	rootCmd    *cobra.Command

	// exitCode carries the wrapped command's exit status when a run fails.
	exitCode int
}

// New creates a new CLI instance with the given components.
func New(components *app.Components) *CLI {
	rootCmd := &cobra.Command{
		Use:   "memo",
		Short: "Run a command only when its declared files changed",
		Long: "memo wraps a command with content-based memoization: declare the files\n" +
			"the command reads and writes, and memo skips the run whenever all of\n" +
			"them match the state recorded after the last successful run.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	// Register --version without a shorthand: -v belongs to --verbose.
	rootCmd.Flags().Bool("version", false, "Print the application version")

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print decision diagnostics to stderr")
	rootCmd.PersistentFlags().String("cache-dir", "", "Override the cache directory")

	c := &CLI{
		components: components,
		rootCmd:    rootCmd,
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// ExitCode returns the wrapped command's exit status from the last run.
// It is only meaningful after Execute returned domain.ErrCommandFailed.
func (c *CLI) ExitCode() int {
	return c.exitCode
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects the root command's output streams. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
