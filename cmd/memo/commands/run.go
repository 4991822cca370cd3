package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.trai.ch/memo/internal/app"
	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/ui/output"
	"go.trai.ch/memo/internal/ui/style"
	"go.trai.ch/zerr"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [-i file]... [-o file]... -- command [args...]",
		Short: "Run a command unless its declared files are unchanged",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			call, err := c.buildCall(cmd, args)
			if err != nil {
				return err
			}

			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				c.components.Logger.SetVerbose(true)
			}

			cacheDir, _ := cmd.Flags().GetString("cache-dir")
			force, _ := cmd.Flags().GetBool("force")
			opts := app.RunOptions{
				CacheRoot: cacheDir,
				Force:     force,
				Stdout:    cmd.OutOrStdout(),
				Stderr:    cmd.ErrOrStderr(),
			}

			if watch, _ := cmd.Flags().GetBool("watch"); watch {
				return c.watchLoop(cmd, call, opts)
			}

			outcome, err := c.components.App.Run(cmd.Context(), call, opts)
			c.printOutcome(cmd, outcome, err)
			if errors.Is(err, domain.ErrCommandFailed) {
				c.exitCode = outcome.ExitCode
			}
			return err
		},
	}

	cmd.Flags().StringArrayP("input-files", "i", nil, "File the command reads; may be repeated")
	cmd.Flags().StringArrayP("output-files", "o", nil, "File the command writes; may be repeated")
	cmd.Flags().BoolP("force", "f", false, "Run unconditionally, bypassing the cache")
	cmd.Flags().BoolP("watch", "w", false, "Keep running, re-executing when an input changes")
	cmd.Flags().String("file", "", "Load the call definition from a YAML callfile")

	return cmd
}

// buildCall assembles the call from either the callfile or the flags plus
// the command words after the -- separator.
func (c *CLI) buildCall(cmd *cobra.Command, args []string) (domain.Call, error) {
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		return c.components.Loader.Load(file)
	}

	dash := cmd.ArgsLenAtDash()
	if dash < 0 || dash == len(args) {
		return domain.Call{}, zerr.Wrap(domain.ErrNoCommand, "expected a command after --")
	}
	if dash > 0 {
		return domain.Call{}, zerr.With(
			zerr.New("unexpected arguments before --"), "args", args[:dash],
		)
	}

	wd, err := os.Getwd()
	if err != nil {
		return domain.Call{}, zerr.Wrap(err, "failed to determine working directory")
	}

	inputs, _ := cmd.Flags().GetStringArray("input-files")
	outputs, _ := cmd.Flags().GetStringArray("output-files")

	return domain.Call{
		WorkingDir: wd,
		Inputs:     inputs,
		Outputs:    outputs,
		Command:    args[dash:],
	}, nil
}

func (c *CLI) watchLoop(cmd *cobra.Command, call domain.Call, opts app.RunOptions) error {
	err := c.components.App.Watch(cmd.Context(), call, c.components.Watcher, app.WatchOptions{
		RunOptions: opts,
		OnOutcome: func(outcome app.Outcome, runErr error) {
			c.printOutcome(cmd, outcome, runErr)
		},
	})
	// Watch only returns once the context ends; interruption is the normal
	// way to leave watch mode.
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (c *CLI) printOutcome(cmd *cobra.Command, outcome app.Outcome, err error) {
	w := cmd.ErrOrStderr()
	switch {
	case errors.Is(err, domain.ErrCommandFailed):
		fmt.Fprintln(w, render(style.Failed, fmt.Sprintf("%s command failed (exit %d)", style.Cross, outcome.ExitCode)))
	case err != nil:
		// The error itself is reported by the caller.
	case outcome.Skipped:
		fmt.Fprintln(w, render(style.Skipped, fmt.Sprintf("%s skipped: %s", style.Check, outcome.Reason)))
	}
}

// render applies the style unless the terminal opted out of color.
func render(s lipgloss.Style, text string) string {
	if output.ColorProfile() == termenv.Ascii {
		return text
	}
	return s.Render(text)
}
