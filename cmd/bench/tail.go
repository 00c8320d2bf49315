package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JurajKralik/Benchmarks/internal/benchmark"
	"github.com/JurajKralik/Benchmarks/internal/results"
	"github.com/JurajKralik/Benchmarks/internal/ui"
)

func newTailCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Follow rows as they are appended to a results log",
		Long: `Print every row appended to the results log, including rows written by
other bench processes sharing the same --out path. Runs until interrupted.

The log does not need to exist yet, but its directory does.

Examples:
  # Watch a parallel sweep
  bench tail --out results/raw.csv

  # Replay the existing rows first
  bench tail --out results/raw.csv --from-start
`,
		Args: cobra.NoArgs,
		RunE: a.runTail,
	}
	cmd.Flags().String("out", benchmark.DefaultConfig().OutputPath, "Results log path")
	cmd.Flags().Bool("from-start", false, "Print rows already in the log before following")
	return cmd
}

func (a *app) runTail(cmd *cobra.Command, _ []string) error {
	path := a.v.GetString("out")
	if path == "" {
		return usageError(fmt.Errorf("--out must not be empty"))
	}

	follower, err := results.NewFollower(path, results.FollowOptions{
		FromStart: a.v.GetBool("from-start"),
	})
	if err != nil {
		return failure(err)
	}
	defer follower.Close()

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	styler := ui.NewStyler(a.stderr)
	fmt.Fprintf(a.stderr, "%s %s %s\n", styler.Accent("Following"), path, styler.Muted("(Ctrl+C to stop)"))
	a.logger.Info("following results log", "path", path)

	err = follower.Run(ctx, func(line string) error {
		_, err := fmt.Fprintln(a.stdout, line)
		return err
	})
	if err != nil {
		return failure(err)
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
