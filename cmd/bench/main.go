// Command bench is a sort micro-benchmark harness. It loads a binary int32
// dataset, sorts fresh copies of it repeatedly, and appends one row per
// measured repetition to a results log while echoing the row to stdout.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/JurajKralik/Benchmarks/internal/benchmark"
	"github.com/JurajKralik/Benchmarks/internal/ui"
)

const (
	exitSuccess = 0
	exitFailure = 1
	exitUsage   = 2
)

// exitError carries the process exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error {
	return &exitError{code: exitUsage, err: err}
}

func failure(err error) error {
	return &exitError{code: exitFailure, err: err}
}

// exitCode maps an error onto the process exit code. Errors raised by cobra
// itself (unknown flags, unknown commands, stray arguments) are usage errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return exitUsage
}

// app holds the state of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer
	v      *viper.Viper
	logger *slog.Logger
	close  func() error
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		v:      newViper(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		close:  func() error { return nil },
	}
}

// execute runs the CLI with args and returns the exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	root := newRootCmd(a)
	root.SetArgs(args)

	cmd, err := root.ExecuteContextC(ctx)
	if cerr := a.close(); cerr != nil && err == nil {
		err = failure(fmt.Errorf("close log file: %w", cerr))
	}
	if err == nil {
		return exitSuccess
	}

	code := exitCode(err)
	styler := ui.NewStyler(stderr)
	fmt.Fprintf(stderr, "%s %v\n", styler.Error("Error:"), err)
	if code == exitUsage {
		if cmd == nil {
			cmd = root
		}
		fmt.Fprint(stderr, cmd.UsageString())
	}
	return code
}

func newRootCmd(a *app) *cobra.Command {
	defaults := benchmark.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time repeated sorts of a binary int32 dataset",
		Long: `Load a binary int32 dataset, sort a fresh copy of it --warmup times without
recording, then --reps times while timing each sort. Every measured
repetition is appended as one row to the results log (--out) and echoed to
stdout.

The results log is append-only. Its header is written once, when the file is
first created, so repeated runs and parallel sweeps can share one log.

Every flag can also be set through a BENCH_* environment variable
(BENCH_DATASET, BENCH_REPS, BENCH_NO_VALIDATE, ...) or a --config file.
--warmup and --reps are base-10 integers wherever they are set; a config
file value must be a whole number.

Exit codes:
  0  success (validation failures are recorded, not fatal)
  1  dataset or results log I/O or format failure
  2  usage or configuration error

Examples:
  # 30 measured sorts after 5 warmups, appended to results/raw.csv
  bench --dataset data/random_n100000_seed1.bin

  # Quick run without validation into a separate log
  bench --dataset data/sorted_n1000_seed1.bin --warmup 0 --reps 3 --no-validate --out /tmp/raw.csv
`,
		Args:              cobra.NoArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runBench,
	}

	cmd.Flags().String("dataset", "", "Path to .bin dataset (required)")
	cmd.Flags().String("algo", defaults.Algorithm, "Sorting algorithm (builtin)")
	cmd.Flags().Var(newDecimalInt(defaults.WarmupRuns), "warmup", "Warmup runs (not recorded)")
	cmd.Flags().Var(newDecimalInt(defaults.MeasurementRuns), "reps", "Measured repetitions")
	cmd.Flags().String("out", defaults.OutputPath, "Results log path")
	cmd.Flags().Bool("no-validate", false, "Disable sortedness validation")

	cmd.PersistentFlags().String("config", "", "Config file (toml, yaml or json) with flag defaults")
	cmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().String("log-file", "", "Write logs to this file (rotated) instead of stderr")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	cmd.AddCommand(newEnvCmd(a), newTailCmd(a))
	return cmd
}

// setup layers configuration and builds the logger for the command being run.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := bindConfig(a.v, cmd); err != nil {
		return usageError(err)
	}

	logger, closeFn, err := newLogger(a.v.GetString("log-level"), a.v.GetString("log-file"), a.stderr)
	if err != nil {
		return usageError(err)
	}
	a.logger = logger
	a.close = closeFn
	return nil
}

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
