package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JurajKralik/Benchmarks/internal/benchmark"
	"github.com/JurajKralik/Benchmarks/internal/dataset"
	"github.com/JurajKralik/Benchmarks/internal/results"
	"github.com/JurajKralik/Benchmarks/internal/ui"
)

// runBench loads the dataset, runs warmup and measured repetitions and
// records every measurement. Configuration is fully validated before the
// dataset or the results log are touched.
func (a *app) runBench(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRunConfig(a.v)
	if err != nil {
		return usageError(err)
	}

	sorter, err := benchmark.Lookup(cfg.Algorithm)
	if err != nil {
		return usageError(err)
	}

	values, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		return failure(err)
	}
	a.logger.Info("dataset loaded",
		"path", cfg.DatasetPath,
		"n", len(values),
		"distribution", dataset.Distribution(cfg.DatasetPath))

	recorder := results.NewRecorder(cfg.OutputPath, a.stdout)
	runner := benchmark.NewRunner(sorter,
		benchmark.WithLogger(a.logger),
		benchmark.WithSystemInfo(benchmark.GetSystemInfo()),
	)

	failed := 0
	err = runner.Run(values, cfg, func(m benchmark.Measurement) error {
		if !m.OK {
			failed++
		}
		return recorder.Record(m)
	})
	if err != nil {
		return failure(err)
	}

	// Validation failures are recorded, not fatal.
	if failed > 0 {
		styler := ui.NewStyler(a.stderr)
		fmt.Fprintf(a.stderr, "%s %d of %d repetitions produced unsorted output\n",
			styler.Warn("Warning:"), failed, cfg.MeasurementRuns)
	}
	return nil
}
