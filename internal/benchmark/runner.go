package benchmark

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/JurajKralik/Benchmarks/internal/dataset"
)

// RunOption configures a Runner.
type RunOption func(*Runner)

// WithLogger sets the logger for runner activity. The default discards.
func WithLogger(logger *slog.Logger) RunOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock sets the wall clock used for measurement timestamps.
// Elapsed times always come from the monotonic clock.
func WithClock(now func() time.Time) RunOption {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// WithSystemInfo sets the environment recorded in each measurement.
func WithSystemInfo(info SystemInfo) RunOption {
	return func(r *Runner) {
		r.info = info
	}
}

// Runner owns the warmup and measurement loops for one sorter.
type Runner struct {
	sorter Sorter
	logger *slog.Logger
	now    func() time.Time
	info   SystemInfo
}

// NewRunner creates a Runner that times sorter.
func NewRunner(sorter Sorter, opts ...RunOption) *Runner {
	r := &Runner{
		sorter: sorter,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
		info:   SystemInfo{Language: Language},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run sorts data cfg.WarmupRuns times without recording anything, then
// cfg.MeasurementRuns times, passing one Measurement per repetition to emit
// in repetition order. data is never modified.
//
// A failed validation is recorded as OK=false and the loop continues. An
// error from emit stops the run and is returned.
func (r *Runner) Run(data []int32, cfg Config, emit func(Measurement) error) error {
	if r.sorter == nil {
		return fmt.Errorf("runner has no sorter")
	}

	n := len(data)
	dist := dataset.Distribution(cfg.DatasetPath)
	log := r.logger.With("algo", cfg.Algorithm, "dataset", cfg.DatasetPath, "n", n)

	// Warmup
	warmStart := time.Now()
	for i := 0; i < cfg.WarmupRuns; i++ {
		r.sorter.Sort(clone(data))
	}
	log.Debug("warmup complete", "runs", cfg.WarmupRuns, "duration", time.Since(warmStart))

	// Measured
	failures := 0
	for rep := 0; rep < cfg.MeasurementRuns; rep++ {
		work := clone(data)

		t0 := time.Now()
		r.sorter.Sort(work)
		elapsed := time.Since(t0)

		ok := true
		if cfg.ValidateOutput {
			ok = IsSorted(work)
		}
		if !ok {
			failures++
			log.Warn("validation failed", "rep", rep)
		}

		m := Measurement{
			Timestamp:       r.now(),
			Task:            Task,
			Language:        r.info.Language,
			LanguageVersion: r.info.LanguageVersion,
			Algorithm:       cfg.Algorithm,
			DatasetFile:     cfg.DatasetPath,
			Distribution:    dist,
			N:               n,
			WarmupRuns:      cfg.WarmupRuns,
			RepIdx:          rep,
			Elapsed:         elapsed,
			OK:              ok,
		}
		if err := emit(m); err != nil {
			return fmt.Errorf("record rep %d: %w", rep, err)
		}
		log.Debug("rep complete", "rep", rep, "elapsed", elapsed, "ok", ok)
	}

	log.Info("run complete", "reps", cfg.MeasurementRuns, "validation_failures", failures)
	return nil
}

// IsSorted reports whether values are in non-decreasing order.
func IsSorted(values []int32) bool {
	for i := 0; i < len(values)-1; i++ {
		if values[i] > values[i+1] {
			return false
		}
	}
	return true
}

// clone returns a fresh copy so every repetition sorts unsorted input.
func clone(data []int32) []int32 {
	work := make([]int32, len(data))
	copy(work, data)
	return work
}
