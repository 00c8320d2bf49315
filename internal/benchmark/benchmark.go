// Package benchmark runs the sort micro-benchmark: warmup repetitions that
// are never recorded, followed by measured repetitions that each sort a fresh
// copy of the dataset and produce one Measurement.
//
// The sort itself is an injected Sorter. The harness only times and checks it.
package benchmark

import (
	"fmt"
	"time"
)

// Task is the task name recorded for every measurement.
const Task = "sort"

// Config defines the parameters for a benchmark run.
type Config struct {
	// DatasetPath is the dataset file the values were loaded from
	DatasetPath string

	// Algorithm is the registered sorter name (only "builtin" today)
	Algorithm string

	// WarmupRuns is the number of unrecorded repetitions before measuring
	WarmupRuns int

	// MeasurementRuns is the number of timed, recorded repetitions
	MeasurementRuns int

	// OutputPath is the results log the rows are appended to
	OutputPath string

	// ValidateOutput checks every measured result for non-decreasing order.
	// When false every repetition is recorded as ok.
	ValidateOutput bool
}

// DefaultConfig returns the configuration used when no flag overrides it.
func DefaultConfig() Config {
	return Config{
		Algorithm:       BuiltinAlgorithm,
		WarmupRuns:      5,
		MeasurementRuns: 30,
		OutputPath:      "results/raw.csv",
		ValidateOutput:  true,
	}
}

// Validate reports the first invalid field as a *ConfigError.
func (c Config) Validate() error {
	if c.DatasetPath == "" {
		return configErrorf("dataset", "--dataset is required")
	}
	if c.WarmupRuns < 0 {
		return configErrorf("warmup", "--warmup must be >= 0, got %d", c.WarmupRuns)
	}
	if c.MeasurementRuns <= 0 {
		return configErrorf("reps", "--reps must be > 0, got %d", c.MeasurementRuns)
	}
	if c.OutputPath == "" {
		return configErrorf("out", "--out must not be empty")
	}
	if !IsRegistered(c.Algorithm) {
		return &ConfigError{
			Field: "algo",
			Err:   fmt.Errorf("--algo %q: %w (supported: %v)", c.Algorithm, ErrUnknownAlgorithm, Algorithms()),
		}
	}
	return nil
}

// Measurement is one measured repetition. It is created by the Runner and
// consumed once by the results recorder.
type Measurement struct {
	Timestamp       time.Time
	Task            string
	Language        string
	LanguageVersion string
	Algorithm       string
	DatasetFile     string
	Distribution    string
	N               int
	WarmupRuns      int
	RepIdx          int
	Elapsed         time.Duration
	OK              bool
}

// TimeMs returns the elapsed sort time in milliseconds.
func (m Measurement) TimeMs() float64 {
	return float64(m.Elapsed.Nanoseconds()) / 1e6
}
