package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/JurajKralik/Benchmarks/internal/benchmark"
)

const envPrefix = "BENCH"

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// bindConfig layers cmd's flags over BENCH_* environment variables and the
// optional --config file. Precedence: flag > env > file > flag default.
func bindConfig(v *viper.Viper, cmd *cobra.Command) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	path := v.GetString("config")
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// loadRunConfig builds the immutable run configuration and validates it.
func loadRunConfig(v *viper.Viper) (benchmark.Config, error) {
	warmup, err := toCount(v.Get("warmup"))
	if err != nil {
		return benchmark.Config{}, &benchmark.ConfigError{Field: "warmup", Err: fmt.Errorf("--warmup: %w", err)}
	}
	reps, err := toCount(v.Get("reps"))
	if err != nil {
		return benchmark.Config{}, &benchmark.ConfigError{Field: "reps", Err: fmt.Errorf("--reps: %w", err)}
	}
	noValidate, err := cast.ToBoolE(v.Get("no-validate"))
	if err != nil {
		return benchmark.Config{}, &benchmark.ConfigError{Field: "no-validate", Err: fmt.Errorf("--no-validate: %w", err)}
	}

	cfg := benchmark.Config{
		DatasetPath:     v.GetString("dataset"),
		Algorithm:       v.GetString("algo"),
		WarmupRuns:      warmup,
		MeasurementRuns: reps,
		OutputPath:      v.GetString("out"),
		ValidateOutput:  !noValidate,
	}
	if err := cfg.Validate(); err != nil {
		return benchmark.Config{}, err
	}
	return cfg, nil
}

// toCount converts a layered config value to an int. Strings from the
// environment are parsed as base-10, and numbers from a config file must be
// whole.
func toCount(value any) (int, error) {
	switch x := value.(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, fmt.Errorf("%q is not a base-10 integer", x)
		}
		return n, nil
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("%v is not a whole number", x)
		}
	case float32:
		if float64(x) != math.Trunc(float64(x)) {
			return 0, fmt.Errorf("%v is not a whole number", x)
		}
	}
	return cast.ToIntE(value)
}
