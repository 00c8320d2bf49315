package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/JurajKralik/Benchmarks/internal/benchmark"
)

func newEnvCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Print the environment recorded with benchmark results",
		Long: `Print the runtime and host details of this machine. The language and
language_version fields are the values written to every results row; the
rest is reported for reproducibility.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeSystemInfo(a.stdout, benchmark.GetSystemInfo(), a.v.GetString("format"))
		},
	}
	cmd.Flags().StringP("format", "f", "json", "Output format: json, yaml or toml")
	return cmd
}

func writeSystemInfo(w io.Writer, info benchmark.SystemInfo, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(info); err != nil {
			return failure(fmt.Errorf("encode JSON: %w", err))
		}
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(info); err != nil {
			return failure(fmt.Errorf("encode YAML: %w", err))
		}
		if err := encoder.Close(); err != nil {
			return failure(fmt.Errorf("encode YAML: %w", err))
		}
	case "toml":
		if err := toml.NewEncoder(w).Encode(info); err != nil {
			return failure(fmt.Errorf("encode TOML: %w", err))
		}
	default:
		return usageError(fmt.Errorf("--format %q: want json, yaml or toml", format))
	}
	return nil
}
