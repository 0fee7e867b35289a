package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/hargabyte/resort/internal/config"
	"github.com/hargabyte/resort/internal/output"
	"github.com/hargabyte/resort/internal/reorder"
)

// loadConfigFor loads configuration for the directory containing the target
// file, falling back to defaults when no .resort directory exists.
func loadConfigFor(target string) *config.Config {
	cfg, err := config.Load(filepath.Dir(target))
	if err != nil || cfg == nil {
		return config.DefaultConfig()
	}
	return cfg
}

// resolveFormat picks the report format: the --format flag wins, then the
// config default.
func resolveFormat(cfg *config.Config) (output.Format, error) {
	if outputFormat != "" {
		f, err := output.ParseFormat(outputFormat)
		if err != nil {
			return "", err
		}
		return f, nil
	}
	return output.ParseFormat(cfg.Output.DefaultFormat)
}

// reorderOptions maps banner labels from config onto pipeline options.
func reorderOptions(cfg *config.Config) reorder.Options {
	opts := reorder.Options{}
	opts.Banners.TypeLabel = cfg.Banners.TypeLabel
	opts.Banners.FunctionLabel = cfg.Banners.FunctionLabel
	return opts
}

// resolveTarget validates and absolutizes the file argument.
func resolveTarget(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected exactly one file argument")
	}
	abs, err := filepath.Abs(args[0])
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}
