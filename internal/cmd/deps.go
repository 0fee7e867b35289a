// Package cmd implements the deps command for the resort CLI.
package cmd

import (
	"fmt"
	"os"

	"github.com/hargabyte/resort/internal/output"
	"github.com/hargabyte/resort/internal/reorder"
	"github.com/spf13/cobra"
)

// depsCmd represents the deps command
var depsCmd = &cobra.Command{
	Use:   "deps <file>",
	Short: "Show per-declaration dependency sets",
	Long: `Deps prints which declarations each declaration references.

Dependencies are detected textually: a whole-word occurrence of another
declaration's name inside a declaration's span counts as a reference. This
over-approximates real usage (a name inside a string literal still counts)
but never misses a true dependency.

Examples:
  resort deps src/State.res
  resort deps --format yaml src/State.res`,
	Args: cobra.ExactArgs(1),
	RunE: runDeps,
}

func init() {
	rootCmd.AddCommand(depsCmd)
}

// runDeps implements the deps command logic
func runDeps(cmd *cobra.Command, args []string) error {
	target, err := resolveTarget(args)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return fmt.Errorf("reading %s: %w", target, err)
	}

	cfg := loadConfigFor(target)
	format, err := resolveFormat(cfg)
	if err != nil {
		return err
	}

	res := reorder.Reorder(string(data))

	report := &output.Report{
		File:         target,
		Declarations: res.DeclarationCount,
		Cyclic:       res.Cyclic,
		Dependencies: res.Dependencies,
	}

	return output.Render(os.Stdout, format, report)
}
