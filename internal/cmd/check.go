// Package cmd implements the check command for the resort CLI.
package cmd

import (
	"fmt"
	"os"

	"github.com/hargabyte/resort/internal/extract"
	"github.com/hargabyte/resort/internal/graph"
	"github.com/hargabyte/resort/internal/output"
	"github.com/hargabyte/resort/internal/reorder"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Check whether a file is already in dependency order",
	Long: `Check analyzes a file without writing anything.

It reports the declaration count, duplicate definitions, unbalanced bodies,
and whether the file as written already satisfies define-before-use. When the
dependency graph contains a true cycle, no linear order exists; the cycle is
reported so it can be resolved by hand.

The exit status is non-zero when the file is out of order or contains
duplicates, which makes check usable as a CI or pre-commit gate.

Examples:
  resort check src/State.res
  resort check --format json src/State.res`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// runCheck implements the check command logic
func runCheck(cmd *cobra.Command, args []string) error {
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

	src := string(data)
	doc := extract.Split(src)

	texts := make(map[string]string, len(doc.Decls))
	for _, d := range doc.Decls {
		texts[d.Name] = d.Text
	}
	g := graph.Build(doc.Names(), texts)

	inOrder, _ := reorder.InOrder(src)
	cyclic, cycle := g.FindCycle()

	report := &output.Report{
		File:              target,
		Declarations:      len(doc.Decls),
		DuplicatesRemoved: doc.Removed,
		Malformed:         doc.Malformed(),
		Cyclic:            cyclic,
		Cycle:             cycle,
		InOrder:           &inOrder,
	}
	if verbose {
		report.Dependencies = g.Edges
	}

	if err := output.Render(os.Stdout, format, report); err != nil {
		return err
	}

	if !inOrder {
		return fmt.Errorf("%s is not in dependency order (run 'resort fix')", target)
	}
	if len(doc.Removed) > 0 {
		return fmt.Errorf("%s contains duplicate declarations: %v", target, doc.Removed)
	}
	return nil
}
