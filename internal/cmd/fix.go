// Package cmd implements the fix command for the resort CLI.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hargabyte/resort/internal/backup"
	"github.com/hargabyte/resort/internal/config"
	"github.com/hargabyte/resort/internal/history"
	"github.com/hargabyte/resort/internal/output"
	"github.com/hargabyte/resort/internal/reorder"
	"github.com/spf13/cobra"
)

// fixCmd represents the fix command
var fixCmd = &cobra.Command{
	Use:   "fix <file>",
	Short: "Reorder a file's declarations in place",
	Long: `Fix rewrites the given file so every top-level declaration appears after
the declarations it references.

The fix process:
  1. Scans the file for top-level type and function bindings
  2. Drops duplicate definitions, keeping the first occurrence
  3. Builds the textual dependency graph between declarations
  4. Sorts the graph depth-first, breaking cycles at re-entry
  5. Writes a backup of the original, then replaces the file

The original header block (comments, blank lines, open directives before the
first declaration) is preserved verbatim. Cycles never fail the fix; the
result is best-effort and the cycle is reported.

Examples:
  resort fix src/State.res              # Rewrite in place
  resort fix --dry-run src/State.res    # Print the result, write nothing
  resort fix --no-backup src/State.res  # Skip the .backup file`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

// Command-line flags
var (
	fixDryRun   bool
	fixNoBackup bool
)

func init() {
	rootCmd.AddCommand(fixCmd)

	fixCmd.Flags().BoolVar(&fixDryRun, "dry-run", false, "Print the reordered file instead of writing it")
	fixCmd.Flags().BoolVar(&fixNoBackup, "no-backup", false, "Do not write a backup of the original")
}

// runFix implements the fix command logic
func runFix(cmd *cobra.Command, args []string) error {
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

	res := reorder.ReorderWithOptions(string(data), reorderOptions(cfg))

	if fixDryRun {
		fmt.Print(res.OutputText)
		return renderFixReport(target, res, "", true, format)
	}

	backupPath := ""
	if cfg.Backup.Enabled && !fixNoBackup {
		backupPath, err = backup.Write(target, cfg.Backup.Suffix, data)
		if err != nil {
			return err
		}
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat %s: %w", target, err)
	}
	if err := os.WriteFile(target, []byte(res.OutputText), info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}

	recordFixRun(target, data, res)

	return renderFixReport(target, res, backupPath, false, format)
}

// recordFixRun appends the run to the history ledger. Ledger failures never
// fail the fix; the file is already rewritten.
func recordFixRun(target string, input []byte, res *reorder.Result) {
	resortDir, err := config.EnsureConfigDir(filepath.Dir(target))
	if err != nil {
		warnf("history not recorded: %v", err)
		return
	}

	h, err := history.Open(resortDir)
	if err != nil {
		warnf("history not recorded: %v", err)
		return
	}
	defer h.Close()

	err = h.RecordRun(history.Run{
		FilePath:     target,
		InputHash:    history.HashContent(input),
		OutputHash:   history.HashContent([]byte(res.OutputText)),
		Declarations: res.DeclarationCount,
		Duplicates:   len(res.DuplicatesRemoved),
		Cyclic:       res.Cyclic,
	})
	if err != nil {
		warnf("history not recorded: %v", err)
	}
}

// renderFixReport writes the fix summary to stderr in dry-run mode (stdout
// carries the document text there) and to stdout otherwise.
func renderFixReport(target string, res *reorder.Result, backupPath string, dryRun bool, format output.Format) error {
	report := &output.Report{
		File:              target,
		Declarations:      res.DeclarationCount,
		DuplicatesRemoved: res.DuplicatesRemoved,
		Malformed:         res.Malformed,
		Cyclic:            res.Cyclic,
		BackupPath:        backupPath,
		DryRun:            dryRun,
	}
	if verbose {
		report.Dependencies = res.Dependencies
	}

	w := os.Stdout
	if dryRun {
		w = os.Stderr
	}
	return output.Render(w, format, report)
}

func warnf(msg string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "warning: "+msg+"\n", args...)
}
