// Package cmd implements the history command for the resort CLI.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/hargabyte/resort/internal/config"
	"github.com/hargabyte/resort/internal/history"
	"github.com/spf13/cobra"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past fix runs",
	Long: `History lists fix runs recorded in the .resort/history.db ledger,
newest first. The ledger is found by walking up from the current directory.

Examples:
  resort history              # Last 20 runs
  resort history --limit 5    # Last 5 runs
  resort history --clear      # Forget all recorded runs`,
	RunE: runHistory,
}

var (
	historyLimit int
	historyClear bool
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum runs to list (0 for all)")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Remove all recorded runs")
}

// runHistory implements the history command logic
func runHistory(cmd *cobra.Command, args []string) error {
	resortDir, err := config.FindConfigDir(".")
	if err != nil {
		return fmt.Errorf("no .resort directory found (run 'resort init' or 'resort fix' first)")
	}

	h, err := history.Open(resortDir)
	if err != nil {
		return err
	}
	defer h.Close()

	if historyClear {
		if err := h.Clear(); err != nil {
			return err
		}
		fmt.Println("history cleared")
		return nil
	}

	runs, err := h.ListRuns(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	for _, run := range runs {
		line := fmt.Sprintf("%s  %s  decls=%d dupes=%d",
			run.RanAt.Format(time.RFC3339), run.FilePath, run.Declarations, run.Duplicates)
		if run.Cyclic {
			line += " cyclic"
		}
		if verbose {
			line += fmt.Sprintf("  %s -> %s", run.InputHash, run.OutputHash)
		}
		fmt.Fprintln(os.Stdout, line)
	}

	return nil
}
