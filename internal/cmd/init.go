// Package cmd implements the init command for the resort CLI.
package cmd

import (
	"fmt"

	"github.com/hargabyte/resort/internal/config"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a default .resort/config.yaml",
	Long: `Init creates the .resort directory with a default configuration file.

The config controls the backup suffix, the section banner labels emitted in
reordered files, and the default report format. Commands find it by walking
up the directory tree from the target file, so one config at the project
root covers the whole tree.

Examples:
  resort init          # In the current directory
  resort init ./app    # In a specific directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// runInit implements the init command logic
func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	path, err := config.SaveDefault(dir)
	if err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", path)
	return nil
}
