// Package cmd implements the serve command for the resort CLI.
package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/hargabyte/resort/internal/mcp"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP server for AI agent integration",
	Long: `Start an MCP (Model Context Protocol) server over stdio.

This lets AI agents reorder and inspect files through MCP tools instead of
spawning CLI commands.

Available Tools:
  resort_fix     Reorder a file in place (or dry-run)
  resort_check   Report whether a file is in dependency order
  resort_deps    Show per-declaration dependency sets

Examples:
  resort serve --mcp                       # Start with all tools
  resort serve --mcp --tools fix,check     # Expose specific tools only
  resort serve --mcp --timeout 30m         # Auto-stop after inactivity
  resort serve --list-tools                # Show available tools`,
	RunE: runServe,
}

var (
	serveMCP       bool
	serveTools     string
	serveTimeout   string
	serveListTools bool
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveMCP, "mcp", false, "Start MCP server (stdio transport)")
	serveCmd.Flags().StringVar(&serveTools, "tools", "", "Comma-separated list of tools to expose (default: all)")
	serveCmd.Flags().StringVar(&serveTimeout, "timeout", "30m", "Inactivity timeout (0 for no timeout)")
	serveCmd.Flags().BoolVar(&serveListTools, "list-tools", false, "List available tools")
}

// runServe implements the serve command logic
func runServe(cmd *cobra.Command, args []string) error {
	if serveListTools {
		fmt.Println("Available MCP tools:")
		fmt.Println()
		fmt.Println("  resort_fix     Reorder a file in place (or dry-run)")
		fmt.Println("  resort_check   Report whether a file is in dependency order")
		fmt.Println("  resort_deps    Show per-declaration dependency sets")
		return nil
	}

	if !serveMCP {
		return fmt.Errorf("nothing to do: pass --mcp to start the server, or --list-tools")
	}

	var timeout time.Duration
	if serveTimeout != "" && serveTimeout != "0" {
		d, err := time.ParseDuration(serveTimeout)
		if err != nil {
			return fmt.Errorf("invalid --timeout %q: %w", serveTimeout, err)
		}
		timeout = d
	}

	var tools []string
	if serveTools != "" {
		for _, t := range strings.Split(serveTools, ",") {
			name := strings.TrimSpace(t)
			if !strings.HasPrefix(name, "resort_") {
				name = "resort_" + name
			}
			tools = append(tools, name)
		}
	}

	server, err := mcp.New(mcp.Config{Tools: tools, Timeout: timeout})
	if err != nil {
		return err
	}
	defer server.Close()

	return server.ServeStdio()
}
