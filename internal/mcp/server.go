// Package mcp provides an MCP (Model Context Protocol) server for resort.
// This allows AI agents to reorder and inspect files through MCP tools
// instead of CLI commands.
package mcp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hargabyte/resort/internal/backup"
	"github.com/hargabyte/resort/internal/config"
	"github.com/hargabyte/resort/internal/extract"
	"github.com/hargabyte/resort/internal/graph"
	"github.com/hargabyte/resort/internal/output"
	"github.com/hargabyte/resort/internal/reorder"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server wraps the MCP server with resort-specific functionality
type Server struct {
	mcpServer    *server.MCPServer
	tools        map[string]bool
	lastActivity time.Time
	timeout      time.Duration
	mu           sync.RWMutex
}

// Config holds server configuration
type Config struct {
	Tools   []string      // Which tools to expose (empty = all)
	Timeout time.Duration // Inactivity timeout (0 = no timeout)
}

// AllTools lists all available tools
var AllTools = []string{"resort_fix", "resort_check", "resort_deps"}

// New creates a new MCP server for resort
func New(cfg Config) (*Server, error) {
	mcpServer := server.NewMCPServer(
		"resort",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s := &Server{
		mcpServer:    mcpServer,
		tools:        make(map[string]bool),
		lastActivity: time.Now(),
		timeout:      cfg.Timeout,
	}

	toolsToRegister := cfg.Tools
	if len(toolsToRegister) == 0 {
		toolsToRegister = AllTools
	}

	for _, toolName := range toolsToRegister {
		if err := s.registerTool(toolName); err != nil {
			return nil, fmt.Errorf("failed to register tool %s: %w", toolName, err)
		}
		s.tools[toolName] = true
	}

	return s, nil
}

// registerTool registers a single tool with the MCP server
func (s *Server) registerTool(name string) error {
	switch name {
	case "resort_fix":
		return s.registerFixTool()
	case "resort_check":
		return s.registerCheckTool()
	case "resort_deps":
		return s.registerDepsTool()
	default:
		return fmt.Errorf("unknown tool: %s", name)
	}
}

// ServeStdio starts the server using stdio transport
func (s *Server) ServeStdio() error {
	// Start timeout checker if timeout is set
	if s.timeout > 0 {
		go s.timeoutChecker()
	}

	return server.ServeStdio(s.mcpServer)
}

// timeoutChecker monitors for inactivity and exits if timeout exceeded
func (s *Server) timeoutChecker() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.RLock()
		elapsed := time.Since(s.lastActivity)
		s.mu.RUnlock()

		if elapsed > s.timeout {
			fmt.Fprintf(os.Stderr, "resort serve: timeout after %v of inactivity\n", s.timeout)
			os.Exit(0)
		}
	}
}

// updateActivity updates the last activity timestamp
func (s *Server) updateActivity() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// Close closes the server and its resources
func (s *Server) Close() error {
	return nil
}

// ListTools returns the list of registered tools
func (s *Server) ListTools() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tools := make([]string, 0, len(s.tools))
	for t := range s.tools {
		tools = append(tools, t)
	}
	return tools
}

// ToolSchema describes a tool's name, description, and parameters.
type ToolSchema struct {
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description" yaml:"description"`
	Parameters  []ParameterSchema `json:"parameters" yaml:"parameters"`
}

// ParameterSchema describes a single tool parameter.
type ParameterSchema struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
	Required    bool   `json:"required" yaml:"required"`
}

// toolSchemaRegistry holds the schema definitions for all tools.
// These mirror the mcp.NewTool() definitions in the register*Tool() functions.
var toolSchemaRegistry = map[string]ToolSchema{
	"resort_fix": {
		Name:        "resort_fix",
		Description: "Reorder a file's declarations into dependency order, in place.",
		Parameters: []ParameterSchema{
			{Name: "path", Type: "string", Description: "File to rewrite", Required: true},
			{Name: "dry_run", Type: "boolean", Description: "Return the reordered text without writing"},
			{Name: "no_backup", Type: "boolean", Description: "Skip writing the backup file"},
		},
	},
	"resort_check": {
		Name:        "resort_check",
		Description: "Report whether a file is already in dependency order.",
		Parameters: []ParameterSchema{
			{Name: "path", Type: "string", Description: "File to analyze", Required: true},
		},
	},
	"resort_deps": {
		Name:        "resort_deps",
		Description: "Show per-declaration dependency sets for a file.",
		Parameters: []ParameterSchema{
			{Name: "path", Type: "string", Description: "File to analyze", Required: true},
		},
	},
}

// registerFixTool registers the resort_fix tool
func (s *Server) registerFixTool() error {
	tool := mcp.NewTool("resort_fix",
		mcp.WithDescription("Reorder a file's declarations into dependency order, in place. Writes a backup unless disabled."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File to rewrite"),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Return the reordered text without writing"),
		),
		mcp.WithBoolean("no_backup",
			mcp.Description("Skip writing the backup file"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleFix)
	return nil
}

// registerCheckTool registers the resort_check tool
func (s *Server) registerCheckTool() error {
	tool := mcp.NewTool("resort_check",
		mcp.WithDescription("Report whether a file is already in dependency order, plus duplicates and cycles."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File to analyze"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleCheck)
	return nil
}

// registerDepsTool registers the resort_deps tool
func (s *Server) registerDepsTool() error {
	tool := mcp.NewTool("resort_deps",
		mcp.WithDescription("Show per-declaration dependency sets for a file."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File to analyze"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleDeps)
	return nil
}

func (s *Server) handleFix(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	path, ok := args["path"].(string)
	if !ok || path == "" {
		return mcp.NewToolResultError("path parameter is required"), nil
	}

	dryRun, _ := args["dry_run"].(bool)
	noBackup, _ := args["no_backup"].(bool)

	result, err := s.executeFix(path, dryRun, noBackup)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleCheck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	path, ok := args["path"].(string)
	if !ok || path == "" {
		return mcp.NewToolResultError("path parameter is required"), nil
	}

	result, err := s.executeCheck(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleDeps(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	path, ok := args["path"].(string)
	if !ok || path == "" {
		return mcp.NewToolResultError("path parameter is required"), nil
	}

	result, err := s.executeDeps(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

// executeFix reorders path in place and returns a YAML report. In dry-run
// mode the reordered document itself is returned instead.
func (s *Server) executeFix(path string, dryRun, noBackup bool) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	cfg := loadConfigFor(path)
	res := reorder.ReorderWithOptions(string(data), reorderOptions(cfg))

	if dryRun {
		return res.OutputText, nil
	}

	backupPath := ""
	if cfg.Backup.Enabled && !noBackup {
		backupPath, err = backup.Write(path, cfg.Backup.Suffix, data)
		if err != nil {
			return "", err
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(res.OutputText), info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	report := &output.Report{
		File:              path,
		Declarations:      res.DeclarationCount,
		DuplicatesRemoved: res.DuplicatesRemoved,
		Malformed:         res.Malformed,
		Cyclic:            res.Cyclic,
		BackupPath:        backupPath,
	}
	return renderYAML(report)
}

// executeCheck analyzes path without writing and returns a YAML report.
func (s *Server) executeCheck(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
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
		File:              path,
		Declarations:      len(doc.Decls),
		DuplicatesRemoved: doc.Removed,
		Malformed:         doc.Malformed(),
		Cyclic:            cyclic,
		Cycle:             cycle,
		InOrder:           &inOrder,
	}
	return renderYAML(report)
}

// executeDeps returns the dependency sets for path as YAML.
func (s *Server) executeDeps(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	res := reorder.Reorder(string(data))

	report := &output.Report{
		File:         path,
		Declarations: res.DeclarationCount,
		Cyclic:       res.Cyclic,
		Dependencies: res.Dependencies,
	}
	return renderYAML(report)
}

func renderYAML(report *output.Report) (string, error) {
	var buf bytes.Buffer
	if err := output.Render(&buf, output.FormatYAML, report); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// loadConfigFor loads configuration for the directory containing path,
// falling back to defaults.
func loadConfigFor(path string) *config.Config {
	cfg, err := config.Load(filepath.Dir(path))
	if err != nil || cfg == nil {
		return config.DefaultConfig()
	}
	return cfg
}

// reorderOptions maps banner labels from config onto pipeline options.
func reorderOptions(cfg *config.Config) reorder.Options {
	opts := reorder.Options{}
	opts.Banners.TypeLabel = cfg.Banners.TypeLabel
	opts.Banners.FunctionLabel = cfg.Banners.FunctionLabel
	return opts
}
