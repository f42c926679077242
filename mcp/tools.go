package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all drace MCP tools with the server.
func RegisterTools(s *server.MCPServer) {
	// Tool 1: check_duplication - structural duplicate block detection
	s.AddTool(mcp.NewTool("check_duplication",
		mcp.WithDescription("Detect structurally duplicated statement blocks in Python code (rename-insensitive, reported as Z202)"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to Python code (file or directory) to analyze")),
		mcp.WithNumber("min_occurrences",
			mcp.Description("Minimum occurrences before a block is reported (default: 3)")),
		mcp.WithNumber("max_window",
			mcp.Description("Maximum statements per compared block (default: 6)")),
		mcp.WithBoolean("recursive",
			mcp.Description("Recursively analyze directories (default: true)")),
	), HandleCheckDuplication)

	// Tool 2: run_flakes - pyflakes wrapper
	s.AddTool(mcp.NewTool("run_flakes",
		mcp.WithDescription("Run an installed pyflakes-compatible checker over Python code and return its issues"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to Python code (file or directory) to check")),
		mcp.WithString("executable",
			mcp.Description("Checker binary to invoke (default: pyflakes)")),
	), HandleRunFlakes)
}
