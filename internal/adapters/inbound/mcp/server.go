package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
)

// NewDebtkraftMCPServer creates an MCP server with the debtkraft tools and
// resources registered. projectPath is the root of the tree to scan.
func NewDebtkraftMCPServer(projectPath string, logger *slog.Logger) *server.MCPServer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := server.NewMCPServer(
		"debtkraft",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath, logger)
	registerResources(s, projectPath, logger)

	return s
}
