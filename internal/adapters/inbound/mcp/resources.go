package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/debtkraft/debtkraft/internal/adapters/outbound/config"
	"github.com/debtkraft/debtkraft/internal/adapters/outbound/reportfs"
	"github.com/debtkraft/debtkraft/internal/domain"
)

const (
	latestReportURI = "debtkraft://reports/latest"
	latestTrendURI  = "debtkraft://trends/latest"
)

// registerResources exposes the newest persisted documents.
func registerResources(s *server.MCPServer, projectPath string, logger *slog.Logger) {
	s.AddResource(
		mcplib.NewResource(
			latestReportURI,
			"Latest Debt Report",
			mcplib.WithResourceDescription("The newest scan report of the project"),
			mcplib.WithMIMEType("text/markdown"),
		),
		handleLatest(projectPath, domain.ReportKindScan, latestReportURI, logger),
	)

	s.AddResource(
		mcplib.NewResource(
			latestTrendURI,
			"Latest Trend Report",
			mcplib.WithResourceDescription("The newest trend report of the project"),
			mcplib.WithMIMEType("text/markdown"),
		),
		handleLatest(projectPath, domain.ReportKindTrend, latestTrendURI, logger),
	)
}

func handleLatest(projectPath, kind, uri string, logger *slog.Logger) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg := config.New(logger).Load(projectPath)
		path, err := reportfs.New().Latest(cfg.ReportPath(projectPath), kind)
		if err != nil {
			return nil, fmt.Errorf("listing reports: %w", err)
		}
		if path == "" {
			return nil, fmt.Errorf("no %s documents yet: %w", kind, domain.ErrReportNotFound)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      uri,
				MIMEType: "text/markdown",
				Text:     string(data),
			},
		}, nil
	}
}
