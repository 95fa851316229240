package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/debtkraft/debtkraft/internal/adapters/outbound/archive"
	"github.com/debtkraft/debtkraft/internal/adapters/outbound/config"
	"github.com/debtkraft/debtkraft/internal/adapters/outbound/gitinfo"
	"github.com/debtkraft/debtkraft/internal/adapters/outbound/history"
	"github.com/debtkraft/debtkraft/internal/adapters/outbound/markdown"
	"github.com/debtkraft/debtkraft/internal/adapters/outbound/reportfs"
	"github.com/debtkraft/debtkraft/internal/adapters/outbound/scanner"
	"github.com/debtkraft/debtkraft/internal/application"
	"github.com/debtkraft/debtkraft/internal/domain"
)

// registerTools registers all debtkraft MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string, logger *slog.Logger) {
	// 1. debtkraft_scan
	s.AddTool(
		mcplib.NewTool("debtkraft_scan",
			mcplib.WithDescription("Scans the project for debt markers, writes a report and returns the result as JSON"),
		),
		handleScan(projectPath, logger),
	)

	// 2. debtkraft_trend
	s.AddTool(
		mcplib.NewTool("debtkraft_trend",
			mcplib.WithDescription("Compares the newest scan reports, writes a trend report and returns the series as JSON"),
		),
		handleTrend(projectPath, logger),
	)

	// 3. debtkraft_validate
	s.AddTool(
		mcplib.NewTool("debtkraft_validate",
			mcplib.WithDescription("Checks the Related Files section of debt documents against the filesystem"),
			mcplib.WithString("documents",
				mcplib.Required(),
				mcplib.Description("Comma-separated document paths relative to the project root"),
			),
		),
		handleValidate(projectPath),
	)

	// 4. debtkraft_config
	s.AddTool(
		mcplib.NewTool("debtkraft_config",
			mcplib.WithDescription("Returns the effective scan configuration and the file it was loaded from"),
		),
		handleConfig(projectPath, logger),
	)
}

// resolvedConfig is the payload of debtkraft_config.
type resolvedConfig struct {
	Source string            `json:"source"`
	Config domain.ScanConfig `json:"config"`
}

func handleScan(projectPath string, logger *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg := config.New(logger).Load(projectPath)

		opts := []application.ReportOption{
			application.WithGitInfo(gitinfo.New()),
			application.WithLogger(logger),
		}
		if cfg.Archive.Enabled {
			if sink, err := archive.New(ctx, cfg.Archive); err != nil {
				logger.Warn("archive: disabled", slog.String("error", err.Error()))
			} else {
				opts = append(opts, application.WithArchive(sink))
			}
		}

		reports := application.NewReportService(markdown.NewRenderer(), reportfs.New(), opts...)
		svc := application.NewScanService(config.New(logger), scanner.New(logger), reports)

		generated, err := svc.Scan(ctx, projectPath, cfg)
		if err != nil {
			return errorResult(fmt.Sprintf("scan failed: %v", err)), nil
		}
		return jsonResult(generated)
	}
}

func handleTrend(projectPath string, logger *slog.Logger) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg := config.New(logger).Load(projectPath)
		store := reportfs.New()
		svc := application.NewTrendService(history.New(store, logger), markdown.NewRenderer(), store,
			cfg.TrendWindow, application.SystemClock{}, logger)

		generated, err := svc.Generate(cfg.ReportPath(projectPath))
		if errors.Is(err, domain.ErrNoHistory) {
			return errorResult("no scan reports yet; run debtkraft_scan first"), nil
		}
		if err != nil {
			return errorResult(fmt.Sprintf("trend failed: %v", err)), nil
		}
		return jsonResult(generated)
	}
}

func handleValidate(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		docs, err := request.RequireString("documents")
		if err != nil {
			return errorResult("documents parameter is required"), nil
		}

		svc := application.NewValidateService()
		var results []domain.ValidationResult
		for _, doc := range strings.Split(docs, ",") {
			doc = strings.TrimSpace(doc)
			if doc == "" {
				continue
			}
			if !filepath.IsAbs(doc) {
				doc = filepath.Join(projectPath, doc)
			}
			results = append(results, svc.ValidateDocument(doc))
		}
		if len(results) == 0 {
			return errorResult("no documents given"), nil
		}
		return jsonResult(results)
	}
}

func handleConfig(projectPath string, logger *slog.Logger) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, source := config.New(logger).Resolve(projectPath)
		if source == "" {
			source = "defaults"
		}
		return jsonResult(resolvedConfig{Source: source, Config: cfg})
	}
}

// jsonResult marshals v and wraps it in a tool result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
