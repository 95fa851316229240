package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/debtkraft/debtkraft/internal/adapters/outbound/archive"
	"github.com/debtkraft/debtkraft/internal/adapters/outbound/config"
	"github.com/debtkraft/debtkraft/internal/adapters/outbound/gitinfo"
	"github.com/debtkraft/debtkraft/internal/adapters/outbound/history"
	"github.com/debtkraft/debtkraft/internal/adapters/outbound/markdown"
	"github.com/debtkraft/debtkraft/internal/adapters/outbound/reportfs"
	"github.com/debtkraft/debtkraft/internal/adapters/outbound/scanner"
	"github.com/debtkraft/debtkraft/internal/application"
	"github.com/debtkraft/debtkraft/internal/domain"
	"github.com/spf13/cobra"
)

func resolveRoot(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return absPath, nil
}

func loadConfig(root string, logger *slog.Logger) domain.ScanConfig {
	return config.New(logger).Load(root)
}

// newScanService wires the scan pipeline. When archiving is requested the
// sink is connected up front; a connection failure only disables archiving.
func newScanService(ctx context.Context, cfg domain.ScanConfig, forceArchive bool, logger *slog.Logger) (*application.ScanService, error) {
	opts := []application.ReportOption{
		application.WithGitInfo(gitinfo.New()),
		application.WithLogger(logger),
	}

	if forceArchive || cfg.Archive.Enabled {
		archiveCfg := cfg.Archive
		archiveCfg.Enabled = true
		if err := archiveCfg.Validate(); err != nil {
			return nil, fmt.Errorf("archive config: %w", err)
		}
		sink, err := archive.New(ctx, archiveCfg)
		if err != nil {
			logger.Warn("archive: disabled", slog.String("error", err.Error()))
		} else {
			opts = append(opts, application.WithArchive(sink))
		}
	}

	reports := application.NewReportService(markdown.NewRenderer(), reportfs.New(), opts...)
	return application.NewScanService(config.New(logger), scanner.New(logger), reports), nil
}

func newTrendService(cfg domain.ScanConfig, logger *slog.Logger) *application.TrendService {
	store := reportfs.New()
	return application.NewTrendService(
		history.New(store, logger),
		markdown.NewRenderer(),
		store,
		cfg.TrendWindow,
		application.SystemClock{},
		logger,
	)
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
