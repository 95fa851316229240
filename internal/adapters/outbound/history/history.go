package history

import (
	"log/slog"
	"os"

	"github.com/debtkraft/debtkraft/internal/adapters/outbound/markdown"
	"github.com/debtkraft/debtkraft/internal/domain"
)

// FileHistory implements domain.ReportHistory by reading persisted scan reports.
type FileHistory struct {
	store  domain.ReportStore
	logger *slog.Logger
}

func New(store domain.ReportStore, logger *slog.Logger) *FileHistory {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FileHistory{store: store, logger: logger}
}

// Points returns a trend point for every scan report in reportDir that carries
// a parseable date and total. Other documents are skipped.
func (h *FileHistory) Points(reportDir string) ([]domain.TrendPoint, error) {
	paths, err := h.store.List(reportDir, domain.ReportKindScan)
	if err != nil {
		return nil, err
	}

	var points []domain.TrendPoint
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			h.logger.Warn("history: unreadable report", slog.String("path", p), slog.String("error", err.Error()))
			continue
		}
		point, ok := markdown.ParseTrendPoint(data, p)
		if !ok {
			h.logger.Debug("history: report without date or total", slog.String("path", p))
			continue
		}
		points = append(points, point)
	}
	return points, nil
}
