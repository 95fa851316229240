package application

import (
	"fmt"
	"log/slog"

	"github.com/debtkraft/debtkraft/internal/domain"
)

// TrendService compares persisted scan reports and writes a trend report.
type TrendService struct {
	history  domain.ReportHistory
	renderer domain.ReportRenderer
	store    domain.ReportStore
	clock    Clock
	window   int
	logger   *slog.Logger
}

// NewTrendService builds a trend analyzer over the newest window reports. A
// non-positive window falls back to the default.
func NewTrendService(history domain.ReportHistory, renderer domain.ReportRenderer, store domain.ReportStore, window int, clock Clock, logger *slog.Logger) *TrendService {
	if window <= 0 {
		window = domain.DefaultTrendWindow
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TrendService{
		history: history, renderer: renderer, store: store,
		clock: clock, window: window, logger: logger,
	}
}

// Generate reads the scan reports in reportDir and writes a trend report next
// to them. It returns domain.ErrNoHistory when no report can be parsed.
func (s *TrendService) Generate(reportDir string) (*domain.GeneratedTrend, error) {
	points, err := s.history.Points(reportDir)
	if err != nil {
		return nil, fmt.Errorf("reading report history: %w", err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%s: %w", reportDir, domain.ErrNoHistory)
	}

	trend := domain.BuildTrend(points, s.window)

	now := s.clock.Now().UTC()
	path, err := s.store.Save(reportDir, domain.ReportKindTrend, now, s.renderer.RenderTrend(trend, now))
	if err != nil {
		return nil, fmt.Errorf("writing trend report: %w", err)
	}

	s.logger.Info("trend: written",
		slog.String("path", path),
		slog.Int("points", len(trend.Points)),
		slog.Int("delta", trend.Delta),
		slog.String("direction", string(trend.Direction)))

	return &domain.GeneratedTrend{Path: path, Trend: trend}, nil
}
