package application

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/debtkraft/debtkraft/internal/domain"
	"github.com/google/uuid"
)

// ReportService renders scan results, persists them and optionally archives
// the written document.
type ReportService struct {
	renderer domain.ReportRenderer
	store    domain.ReportStore
	git      domain.GitInfo
	archive  domain.ArchiveSink
	clock    Clock
	logger   *slog.Logger
}

// ReportOption customises a ReportService.
type ReportOption func(*ReportService)

// WithGitInfo records the HEAD commit of the scanned root in each report.
func WithGitInfo(g domain.GitInfo) ReportOption {
	return func(s *ReportService) { s.git = g }
}

// WithArchive uploads every written report to sink.
func WithArchive(sink domain.ArchiveSink) ReportOption {
	return func(s *ReportService) { s.archive = sink }
}

// WithClock overrides the report timestamp source.
func WithClock(c Clock) ReportOption {
	return func(s *ReportService) { s.clock = c }
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) ReportOption {
	return func(s *ReportService) { s.logger = l }
}

func NewReportService(renderer domain.ReportRenderer, store domain.ReportStore, opts ...ReportOption) *ReportService {
	s := &ReportService{
		renderer: renderer,
		store:    store,
		clock:    SystemClock{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate writes a debt report for records found under rootDir. The returned
// total always equals len(records). A report directory that cannot be created
// fails the call; an archive failure only logs.
func (s *ReportService) Generate(ctx context.Context, rootDir string, cfg domain.ScanConfig, records []domain.DebtRecord) (*domain.GeneratedReport, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}

	now := s.clock.Now().UTC()
	report := &domain.ScanReport{
		ID:          uuid.NewString(),
		Root:        absRoot,
		GeneratedAt: now,
		Records:     records,
		TotalCount:  len(records),
	}
	if s.git != nil && s.git.IsGitRepo(absRoot) {
		if hash, err := s.git.CommitHash(absRoot); err == nil {
			report.CommitHash = hash
		} else {
			s.logger.Debug("report: no commit hash", slog.String("error", err.Error()))
		}
	}

	reportDir := cfg.ReportPath(absRoot)
	content := s.renderer.RenderReport(report, cfg, reportDir)
	path, err := s.store.Save(reportDir, domain.ReportKindScan, now, content)
	if err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}

	s.logger.Info("report: written",
		slog.String("path", path),
		slog.String("id", report.ID),
		slog.Int("total", report.TotalCount))

	out := &domain.GeneratedReport{
		Path:       path,
		TotalCount: report.TotalCount,
		Priority:   domain.ClassifyPriority(report.TotalCount, cfg.Thresholds),
		Report:     report,
	}

	if s.archive != nil {
		url, err := s.archive.Upload(ctx, path, filepath.Base(path))
		if err != nil {
			s.logger.Warn("report: archive upload failed",
				slog.String("path", path),
				slog.String("error", err.Error()))
		} else {
			out.ArchiveURL = url
			s.logger.Info("report: archived", slog.String("url", url))
		}
	}
	return out, nil
}
