package application

import (
	"context"
	"fmt"

	"github.com/debtkraft/debtkraft/internal/domain"
)

// ScanService runs the full pipeline: resolve config, walk and extract, write
// the report.
type ScanService struct {
	loader  domain.ConfigLoader
	scanner domain.TreeScanner
	reports *ReportService
}

func NewScanService(loader domain.ConfigLoader, scanner domain.TreeScanner, reports *ReportService) *ScanService {
	return &ScanService{loader: loader, scanner: scanner, reports: reports}
}

// Run scans rootDir and writes a report. The resolved config is returned so
// callers can apply thresholds or gates to the result.
func (s *ScanService) Run(ctx context.Context, rootDir string) (*domain.GeneratedReport, domain.ScanConfig, error) {
	cfg := s.loader.Load(rootDir)
	generated, err := s.Scan(ctx, rootDir, cfg)
	return generated, cfg, err
}

// Scan runs the pipeline with an already resolved config.
func (s *ScanService) Scan(ctx context.Context, rootDir string, cfg domain.ScanConfig) (*domain.GeneratedReport, error) {
	records, err := s.scanner.Scan(rootDir, cfg)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", rootDir, err)
	}
	return s.reports.Generate(ctx, rootDir, cfg, records)
}
