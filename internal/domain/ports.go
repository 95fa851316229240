package domain

import (
	"context"
	"time"
)

// Report file name prefixes.
const (
	ReportKindScan  = "debt-report"
	ReportKindTrend = "debt-trend"
)

// ConfigLoader resolves the scan configuration for a root directory.
// It never fails: a usable config is always returned.
type ConfigLoader interface {
	Load(rootDir string) ScanConfig
}

// TreeScanner walks a root and extracts debt records.
type TreeScanner interface {
	Scan(rootDir string, cfg ScanConfig) ([]DebtRecord, error)
}

// ReportStore persists rendered documents under timestamped names.
type ReportStore interface {
	// Save writes content as <kind>-<timestamp>.md in dir, creating dir if needed,
	// and returns the absolute path.
	Save(dir, kind string, at time.Time, content []byte) (string, error)
	// List returns absolute paths of all documents of kind in dir, oldest name first.
	List(dir, kind string) ([]string, error)
}

// ReportRenderer turns reports into persisted documents.
type ReportRenderer interface {
	RenderReport(r *ScanReport, cfg ScanConfig, reportDir string) []byte
	RenderTrend(tr TrendReport, generatedAt time.Time) []byte
}

// ReportHistory extracts trend points from persisted scan reports.
type ReportHistory interface {
	Points(reportDir string) ([]TrendPoint, error)
}

// ArchiveSink receives a copy of each written report. key is the report's
// file name; the sink may place it under its own prefix.
type ArchiveSink interface {
	Upload(ctx context.Context, localPath, key string) (string, error)
}

// GitInfo provides version-control metadata for the scanned root.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
}

// ReportViewer displays a report document.
type ReportViewer interface {
	View(path string) error
}
