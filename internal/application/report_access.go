package application

import (
	"errors"
	"fmt"
	"os"

	"github.com/debtkraft/debtkraft/internal/domain"
)

// ReportAccess hands persisted reports to a viewer.
type ReportAccess struct {
	store  domain.ReportStore
	viewer domain.ReportViewer
}

func NewReportAccess(store domain.ReportStore, viewer domain.ReportViewer) *ReportAccess {
	return &ReportAccess{store: store, viewer: viewer}
}

// Open shows the document at path. A path that does not exist at call time
// yields domain.ErrReportNotFound.
func (a *ReportAccess) Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, domain.ErrReportNotFound)
		}
		return fmt.Errorf("checking report: %w", err)
	}
	return a.viewer.View(path)
}

// Latest returns the newest document of kind in reportDir.
func (a *ReportAccess) Latest(reportDir, kind string) (string, error) {
	paths, err := a.store.List(reportDir, kind)
	if err != nil {
		return "", fmt.Errorf("listing reports: %w", err)
	}
	if len(paths) == 0 {
		return "", fmt.Errorf("no %s documents in %s: %w", kind, reportDir, domain.ErrReportNotFound)
	}
	return paths[len(paths)-1], nil
}
