package application_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/debtkraft/debtkraft/internal/adapters/outbound/config"
	"github.com/debtkraft/debtkraft/internal/adapters/outbound/history"
	"github.com/debtkraft/debtkraft/internal/adapters/outbound/markdown"
	"github.com/debtkraft/debtkraft/internal/adapters/outbound/reportfs"
	"github.com/debtkraft/debtkraft/internal/adapters/outbound/scanner"
	"github.com/debtkraft/debtkraft/internal/application"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

// advance moves the clock forward and returns the new time.
func (c *fixedClock) advance(d time.Duration) time.Time {
	c.t = c.t.Add(d)
	return c.t
}

// stubGit is a repository when hash is set. lookups counts CommitHash calls.
type stubGit struct {
	hash    string
	lookups *int
}

func (g stubGit) IsGitRepo(string) bool { return g.hash != "" }

func (g stubGit) CommitHash(string) (string, error) {
	if g.lookups != nil {
		*g.lookups++
	}
	if g.hash == "" {
		return "", errors.New("not a repository")
	}
	return g.hash, nil
}

type stubArchive struct {
	keys []string
	err  error
}

func (a *stubArchive) Upload(_ context.Context, _ string, key string) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.keys = append(a.keys, key)
	return "http://archive.local/reports/" + key, nil
}

type recordingViewer struct{ viewed []string }

func (v *recordingViewer) View(path string) error {
	v.viewed = append(v.viewed, path)
	return nil
}

var epoch = time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// exampleTree lays out the two-file scenario: one #debt: on line 3 of a.go,
// one #todo: on line 1 and one #debt: on line 7 of b.ts.
func exampleTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "a.go", "package a\n\n// #debt: fix this\n")
	writeFile(t, root, "web/b.ts", "// #todo: later\n\n\n\n\n\n// #debt: also this\n")
	return root
}

func newScanService(clock application.Clock, opts ...application.ReportOption) *application.ScanService {
	opts = append([]application.ReportOption{application.WithClock(clock)}, opts...)
	reports := application.NewReportService(markdown.NewRenderer(), reportfs.New(), opts...)
	return application.NewScanService(config.New(nil), scanner.New(nil), reports)
}

func newTrendService(clock application.Clock) *application.TrendService {
	store := reportfs.New()
	return application.NewTrendService(history.New(store, nil), markdown.NewRenderer(), store, 0, clock, nil)
}
