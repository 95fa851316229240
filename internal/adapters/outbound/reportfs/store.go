package reportfs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// fileTimeLayout is ISO-8601 in UTC with colons replaced, so names are valid on
// every filesystem and sort lexicographically by time.
const fileTimeLayout = "2006-01-02T15-04-05.000Z"

// maxCollisionRetries bounds the 1ms bumps when a name is taken.
const maxCollisionRetries = 1000

// Store is a directory-backed implementation of domain.ReportStore.
// It only ever creates new files.
type Store struct{}

// New creates a new filesystem report store.
func New() *Store {
	return &Store{}
}

// FileName returns the document name for kind at time at.
func FileName(kind string, at time.Time) string {
	return fmt.Sprintf("%s-%s.md", kind, at.UTC().Format(fileTimeLayout))
}

// Save writes content to dir under a timestamped name. If the name is taken the
// timestamp is advanced by a millisecond until a free name is found.
func (s *Store) Save(dir, kind string, at time.Time, content []byte) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving report dir: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", fmt.Errorf("creating report dir: %w", err)
	}

	for i := 0; i < maxCollisionRetries; i++ {
		path := filepath.Join(absDir, FileName(kind, at))
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, os.ErrExist) {
			at = at.Add(time.Millisecond)
			continue
		}
		if err != nil {
			return "", fmt.Errorf("creating report: %w", err)
		}
		if _, err := f.Write(content); err != nil {
			f.Close()
			return "", fmt.Errorf("writing report: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("writing report: %w", err)
		}
		return path, nil
	}
	return "", fmt.Errorf("no free report name in %s", absDir)
}

// List returns the documents of kind in dir, sorted by name. A missing
// directory yields no documents.
func (s *Store) List(dir, kind string) ([]string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	matches, err := filepath.Glob(filepath.Join(absDir, kind+"-*.md"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

// Latest returns the newest document of kind by name, or "" if there is none.
func (s *Store) Latest(dir, kind string) (string, error) {
	paths, err := s.List(dir, kind)
	if err != nil || len(paths) == 0 {
		return "", err
	}
	return paths[len(paths)-1], nil
}
