package scanner

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/debtkraft/debtkraft/internal/domain"
)

// FileScanner implements domain.TreeScanner by walking the filesystem.
type FileScanner struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *FileScanner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FileScanner{logger: logger}
}

// Scan extracts one record per (line, marker) pair from every candidate file.
// Unreadable files are logged and skipped.
func (s *FileScanner) Scan(rootDir string, cfg domain.ScanConfig) ([]domain.DebtRecord, error) {
	files, err := s.Files(rootDir, cfg)
	if err != nil {
		return nil, err
	}

	absRoot, _ := filepath.Abs(rootDir)
	var records []domain.DebtRecord
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("scanner: skipping unreadable file",
				slog.String("path", path),
				slog.String("error", err.Error()))
			continue
		}
		relPath, _ := filepath.Rel(absRoot, path)
		records = append(records, domain.ExtractRecords(path, filepath.ToSlash(relPath), string(data), cfg.Markers)...)
	}

	s.logger.Debug("scanner: scan complete",
		slog.String("root", absRoot),
		slog.Int("files", len(files)),
		slog.Int("records", len(records)))
	return records, nil
}

// Files resolves the include patterns to absolute paths. Excluded directories
// are pruned during the walk. A file matched by several patterns appears once,
// at the position of the first pattern that matched it.
func (s *FileScanner) Files(rootDir string, cfg domain.ScanConfig) ([]string, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("reading root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", absRoot)
	}

	excludes := NewExcluder(cfg.ExcludePatterns)

	var candidates []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				return err
			}
			s.logger.Warn("scanner: skipping path",
				slog.String("path", path),
				slog.String("error", err.Error()))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, _ := filepath.Rel(absRoot, path)
		relPath = filepath.ToSlash(relPath)
		if relPath == "." {
			return nil
		}

		if d.IsDir() {
			if excludes.MatchDir(relPath) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || excludes.MatchFile(relPath) {
			return nil
		}
		candidates = append(candidates, relPath)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", absRoot, err)
	}

	seen := make(map[string]bool, len(candidates))
	var files []string
	for _, pattern := range cfg.IncludePatterns {
		pattern = normalizePattern(pattern)
		for _, rel := range candidates {
			if seen[rel] || !matchPattern(pattern, rel) {
				continue
			}
			seen[rel] = true
			files = append(files, filepath.Join(absRoot, filepath.FromSlash(rel)))
		}
	}
	return files, nil
}

// Excluder decides whether a relative path falls under an exclude pattern.
// A pattern without a slash ("node_modules", "*.min.js") matches a name at any
// depth. A pattern with a slash ("docs/**", "docs/*.md") is a doublestar glob
// rooted at the scan root.
type Excluder struct {
	names     map[string]bool
	nameGlobs []string
	globs     []string
}

func NewExcluder(patterns []string) *Excluder {
	e := &Excluder{names: make(map[string]bool)}
	for _, p := range patterns {
		p = strings.TrimSuffix(normalizePattern(p), "/")
		if p == "" {
			continue
		}
		if !strings.Contains(p, "/") {
			if strings.ContainsAny(p, "*?[{") {
				e.nameGlobs = append(e.nameGlobs, p)
			} else {
				e.names[p] = true
			}
			continue
		}
		e.globs = append(e.globs, p)
		// "dir/**" also covers dir itself so the walk prunes it.
		if dir := strings.TrimSuffix(p, "/**"); dir != p && dir != "" {
			e.globs = append(e.globs, dir)
		}
	}
	return e
}

// MatchDir reports whether the directory at relPath should be pruned.
func (e *Excluder) MatchDir(relPath string) bool {
	return e.match(relPath)
}

// MatchFile reports whether a file is excluded by name or glob.
func (e *Excluder) MatchFile(relPath string) bool {
	return e.match(relPath)
}

func (e *Excluder) match(relPath string) bool {
	name := lastSegment(relPath)
	if e.names[name] {
		return true
	}
	for _, g := range e.nameGlobs {
		if matchPattern(g, name) {
			return true
		}
	}
	for _, g := range e.globs {
		if matchPattern(g, relPath) {
			return true
		}
	}
	return false
}

func matchPattern(pattern, relPath string) bool {
	ok, err := doublestar.Match(pattern, relPath)
	return err == nil && ok
}

func normalizePattern(p string) string {
	p = filepath.ToSlash(strings.TrimSpace(p))
	return strings.TrimPrefix(p, "./")
}

func lastSegment(relPath string) string {
	if i := strings.LastIndex(relPath, "/"); i >= 0 {
		return relPath[i+1:]
	}
	return relPath
}

// Tracked reports whether a file at relPath would be part of a scan: no
// ancestor directory or the file itself is excluded and an include pattern
// matches it.
func Tracked(cfg domain.ScanConfig, relPath string) bool {
	relPath = normalizePattern(relPath)
	excludes := NewExcluder(cfg.ExcludePatterns)
	segments := strings.Split(relPath, "/")
	for i := 1; i < len(segments); i++ {
		if excludes.MatchDir(strings.Join(segments[:i], "/")) {
			return false
		}
	}
	if excludes.MatchFile(relPath) {
		return false
	}
	for _, pattern := range cfg.IncludePatterns {
		if matchPattern(normalizePattern(pattern), relPath) {
			return true
		}
	}
	return false
}
