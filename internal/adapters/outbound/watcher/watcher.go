package watcher

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/debtkraft/debtkraft/internal/adapters/outbound/scanner"
	"github.com/debtkraft/debtkraft/internal/domain"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the tree must be quiet before a change fires.
const DefaultDebounce = 500 * time.Millisecond

// ChangeFunc receives the relative paths changed since the previous call.
// It runs on the watcher goroutine, so two calls never overlap.
type ChangeFunc func(changed []string)

// Watch observes every non-excluded directory under root and calls onChange
// once the tree has been quiet for debounce after a tracked file was created,
// written, removed or renamed. It returns when ctx is cancelled.
func Watch(ctx context.Context, root string, cfg domain.ScanConfig, debounce time.Duration, logger *slog.Logger, onChange ChangeFunc) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	excludes := scanner.NewExcluder(cfg.ExcludePatterns)
	if err := addDirsRecursive(w, absRoot, absRoot, excludes); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", absRoot))

	var timer *time.Timer
	var fire <-chan time.Time
	pending := make(map[string]bool)

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			fire = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-fire:
			timer = nil
			fire = nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			clear(pending)
			onChange(changed)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			rel, relErr := filepath.Rel(absRoot, ev.Name)
			if relErr != nil {
				continue
			}
			rel = filepath.ToSlash(rel)

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if excludes.MatchDir(rel) {
						continue
					}
					if addErr := addDirsRecursive(w, absRoot, ev.Name, excludes); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", rel),
							slog.String("error", addErr.Error()))
					}
					continue
				}
			}

			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !scanner.Tracked(cfg, rel) {
				continue
			}
			logger.Debug("watcher: change", slog.String("path", rel), slog.String("op", ev.Op.String()))
			pending[rel] = true
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// addDirsRecursive adds dir and its non-excluded subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root, dir string, excludes *scanner.Excluder) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root {
			rel, _ := filepath.Rel(root, path)
			if excludes.MatchDir(filepath.ToSlash(rel)) {
				return filepath.SkipDir
			}
		}
		return w.Add(path)
	})
}
