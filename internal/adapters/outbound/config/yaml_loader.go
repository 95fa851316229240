package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/debtkraft/debtkraft/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the config file written by `debtkraft init`.
const FileName = ".debtkraft.yaml"

// Candidates are the config locations under a root, most specific first.
var Candidates = []string{
	filepath.Join(".debtkraft", "config.yaml"),
	FileName,
	".debtkraft.yml",
	"debtkraft.yaml",
}

// YAMLLoader implements domain.ConfigLoader.
type YAMLLoader struct {
	logger *slog.Logger
}

// New creates a YAMLLoader.
func New(logger *slog.Logger) *YAMLLoader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &YAMLLoader{logger: logger}
}

// Load returns the config from the first candidate that exists and parses.
// Broken candidates are logged and skipped; with none left the built-in
// defaults are returned. Nothing is written to disk.
func (l *YAMLLoader) Load(rootDir string) domain.ScanConfig {
	cfg, _ := l.Resolve(rootDir)
	return cfg
}

// Resolve is Load that also reports which file won ("" for defaults).
func (l *YAMLLoader) Resolve(rootDir string) (domain.ScanConfig, string) {
	for _, name := range Candidates {
		path := filepath.Join(rootDir, name)
		cfg, err := parseFile(path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				l.logger.Warn("config: ignoring candidate",
					slog.String("path", path),
					slog.String("error", err.Error()))
			}
			continue
		}
		l.logger.Debug("config: loaded", slog.String("path", path))
		return cfg, path
	}
	l.logger.Debug("config: using defaults", slog.String("root", rootDir))
	return domain.DefaultConfig(), ""
}

func parseFile(path string) (domain.ScanConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ScanConfig{}, err
	}

	var cfg domain.ScanConfig
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.ScanConfig{}, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
		}
	}
	expandArchive(&cfg.Archive)

	// Validate before normalizing so typos in the raw input are caught.
	if err := cfg.Validate(); err != nil {
		return domain.ScanConfig{}, fmt.Errorf("invalid %s: %w", filepath.Base(path), err)
	}

	cfg.Normalize()
	return cfg, nil
}

// expandArchive substitutes environment variables in the archive connection
// settings only. Markers and patterns may legitimately contain '$'.
func expandArchive(a *domain.ArchiveConfig) {
	for _, f := range []*string{&a.Endpoint, &a.Region, &a.Bucket, &a.Prefix, &a.AccessKey, &a.SecretKey} {
		*f = os.ExpandEnv(*f)
	}
}

// Marshal renders cfg as YAML for `init`.
func Marshal(cfg domain.ScanConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Starter is the config `init` writes: the built-in defaults without the
// implicit excludes, which are always added at load time.
func Starter() domain.ScanConfig {
	return domain.ScanConfig{
		Markers:         append([]domain.MarkerDefinition(nil), domain.DefaultMarkers...),
		IncludePatterns: []string{domain.DefaultIncludePattern},
		ExcludePatterns: []string{},
		ReportDir:       domain.DefaultReportDir,
		Thresholds: domain.Thresholds{
			High:   domain.DefaultHighThreshold,
			Medium: domain.DefaultMediumThreshold,
		},
		TrendWindow: domain.DefaultTrendWindow,
	}
}
