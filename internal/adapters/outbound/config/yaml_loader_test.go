package config_test

import (
	"os"
	"path/filepath"
	"testing"

	appconfig "github.com/debtkraft/debtkraft/internal/adapters/outbound/config"
	"github.com/debtkraft/debtkraft/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, src := appconfig.New(nil).Resolve(dir)
	assert.Equal(t, domain.DefaultConfig(), cfg)
	assert.Empty(t, src)
}

func TestYAMLLoader_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".debtkraft.yaml", `
markers:
  - marker: "XXX:"
    weight: 2
include_patterns:
  - "src/**/*.go"
exclude_patterns:
  - generated
report_dir: reports/debt
thresholds:
  high: 30
  medium: 10
trend_window: 3
`)

	cfg := appconfig.New(nil).Load(dir)

	assert.Equal(t, "XXX:", cfg.Markers[0].Token)
	assert.InDelta(t, 2.0, cfg.Markers[0].Weight, 0.001)
	assert.Len(t, cfg.Markers, 6, "configured marker plus five defaults")
	assert.Equal(t, []string{"src/**/*.go"}, cfg.IncludePatterns)
	assert.Equal(t, "generated", cfg.ExcludePatterns[0])
	assert.Contains(t, cfg.ExcludePatterns, "reports/debt")
	assert.Contains(t, cfg.ExcludePatterns, "node_modules")
	assert.Equal(t, 30, cfg.Thresholds.High)
	assert.Equal(t, 10, cfg.Thresholds.Medium)
	assert.Equal(t, 3, cfg.TrendWindow)
}

func TestYAMLLoader_MostSpecificCandidateWins(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".debtkraft/config.yaml", "report_dir: first\n")
	writeConfig(t, dir, ".debtkraft.yaml", "report_dir: second\n")

	cfg, src := appconfig.New(nil).Resolve(dir)
	assert.Equal(t, "first", cfg.ReportDir)
	assert.Equal(t, filepath.Join(dir, ".debtkraft", "config.yaml"), src)
}

func TestYAMLLoader_InvalidYAMLFallsBackToNextCandidate(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".debtkraft/config.yaml", `{{{invalid yaml`)
	writeConfig(t, dir, "debtkraft.yaml", "report_dir: fallback\n")

	cfg, src := appconfig.New(nil).Resolve(dir)
	assert.Equal(t, "fallback", cfg.ReportDir)
	assert.Equal(t, filepath.Join(dir, "debtkraft.yaml"), src)
}

func TestYAMLLoader_InvalidValuesFallBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".debtkraft.yaml", "thresholds:\n  high: 5\n  medium: 10\n")

	cfg, src := appconfig.New(nil).Resolve(dir)
	assert.Empty(t, src)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_NoMergeAcrossCandidates(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".debtkraft.yaml", "report_dir: mine\n")
	writeConfig(t, dir, "debtkraft.yaml", "trend_window: 9\n")

	cfg := appconfig.New(nil).Load(dir)
	assert.Equal(t, "mine", cfg.ReportDir)
	assert.Equal(t, domain.DefaultTrendWindow, cfg.TrendWindow)
}

func TestYAMLLoader_EmptyFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".debtkraft.yml", "")

	cfg, src := appconfig.New(nil).Resolve(dir)
	assert.Equal(t, domain.DefaultConfig(), cfg)
	assert.NotEmpty(t, src)
}

func TestYAMLLoader_ExpandsEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DEBTKRAFT_TEST_BUCKET", "debt-archive")
	writeConfig(t, dir, ".debtkraft.yaml", `
archive:
  enabled: true
  endpoint: localhost:9000
  bucket: ${DEBTKRAFT_TEST_BUCKET}
`)

	cfg := appconfig.New(nil).Load(dir)
	assert.True(t, cfg.Archive.Enabled)
	assert.Equal(t, "debt-archive", cfg.Archive.Bucket)
}

func TestYAMLLoader_DollarInMarkersAndPatternsKeptLiteral(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DEBTKRAFT_TEST_SECRET", "s3cr3t")
	writeConfig(t, dir, ".debtkraft.yaml", `
markers:
  - marker: "$debt:"
include_patterns:
  - "**/$generated/*.go"
archive:
  secret_key: ${DEBTKRAFT_TEST_SECRET}
`)

	cfg, src := appconfig.New(nil).Resolve(dir)
	require.NotEmpty(t, src)
	assert.Equal(t, "$debt:", cfg.Markers[0].Token)
	assert.Equal(t, []string{"**/$generated/*.go"}, cfg.IncludePatterns)
	for _, m := range cfg.Markers {
		assert.NotEqual(t, ":", m.Token)
	}
	assert.Equal(t, "s3cr3t", cfg.Archive.SecretKey)
}

func TestYAMLLoader_HighThresholdBelowDefaultMediumRejected(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".debtkraft.yaml", "thresholds:\n  high: 15\n")

	cfg, src := appconfig.New(nil).Resolve(dir)
	assert.Empty(t, src)
	assert.Equal(t, domain.DefaultConfig().Thresholds, cfg.Thresholds)
}

func TestYAMLLoader_DoesNotWriteDefaults(t *testing.T) {
	dir := t.TempDir()
	appconfig.New(nil).Load(dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMarshal_RoundTrips(t *testing.T) {
	data, err := appconfig.Marshal(domain.DefaultConfig())
	require.NoError(t, err)
	assert.Contains(t, string(data), "include_patterns:")

	var back domain.ScanConfig
	require.NoError(t, yaml.Unmarshal(data, &back))
	back.Normalize()
	assert.Equal(t, domain.DefaultConfig().Markers, back.Markers)
}

func TestStarter_LoadsBackAsDefaults(t *testing.T) {
	dir := t.TempDir()
	data, err := appconfig.Marshal(appconfig.Starter())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "node_modules")
	writeConfig(t, dir, appconfig.FileName, string(data))

	cfg, source := appconfig.New(nil).Resolve(dir)
	assert.Equal(t, filepath.Join(dir, appconfig.FileName), source)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}
