package domain

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// StructuredMarker is the sentinel token for the "directory path + hashtags" form.
const StructuredMarker = "DIR.TAG:"

// DefaultReportDir is where reports are written, relative to the scanned root.
const DefaultReportDir = "debt-reports"

// Recommendation thresholds and the trend window used when the config leaves them unset.
const (
	DefaultHighThreshold   = 50
	DefaultMediumThreshold = 20
	DefaultTrendWindow     = 5
)

// DefaultIncludePattern matches common source files anywhere under the root.
const DefaultIncludePattern = "**/*.{go,js,jsx,ts,tsx,py,java,kt,rb,rs,c,h,cc,cpp,hpp,cs,php,swift,scala,sh,vue}"

// DefaultMarkers are always part of the active marker set.
var DefaultMarkers = []MarkerDefinition{
	{Token: "#debt:", Weight: 1},
	{Token: "#todo:", Weight: 1},
	{Token: "#fixme:", Weight: 1},
	{Token: "#hack:", Weight: 1},
	{Token: StructuredMarker, Weight: 1},
}

// implicitExcludes are never scanned, whatever the config says.
var implicitExcludes = []string{"node_modules", "dist", "build", ".git", "vendor"}

// MarkerDefinition is a literal substring recognized as a debt marker.
type MarkerDefinition struct {
	Token  string  `yaml:"marker" json:"marker"`
	Weight float64 `yaml:"weight,omitempty" json:"weight,omitempty"`
}

// EffectiveWeight returns the weight, defaulting to 1 when unset.
func (m MarkerDefinition) EffectiveWeight() float64 {
	if m.Weight <= 0 {
		return 1
	}
	return m.Weight
}

// Thresholds split a total debt count into priority buckets.
type Thresholds struct {
	High   int `yaml:"high,omitempty"   json:"high,omitempty"`
	Medium int `yaml:"medium,omitempty" json:"medium,omitempty"`
}

// Validate checks that the buckets are ordered once unset values take their
// defaults, so {high: 15} alone is rejected as it would shadow medium (20).
func (t Thresholds) Validate() error {
	if err := validation.ValidateStruct(&t,
		validation.Field(&t.High, validation.Min(0)),
		validation.Field(&t.Medium, validation.Min(0)),
	); err != nil {
		return err
	}
	eff := t.withDefaults()
	if eff.Medium >= eff.High {
		return fmt.Errorf("thresholds: medium (%d) must be below high (%d)", eff.Medium, eff.High)
	}
	return nil
}

func (t Thresholds) withDefaults() Thresholds {
	if t.High == 0 {
		t.High = DefaultHighThreshold
	}
	if t.Medium == 0 {
		t.Medium = DefaultMediumThreshold
	}
	return t
}

// ArchiveConfig configures the optional S3-compatible report archive.
type ArchiveConfig struct {
	Enabled   bool   `yaml:"enabled"    json:"enabled"`
	Endpoint  string `yaml:"endpoint"   json:"endpoint,omitempty"`
	Region    string `yaml:"region"     json:"region,omitempty"`
	Bucket    string `yaml:"bucket"     json:"bucket,omitempty"`
	Prefix    string `yaml:"prefix"     json:"prefix,omitempty"`
	AccessKey string `yaml:"access_key" json:"-"`
	SecretKey string `yaml:"secret_key" json:"-"`
	UseSSL    bool   `yaml:"use_ssl"    json:"use_ssl"`
}

// Validate requires connection details only when archiving is enabled.
func (a ArchiveConfig) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Endpoint, validation.When(a.Enabled, validation.Required)),
		validation.Field(&a.Bucket, validation.When(a.Enabled, validation.Required)),
	)
}

// ScanConfig holds everything a scan needs. It is passed explicitly; there is no
// process-wide config.
type ScanConfig struct {
	Markers         []MarkerDefinition `yaml:"markers"          json:"markers"`
	IncludePatterns []string           `yaml:"include_patterns" json:"include_patterns"`
	ExcludePatterns []string           `yaml:"exclude_patterns" json:"exclude_patterns"`
	ReportDir       string             `yaml:"report_dir"       json:"report_dir"`
	Thresholds      Thresholds         `yaml:"thresholds"       json:"thresholds"`
	TrendWindow     int                `yaml:"trend_window"     json:"trend_window"`
	Archive         ArchiveConfig      `yaml:"archive"          json:"archive"`
}

// Validate checks raw user input before defaults are applied.
func (c *ScanConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.TrendWindow, validation.Min(0)),
		validation.Field(&c.Thresholds),
		validation.Field(&c.Archive),
	); err != nil {
		return err
	}
	for i, m := range c.Markers {
		if strings.TrimSpace(m.Token) == "" {
			return fmt.Errorf("markers[%d]: marker must not be empty", i)
		}
		if m.Weight < 0 {
			return fmt.Errorf("markers[%d]: weight must not be negative (got %.2f)", i, m.Weight)
		}
	}
	for _, p := range append(append([]string{}, c.IncludePatterns...), c.ExcludePatterns...) {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("patterns must not be empty strings")
		}
	}
	return nil
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() ScanConfig {
	cfg := ScanConfig{}
	cfg.Normalize()
	return cfg
}

// Normalize fills defaults, unions the marker set with the built-ins and appends
// the implicit excludes. It is idempotent.
func (c *ScanConfig) Normalize() {
	c.Markers = MergeMarkers(c.Markers, DefaultMarkers)

	if len(c.IncludePatterns) == 0 {
		c.IncludePatterns = []string{DefaultIncludePattern}
	}
	if c.ReportDir == "" {
		c.ReportDir = DefaultReportDir
	}
	c.Thresholds = c.Thresholds.withDefaults()
	if c.TrendWindow == 0 {
		c.TrendWindow = DefaultTrendWindow
	}

	required := append(append([]string{}, implicitExcludes...), reportDirPattern(c.ReportDir))
	for _, ex := range required {
		if ex != "" && !containsString(c.ExcludePatterns, ex) {
			c.ExcludePatterns = append(c.ExcludePatterns, ex)
		}
	}
}

// MergeMarkers returns the union of the given sets, de-duplicated by token.
// The first definition of a token wins.
func MergeMarkers(sets ...[]MarkerDefinition) []MarkerDefinition {
	seen := make(map[string]bool)
	var out []MarkerDefinition
	for _, set := range sets {
		for _, m := range set {
			if seen[m.Token] {
				continue
			}
			seen[m.Token] = true
			out = append(out, m)
		}
	}
	return out
}

// MarkerWeight looks up the weight of token in the active set.
func (c ScanConfig) MarkerWeight(token string) float64 {
	for _, m := range c.Markers {
		if m.Token == token {
			return m.EffectiveWeight()
		}
	}
	return 1
}

// ReportPath resolves the report directory against the scanned root. An
// absolute report_dir is used as is.
func (c ScanConfig) ReportPath(rootDir string) string {
	dir := c.ReportDir
	if dir == "" {
		dir = DefaultReportDir
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(rootDir, dir)
}

// reportDirPattern turns the report dir into an exclude pattern relative to the root.
// Absolute report dirs outside the tree need no exclusion.
func reportDirPattern(dir string) string {
	dir = strings.TrimSuffix(path.Clean(strings.ReplaceAll(dir, "\\", "/")), "/")
	if dir == "." || strings.HasPrefix(dir, "/") || strings.HasPrefix(dir, "..") {
		return ""
	}
	return dir
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
