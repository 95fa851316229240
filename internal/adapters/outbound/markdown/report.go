// Package markdown renders scan and trend reports and reads back the summary
// lines the trend analyzer relies on.
package markdown

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/camelcase"

	"github.com/debtkraft/debtkraft/internal/domain"
)

// Summary line prefixes. ParseTrendPoint depends on them.
const (
	generatedOnPrefix = "Generated on: "
	totalPrefix       = "Total debt items found: "
)

// timeLayout is RFC 3339 with milliseconds.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

var (
	generatedOnRe = regexp.MustCompile(`(?m)^Generated on:\s*(\S+)\s*$`)
	totalRe       = regexp.MustCompile(`(?m)^Total debt items found:\s*(\d+)\s*$`)
)

// RenderReport renders a scan report. Links are relative to reportDir so they
// resolve when the document is opened in place.
func RenderReport(r *domain.ScanReport, cfg domain.ScanConfig, reportDir string) []byte {
	var b strings.Builder

	b.WriteString("# Technical Debt Report\n\n")
	b.WriteString(generatedOnPrefix + r.GeneratedAt.UTC().Format(timeLayout) + "\n")
	fmt.Fprintf(&b, "Scan ID: %s\n", r.ID)
	fmt.Fprintf(&b, "Root: %s\n", r.Root)
	if r.CommitHash != "" {
		fmt.Fprintf(&b, "Commit: %s\n", r.CommitHash)
	}
	b.WriteString("\n")

	groups := domain.GroupByMarker(r.Records)
	if len(groups) == 0 {
		b.WriteString("No technical debt markers found.\n\n")
	}
	for _, g := range groups {
		fmt.Fprintf(&b, "## `%s` (%d)\n\n", g.Marker, len(g.Records))
		b.WriteString("| File | Line | Description |\n")
		b.WriteString("|------|------|-------------|\n")
		for _, rec := range g.Records {
			fmt.Fprintf(&b, "| [%s:%d](%s#L%d) | %d | %s |\n",
				escapeCell(rec.RelPath), rec.Line,
				linkTarget(reportDir, rec), rec.Line,
				rec.Line,
				escapeCell(rec.Summary()))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Summary\n\n")
	b.WriteString(totalPrefix + strconv.Itoa(r.TotalCount) + "\n")
	fmt.Fprintf(&b, "Weighted debt score: %.2f\n\n", domain.WeightedScore(r.Records, cfg))
	if len(groups) > 0 {
		b.WriteString("| Marker | Count |\n")
		b.WriteString("|--------|-------|\n")
		for _, g := range groups {
			fmt.Fprintf(&b, "| `%s` | %d |\n", g.Marker, len(g.Records))
		}
		b.WriteString("\n")
	}

	if tags := domain.CountTags(r.Records); len(tags) > 0 {
		b.WriteString("## Tags\n\n")
		b.WriteString("| Tag | Label | Count |\n")
		b.WriteString("|-----|-------|-------|\n")
		for _, tc := range tags {
			fmt.Fprintf(&b, "| %s | %s | %d |\n", escapeCell(tc.Tag), escapeCell(TagLabel(tc.Tag)), tc.Count)
		}
		b.WriteString("\n")
	}

	priority := domain.ClassifyPriority(r.TotalCount, cfg.Thresholds)
	b.WriteString("## Recommendation\n\n")
	fmt.Fprintf(&b, "Priority: **%s**\n\n", strings.ToUpper(string(priority)))
	b.WriteString(priority.Recommendation() + "\n")

	return []byte(b.String())
}

// TagLabel turns "#NeedsRefactor" or "#needs-refactor" into readable words.
func TagLabel(tag string) string {
	name := strings.TrimPrefix(tag, "#")
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' })
	var words []string
	for _, p := range parts {
		words = append(words, camelcase.Split(p)...)
	}
	return strings.Join(words, " ")
}

// ParseTrendPoint reads the generation date and total from a rendered report.
// ok is false when either line is missing or unparseable.
func ParseTrendPoint(content []byte, source string) (domain.TrendPoint, bool) {
	dm := generatedOnRe.FindSubmatch(content)
	tm := totalRe.FindSubmatch(content)
	if dm == nil || tm == nil {
		return domain.TrendPoint{}, false
	}
	ts, err := time.Parse(time.RFC3339, string(dm[1]))
	if err != nil {
		return domain.TrendPoint{}, false
	}
	count, err := strconv.Atoi(string(tm[1]))
	if err != nil {
		return domain.TrendPoint{}, false
	}
	return domain.TrendPoint{
		Date:       string(dm[1]),
		Time:       ts,
		Count:      count,
		SourceFile: source,
	}, true
}

func linkTarget(reportDir string, rec domain.DebtRecord) string {
	target := rec.FilePath
	if reportDir != "" {
		if rel, err := filepath.Rel(reportDir, rec.FilePath); err == nil {
			target = rel
		}
	}
	segments := strings.Split(filepath.ToSlash(target), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// Renderer implements domain.ReportRenderer.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (Renderer) RenderReport(r *domain.ScanReport, cfg domain.ScanConfig, reportDir string) []byte {
	return RenderReport(r, cfg, reportDir)
}

func (Renderer) RenderTrend(tr domain.TrendReport, generatedAt time.Time) []byte {
	return RenderTrend(tr, generatedAt)
}
