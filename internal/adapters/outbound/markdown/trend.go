package markdown

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/debtkraft/debtkraft/internal/domain"
)

// RenderTrend renders a trend report: one row per point, the overall change,
// and a verdict with advice.
func RenderTrend(tr domain.TrendReport, generatedAt time.Time) []byte {
	var b strings.Builder

	b.WriteString("# Technical Debt Trend Report\n\n")
	b.WriteString(generatedOnPrefix + generatedAt.UTC().Format(timeLayout) + "\n")
	fmt.Fprintf(&b, "Reports analyzed: %d\n\n", len(tr.Points))

	b.WriteString("| Date | Total | Change | Report |\n")
	b.WriteString("|------|-------|--------|--------|\n")
	for i, p := range tr.Points {
		change := "-"
		if i > 0 {
			change = signed(tr.Step(i))
		}
		fmt.Fprintf(&b, "| %s | %d | %s | %s |\n", p.Date, p.Count, change, filepath.Base(p.SourceFile))
	}
	b.WriteString("\n")

	if len(tr.Points) > 0 {
		fmt.Fprintf(&b, "Overall change: %s (%d → %d)\n", signed(tr.Delta), tr.Points[0].Count, tr.Latest().Count)
	}
	fmt.Fprintf(&b, "Trend: %s\n\n", tr.Direction)

	headline, advice := tr.Direction.Verdict()
	b.WriteString("## Analysis\n\n")
	fmt.Fprintf(&b, "**%s**\n\n", headline)
	for _, a := range advice {
		fmt.Fprintf(&b, "- %s\n", a)
	}

	return []byte(b.String())
}

func signed(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}
