package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/debtkraft/debtkraft/internal/domain"
)

// RenderTrend formats a trend series with per-step arrows and the verdict.
func RenderTrend(g *domain.GeneratedTrend) string {
	tr := g.Trend
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Debt Trend") + "  " +
		dimStyle.Render(fmt.Sprintf("%d reports", len(tr.Points))) + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, p := range tr.Points {
		date := p.Date
		if !p.Time.IsZero() {
			date = p.Time.UTC().Format("2006-01-02 15:04")
		}
		line := fmt.Sprintf("  %s  %s", dimStyle.Render(date), titleStyle.Render(fmt.Sprintf("%4d", p.Count)))

		if i > 0 {
			diff := tr.Step(i)
			switch {
			case diff > 0:
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d", diff))
			case diff < 0:
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			}
		}
		b.WriteString(line + "\n")
	}

	headline, advice := tr.Direction.Verdict()
	b.WriteString("\n  " + lipgloss.NewStyle().Bold(true).Foreground(directionColor(tr.Direction)).Render(headline) + "\n")
	for _, a := range advice {
		fmt.Fprintf(&b, "    %s %s\n", faintStyle.Render("·"), dimStyle.Render(a))
	}
	if g.Path != "" {
		fmt.Fprintf(&b, "\n  %s %s\n", dimStyle.Render("report"), fileStyle.Render(shortenPath(g.Path)))
	}
	return b.String()
}

func directionColor(d domain.TrendDirection) lipgloss.Color {
	switch d {
	case domain.TrendIncreasing:
		return danger
	case domain.TrendDecreasing:
		return success
	default:
		return warning
	}
}
