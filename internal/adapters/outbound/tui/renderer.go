package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/debtkraft/debtkraft/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	priorityColors = map[domain.Priority]lipgloss.Color{
		domain.PriorityHigh:   danger,
		domain.PriorityMedium: warning,
		domain.PriorityLow:    success,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderScanSummary formats the outcome of a scan for the terminal.
func RenderScanSummary(g *domain.GeneratedReport, cfg domain.ScanConfig) string {
	var b strings.Builder

	title := headerStyle.Render("debtkraft")
	subtitle := dimStyle.Render("Technical Debt Scan")
	color := priorityColor(g.Priority)
	total := lipgloss.NewStyle().Bold(true).Foreground(color).
		Render(fmt.Sprintf("%d items", g.TotalCount))
	prio := lipgloss.NewStyle().Bold(true).Foreground(color).
		Render(strings.ToUpper(string(g.Priority)))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + total + "  " + prio))
	b.WriteString("\n\n")

	var records []domain.DebtRecord
	if g.Report != nil {
		records = g.Report.Records
	}

	if len(records) == 0 {
		b.WriteString("  " + passStyle.Render("No technical debt markers found.") + "\n")
	} else {
		groups := domain.GroupByMarker(records)
		b.WriteString("  " + titleStyle.Render("Markers") + "\n\n")
		for _, grp := range groups {
			name := titleStyle.Render(padRight(grp.Marker, 14))
			bar := coloredBar(len(grp.Records), len(records), 20, color)
			fmt.Fprintf(&b, "    %s %s  %s\n", name, bar, dimStyle.Render(fmt.Sprintf("%d", len(grp.Records))))
		}
		fmt.Fprintf(&b, "\n    %s\n", dimStyle.Render(fmt.Sprintf("weighted score %.2f", domain.WeightedScore(records, cfg))))

		if tags := domain.CountTags(records); len(tags) > 0 {
			b.WriteString("\n  " + titleStyle.Render("Tags") + "\n\n")
			for i, tc := range tags {
				if i == 5 {
					fmt.Fprintf(&b, "    %s\n", faintStyle.Render(fmt.Sprintf("… %d more", len(tags)-5)))
					break
				}
				fmt.Fprintf(&b, "    %s %s\n", warnStyle.Render(padRight(tc.Tag, 24)), dimStyle.Render(fmt.Sprintf("%d", tc.Count)))
			}
		}
	}

	b.WriteString("\n  " + separatorLine + "\n\n")
	fmt.Fprintf(&b, "  %s\n", dimStyle.Render(g.Priority.Recommendation()))
	if g.Path != "" {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render("report"), fileStyle.Render(shortenPath(g.Path)))
	}
	if g.ArchiveURL != "" {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render("archived"), fileStyle.Render(g.ArchiveURL))
	}
	b.WriteString("\n")
	return b.String()
}

func coloredBar(n, total, width int, color lipgloss.Color) string {
	filled := 0
	if total > 0 {
		filled = max(1, min(n*width/total, width))
	}
	empty := width - filled

	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func priorityColor(p domain.Priority) lipgloss.Color {
	if c, ok := priorityColors[p]; ok {
		return c
	}
	return fg
}

func shortenPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > 3 {
		return strings.Join(parts[len(parts)-3:], "/")
	}
	return path
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
