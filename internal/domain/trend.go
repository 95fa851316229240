package domain

import (
	"sort"
	"time"
)

// TrendDirection classifies how the debt count moved.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStatic     TrendDirection = "static"
)

// TrendPoint is the summary of one persisted report.
type TrendPoint struct {
	Date       string    `json:"date"`
	Time       time.Time `json:"-"`
	Count      int       `json:"count"`
	SourceFile string    `json:"source_file"`
}

// TrendReport is an oldest-to-newest series with its overall change.
type TrendReport struct {
	Points    []TrendPoint   `json:"points"`
	Delta     int            `json:"delta"`
	Direction TrendDirection `json:"direction"`
}

// Step returns the change from the previous point, or 0 for the first one.
func (t TrendReport) Step(i int) int {
	if i <= 0 || i >= len(t.Points) {
		return 0
	}
	return t.Points[i].Count - t.Points[i-1].Count
}

// Latest returns the newest point.
func (t TrendReport) Latest() TrendPoint {
	if len(t.Points) == 0 {
		return TrendPoint{}
	}
	return t.Points[len(t.Points)-1]
}

// BuildTrend sorts points chronologically (stable for equal dates), keeps the
// newest window of them and computes last minus first.
func BuildTrend(points []TrendPoint, window int) TrendReport {
	sorted := make([]TrendPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})
	if window > 0 && len(sorted) > window {
		sorted = sorted[len(sorted)-window:]
	}

	tr := TrendReport{Points: sorted, Direction: TrendStatic}
	if len(sorted) == 0 {
		return tr
	}
	tr.Delta = sorted[len(sorted)-1].Count - sorted[0].Count
	tr.Direction = ClassifyTrend(tr.Delta)
	return tr
}

// ClassifyTrend maps a delta to its direction.
func ClassifyTrend(delta int) TrendDirection {
	switch {
	case delta > 0:
		return TrendIncreasing
	case delta < 0:
		return TrendDecreasing
	default:
		return TrendStatic
	}
}

// Verdict is the headline and advice for a direction.
func (d TrendDirection) Verdict() (headline string, advice []string) {
	switch d {
	case TrendIncreasing:
		return "Warning: technical debt is increasing.", []string{
			"Reserve capacity in each iteration for debt reduction.",
			"Review new debt markers during code review before merging.",
			"Tackle the markers with the highest counts first.",
		}
	case TrendDecreasing:
		return "Good progress: technical debt is decreasing.", []string{
			"Keep the current pace of debt reduction.",
			"Share what worked with the rest of the team.",
		}
	default:
		return "Notice: technical debt is not changing.", []string{
			"Stagnating debt tends to be forgotten; pick a few items to resolve.",
			"Check whether existing markers are still relevant.",
		}
	}
}

// GeneratedTrend is what the trend analyzer hands back to callers.
type GeneratedTrend struct {
	Path  string      `json:"trend_report_path"`
	Trend TrendReport `json:"trend"`
}
