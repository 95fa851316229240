package domain

import (
	"sort"
	"time"
)

// Priority buckets a total debt count.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ClassifyPriority applies the thresholds: above High is high, above Medium is
// medium, everything else is low.
func ClassifyPriority(total int, t Thresholds) Priority {
	switch {
	case total > t.High:
		return PriorityHigh
	case total > t.Medium:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Recommendation returns the advice printed for a priority.
func (p Priority) Recommendation() string {
	switch p {
	case PriorityHigh:
		return "High priority: schedule dedicated time to pay down debt before adding new features."
	case PriorityMedium:
		return "Medium priority: address debt items alongside regular feature work."
	default:
		return "Low priority: debt is under control, keep tracking it."
	}
}

// ScanReport is the in-memory result of one scan pass.
type ScanReport struct {
	ID          string       `json:"id"`
	Root        string       `json:"root"`
	GeneratedAt time.Time    `json:"generated_at"`
	CommitHash  string       `json:"commit_hash,omitempty"`
	Records     []DebtRecord `json:"records"`
	TotalCount  int          `json:"total_count"`
}

// MarkerGroup holds the records of one marker in scan order.
type MarkerGroup struct {
	Marker  string       `json:"marker"`
	Records []DebtRecord `json:"records"`
}

// GroupByMarker groups records by marker. Groups appear in order of the first
// record of each marker.
func GroupByMarker(records []DebtRecord) []MarkerGroup {
	index := make(map[string]int)
	var groups []MarkerGroup
	for _, r := range records {
		i, ok := index[r.Marker]
		if !ok {
			i = len(groups)
			index[r.Marker] = i
			groups = append(groups, MarkerGroup{Marker: r.Marker})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// TagCount is how often a structured tag occurs.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// CountTags tallies structured tags, most frequent first, ties by name.
func CountTags(records []DebtRecord) []TagCount {
	counts := make(map[string]int)
	for _, r := range records {
		if r.Structured == nil {
			continue
		}
		for _, t := range r.Structured.Tags {
			counts[t]++
		}
	}
	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

// WeightedScore sums marker weights over all records.
func WeightedScore(records []DebtRecord, cfg ScanConfig) float64 {
	var total float64
	for _, r := range records {
		total += cfg.MarkerWeight(r.Marker)
	}
	return total
}

// GeneratedReport is what the report generator hands back to callers.
type GeneratedReport struct {
	Path       string      `json:"report_path"`
	TotalCount int         `json:"total_count"`
	Priority   Priority    `json:"priority"`
	Report     *ScanReport `json:"report"`
	ArchiveURL string      `json:"archive_url,omitempty"`
}
