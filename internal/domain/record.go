package domain

import "strings"

// DebtRecord is one marker occurrence on one line.
type DebtRecord struct {
	FilePath    string `json:"file_path"`
	RelPath     string `json:"rel_path"`
	Line        int    `json:"line"`
	Marker      string `json:"marker"`
	Description string `json:"description"`

	// Structured is set only for the DIR.TAG: form.
	Structured *StructuredTag `json:"structured,omitempty"`
}

// StructuredTag is the parsed payload of a DIR.TAG: marker.
type StructuredTag struct {
	DirPath string   `json:"dir_path"`
	Tags    []string `json:"tags"`
}

// Summary is the text shown for a record in reports.
func (r DebtRecord) Summary() string {
	if r.Structured == nil {
		return r.Description
	}
	if len(r.Structured.Tags) == 0 {
		return r.Structured.DirPath
	}
	return strings.TrimSpace(r.Structured.DirPath + " " + strings.Join(r.Structured.Tags, " "))
}

// MarkerMatch is a marker found on a line along with the text after it.
type MarkerMatch struct {
	Marker    string
	Remainder string
}

// MatchMarkers returns every marker token that occurs in line, in marker order.
// Only the first occurrence of each token is considered.
func MatchMarkers(line string, markers []MarkerDefinition) []MarkerMatch {
	var out []MarkerMatch
	for _, m := range markers {
		if m.Token == "" {
			continue
		}
		idx := strings.Index(line, m.Token)
		if idx < 0 {
			continue
		}
		out = append(out, MarkerMatch{
			Marker:    m.Token,
			Remainder: line[idx+len(m.Token):],
		})
	}
	return out
}

// ParseStructured splits "/a/b #x #y" into its directory path and tags.
func ParseStructured(remainder string) StructuredTag {
	segments := strings.Split(remainder, "#")
	tag := StructuredTag{
		DirPath: strings.TrimSpace(segments[0]),
		Tags:    []string{},
	}
	for _, seg := range segments[1:] {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		tag.Tags = append(tag.Tags, "#"+seg)
	}
	return tag
}

// NewRecord builds the record for one match. relPath is fixed at creation.
func NewRecord(filePath, relPath string, line int, match MarkerMatch) DebtRecord {
	rec := DebtRecord{
		FilePath:    filePath,
		RelPath:     relPath,
		Line:        line,
		Marker:      match.Marker,
		Description: strings.TrimSpace(match.Remainder),
	}
	if match.Marker == StructuredMarker {
		st := ParseStructured(match.Remainder)
		rec.Structured = &st
	}
	return rec
}

// ExtractRecords scans text line by line. Lines are 1-based; "\r\n" endings are
// tolerated.
func ExtractRecords(filePath, relPath, text string, markers []MarkerDefinition) []DebtRecord {
	var records []DebtRecord
	for i, line := range SplitLines(text) {
		for _, match := range MatchMarkers(line, markers) {
			records = append(records, NewRecord(filePath, relPath, i+1, match))
		}
	}
	return records
}

// SplitLines splits text into physical lines without their "\n" or "\r\n"
// terminators.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
