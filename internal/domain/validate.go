package domain

import "strings"

// Error codes reported by the reference validator.
const (
	CodeDocumentUnreadable  = "DOCUMENT_UNREADABLE"
	CodeReferenceNotFound   = "REFERENCE_NOT_FOUND"
	CodeReferenceOutOfScope = "REFERENCE_OUT_OF_SCOPE"
	CodeInvalidReferences   = "INVALID_REFERENCES"
)

// ValidationResult is the outcome of checking a debt document's related files.
// It is a value, never an error.
type ValidationResult struct {
	Document  string   `json:"document"`
	IsValid   bool     `json:"is_valid"`
	Message   string   `json:"message"`
	ErrorCode string   `json:"error_code,omitempty"`
	Checked   []string `json:"checked,omitempty"`
	Missing   []string `json:"missing,omitempty"`
	OutOfDir  []string `json:"out_of_dir,omitempty"`
}

// RelatedFilesHeading is the heading text that opens the reference list.
const RelatedFilesHeading = "Related Files"

// RelatedFiles extracts the bullet entries under the first heading that
// mentions "Related Files", up to the next heading. Entries containing a
// bracketed placeholder are counted but not returned. Backticks are stripped.
func RelatedFiles(text string) (paths []string, placeholders int) {
	inSection := false
	for _, line := range SplitLines(text) {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			if inSection {
				break
			}
			inSection = strings.Contains(trimmed, RelatedFilesHeading)
			continue
		}
		if !inSection {
			continue
		}

		entry, ok := bulletText(trimmed)
		if !ok {
			continue
		}
		if isPlaceholder(entry) {
			placeholders++
			continue
		}
		entry = strings.TrimSpace(strings.ReplaceAll(entry, "`", ""))
		if entry != "" {
			paths = append(paths, entry)
		}
	}
	return paths, placeholders
}

func bulletText(line string) (string, bool) {
	for _, bullet := range []string{"-", "*"} {
		if rest, ok := strings.CutPrefix(line, bullet); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

func isPlaceholder(entry string) bool {
	open := strings.Index(entry, "[")
	return open >= 0 && strings.Contains(entry[open:], "]")
}
