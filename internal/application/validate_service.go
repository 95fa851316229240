package application

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/debtkraft/debtkraft/internal/domain"
)

// ValidateService checks the "Related Files" list of debt documents against
// the filesystem.
type ValidateService struct{}

func NewValidateService() *ValidateService {
	return &ValidateService{}
}

// ValidateDocument resolves every related file against the document's
// directory. Each entry must exist and lie below that directory. All failures
// are collected; the result is never an error.
func (s *ValidateService) ValidateDocument(docPath string) domain.ValidationResult {
	result := domain.ValidationResult{Document: docPath}

	data, err := os.ReadFile(docPath)
	if err != nil {
		result.ErrorCode = domain.CodeDocumentUnreadable
		result.Message = fmt.Sprintf("cannot read %s: %v", docPath, err)
		return result
	}

	absDoc, err := filepath.Abs(docPath)
	if err != nil {
		result.ErrorCode = domain.CodeDocumentUnreadable
		result.Message = fmt.Sprintf("cannot resolve %s: %v", docPath, err)
		return result
	}
	docDir := filepath.Dir(absDoc)

	paths, placeholders := domain.RelatedFiles(string(data))
	if len(paths) == 0 {
		result.IsValid = true
		if placeholders > 0 {
			result.Message = fmt.Sprintf("no file references yet (%d placeholder entries)", placeholders)
		} else {
			result.Message = "no related files listed"
		}
		return result
	}

	for _, p := range paths {
		resolved := p
		if !filepath.IsAbs(resolved) {
			resolved = filepath.Join(docDir, filepath.FromSlash(p))
		}
		resolved = filepath.Clean(resolved)
		result.Checked = append(result.Checked, p)

		if !isDescendant(docDir, resolved) {
			result.OutOfDir = append(result.OutOfDir, p)
		}
		if _, err := os.Stat(resolved); err != nil {
			result.Missing = append(result.Missing, p)
		}
	}

	switch {
	case len(result.Missing) > 0 && len(result.OutOfDir) > 0:
		result.ErrorCode = domain.CodeInvalidReferences
		result.Message = fmt.Sprintf("missing: %s; outside %s: %s",
			strings.Join(result.Missing, ", "), docDir, strings.Join(result.OutOfDir, ", "))
	case len(result.Missing) > 0:
		result.ErrorCode = domain.CodeReferenceNotFound
		result.Message = "missing: " + strings.Join(result.Missing, ", ")
	case len(result.OutOfDir) > 0:
		result.ErrorCode = domain.CodeReferenceOutOfScope
		result.Message = fmt.Sprintf("outside %s: %s", docDir, strings.Join(result.OutOfDir, ", "))
	default:
		result.IsValid = true
		result.Message = fmt.Sprintf("%d related files verified", len(paths))
	}
	return result
}

func isDescendant(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
