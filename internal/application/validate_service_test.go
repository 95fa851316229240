package application_test

import (
	"path/filepath"
	"testing"

	"github.com/debtkraft/debtkraft/internal/application"
	"github.com/debtkraft/debtkraft/internal/domain"
	"github.com/stretchr/testify/assert"
)

func debtDoc(entries ...string) string {
	s := "# Debt: importer\n\n## Related Files\n"
	for _, e := range entries {
		s += "- " + e + "\n"
	}
	return s + "\n## Notes\nnone\n"
}

func TestValidateDocument_AllPresent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/importer.go", "package src\n")
	doc := writeFile(t, dir, "debt.md", debtDoc("`src/importer.go`"))

	res := application.NewValidateService().ValidateDocument(doc)
	assert.True(t, res.IsValid, res.Message)
	assert.Empty(t, res.ErrorCode)
	assert.Equal(t, []string{"src/importer.go"}, res.Checked)
}

func TestValidateDocument_OutsideDirectory(t *testing.T) {
	parent := t.TempDir()
	writeFile(t, parent, "outside.go", "package x\n")
	doc := writeFile(t, parent, "docs/debt.md", debtDoc("../outside.go"))

	res := application.NewValidateService().ValidateDocument(doc)
	assert.False(t, res.IsValid)
	assert.Equal(t, domain.CodeReferenceOutOfScope, res.ErrorCode)
	assert.Contains(t, res.Message, "../outside.go")
}

func TestValidateDocument_Missing(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "debt.md", debtDoc("gone.go", "also-gone.go"))

	res := application.NewValidateService().ValidateDocument(doc)
	assert.False(t, res.IsValid)
	assert.Equal(t, domain.CodeReferenceNotFound, res.ErrorCode)
	assert.Equal(t, []string{"gone.go", "also-gone.go"}, res.Missing)
	assert.Contains(t, res.Message, "also-gone.go")
}

func TestValidateDocument_BothKinds(t *testing.T) {
	parent := t.TempDir()
	writeFile(t, parent, "outside.go", "package x\n")
	doc := writeFile(t, parent, "docs/debt.md", debtDoc("../outside.go", "gone.go"))

	res := application.NewValidateService().ValidateDocument(doc)
	assert.False(t, res.IsValid)
	assert.Equal(t, domain.CodeInvalidReferences, res.ErrorCode)
	assert.Contains(t, res.Message, "../outside.go")
	assert.Contains(t, res.Message, "gone.go")
}

func TestValidateDocument_AbsolutePath(t *testing.T) {
	dir := t.TempDir()
	inside := writeFile(t, dir, "pkg/a.go", "package pkg\n")
	doc := writeFile(t, dir, "debt.md", debtDoc(inside))

	res := application.NewValidateService().ValidateDocument(doc)
	assert.True(t, res.IsValid, res.Message)
}

func TestValidateDocument_PlaceholdersOnly(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "debt.md", debtDoc("[path/to/file.go]", "`[another]`"))

	res := application.NewValidateService().ValidateDocument(doc)
	assert.True(t, res.IsValid)
	assert.Contains(t, res.Message, "placeholder")
}

func TestValidateDocument_Unreadable(t *testing.T) {
	res := application.NewValidateService().ValidateDocument(filepath.Join(t.TempDir(), "missing.md"))
	assert.False(t, res.IsValid)
	assert.Equal(t, domain.CodeDocumentUnreadable, res.ErrorCode)
}
