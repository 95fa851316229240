package domain_test

import (
	"testing"

	"github.com/debtkraft/debtkraft/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRelatedFiles(t *testing.T) {
	doc := "# Debt: slow importer\n\n" +
		"Some context.\n\n" +
		"## Related Files\n" +
		"- `internal/importer.go`\n" +
		"* pkg/util.go\n" +
		"- [path/to/file]\n" +
		"not a bullet\n" +
		"-\n" +
		"## Notes\n" +
		"- ignored.go\n"

	paths, placeholders := domain.RelatedFiles(doc)
	assert.Equal(t, []string{"internal/importer.go", "pkg/util.go"}, paths)
	assert.Equal(t, 1, placeholders)
}

func TestRelatedFiles_NoSection(t *testing.T) {
	paths, placeholders := domain.RelatedFiles("# Title\n- a.go\n")
	assert.Empty(t, paths)
	assert.Zero(t, placeholders)
}

func TestRelatedFiles_CRLF(t *testing.T) {
	paths, _ := domain.RelatedFiles("### Related Files\r\n- a.go\r\n- b.go\r\n")
	assert.Equal(t, []string{"a.go", "b.go"}, paths)
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b", ""}, domain.SplitLines("a\r\nb\n"))
}
