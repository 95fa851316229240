package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/debtkraft/debtkraft/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand_Valid(t *testing.T) {
	root := sampleProject(t)
	doc := writeFile(t, root, "debt.md", "# Debt\n## Related Files\n- a.go\n- [placeholder]\n")

	out, _, err := run(t, "validate", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "related files verified")
}

func TestValidateCommand_InvalidJSON(t *testing.T) {
	root := sampleProject(t)
	good := writeFile(t, root, "good.md", "## Related Files\n- a.go\n")
	bad := writeFile(t, root, "docs/bad.md", "## Related Files\n- ../a.go\n")

	out, _, err := run(t, "validate", good, bad, "--json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")

	var results []domain.ValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.True(t, results[0].IsValid)
	assert.Equal(t, domain.CodeReferenceOutOfScope, results[1].ErrorCode)
}

func TestValidateCommand_RequiresArgs(t *testing.T) {
	_, _, err := run(t, "validate")
	assert.Error(t, err)
}
