package tui

import (
	"fmt"
	"strings"

	"github.com/debtkraft/debtkraft/internal/domain"
)

// RenderValidation formats one reference-validation result.
func RenderValidation(r domain.ValidationResult) string {
	var b strings.Builder

	icon := passStyle.Render("✓")
	if !r.IsValid {
		icon = failStyle.Render("✗")
	}
	fmt.Fprintf(&b, "  %s %s\n", icon, titleStyle.Render(r.Document))
	if r.ErrorCode != "" {
		fmt.Fprintf(&b, "    %s %s\n", failStyle.Render(r.ErrorCode), dimStyle.Render(r.Message))
	} else {
		fmt.Fprintf(&b, "    %s\n", dimStyle.Render(r.Message))
	}

	renderPaths(&b, "missing", r.Missing)
	renderPaths(&b, "outside document directory", r.OutOfDir)
	return b.String()
}

func renderPaths(b *strings.Builder, label string, paths []string) {
	if len(paths) == 0 {
		return
	}
	fmt.Fprintf(b, "    %s\n", warnStyle.Render(label))
	for _, p := range paths {
		fmt.Fprintf(b, "      %s %s\n", faintStyle.Render("·"), fileStyle.Render(p))
	}
}
