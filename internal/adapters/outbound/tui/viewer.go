package tui

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	h1Style = lipgloss.NewStyle().Bold(true).Foreground(accent)
	h2Style = lipgloss.NewStyle().Bold(true).Foreground(fg)
)

// Viewer implements domain.ReportViewer by printing a Markdown document with
// headings highlighted.
type Viewer struct {
	out io.Writer
}

func NewViewer(out io.Writer) *Viewer {
	return &Viewer{out: out}
}

func (v *Viewer) View(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading report: %w", err)
	}

	fmt.Fprintln(v.out, dimStyle.Render(path))
	fmt.Fprintln(v.out)

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		fmt.Fprintln(v.out, styleLine(sc.Text()))
	}
	return sc.Err()
}

func styleLine(line string) string {
	switch {
	case strings.HasPrefix(line, "# "):
		return h1Style.Render(line)
	case strings.HasPrefix(line, "## "):
		return h2Style.Render(line)
	case strings.HasPrefix(line, "|---") || strings.HasPrefix(line, "| ---"):
		return faintStyle.Render(line)
	default:
		return line
	}
}
