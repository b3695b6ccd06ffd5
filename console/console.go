// Package console renders diagnostics and progress for the command line
// tools. Styling is only applied when the output is a terminal.
package console

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Diagnostic is one problem in a file. Line and Column are one-based; a zero
// Column means the whole line.
type Diagnostic struct {
	File     string
	Line     int
	Column   int
	Width    int
	Severity string
	Source   string
	Message  string
	// Context is the text of the line the diagnostic points at.
	Context string
}

var (
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5555"))

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))

	infoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#50FA7B"))

	filePathStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#BD93F9"))

	lineNumberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4"))

	highlightStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#FF5555")).
			Foreground(lipgloss.Color("#282A36"))
)

// styled is swapped in tests to force plain output.
var styled = func() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

func applyStyle(style lipgloss.Style, text string) string {
	if styled() {
		return style.Render(text)
	}
	return text
}

// RelativePath shortens path relative to the working directory when it can.
func RelativePath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func severityStyle(severity string) lipgloss.Style {
	switch severity {
	case "warning":
		return warningStyle
	case "info", "hint":
		return infoStyle
	default:
		return errorStyle
	}
}

// FormatDiagnostic renders d as "file:line:col: severity: message" followed
// by the offending line with the reported span highlighted.
func FormatDiagnostic(d Diagnostic) string {
	var out strings.Builder

	if d.File != "" {
		location := fmt.Sprintf("%s:%d:%d:", RelativePath(d.File), d.Line, d.Column)
		out.WriteString(applyStyle(filePathStyle, location))
		out.WriteString(" ")
	}

	severity := d.Severity
	if severity == "" {
		severity = "error"
	}
	out.WriteString(applyStyle(severityStyle(severity), severity+":"))
	out.WriteString(" ")
	out.WriteString(d.Message)
	if d.Source != "" {
		out.WriteString(" [" + d.Source + "]")
	}
	out.WriteString("\n")

	if d.Line > 0 && d.Context != "" {
		out.WriteString(renderContext(d))
	}
	return out.String()
}

func renderContext(d Diagnostic) string {
	var out strings.Builder
	line := strings.ReplaceAll(d.Context, "\t", " ")
	number := fmt.Sprintf("%d", d.Line)

	out.WriteString(applyStyle(lineNumberStyle, number))
	out.WriteString(" | ")

	start := d.Column - 1
	if d.Column <= 0 || start >= len(line) {
		out.WriteString(line)
		out.WriteString("\n")
		return out.String()
	}
	end := min(len(line), start+max(1, d.Width))
	out.WriteString(line[:start])
	out.WriteString(applyStyle(highlightStyle, line[start:end]))
	out.WriteString(line[end:])
	out.WriteString("\n")

	out.WriteString(strings.Repeat(" ", len(number)+3+start))
	out.WriteString(applyStyle(severityStyle(d.Severity), strings.Repeat("^", end-start)))
	out.WriteString("\n")
	return out.String()
}

func FormatSuccessMessage(message string) string {
	return applyStyle(successStyle, "✓ ") + message
}

func FormatInfoMessage(message string) string {
	return applyStyle(infoStyle, "ℹ ") + message
}

func FormatWarningMessage(message string) string {
	return applyStyle(warningStyle, "⚠ ") + message
}

func FormatErrorMessage(message string) string {
	return applyStyle(errorStyle, "✗ ") + message
}
