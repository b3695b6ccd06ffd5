package main

import (
	"fmt"
	"io"

	"github.com/dhamidi/shaderlab/config"
	"github.com/dhamidi/shaderlab/console"
	"github.com/dhamidi/shaderlab/lint"
	"github.com/dhamidi/shaderlab/workspace"
)

// loadSettings reads configPath when given, otherwise the settings file of
// dir.
func loadSettings(configPath, dir string) (config.Settings, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.LoadDir(dir)
}

func toConsole(doc *workspace.Document, d workspace.Diagnostic) console.Diagnostic {
	pos := doc.Lines.PositionAt(d.Start)
	lineStart := doc.Lines.LineStart(pos.Line)
	context := doc.Lines.Line(pos.Line)
	column := d.Start - lineStart
	width := min(d.End, lineStart+len(context)) - d.Start
	return console.Diagnostic{
		File:     doc.Path,
		Line:     pos.Line + 1,
		Column:   column + 1,
		Width:    max(1, width),
		Severity: d.Severity.String(),
		Source:   d.Source,
		Message:  d.Message,
		Context:  context,
	}
}

// report prints the diagnostics of doc and returns how many are errors.
func report(w io.Writer, doc *workspace.Document, diagnostics []workspace.Diagnostic) int {
	errors := 0
	for _, d := range diagnostics {
		if d.Severity == lint.SeverityError {
			errors++
		}
		fmt.Fprint(w, console.FormatDiagnostic(toConsole(doc, d)))
	}
	return errors
}
