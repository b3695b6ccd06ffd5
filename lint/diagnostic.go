// Package lint checks the HLSL and Cg program blocks of a ShaderLab document
// with the DirectX shader compiler and maps its messages back to the
// document.
package lint

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Severity uses the numbering of the language server protocol.
type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
	SeverityInformation
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityHint:
		return "hint"
	default:
		return "info"
	}
}

// severityOf maps the severity word of a compiler message.
func severityOf(word string) Severity {
	switch word {
	case "error", "fatal error":
		return SeverityError
	case "warning":
		return SeverityWarning
	case "note":
		return SeverityHint
	default:
		return SeverityInformation
	}
}

// Diagnostic is one compiler message. Start and End are byte offsets into
// the linted document.
type Diagnostic struct {
	Start    int
	End      int
	Severity Severity
	Message  string
}

// Source names the producer of lint diagnostics.
const Source = "dxc"

// normalizeMessage capitalises msg and ends it with punctuation.
func normalizeMessage(msg string) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return msg
	}
	r, size := utf8.DecodeRuneInString(msg)
	msg = string(unicode.ToUpper(r)) + msg[size:]
	if strings.ContainsRune(".?,!:", rune(msg[len(msg)-1])) {
		return msg
	}
	return msg + "."
}
