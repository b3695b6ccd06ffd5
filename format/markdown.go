package format

import (
	"strings"

	"github.com/iancoleman/strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Code returns a fenced code block tagged with lang. The parts are trimmed
// and joined with single spaces.
func Code(lang string, parts ...string) string {
	trimmed := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed = append(trimmed, strings.TrimSpace(p))
	}
	return "```" + lang + "\n" + strings.TrimSpace(strings.Join(trimmed, " ")) + "\n```\n"
}

// Pre returns s as inline code.
func Pre(s string) string {
	return "`" + s + "`"
}

func Heading(s string) string {
	return "#### " + s
}

func Link(text, url string) string {
	return "[" + text + "](" + url + ")"
}

// Title turns an identifier such as "subShaderDeclaration" into
// "Sub Shader Declaration". A Caser keeps state, so each call gets its own.
func Title(id string) string {
	return cases.Title(language.English).String(strcase.ToDelimited(id, ' '))
}
