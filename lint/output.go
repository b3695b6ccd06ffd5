package lint

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dhamidi/shaderlab/lex"
)

var (
	noLint       = regexp.MustCompile(`(?i)//\s*@nolint`)
	includedFrom = regexp.MustCompile(`^In file included from (.+):(\d+):`)
)

const includeDirective = "#include"

// outputParser turns compiler messages about one temporary file into
// diagnostics against the document the block came from.
type outputParser struct {
	filename string
	block    Block
	lines    *lex.LineIndex
	// lineOffset is the number of lines written ahead of the block content.
	lineOffset int
}

func newOutputParser(filename string, block Block, lineOffset int) *outputParser {
	return &outputParser{
		filename:   filename,
		block:      block,
		lines:      lex.NewLineIndex(block.Content),
		lineOffset: lineOffset,
	}
}

func (p *outputParser) parse(output string) []Diagnostic {
	var diagnostics []Diagnostic
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if d, ok := p.parseLine(line); ok {
			diagnostics = append(diagnostics, d)
		}
	}
	return diagnostics
}

func (p *outputParser) parseLine(line string) (Diagnostic, bool) {
	if !strings.HasPrefix(line, p.filename+":") {
		return p.parseIncludedFrom(line)
	}

	// file:line:col: severity: message, where message may contain colons.
	parts := strings.SplitN(line[len(p.filename)+1:], ":", 4)
	if len(parts) < 4 {
		return Diagnostic{}, false
	}
	lineNo, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Diagnostic{}, false
	}
	column, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Diagnostic{}, false
	}

	blockLine, ok := p.blockLine(lineNo)
	if !ok || noLint.MatchString(p.lines.Line(blockLine)) {
		return Diagnostic{}, false
	}

	offset := p.offset(blockLine, max(0, column-1))
	return Diagnostic{
		Start:    offset,
		End:      offset,
		Severity: severityOf(strings.TrimSpace(parts[2])),
		Message:  normalizeMessage(parts[3]),
	}, true
}

// parseIncludedFrom anchors "In file included from file:N:" at the include
// directive on line N, since the error itself lives in another file.
func (p *outputParser) parseIncludedFrom(line string) (Diagnostic, bool) {
	m := includedFrom.FindStringSubmatch(line)
	if m == nil || m[1] != p.filename {
		return Diagnostic{}, false
	}
	lineNo, err := strconv.Atoi(m[2])
	if err != nil {
		return Diagnostic{}, false
	}
	blockLine, ok := p.blockLine(lineNo)
	if !ok {
		return Diagnostic{}, false
	}

	start := p.offset(blockLine, 0)
	end := start
	if i := strings.Index(p.lines.Line(blockLine), includeDirective); i >= 0 {
		start = p.offset(blockLine, i)
		end = start + len(includeDirective)
	}
	return Diagnostic{
		Start:    start,
		End:      end,
		Severity: SeverityError,
		Message:  normalizeMessage(line),
	}, true
}

// blockLine converts a one-based line of the temporary file to a zero-based
// line of the block. Lines of the prelude are not part of the block.
func (p *outputParser) blockLine(lineNo int) (int, bool) {
	n := lineNo - 1 - p.lineOffset
	if n < 0 || n >= p.lines.LineCount() {
		return 0, false
	}
	return n, true
}

// offset returns the document offset of a byte column on a block line,
// clamped to the end of the line.
func (p *outputParser) offset(blockLine, column int) int {
	column = min(column, len(p.lines.Line(blockLine)))
	return p.block.Offset + p.lines.LineStart(blockLine) + column
}
