package lex

import (
	"sort"
	"unicode/utf16"
)

// Position is a zero-based line and column. Column counts UTF-16 code units,
// which is what editors speaking the language server protocol expect.
type Position struct {
	Line   int
	Column int
}

// LineIndex maps byte offsets of one document to positions and back.
type LineIndex struct {
	text   string
	starts []int
}

func NewLineIndex(text string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				continue
			}
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{text: text, starts: starts}
}

func (x *LineIndex) LineCount() int {
	return len(x.starts)
}

// LineStart returns the byte offset of the first byte of line n, or the
// length of the text when n is past the last line.
func (x *LineIndex) LineStart(n int) int {
	if n < 0 {
		return 0
	}
	if n >= len(x.starts) {
		return len(x.text)
	}
	return x.starts[n]
}

// Line returns the text of line n without its terminator.
func (x *LineIndex) Line(n int) string {
	if n < 0 || n >= len(x.starts) {
		return ""
	}
	start, end := x.starts[n], len(x.text)
	if n+1 < len(x.starts) {
		end = x.starts[n+1]
	}
	for end > start && (x.text[end-1] == '\n' || x.text[end-1] == '\r') {
		end--
	}
	return x.text[start:end]
}

// PositionAt converts a byte offset. Offsets outside the text are clamped.
func (x *LineIndex) PositionAt(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(x.text) {
		offset = len(x.text)
	}
	line := sort.Search(len(x.starts), func(i int) bool {
		return x.starts[i] > offset
	}) - 1
	return Position{Line: line, Column: utf16Len(x.text[x.starts[line]:offset])}
}

// OffsetAt converts a position back to a byte offset. A column past the end
// of its line maps to the end of the line; a line past the end maps to the
// end of the text.
func (x *LineIndex) OffsetAt(pos Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(x.starts) {
		return len(x.text)
	}
	offset := x.starts[pos.Line]
	line := x.Line(pos.Line)
	units := 0
	for i, r := range line {
		if units >= pos.Column {
			return offset + i
		}
		units += utf16.RuneLen(r)
	}
	return offset + len(line)
}

// utf16Len counts UTF-16 code units. Invalid bytes decode to U+FFFD and
// count as one unit each.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
