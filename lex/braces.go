package lex

const (
	OpenBrace  = "{"
	CloseBrace = "}"
)

// MatchingBrace returns the offset of the '}' that balances the '{' at open,
// or -1 when the text ends first. Braces inside quotes are ignored.
func MatchingBrace(text string, open int) int {
	if open < 0 || open >= len(text) || text[open] != '{' {
		return -1
	}
	depth := 0
	var inSingle, inDouble bool
	for i := open; i < len(text); i++ {
		switch text[i] {
		case singleQuote:
			if !inDouble && !escaped(text, i) {
				inSingle = !inSingle
			}
		case doubleQuote:
			if !inSingle && !escaped(text, i) {
				inDouble = !inDouble
			}
		case '{':
			if !inSingle && !inDouble {
				depth++
			}
		case '}':
			if !inSingle && !inDouble {
				depth--
				if depth == 0 {
					return i
				}
			}
		}
	}
	return -1
}

// AtDepth keeps the offsets whose brace depth equals depth. offsets must be
// ascending; the text is scanned once.
func AtDepth(text string, offsets []int, depth int) []int {
	var out []int
	current := 0
	next := 0
	var inSingle, inDouble bool
	for i := 0; i <= len(text) && next < len(offsets); i++ {
		for next < len(offsets) && offsets[next] == i {
			if current == depth {
				out = append(out, offsets[next])
			}
			next++
		}
		if i == len(text) {
			break
		}
		switch text[i] {
		case singleQuote:
			if !inDouble && !escaped(text, i) {
				inSingle = !inSingle
			}
		case doubleQuote:
			if !inSingle && !escaped(text, i) {
				inDouble = !inDouble
			}
		case '{':
			if !inSingle && !inDouble {
				current++
			}
		case '}':
			if !inSingle && !inDouble {
				current--
			}
		}
	}
	return out
}

// Fields splits s on whitespace that is not inside quotes. Quotes are kept in
// the returned tokens.
func Fields(s string) []string {
	var fields []string
	start := -1
	var inSingle, inDouble bool
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == singleQuote && !inDouble && !escaped(s, i):
			inSingle = !inSingle
		case c == doubleQuote && !inSingle && !escaped(s, i):
			inDouble = !inDouble
		case isSpace(c) && !inSingle && !inDouble:
			if start >= 0 {
				fields = append(fields, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, s[start:])
	}
	return fields
}

// WordAt returns the run of name bytes (identifier bytes and '.') around
// offset, or "" when the byte at offset is not one of them.
func WordAt(text string, offset int) string {
	if offset < 0 || offset >= len(text) || !isWordByte(text[offset]) {
		return ""
	}
	start, end := offset, offset
	for start > 0 && isWordByte(text[start-1]) {
		start--
	}
	for end < len(text) && isWordByte(text[end]) {
		end++
	}
	return text[start:end]
}

func isWordByte(b byte) bool {
	return IsIdentifierByte(b) || b == '.'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}
