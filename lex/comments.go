package lex

import "strings"

type stripMode int

const (
	modeCode stripMode = iota
	modeSingleQuote
	modeDoubleQuote
	modeRegex
	modeLineComment
	modeBlockComment
	modeCondComp
)

// StripComments overwrites line comments, block comments and /*@ ... @*/
// conditional compilation blocks with spaces. String literals and naive
// regex literals are copied untouched. Line breaks inside block comments are
// kept so line numbers stay stable. The result has the same length as src.
func StripComments(src string) string {
	out := []byte(src)
	mode := modeCode
	for i := 0; i < len(out); i++ {
		c := src[i]
		switch mode {
		case modeSingleQuote, modeDoubleQuote:
			if c == escape {
				i++
				continue
			}
			if (mode == modeSingleQuote && c == singleQuote) || (mode == modeDoubleQuote && c == doubleQuote) {
				mode = modeCode
			}
		case modeRegex:
			if c == escape {
				i++
				continue
			}
			if c == '/' || c == '\n' || c == '\r' {
				mode = modeCode
			}
		case modeLineComment:
			if c == '\n' || c == '\r' {
				mode = modeCode
				continue
			}
			out[i] = ' '
		case modeBlockComment:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				out[i], out[i+1] = ' ', ' '
				i++
				mode = modeCode
				continue
			}
			blank(out, i)
		case modeCondComp:
			if c == '@' && i+2 < len(src) && src[i+1] == '*' && src[i+2] == '/' {
				out[i], out[i+1], out[i+2] = ' ', ' ', ' '
				i += 2
				mode = modeCode
				continue
			}
			blank(out, i)
		default:
			switch c {
			case singleQuote:
				mode = modeSingleQuote
			case doubleQuote:
				mode = modeDoubleQuote
			case '/':
				next := byte(0)
				if i+1 < len(src) {
					next = src[i+1]
				}
				switch {
				case next == '*' && i+2 < len(src) && src[i+2] == '@':
					out[i], out[i+1], out[i+2] = ' ', ' ', ' '
					i += 2
					mode = modeCondComp
				case next == '*':
					out[i], out[i+1] = ' ', ' '
					i++
					mode = modeBlockComment
				case next == '/':
					out[i], out[i+1] = ' ', ' '
					i++
					mode = modeLineComment
				case regexAllowed(src, i):
					mode = modeRegex
				}
			}
		}
	}
	return string(out)
}

// regexAllowed reports whether a '/' at i can open a regex literal: it must
// follow an operator or punctuation, never an operand, or it is a division.
func regexAllowed(src string, i int) bool {
	for j := i - 1; j >= 0; j-- {
		if isSpace(src[j]) {
			continue
		}
		return strings.IndexByte("(,=:[!&|?{};", src[j]) >= 0
	}
	return true
}

func blank(out []byte, i int) {
	if out[i] != '\n' && out[i] != '\r' {
		out[i] = ' '
	}
}

var whitespaceReplacer = strings.NewReplacer("\r\n", " \n", "\r", "\n", "\t", " ")

// NormalizeWhitespace turns tabs into spaces and every line ending into a
// single '\n'. A CRLF pair becomes " \n" rather than "\n" so the result keeps
// the length of s and every '\n' stays at its original offset.
func NormalizeWhitespace(s string) string {
	return whitespaceReplacer.Replace(s)
}
