// Package lex contains the text primitives the structural parser is built
// on: quote-aware search, brace matching, comment stripping and whitespace
// normalisation. Every function works on byte offsets and never changes the
// length of its input, so offsets found on a cleaned copy of a document are
// valid against the original.
package lex

const (
	singleQuote = '\''
	doubleQuote = '"'
	escape      = '\\'
)

type searchConfig struct {
	wholeWord bool
	from      int
	until     int
	reverse   bool
}

type SearchOption func(*searchConfig)

// WholeWord only reports matches that are not surrounded by identifier bytes.
func WholeWord() SearchOption {
	return func(c *searchConfig) {
		c.wholeWord = true
	}
}

// From sets the offset the scan starts at. For a reverse scan this is the
// highest offset inspected.
func From(offset int) SearchOption {
	return func(c *searchConfig) {
		c.from = offset
	}
}

// Until sets the exclusive upper bound of the scan.
func Until(offset int) SearchOption {
	return func(c *searchConfig) {
		c.until = offset
	}
}

func Reverse() SearchOption {
	return func(c *searchConfig) {
		c.reverse = true
	}
}

// Search returns the offsets of every occurrence of substr in text that is
// not inside a single or double quoted span. Matches are reported in scan
// order: ascending, or descending with Reverse.
func Search(text, substr string, opts ...SearchOption) []int {
	var matches []int
	scan(text, substr, opts, func(i int) bool {
		matches = append(matches, i)
		return true
	})
	return matches
}

// Index returns the first offset Search would report, or -1.
func Index(text, substr string, opts ...SearchOption) int {
	found := -1
	scan(text, substr, opts, func(i int) bool {
		found = i
		return false
	})
	return found
}

// Count returns the number of unquoted occurrences of substr in text.
func Count(text, substr string, opts ...SearchOption) int {
	n := 0
	scan(text, substr, opts, func(int) bool {
		n++
		return true
	})
	return n
}

func scan(text, substr string, opts []SearchOption, yield func(int) bool) {
	if substr == "" || text == "" {
		return
	}
	cfg := searchConfig{from: -1, until: len(text)}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.until > len(text) {
		cfg.until = len(text)
	}

	step := 1
	i := cfg.from
	if cfg.reverse {
		step = -1
		if i < 0 || i >= cfg.until {
			i = cfg.until - 1
		}
	} else if i < 0 {
		i = 0
	}

	var inSingle, inDouble bool
	for ; i >= 0 && i < cfg.until; i += step {
		switch text[i] {
		case singleQuote:
			if !inDouble && !escaped(text, i) {
				inSingle = !inSingle
			}
			continue
		case doubleQuote:
			if !inSingle && !escaped(text, i) {
				inDouble = !inDouble
			}
			continue
		}
		if inSingle || inDouble {
			continue
		}
		if !hasPrefixAt(text, substr, i) {
			continue
		}
		if cfg.wholeWord && !isWordBoundary(text, i, len(substr)) {
			continue
		}
		if !yield(i) {
			return
		}
	}
}

func hasPrefixAt(text, substr string, i int) bool {
	return i+len(substr) <= len(text) && text[i:i+len(substr)] == substr
}

// escaped reports whether the byte at i is preceded by an odd number of
// backslashes.
func escaped(text string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && text[j] == escape; j-- {
		n++
	}
	return n%2 == 1
}

func isWordBoundary(text string, i, n int) bool {
	if i > 0 && IsIdentifierByte(text[i-1]) {
		return false
	}
	if end := i + n; end < len(text) && IsIdentifierByte(text[end]) {
		return false
	}
	return true
}

// IsIdentifierByte reports whether b can be part of a keyword or name.
func IsIdentifierByte(b byte) bool {
	return b == '_' ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z') ||
		('0' <= b && b <= '9')
}
