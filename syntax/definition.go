// Package syntax reconstructs the declaration tree of a brace-delimited
// document from a schema of definitions.
//
// A Registry holds the schema: each Definition names a keyword, the arity of
// the identifier that follows it and, through a lazily evaluated list of
// lookup keys, the definitions allowed inside it. Parse walks a document
// against a registry and always returns a tree; malformed input produces
// error-carrying nodes instead of Go errors. Every node records where it was
// found as byte offsets into the original, unmodified text.
package syntax

// Strategy selects how the children of one definition are found inside the
// content of their parent.
type Strategy int

const (
	// StrategyRoot checks that braces are balanced over the whole content.
	StrategyRoot Strategy = iota
	// StrategyBlock matches Keyword [identifier] { content }.
	StrategyBlock
	// StrategyKeywordPair matches Keyword content EndKeyword.
	StrategyKeywordPair
	// StrategyOpaque wraps the parent content as a single leaf.
	StrategyOpaque
	// StrategyStub marks synthetic nodes that only carry errors.
	StrategyStub
)

var strategyNames = map[Strategy]string{
	StrategyRoot:        "root",
	StrategyBlock:       "block",
	StrategyKeywordPair: "keyword",
	StrategyOpaque:      "opaque",
	StrategyStub:        "stub",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return "unknown"
}

// Arity is the number of identifier tokens a block expects between its
// keyword and its opening brace.
type Arity int

const (
	ArityNone Arity = iota
	ArityOne
)

func (a Arity) String() string {
	switch a {
	case ArityNone:
		return "none"
	case ArityOne:
		return "one"
	default:
		return "unknown"
	}
}

// Suggest is the set of definition fields offered as completions.
type Suggest uint8

const (
	SuggestKeyword Suggest = 1 << iota
	SuggestEndKeyword
)

func (s Suggest) Has(flag Suggest) bool {
	return s&flag != 0
}

type Snippet struct {
	Value       string
	Display     string
	Description string
}

// Label is the text shown for the snippet in a completion list.
func (s Snippet) Label() string {
	if s.Display != "" {
		return s.Display
	}
	return s.Value
}

// Definition is one immutable schema entry. Children returns lookup keys
// rather than definitions so that schemas may refer to themselves.
type Definition struct {
	ID         string
	Keyword    string
	EndKeyword string
	Identifier Arity
	Strategy   Strategy
	Children   func() []string

	Description string
	Suggest     Suggest
	Snippets    []Snippet
}

// ChildKeys returns the lookup keys of the definitions allowed inside d.
func (d *Definition) ChildKeys() []string {
	if d == nil || d.Children == nil {
		return nil
	}
	return d.Children()
}

// Keywords returns the keyword and end keyword, skipping empty ones.
func (d *Definition) Keywords() []string {
	var kws []string
	if d.Keyword != "" {
		kws = append(kws, d.Keyword)
	}
	if d.EndKeyword != "" {
		kws = append(kws, d.EndKeyword)
	}
	return kws
}

// Stub is the definition of synthetic nodes created to carry structural
// errors. It is not part of any registry.
var Stub = &Definition{
	ID:       "stub",
	Strategy: StrategyStub,
}
