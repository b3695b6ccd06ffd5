package syntax

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dhamidi/shaderlab/lex"
)

type Option func(*parser)

// WithRoot parses the document as the definition registered under key
// instead of the registry root.
func WithRoot(key string) Option {
	return func(p *parser) {
		if d := p.reg.Lookup(key); d != nil {
			p.root = d
		}
	}
}

type parser struct {
	reg  *Registry
	root *Definition
	src  string
	// clean is src with comments blanked and whitespace normalised. It has
	// the length of src, so offsets found in it index src directly.
	clean string
}

// strategyOrder is the order in which sibling groups are matched. Later
// groups skip occurrences inside ranges claimed by earlier ones.
var strategyOrder = []Strategy{
	StrategyRoot,
	StrategyKeywordPair,
	StrategyBlock,
	StrategyOpaque,
}

// Parse builds the tree of text against reg. It never fails: problems are
// recorded as NodeErrors on the returned tree.
func Parse(text string, reg *Registry, opts ...Option) *Node {
	p := &parser{
		reg:   reg,
		root:  reg.Root(),
		src:   text,
		clean: lex.NormalizeWhitespace(lex.StripComments(text)),
	}
	for _, opt := range opts {
		opt(p)
	}

	root := &Node{
		Definition: p.root,
		Content:    text,
		SourceMap: SourceMap{
			Start:        0,
			ContentStart: 0,
			ContentEnd:   len(text),
			End:          len(text),
		},
	}
	if p.root.Strategy == StrategyRoot {
		p.checkBalance(root)
	}
	p.expand(root)
	return root
}

func (p *parser) content(n *Node) string {
	return p.clean[n.SourceMap.ContentStart:n.SourceMap.ContentEnd]
}

// expand finds the children of n, grouped by strategy, then expands each
// structural child. Every recursive call works on a strictly smaller slice.
func (p *parser) expand(n *Node) {
	defs := p.reg.Children(n.Definition)
	if len(defs) == 0 {
		return
	}

	for _, strategy := range strategyOrder {
		var group []*Definition
		for _, d := range defs {
			if d.Strategy == strategy {
				group = append(group, d)
			}
		}
		if len(group) == 0 {
			continue
		}
		switch strategy {
		case StrategyRoot:
			p.checkBalance(n)
		case StrategyKeywordPair:
			p.matchKeywordPairs(n, group)
		case StrategyBlock:
			p.matchBlocks(n, group)
		case StrategyOpaque:
			p.wrapOpaque(n, group[0])
		}
	}

	sort.SliceStable(n.Children, func(i, j int) bool {
		return n.Children[i].SourceMap.Start < n.Children[j].SourceMap.Start
	})

	for _, child := range n.Children {
		if child.IsStub() || child.Definition.Strategy == StrategyOpaque {
			continue
		}
		p.expand(child)
	}
}

func (p *parser) checkBalance(n *Node) {
	content := p.content(n)
	if lex.Count(content, lex.OpenBrace) == lex.Count(content, lex.CloseBrace) {
		return
	}
	p.addStub(n, len(content)-1, "Mismatched braces.")
}

// matchBlocks handles every block definition of n in one left-to-right pass
// over their depth-zero keyword occurrences.
func (p *parser) matchBlocks(n *Node, group []*Definition) {
	content := p.content(n)

	type occurrence struct {
		pos int
		def *Definition
	}
	var occurrences []occurrence
	for _, d := range group {
		positions := lex.Search(content, d.Keyword, lex.WholeWord())
		for _, pos := range lex.AtDepth(content, positions, 0) {
			occurrences = append(occurrences, occurrence{pos: pos, def: d})
		}
	}
	sort.SliceStable(occurrences, func(i, j int) bool {
		return occurrences[i].pos < occurrences[j].pos
	})

	halted := make(map[*Definition]bool)
	for _, occ := range occurrences {
		d := occ.def
		if halted[d] || p.claimed(n, occ.pos) {
			continue
		}

		// The brace must come before the next sibling already produced;
		// one found further on belongs to someone else.
		afterKeyword := occ.pos + len(d.Keyword)
		bound := p.nextClaimed(n, occ.pos)
		open := lex.Index(content, lex.OpenBrace, lex.From(afterKeyword), lex.Until(bound))
		closing := -1
		if open >= 0 {
			closing = lex.MatchingBrace(content, open)
		}
		base := n.SourceMap.ContentStart
		if open < 0 || closing >= 0 && p.overlaps(n, base+occ.pos, base+closing+1) {
			p.addStub(n, min(lineEnd(content, occ.pos), bound),
				fmt.Sprintf("'%s' expected. %s should be a block.", lex.OpenBrace, d.Keyword))
			halted[d] = true
			continue
		}
		if closing < 0 {
			p.addStub(n, lineEnd(content, open), fmt.Sprintf("'%s' expected.", lex.CloseBrace))
			halted[d] = true
			continue
		}

		child := &Node{
			Definition: d,
			Identifier: strings.TrimSpace(content[afterKeyword:open]),
			Content:    p.src[base+open+1 : base+closing],
			SourceMap: SourceMap{
				Start:        base + occ.pos,
				ContentStart: base + open + 1,
				ContentEnd:   base + closing,
				End:          base + closing + 1,
			},
		}
		p.checkIdentifier(child, base+afterKeyword, content[afterKeyword:open])
		n.AddChild(child)
	}
}

// checkIdentifier records an arity mismatch on child. raw is the text
// between the keyword and the brace and starts at offset rawStart.
func (p *parser) checkIdentifier(child *Node, rawStart int, raw string) {
	tokens := lex.Fields(raw)
	d := child.Definition

	start := rawStart + len(raw) - len(strings.TrimLeft(raw, " \t\r\n"))
	end := start + len(child.Identifier)
	if len(tokens) == 0 {
		start, end = child.SourceMap.Start, child.SourceMap.Start+len(d.Keyword)
	}

	var description string
	switch d.Identifier {
	case ArityNone:
		if len(tokens) > 0 {
			description = fmt.Sprintf("Unexpected identifier %s.", strings.Join(tokens, " "))
		}
	case ArityOne:
		if len(tokens) == 0 {
			description = fmt.Sprintf("%s requires an identifier.", d.Keyword)
		} else if len(tokens) > 1 {
			description = fmt.Sprintf("%s expects one identifier but found %d.", d.Keyword, len(tokens))
		}
	}
	if description == "" {
		return
	}
	child.Errors = append(child.Errors, NodeError{
		Kind:        ErrorIdentifier,
		Start:       start,
		End:         end,
		Description: description,
	})
}

// matchKeywordPairs handles every keyword-pair definition of n in one pass
// over their depth-zero start and end markers. For well-formed input this
// pairs the i-th start of a definition with its i-th end.
func (p *parser) matchKeywordPairs(n *Node, group []*Definition) {
	content := p.content(n)

	type marker struct {
		pos     int
		def     *Definition
		keyword string
		end     bool
	}
	var markers []marker
	seenEnd := make(map[string]bool)
	for _, d := range group {
		for _, pos := range lex.AtDepth(content, lex.Search(content, d.Keyword, lex.WholeWord()), 0) {
			markers = append(markers, marker{pos: pos, def: d, keyword: d.Keyword})
		}
		if seenEnd[d.EndKeyword] {
			continue
		}
		seenEnd[d.EndKeyword] = true
		for _, pos := range lex.AtDepth(content, lex.Search(content, d.EndKeyword, lex.WholeWord()), 0) {
			markers = append(markers, marker{pos: pos, keyword: d.EndKeyword, end: true})
		}
	}
	sort.SliceStable(markers, func(i, j int) bool {
		return markers[i].pos < markers[j].pos
	})

	halted := make(map[*Definition]bool)
	var open *marker
	for i := range markers {
		m := &markers[i]
		if p.claimed(n, m.pos) {
			continue
		}

		if !m.end {
			if halted[m.def] {
				continue
			}
			if open != nil {
				p.addStub(n, m.pos, fmt.Sprintf("'%s' expected before '%s'.", open.def.EndKeyword, m.keyword))
				halted[open.def] = true
				halted[m.def] = true
				open = nil
				continue
			}
			open = m
			continue
		}

		if open == nil || open.def.EndKeyword != m.keyword {
			var owners []*Definition
			for _, d := range group {
				if d.EndKeyword == m.keyword && !halted[d] {
					owners = append(owners, d)
				}
			}
			if open != nil {
				owners = append(owners, open.def)
				open = nil
			}
			if len(owners) == 0 {
				continue
			}
			p.addStub(n, m.pos, fmt.Sprintf("'%s' without matching '%s'.", m.keyword, owners[0].Keyword))
			for _, d := range owners {
				halted[d] = true
			}
			continue
		}

		d := open.def
		base := n.SourceMap.ContentStart
		contentStart := open.pos + len(d.Keyword)
		n.AddChild(&Node{
			Definition: d,
			Content:    p.src[base+contentStart : base+m.pos],
			SourceMap: SourceMap{
				Start:        base + open.pos,
				ContentStart: base + contentStart,
				ContentEnd:   base + m.pos,
				End:          base + m.pos + len(d.EndKeyword),
			},
		})
		open = nil
	}

	if open != nil {
		p.addStub(n, lineEnd(content, open.pos), fmt.Sprintf("'%s' expected.", open.def.EndKeyword))
	}
}

// wrapOpaque adds a single leaf covering the content of n, unless structural
// siblings were already found there.
func (p *parser) wrapOpaque(n *Node, d *Definition) {
	for _, child := range n.Children {
		if !child.IsStub() {
			return
		}
	}
	n.AddChild(&Node{
		Definition: d,
		Content:    n.Content,
		SourceMap: SourceMap{
			Start:        n.SourceMap.ContentStart,
			ContentStart: n.SourceMap.ContentStart,
			ContentEnd:   n.SourceMap.ContentEnd,
			End:          n.SourceMap.ContentEnd,
		},
	})
}

// claimed reports whether the local offset pos of n falls inside a child
// already produced.
func (p *parser) claimed(n *Node, pos int) bool {
	abs := n.SourceMap.ContentStart + pos
	for _, child := range n.Children {
		if child.IsStub() {
			continue
		}
		if child.SourceMap.Start <= abs && abs < child.SourceMap.End {
			return true
		}
	}
	return false
}

// nextClaimed returns the local offset at which the first child of n
// starting after pos begins, or the length of the content of n.
func (p *parser) nextClaimed(n *Node, pos int) int {
	bound := n.SourceMap.ContentEnd - n.SourceMap.ContentStart
	for _, child := range n.Children {
		if child.IsStub() {
			continue
		}
		if start := child.SourceMap.Start - n.SourceMap.ContentStart; start > pos && start < bound {
			bound = start
		}
	}
	return bound
}

// overlaps reports whether [start, end) intersects a child already
// produced.
func (p *parser) overlaps(n *Node, start, end int) bool {
	for _, child := range n.Children {
		if child.IsStub() {
			continue
		}
		if start < child.SourceMap.End && child.SourceMap.Start < end {
			return true
		}
	}
	return false
}

// addStub attaches a synthetic child carrying one structural error at the
// local offset pos of n.
func (p *parser) addStub(n *Node, pos int, description string) {
	abs := n.SourceMap.ContentStart + pos
	n.AddChild(&Node{
		Definition: Stub,
		SourceMap: SourceMap{
			Start:        abs,
			ContentStart: abs,
			ContentEnd:   abs,
			End:          abs,
		},
		Errors: []NodeError{{
			Kind:        ErrorStructural,
			Start:       abs,
			Description: description,
		}},
	})
}

// lineEnd returns the offset of the first line break at or after pos, or the
// length of content.
func lineEnd(content string, pos int) int {
	if i := strings.IndexByte(content[pos:], '\n'); i >= 0 {
		return pos + i
	}
	return len(content)
}
