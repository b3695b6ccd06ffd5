package workspace

import (
	"github.com/dhamidi/shaderlab/format"
	"github.com/dhamidi/shaderlab/syntax"
)

type CompletionKind int

const (
	CompletionKeyword CompletionKind = iota
	CompletionSnippet
)

func (k CompletionKind) String() string {
	if k == CompletionSnippet {
		return "snippet"
	}
	return "keyword"
}

// CompletionItem is one suggestion. Data is the key of the definition the
// item came from and is what ResolveCompletion expects.
type CompletionItem struct {
	Label         string
	Kind          CompletionKind
	Data          string
	InsertText    string
	Documentation string
}

// Completions suggests the keywords of the definitions allowed inside the
// innermost node at offset, followed by that node's own snippets.
func (w *Workspace) Completions(uri string, offset int) []CompletionItem {
	doc := w.Document(uri)
	if doc == nil {
		return nil
	}
	node := syntax.Locate(doc.Tree, offset)

	var items []CompletionItem
	for _, child := range w.reg.Children(node.Definition) {
		if child.Suggest.Has(syntax.SuggestKeyword) && child.Keyword != "" {
			items = append(items, CompletionItem{Label: child.Keyword, Kind: CompletionKeyword, Data: child.ID})
		}
		if child.Suggest.Has(syntax.SuggestEndKeyword) && child.EndKeyword != "" {
			items = append(items, CompletionItem{Label: child.EndKeyword, Kind: CompletionKeyword, Data: child.ID})
		}
	}
	for _, s := range node.Definition.Snippets {
		items = append(items, CompletionItem{
			Label:         s.Label(),
			Kind:          CompletionSnippet,
			Data:          node.Definition.ID,
			InsertText:    s.Value,
			Documentation: format.Code("shaderlab", s.Value) + s.Description,
		})
	}
	return items
}

// ResolveCompletion returns the detail and markdown documentation for an
// item whose Data is id.
func (w *Workspace) ResolveCompletion(id string) (detail, documentation string, ok bool) {
	def := w.reg.Lookup(id)
	if def == nil {
		return "", "", false
	}
	return def.ID, def.Description, true
}
