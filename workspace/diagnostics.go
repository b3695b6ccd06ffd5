package workspace

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/dhamidi/shaderlab/lint"
	"github.com/dhamidi/shaderlab/syntax"
)

// Source names the producer of structural diagnostics.
const Source = "shaderlab"

// Diagnostic is a problem in a document. Start and End are byte offsets.
type Diagnostic struct {
	Start    int
	End      int
	Severity lint.Severity
	Message  string
	Source   string
}

// Diagnostics returns the structural errors of the current version of a
// document followed by the lint results computed for that same version.
func (w *Workspace) Diagnostics(uri string) []Diagnostic {
	doc := w.Document(uri)
	if doc == nil {
		return nil
	}
	diagnostics := StructuralDiagnostics(doc.Tree)

	w.mu.RLock()
	result, ok := w.lints[uri]
	w.mu.RUnlock()
	if ok && result.version == doc.Version {
		for _, d := range result.diagnostics {
			end := d.End
			if end <= d.Start {
				end = d.Start + 1
			}
			diagnostics = append(diagnostics, Diagnostic{
				Start:    d.Start,
				End:      end,
				Severity: d.Severity,
				Message:  d.Message,
				Source:   lint.Source,
			})
		}
	}
	sort.SliceStable(diagnostics, func(i, j int) bool {
		return diagnostics[i].Start < diagnostics[j].Start
	})
	return diagnostics
}

// StructuralDiagnostics converts the errors recorded in a tree.
func StructuralDiagnostics(root *syntax.Node) []Diagnostic {
	var diagnostics []Diagnostic
	syntax.WalkErrors(root, func(_ *syntax.Node, e syntax.NodeError) {
		start, end := e.Span()
		diagnostics = append(diagnostics, Diagnostic{
			Start:    start,
			End:      end,
			Severity: lint.SeverityError,
			Message:  e.Description,
			Source:   Source,
		})
	})
	return diagnostics
}

// OnDiagnostics registers fn to be called with a document's URI whenever
// new lint results are stored for it.
func (w *Workspace) OnDiagnostics(fn func(uri string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onDiagnostics = fn
}

// RequestLint schedules a lint of the current version of a document. event
// is what caused the request: edits wait for the debounce delay and are
// dropped unless the configured trigger is onType, saves and opens run
// immediately, and nothing runs when the trigger is never.
func (w *Workspace) RequestLint(uri string, event lint.Trigger) {
	w.mu.Lock()
	defer w.mu.Unlock()

	trigger := w.settings.LintTrigger
	if trigger == lint.TriggerNever || event == lint.TriggerNever {
		return
	}
	if event == lint.TriggerOnType && trigger != lint.TriggerOnType {
		return
	}
	if w.linter.Disabled() {
		return
	}

	delay := time.Duration(0)
	if event == lint.TriggerOnType {
		delay = w.debounce
	}
	if t := w.timers[uri]; t != nil {
		t.Stop()
	}
	w.timers[uri] = time.AfterFunc(delay, func() {
		w.lintNow(uri)
	})
}

func (w *Workspace) lintNow(uri string) {
	w.mu.Lock()
	delete(w.timers, uri)
	linter := w.linter
	w.mu.Unlock()

	if _, err := w.Lint(context.Background(), uri); err != nil {
		if !errors.Is(err, lint.ErrExecutableNotFound) {
			w.log.Warningf("lint %s: %s", uri, err)
		}
		if linter.Disabled() {
			return
		}
	}

	w.mu.RLock()
	fn := w.onDiagnostics
	w.mu.RUnlock()
	if fn != nil {
		fn(uri)
	}
}

// Lint runs the linter on the current version of a document and stores the
// result unless the document changed in the meantime.
func (w *Workspace) Lint(ctx context.Context, uri string) ([]lint.Diagnostic, error) {
	doc := w.Document(uri)
	if doc == nil {
		return nil, nil
	}
	w.mu.RLock()
	linter := w.linter
	w.mu.RUnlock()

	diagnostics, err := linter.LintTree(ctx, doc.Path, doc.Tree)
	if err != nil && len(diagnostics) == 0 {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if current := w.docs[uri]; current != nil && current.Version == doc.Version && w.linter == linter {
		w.lints[uri] = lintResult{version: doc.Version, diagnostics: diagnostics}
	}
	return diagnostics, err
}
