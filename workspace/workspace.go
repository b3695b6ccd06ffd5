// Package workspace keeps the ShaderLab documents an editor has open, parses
// them on change and answers hover, completion and diagnostic queries. The
// language server in lsp.go is a thin protocol layer over it.
package workspace

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/shaderlab/config"
	"github.com/dhamidi/shaderlab/lex"
	"github.com/dhamidi/shaderlab/lint"
	"github.com/dhamidi/shaderlab/shaderlab"
	"github.com/dhamidi/shaderlab/syntax"
)

// Extension is the file extension of ShaderLab documents.
const Extension = ".shader"

// Document is one parsed version of a text. A Document is never modified
// after it is stored, so callers may use it without holding any lock.
type Document struct {
	URI     string
	Path    string
	Version int32
	Text    string
	Lines   *lex.LineIndex
	Tree    *syntax.Node
}

type lintResult struct {
	version     int32
	diagnostics []lint.Diagnostic
}

type Workspace struct {
	mu       sync.RWMutex
	rootDir  string
	reg      *syntax.Registry
	docs     map[string]*Document
	lints    map[string]lintResult
	settings config.Settings
	linter   *lint.Linter

	lintRunner    lint.Runner
	debounce      time.Duration
	timers        map[string]*time.Timer
	onDiagnostics func(uri string)

	log commonlog.Logger
}

type Option func(*Workspace)

// WithLintRunner replaces how the compiler is run.
func WithLintRunner(r lint.Runner) Option {
	return func(w *Workspace) {
		w.lintRunner = r
	}
}

// WithDebounce sets how long edits must settle before an onType lint.
func WithDebounce(d time.Duration) Option {
	return func(w *Workspace) {
		w.debounce = d
	}
}

// WithRegistry parses documents against reg instead of the ShaderLab schema.
func WithRegistry(reg *syntax.Registry) Option {
	return func(w *Workspace) {
		w.reg = reg
	}
}

func New(rootDir string, settings config.Settings, opts ...Option) *Workspace {
	w := &Workspace{
		rootDir:  rootDir,
		reg:      shaderlab.Registry(),
		docs:     make(map[string]*Document),
		lints:    make(map[string]lintResult),
		settings: settings,
		debounce: lint.DebounceDelay,
		timers:   make(map[string]*time.Timer),
		log:      commonlog.GetLogger("shaderlab.workspace"),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.linter = w.newLinter(settings)
	return w
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

func (w *Workspace) Registry() *syntax.Registry {
	return w.reg
}

func (w *Workspace) Settings() config.Settings {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.settings
}

// SetSettings replaces the settings. Cached lint results are dropped since
// they were produced with the old compiler options.
func (w *Workspace) SetSettings(settings config.Settings) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.settings = settings
	w.linter = w.newLinter(settings)
	w.lints = make(map[string]lintResult)
}

func (w *Workspace) newLinter(settings config.Settings) *lint.Linter {
	var opts []lint.Option
	if w.lintRunner != nil {
		opts = append(opts, lint.WithRunner(w.lintRunner))
	}
	return lint.New(settings.LintOptions(), opts...)
}

// Update stores a new version of a document and parses it. Storing the
// same version and text again returns the cached document.
func (w *Workspace) Update(uri string, version int32, text string) *Document {
	w.mu.RLock()
	cached := w.docs[uri]
	w.mu.RUnlock()
	if cached != nil && cached.Version == version && cached.Text == text {
		return cached
	}

	doc := w.parse(uri, version, text)

	w.mu.Lock()
	defer w.mu.Unlock()
	if current := w.docs[uri]; current != nil && current.Version > version {
		return current
	}
	w.docs[uri] = doc
	return doc
}

func (w *Workspace) parse(uri string, version int32, text string) *Document {
	path, err := URIToPath(uri)
	if err != nil {
		path = ""
	}
	return &Document{
		URI:     uri,
		Path:    path,
		Version: version,
		Text:    text,
		Lines:   lex.NewLineIndex(text),
		Tree:    syntax.Parse(text, w.reg),
	}
}

// Close forgets a document and any pending lint for it.
func (w *Workspace) Close(uri string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.docs, uri)
	delete(w.lints, uri)
	if t := w.timers[uri]; t != nil {
		t.Stop()
		delete(w.timers, uri)
	}
}

// RemoveFile forgets a document read with ScanFile.
func (w *Workspace) RemoveFile(path string) {
	w.Close(PathToURI(path))
}

func (w *Workspace) Document(uri string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.docs[uri]
}

// URIs returns the URIs of all stored documents.
func (w *Workspace) URIs() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	uris := make([]string, 0, len(w.docs))
	for uri := range w.docs {
		uris = append(uris, uri)
	}
	return uris
}

// ScanFile reads a document from disk. An unchanged file keeps its
// document; a changed one gets the next version.
func (w *Workspace) ScanFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	uri, text := PathToURI(path), string(content)

	version := int32(1)
	w.mu.RLock()
	current := w.docs[uri]
	w.mu.RUnlock()
	if current != nil {
		if current.Text == text {
			return current, nil
		}
		version = current.Version + 1
	}
	return w.Update(uri, version, text), nil
}

// ScanAll reads every ShaderLab file below the root directory.
func (w *Workspace) ScanAll() error {
	return filepath.WalkDir(w.rootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != w.rootDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == Extension {
			if _, err := w.ScanFile(path); err != nil {
				w.log.Warningf("%s", err)
			}
		}
		return nil
	})
}

// URIToPath converts a file URI to a path. Other strings are returned as
// they are.
func URIToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.FromSlash(filepath.Clean(parsed.Path)), nil
	}
	return uri, nil
}

// PathToURI converts an absolute or relative path to a file URI.
func PathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}
