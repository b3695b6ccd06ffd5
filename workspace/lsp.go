package workspace

import (
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/shaderlab/config"
	"github.com/dhamidi/shaderlab/lex"
	"github.com/dhamidi/shaderlab/lint"
)

const lsName = "shaderlab"

type LSPServer struct {
	workspace *Workspace
	handler   protocol.Handler
	server    *server.Server
	version   string
	options   []Option
	log       commonlog.Logger

	mu             sync.Mutex
	notify         glsp.NotifyFunc
	clientSettings map[string]any
	watcher        *Watcher
}

func NewLSPServer(version string, options ...Option) *LSPServer {
	ls := &LSPServer{
		version: version,
		options: options,
		log:     commonlog.GetLogger("shaderlab.lsp"),
	}

	ls.handler = protocol.Handler{
		Initialize:                      ls.initialize,
		Initialized:                     ls.initialized,
		Shutdown:                        ls.shutdown,
		SetTrace:                        ls.setTrace,
		TextDocumentDidOpen:             ls.textDocumentDidOpen,
		TextDocumentDidChange:           ls.textDocumentDidChange,
		TextDocumentDidClose:            ls.textDocumentDidClose,
		TextDocumentDidSave:             ls.textDocumentDidSave,
		TextDocumentCompletion:          ls.textDocumentCompletion,
		CompletionItemResolve:           ls.completionItemResolve,
		TextDocumentHover:               ls.textDocumentHover,
		WorkspaceDidChangeConfiguration: ls.workspaceDidChangeConfiguration,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

// Workspace returns the workspace created by the initialize request.
func (ls *LSPServer) Workspace() *Workspace {
	return ls.workspace
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootURI != nil && *params.RootURI != "" {
		if path, err := URIToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	} else if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	}

	settings, err := config.LoadDir(rootDir)
	if err != nil {
		ls.log.Errorf("%s", err)
		settings = config.Default()
	}
	ls.workspace = New(rootDir, settings, ls.options...)
	ls.workspace.OnDiagnostics(ls.publishLater)
	ls.setNotify(ctx)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		ResolveProvider: boolPtr(true),
	}
	capabilities.HoverProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.setNotify(ctx)
	w, err := NewWatcher(ls.workspace.RootDir(), MatchNames(config.FileNames...), ls.configChanged)
	if err != nil {
		ls.log.Warningf("%s", err)
		return nil
	}
	if err := w.Start(); err != nil {
		ls.log.Warningf("%s", err)
		w.Stop()
		return nil
	}
	ls.mu.Lock()
	ls.watcher = w
	ls.mu.Unlock()
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.watcher != nil {
		ls.watcher.Stop()
		ls.watcher = nil
	}
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) setNotify(ctx *glsp.Context) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.notify = ctx.Notify
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.setNotify(ctx)
	doc := params.TextDocument
	ls.workspace.Update(doc.URI, doc.Version, doc.Text)
	ls.publish(doc.URI)
	ls.workspace.RequestLint(doc.URI, lint.TriggerOnSave)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return nil
	}
	uri := params.TextDocument.URI
	ls.workspace.Update(uri, params.TextDocument.Version, textChange.Text)
	ls.publish(uri)
	ls.workspace.RequestLint(uri, lint.TriggerOnType)
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	ls.workspace.Close(uri)
	ls.notifyDiagnostics(uri, []protocol.Diagnostic{})
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := params.TextDocument.URI
	if params.Text != nil {
		if doc := ls.workspace.Document(uri); doc != nil && doc.Text != *params.Text {
			ls.workspace.Update(uri, doc.Version+1, *params.Text)
			ls.publish(uri)
		}
	}
	ls.workspace.RequestLint(uri, lint.TriggerOnSave)
	return nil
}

func (ls *LSPServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := params.TextDocument.URI
	doc := ls.workspace.Document(uri)
	if doc == nil {
		return nil, nil
	}

	var items []protocol.CompletionItem
	for _, item := range ls.workspace.Completions(uri, toOffset(doc.Lines, params.Position)) {
		kind := toProtocolKind(item.Kind)
		ci := protocol.CompletionItem{
			Label: item.Label,
			Kind:  &kind,
			Data:  item.Data,
		}
		if item.InsertText != "" {
			insertText := item.InsertText
			ci.InsertText = &insertText
		}
		if item.Documentation != "" {
			ci.Documentation = markdown(item.Documentation)
		}
		items = append(items, ci)
	}
	return items, nil
}

func (ls *LSPServer) completionItemResolve(ctx *glsp.Context, params *protocol.CompletionItem) (*protocol.CompletionItem, error) {
	id, ok := params.Data.(string)
	if !ok {
		return params, nil
	}
	detail, documentation, ok := ls.workspace.ResolveCompletion(id)
	if !ok {
		return params, nil
	}
	params.Detail = &detail
	if params.Documentation == nil && documentation != "" {
		params.Documentation = markdown(documentation)
	}
	return params, nil
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := params.TextDocument.URI
	doc := ls.workspace.Document(uri)
	if doc == nil {
		return nil, nil
	}
	hover, ok := ls.workspace.Hover(uri, toOffset(doc.Lines, params.Position))
	if !ok {
		return nil, nil
	}
	r := toRange(doc.Lines, hover.Node.SourceMap.Start, hover.Node.SourceMap.End)
	return &protocol.Hover{
		Contents: markdown(hover.Contents),
		Range:    &r,
	}, nil
}

func (ls *LSPServer) workspaceDidChangeConfiguration(ctx *glsp.Context, params *protocol.DidChangeConfigurationParams) error {
	values, ok := config.FromLSP(params.Settings)
	if !ok {
		return nil
	}
	ls.mu.Lock()
	ls.clientSettings = values
	ls.mu.Unlock()
	ls.reloadSettings()
	return nil
}

func (ls *LSPServer) configChanged(event WatchEvent) {
	ls.log.Infof("configuration changed: %s", event.Path)
	ls.reloadSettings()
}

// reloadSettings layers the client's settings over the configuration file
// and relints every open document.
func (ls *LSPServer) reloadSettings() {
	settings, err := config.LoadDir(ls.workspace.RootDir())
	if err != nil {
		ls.log.Errorf("%s", err)
		settings = config.Default()
	}
	ls.mu.Lock()
	values := ls.clientSettings
	ls.mu.Unlock()
	if values != nil {
		merged, err := settings.Apply(values)
		if err != nil {
			ls.log.Errorf("%s", err)
		} else {
			settings = merged
		}
	}
	ls.workspace.SetSettings(settings)
	for _, uri := range ls.workspace.URIs() {
		ls.publish(uri)
		ls.workspace.RequestLint(uri, lint.TriggerOnSave)
	}
}

// publishLater is called from lint goroutines.
func (ls *LSPServer) publishLater(uri string) {
	ls.publish(uri)
}

func (ls *LSPServer) publish(uri string) {
	doc := ls.workspace.Document(uri)
	if doc == nil {
		return
	}
	diagnostics := []protocol.Diagnostic{}
	for _, d := range ls.workspace.Diagnostics(uri) {
		diagnostics = append(diagnostics, toProtocolDiagnostic(doc.Lines, d))
	}
	ls.notifyDiagnostics(uri, diagnostics)
}

func (ls *LSPServer) notifyDiagnostics(uri string, diagnostics []protocol.Diagnostic) {
	ls.mu.Lock()
	notify := ls.notify
	ls.mu.Unlock()
	if notify == nil {
		return
	}
	notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func toOffset(lines *lex.LineIndex, pos protocol.Position) int {
	return lines.OffsetAt(lex.Position{Line: int(pos.Line), Column: int(pos.Character)})
}

func toPosition(lines *lex.LineIndex, offset int) protocol.Position {
	pos := lines.PositionAt(offset)
	return protocol.Position{Line: protocol.UInteger(pos.Line), Character: protocol.UInteger(pos.Column)}
}

func toRange(lines *lex.LineIndex, start, end int) protocol.Range {
	return protocol.Range{Start: toPosition(lines, start), End: toPosition(lines, end)}
}

func toProtocolDiagnostic(lines *lex.LineIndex, d Diagnostic) protocol.Diagnostic {
	severity := toProtocolSeverity(d.Severity)
	source := d.Source
	return protocol.Diagnostic{
		Range:    toRange(lines, d.Start, d.End),
		Severity: &severity,
		Source:   &source,
		Message:  d.Message,
	}
}

func toProtocolSeverity(s lint.Severity) protocol.DiagnosticSeverity {
	switch s {
	case lint.SeverityError:
		return protocol.DiagnosticSeverityError
	case lint.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case lint.SeverityHint:
		return protocol.DiagnosticSeverityHint
	default:
		return protocol.DiagnosticSeverityInformation
	}
}

func toProtocolKind(kind CompletionKind) protocol.CompletionItemKind {
	if kind == CompletionSnippet {
		return protocol.CompletionItemKindSnippet
	}
	return protocol.CompletionItemKindKeyword
}

func markdown(value string) protocol.MarkupContent {
	return protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: value}
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
