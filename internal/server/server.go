package server

import (
	"sync"

	"github.com/pordosol/pordosol-ls/internal/analyzer"
	"github.com/pordosol/pordosol-ls/internal/config"
	"github.com/pordosol/pordosol-ls/internal/state"
	"github.com/pordosol/pordosol-ls/internal/utils"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"
)

const lsName = "pordosol-ls"

var version = "0.1.0"

var logger = commonlog.GetLogger("pordosol.server")

// Server is the language server.
type Server struct {
	config   *config.Config
	state    *state.State
	analyzer analyzer.Analyzer
	h        protocol.Handler

	// mu guards global and hasConfigurationCapability.
	mu                         sync.RWMutex
	global                     config.Settings
	hasConfigurationCapability bool

	// publishMu serialises reading diagnostics and sending them, so the last
	// notification for a document reflects its newest model.
	publishMu sync.Mutex
	pending   sync.WaitGroup
}

// NewServer creates a new server.
func NewServer(cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	s := &Server{
		config:   cfg,
		state:    state.NewState(),
		analyzer: analyzer.NewPorDoSolAnalyzer(nil),
		global:   cfg.Global,
	}
	s.h = protocol.Handler{
		Initialize:                      s.initialize,
		Initialized:                     s.initialized,
		Shutdown:                        s.shutdown,
		SetTrace:                        s.setTrace,
		WorkspaceDidChangeConfiguration: s.didChangeConfiguration,
		TextDocumentDidOpen:             s.didOpen,
		TextDocumentDidChange:           s.didChange,
		TextDocumentDidClose:            s.didClose,
		TextDocumentCompletion:          s.onCompletion,
		CompletionItemResolve:           s.onCompletionResolve,
		TextDocumentHover:               s.onHover,
		TextDocumentDefinition:          s.onDefinition,
		TextDocumentReferences:          s.onReferences,
		TextDocumentDocumentSymbol:      s.onDocumentSymbol,
		TextDocumentCodeAction:          s.onCodeAction,
		TextDocumentFormatting:          s.onFormatting,
	}
	return s
}

// Run serves the protocol over stdin and stdout until the client exits.
func (s *Server) Run(debug bool) error {
	server := glspserver.NewServer(&s.h, lsName, debug)
	return server.RunStdio()
}

func (s *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	caps := s.h.CreateServerCapabilities()
	openClose := true
	change := protocol.TextDocumentSyncKindIncremental
	caps.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &openClose,
		Change:    &change,
	}
	resolve := true
	caps.CompletionProvider = &protocol.CompletionOptions{
		ResolveProvider:   &resolve,
		TriggerCharacters: []string{".", "{", " "},
	}
	caps.CodeActionProvider = &protocol.CodeActionOptions{
		CodeActionKinds: []protocol.CodeActionKind{protocol.CodeActionKindQuickFix},
	}

	if params.RootURI != nil {
		s.config.WorkspaceRoot = utils.UriToPath(*params.RootURI)
	} else if len(params.WorkspaceFolders) > 0 {
		s.config.WorkspaceRoot = utils.UriToPath(params.WorkspaceFolders[0].URI)
	} else {
		s.config.WorkspaceRoot = "."
	}

	s.config.Load()
	if params.InitializationOptions != nil {
		s.config.Global = config.FromAny(params.InitializationOptions, s.config.Global)
	}

	hasConfiguration := false
	if ws := params.Capabilities.Workspace; ws != nil && ws.Configuration != nil {
		hasConfiguration = *ws.Configuration
	}

	s.mu.Lock()
	s.global = s.config.Global
	s.hasConfigurationCapability = hasConfiguration
	s.mu.Unlock()

	logger.Infof("initialize: root %s, workspace/configuration %t", s.config.WorkspaceRoot, hasConfiguration)

	return protocol.InitializeResult{
		Capabilities: caps,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error { return nil }

func (s *Server) shutdown(_ *glsp.Context) error {
	s.pending.Wait()
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, p *protocol.SetTraceParams) error {
	protocol.SetTraceValue(p.Value)
	return nil
}

func (s *Server) didOpen(ctx *glsp.Context, p *protocol.DidOpenTextDocumentParams) error {
	s.state.Open(p.TextDocument.URI, p.TextDocument.LanguageID, p.TextDocument.Version, p.TextDocument.Text)
	s.validate(ctx, p.TextDocument.URI)
	return nil
}

func (s *Server) didChange(ctx *glsp.Context, p *protocol.DidChangeTextDocumentParams) error {
	doc, ok := s.state.GetDocument(p.TextDocument.URI)
	if !ok {
		return nil
	}
	text, _ := doc.Text()

	for _, c := range p.ContentChanges {
		switch ch := c.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = ch.Text
		case protocol.TextDocumentContentChangeEvent:
			if ch.Range == nil {
				text = ch.Text
				continue
			}
			start := ch.Range.Start.IndexIn(text)
			end := ch.Range.End.IndexIn(text)
			if start >= 0 && end >= start && end <= len(text) {
				text = text[:start] + ch.Text + text[end:]
			}
		}
	}

	if _, ok := s.state.Change(p.TextDocument.URI, p.TextDocument.Version, text); ok {
		s.validate(ctx, p.TextDocument.URI)
	}
	return nil
}

func (s *Server) didClose(ctx *glsp.Context, p *protocol.DidCloseTextDocumentParams) error {
	s.state.Close(p.TextDocument.URI)
	if ctx != nil && ctx.Notify != nil {
		ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
			URI:         p.TextDocument.URI,
			Diagnostics: []protocol.Diagnostic{},
		})
	}
	return nil
}
