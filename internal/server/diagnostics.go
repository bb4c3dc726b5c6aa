package server

import (
	"github.com/pordosol/pordosol-ls/internal/analyzer"
	"github.com/pordosol/pordosol-ls/internal/config"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// validate publishes the document's diagnostics. It runs in the background
// because fetching per-document settings is a request to the client.
func (s *Server) validate(ctx *glsp.Context, uri protocol.DocumentUri) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		settings := s.documentSettings(ctx, uri)
		s.publish(ctx, uri, settings)
	}()
}

func (s *Server) publish(ctx *glsp.Context, uri protocol.DocumentUri, settings config.Settings) {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	doc, ok := s.state.GetDocument(uri)
	if !ok {
		return
	}
	version := protocol.UInteger(doc.Version())
	diags := analyzer.ProtocolDiagnostics(s.state.Diagnostics(uri, settings))
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Version:     &version,
		Diagnostics: diags,
	})
}

// documentSettings resolves the settings of one document: the cached entry,
// then a workspace/configuration request, then the global settings.
func (s *Server) documentSettings(ctx *glsp.Context, uri protocol.DocumentUri) config.Settings {
	s.mu.RLock()
	global, ask := s.global, s.hasConfigurationCapability
	s.mu.RUnlock()

	if !ask || ctx.Call == nil {
		return global
	}
	if cached, ok := s.state.Settings(uri); ok {
		return cached
	}

	section := config.Section
	var result []any
	ctx.Call(protocol.ServerWorkspaceConfiguration, protocol.ConfigurationParams{
		Items: []protocol.ConfigurationItem{{ScopeURI: &uri, Section: &section}},
	}, &result)

	settings := global
	if len(result) > 0 && result[0] != nil {
		settings = config.FromAny(result[0], global)
	}
	if !s.state.SetSettings(uri, settings) {
		logger.Debugf("dropping settings for closed document %s", uri)
	}
	return settings
}

func (s *Server) didChangeConfiguration(ctx *glsp.Context, p *protocol.DidChangeConfigurationParams) error {
	s.mu.Lock()
	if s.hasConfigurationCapability {
		s.state.ClearSettings()
	} else {
		s.global = config.FromAny(p.Settings, s.config.Global)
	}
	s.mu.Unlock()

	for _, doc := range s.state.Documents() {
		s.validate(ctx, doc.URI)
	}
	return nil
}
