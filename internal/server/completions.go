package server

import (
	"github.com/pordosol/pordosol-ls/internal/analyzer"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) onCompletion(_ *glsp.Context, p *protocol.CompletionParams) (any, error) {
	m, ok := s.state.Model(p.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	provider, ok := s.analyzer.(analyzer.CompletionProvider)
	if !ok {
		return nil, nil
	}
	items := provider.OnCompletion(m, p.Position)
	if items == nil {
		items = []protocol.CompletionItem{}
	}
	return items, nil
}

func (s *Server) onCompletionResolve(_ *glsp.Context, item *protocol.CompletionItem) (*protocol.CompletionItem, error) {
	if provider, ok := s.analyzer.(analyzer.CompletionProvider); ok {
		return provider.ResolveCompletion(item), nil
	}
	return item, nil
}
