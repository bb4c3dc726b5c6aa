package server

import (
	"github.com/pordosol/pordosol-ls/internal/analyzer"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) onDocumentSymbol(_ *glsp.Context, p *protocol.DocumentSymbolParams) (any, error) {
	m, ok := s.state.Model(p.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	if provider, ok := s.analyzer.(analyzer.DocumentSymbolProvider); ok {
		if symbols := provider.OnDocumentSymbol(m); len(symbols) > 0 {
			return symbols, nil
		}
	}
	return []protocol.DocumentSymbol{}, nil
}
