package server

import (
	"github.com/pordosol/pordosol-ls/internal/analyzer"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) onHover(_ *glsp.Context, p *protocol.HoverParams) (*protocol.Hover, error) {
	m, ok := s.state.Model(p.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	if provider, ok := s.analyzer.(analyzer.HoverProvider); ok {
		return provider.OnHover(m, p.Position), nil
	}
	return nil, nil
}
