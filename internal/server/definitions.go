package server

import (
	"github.com/pordosol/pordosol-ls/internal/analyzer"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) onDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	m, ok := s.state.Model(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	if provider, ok := s.analyzer.(analyzer.DefinitionProvider); ok {
		locations := provider.OnDefinition(params.TextDocument.URI, m, params.Position)
		if len(locations) > 0 {
			return locations, nil
		}
	}

	return nil, nil
}

func (s *Server) onReferences(_ *glsp.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	m, ok := s.state.Model(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	if provider, ok := s.analyzer.(analyzer.ReferencesProvider); ok {
		return provider.OnReferences(params.TextDocument.URI, m, params.Position, params.Context.IncludeDeclaration), nil
	}

	return nil, nil
}
