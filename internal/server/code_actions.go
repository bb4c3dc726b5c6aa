package server

import (
	"github.com/pordosol/pordosol-ls/internal/analyzer"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) onCodeAction(context *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	m, ok := s.state.Model(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	if provider, ok := s.analyzer.(analyzer.CodeActionProvider); ok {
		codeActions, err := provider.OnCodeAction(context, m, params)
		if err != nil {
			return nil, err
		}
		if len(codeActions) > 0 {
			return codeActions, nil
		}
	}

	return nil, nil
}
