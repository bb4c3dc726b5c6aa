package server

import (
	"github.com/pordosol/pordosol-ls/internal/pordosol"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// onFormatting replaces the whole document when re-indenting changes it.
func (s *Server) onFormatting(_ *glsp.Context, p *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	m, ok := s.state.Model(p.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	formatted := pordosol.Format(m.Text, indentWidth(p.Options))
	if formatted == m.Text {
		return []protocol.TextEdit{}, nil
	}
	return []protocol.TextEdit{{Range: m.FullRange(), NewText: formatted}}, nil
}

// indentWidth reads tabSize from the request; JSON numbers decode as float64.
func indentWidth(opts protocol.FormattingOptions) int {
	switch v := opts[protocol.FormattingOptionTabSize].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return pordosol.DefaultIndentWidth
}
