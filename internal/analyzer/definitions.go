package analyzer

import (
	"github.com/pordosol/pordosol-ls/internal/pordosol"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (a *porDoSolAnalyzer) OnDefinition(uri protocol.DocumentUri, m *pordosol.Model, pos protocol.Position) []protocol.Location {
	if m == nil {
		return nil
	}
	sym, _, ok := m.SymbolAt(pos)
	if !ok {
		return nil
	}
	return []protocol.Location{{URI: uri, Range: sym.Location}}
}

func (a *porDoSolAnalyzer) OnReferences(uri protocol.DocumentUri, m *pordosol.Model, pos protocol.Position, includeDeclaration bool) []protocol.Location {
	if m == nil {
		return nil
	}
	sym, _, ok := m.SymbolAt(pos)
	if !ok {
		return nil
	}
	locations := make([]protocol.Location, 0, len(sym.References)+1)
	if includeDeclaration {
		locations = append(locations, protocol.Location{URI: uri, Range: sym.Location})
	}
	for _, ref := range sym.References {
		locations = append(locations, protocol.Location{URI: uri, Range: ref})
	}
	return locations
}
