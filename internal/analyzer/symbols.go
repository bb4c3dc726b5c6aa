package analyzer

import (
	"github.com/pordosol/pordosol-ls/internal/pordosol"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// OnDocumentSymbol lists classes with their members, functions and
// variables declared outside functions.
func (a *porDoSolAnalyzer) OnDocumentSymbol(m *pordosol.Model) []protocol.DocumentSymbol {
	if m == nil {
		return nil
	}
	var out []protocol.DocumentSymbol
	for _, sym := range m.Symbols.All() {
		if sym.Container != "" || sym.Kind == pordosol.SymbolParameter {
			continue
		}
		if sym.Kind == pordosol.SymbolVariable && !isOuterScope(sym.Block) {
			continue
		}
		ds := documentSymbol(m, sym)
		for _, member := range sym.Members {
			ds.Children = append(ds.Children, documentSymbol(m, member))
		}
		out = append(out, ds)
	}
	return out
}

func isOuterScope(b *pordosol.Block) bool {
	return b == nil || b.Kind == pordosol.BlockDocument || b.Kind == pordosol.BlockNamespace
}

func documentSymbol(m *pordosol.Model, sym *pordosol.Symbol) protocol.DocumentSymbol {
	ds := protocol.DocumentSymbol{
		Name:           sym.Name,
		Kind:           documentSymbolKind(sym.Kind),
		Range:          sym.Location,
		SelectionRange: sym.Location,
	}
	if sym.Detail != "" {
		ds.Detail = ptr(sym.Detail)
	}
	if b, ok := declaringBlock(m, sym); ok {
		ds.Range = b.Range
	}
	return ds
}
