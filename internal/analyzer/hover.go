package analyzer

import (
	"fmt"
	"strings"

	"github.com/pordosol/pordosol-ls/internal/pordosol"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (a *porDoSolAnalyzer) OnHover(m *pordosol.Model, pos protocol.Position) *protocol.Hover {
	if m == nil {
		return nil
	}
	tok, ok := m.TokenAt(m.Offset(pos))
	if !ok {
		return nil
	}

	var value string
	switch tok.Kind {
	case pordosol.TokenKeyword, pordosol.TokenOperator:
		e, ok := a.docs.ForWord(tok.Text)
		if !ok {
			return nil
		}
		value = e.Hover
		if value == "" {
			value = fmt.Sprintf("**%s** (Por Do Sol)\n\n%s", e.Detail, e.Summary)
		}

	case pordosol.TokenIdentifier:
		if sym, ok := m.Symbols.Lookup(tok.Text); ok {
			value = symbolHover(sym)
		} else if native, ok := pordosol.ForeignKeywords[tok.Text]; ok {
			value = fmt.Sprintf("Use `%s` em vez de `%s` na linguagem Por Do Sol", native, tok.Text)
		} else {
			return nil
		}

	default:
		return nil
	}

	rng := tok.Range()
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: strings.TrimRight(value, "\n"),
		},
		Range: &rng,
	}
}

func symbolHover(sym *pordosol.Symbol) string {
	var b strings.Builder
	detail := sym.Detail
	if detail == "" {
		detail = strings.TrimSpace(sym.Type + " " + sym.Name)
	}
	fmt.Fprintf(&b, "```pordosol\n%s\n```\n\n", detail)
	fmt.Fprintf(&b, "*%s*", kindLabel(sym.Kind))
	if sym.Container != "" {
		fmt.Fprintf(&b, " de `%s`", sym.Container)
	}
	if sym.Type != "" && sym.Kind != pordosol.SymbolClass {
		fmt.Fprintf(&b, " do tipo `%s`", sym.Type)
	}
	if sym.Static {
		b.WriteString(", estático")
	}
	fmt.Fprintf(&b, "\n\n%d referência(s)", len(sym.References))
	return b.String()
}
