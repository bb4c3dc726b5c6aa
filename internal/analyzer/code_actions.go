package analyzer

import (
	"fmt"

	"github.com/pordosol/pordosol-ls/internal/pordosol"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// OnCodeAction offers quick fixes for the diagnostics in the request.
func (a *porDoSolAnalyzer) OnCodeAction(_ *glsp.Context, m *pordosol.Model, params *protocol.CodeActionParams) ([]protocol.CodeAction, error) {
	if m == nil {
		return nil, nil
	}
	uri := params.TextDocument.URI

	var actions []protocol.CodeAction
	for _, d := range params.Context.Diagnostics {
		var (
			title string
			edits []protocol.TextEdit
		)
		switch diagnosticCode(d) {
		case pordosol.CodeMissingTerminator:
			title = "Adicionar ';'"
			edits = []protocol.TextEdit{insertAt(statementEnd(m, d.Range), ";")}

		case pordosol.CodeStaticMemberRequired:
			title = "Adicionar 'estatico'"
			edits = []protocol.TextEdit{insertAt(d.Range.Start, "estatico ")}

		case pordosol.CodeLocalizationHint:
			tok, ok := tokenAtStart(m, d.Range)
			if !ok {
				continue
			}
			native, ok := pordosol.ForeignKeywords[tok.Text]
			if !ok {
				continue
			}
			title = fmt.Sprintf("Substituir '%s' por '%s'", tok.Text, native)
			edits = []protocol.TextEdit{{Range: tok.Range(), NewText: native}}

		case pordosol.CodeClassNaming:
			tok, ok := tokenAtStart(m, d.Range)
			if !ok {
				continue
			}
			name := capitalize(tok.Text)
			title = fmt.Sprintf("Renomear classe para '%s'", name)
			edits = renameEdits(m, tok.Text, name)

		case pordosol.CodeReservedKeywordMisuse:
			tok, ok := tokenAtStart(m, d.Range)
			if !ok {
				continue
			}
			cls := m.Structure.BlockAt(tok.Start)
			if cls.Kind != pordosol.BlockClass || cls.Name == "" {
				continue
			}
			title = fmt.Sprintf("Usar '%s' como construtor", cls.Name)
			edits = []protocol.TextEdit{{Range: tok.Range(), NewText: cls.Name}}

		default:
			continue
		}

		actions = append(actions, protocol.CodeAction{
			Title:       title,
			Kind:        ptr(protocol.CodeActionKindQuickFix),
			Diagnostics: []protocol.Diagnostic{d},
			IsPreferred: ptr(true),
			Edit: &protocol.WorkspaceEdit{
				Changes: map[protocol.DocumentUri][]protocol.TextEdit{uri: edits},
			},
		})
	}
	return actions, nil
}

func insertAt(pos protocol.Position, text string) protocol.TextEdit {
	return protocol.TextEdit{Range: protocol.Range{Start: pos, End: pos}, NewText: text}
}

// statementEnd is the end of the last code token on the line of rng,
// so a trailing comment stays after the inserted text.
func statementEnd(m *pordosol.Model, rng protocol.Range) protocol.Position {
	end, found := rng.End, false
	for _, tok := range m.Tokens {
		if tok.Line > int(rng.Start.Line) {
			break
		}
		if tok.Line == int(rng.Start.Line) && tok.Kind != pordosol.TokenComment {
			end, found = tok.Range().End, true
		}
	}
	if !found {
		return rng.End
	}
	return end
}

func tokenAtStart(m *pordosol.Model, rng protocol.Range) (pordosol.Token, bool) {
	tok, ok := m.TokenAt(m.Offset(rng.Start))
	if !ok || tok.Range().Start != rng.Start {
		return pordosol.Token{}, false
	}
	return tok, true
}

// renameEdits rewrites the declaration and every reference of name.
func renameEdits(m *pordosol.Model, name, newName string) []protocol.TextEdit {
	sym, ok := m.Symbols.Lookup(name)
	if !ok {
		return nil
	}
	edits := []protocol.TextEdit{{Range: sym.Location, NewText: newName}}
	for _, ref := range sym.References {
		edits = append(edits, protocol.TextEdit{Range: ref, NewText: newName})
	}
	return edits
}
