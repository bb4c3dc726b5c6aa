package analyzer

import (
	"github.com/pordosol/pordosol-ls/internal/docs"
	"github.com/pordosol/pordosol-ls/internal/pordosol"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Any analyzer may implement this contract. Features are opt-in through the
// provider interfaces below; the server checks for them per request.
type Analyzer interface {
	LanguageID() string
}

type CompletionProvider interface {
	OnCompletion(model *pordosol.Model, pos protocol.Position) []protocol.CompletionItem
	ResolveCompletion(item *protocol.CompletionItem) *protocol.CompletionItem
}

type HoverProvider interface {
	OnHover(model *pordosol.Model, pos protocol.Position) *protocol.Hover
}

type DefinitionProvider interface {
	OnDefinition(uri protocol.DocumentUri, model *pordosol.Model, pos protocol.Position) []protocol.Location
}

type ReferencesProvider interface {
	OnReferences(uri protocol.DocumentUri, model *pordosol.Model, pos protocol.Position, includeDeclaration bool) []protocol.Location
}

type DocumentSymbolProvider interface {
	OnDocumentSymbol(model *pordosol.Model) []protocol.DocumentSymbol
}

type CodeActionProvider interface {
	OnCodeAction(context *glsp.Context, model *pordosol.Model, params *protocol.CodeActionParams) ([]protocol.CodeAction, error)
}

// LanguageID is the identifier clients use for Por Do Sol documents.
const LanguageID = "pordosol"

type porDoSolAnalyzer struct {
	docs *docs.Table
}

// NewPorDoSolAnalyzer returns the analyzer serving every feature for Por Do
// Sol documents. A nil table selects the embedded documentation.
func NewPorDoSolAnalyzer(table *docs.Table) Analyzer {
	if table == nil {
		table = docs.Default()
	}
	return &porDoSolAnalyzer{docs: table}
}

func (a *porDoSolAnalyzer) LanguageID() string {
	return LanguageID
}
