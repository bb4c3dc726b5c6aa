package analyzer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pordosol/pordosol-ls/internal/docs"
	"github.com/pordosol/pordosol-ls/internal/pordosol"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func ptr[T any](v T) *T {
	return &v
}

// hasPrefixFold reports whether s starts with prefix, ignoring case.
func hasPrefixFold(s, prefix string) bool {
	if len(prefix) > len(s) {
		return false
	}
	return strings.EqualFold(s[:len(prefix)], prefix)
}

// capitalize upper-cases the first rune of s.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func completionKind(cat docs.Category) protocol.CompletionItemKind {
	switch cat {
	case docs.CategoryFunction:
		return protocol.CompletionItemKindFunction
	case docs.CategoryType:
		return protocol.CompletionItemKindTypeParameter
	case docs.CategoryValue:
		return protocol.CompletionItemKindValue
	case docs.CategoryOperator:
		return protocol.CompletionItemKindOperator
	default:
		return protocol.CompletionItemKindKeyword
	}
}

func symbolCompletionKind(k pordosol.SymbolKind) protocol.CompletionItemKind {
	switch k {
	case pordosol.SymbolFunction:
		return protocol.CompletionItemKindFunction
	case pordosol.SymbolClass:
		return protocol.CompletionItemKindClass
	case pordosol.SymbolProperty:
		return protocol.CompletionItemKindProperty
	case pordosol.SymbolMethod:
		return protocol.CompletionItemKindMethod
	case pordosol.SymbolConstructor:
		return protocol.CompletionItemKindConstructor
	default:
		return protocol.CompletionItemKindVariable
	}
}

func documentSymbolKind(k pordosol.SymbolKind) protocol.SymbolKind {
	switch k {
	case pordosol.SymbolFunction:
		return protocol.SymbolKindFunction
	case pordosol.SymbolClass:
		return protocol.SymbolKindClass
	case pordosol.SymbolProperty:
		return protocol.SymbolKindProperty
	case pordosol.SymbolMethod:
		return protocol.SymbolKindMethod
	case pordosol.SymbolConstructor:
		return protocol.SymbolKindConstructor
	default:
		return protocol.SymbolKindVariable
	}
}

// kindLabel names a symbol kind for hover text.
func kindLabel(k pordosol.SymbolKind) string {
	switch k {
	case pordosol.SymbolFunction:
		return "função"
	case pordosol.SymbolClass:
		return "classe"
	case pordosol.SymbolProperty:
		return "propriedade"
	case pordosol.SymbolMethod:
		return "método"
	case pordosol.SymbolConstructor:
		return "construtor"
	case pordosol.SymbolParameter:
		return "parâmetro"
	default:
		return "variável"
	}
}

// declaringBlock finds the block a class, function or constructor symbol
// opens.
func declaringBlock(m *pordosol.Model, sym *pordosol.Symbol) (*pordosol.Block, bool) {
	for _, b := range m.Structure.Blocks {
		if b.Name == sym.Name && b.NameRange == sym.Location {
			return b, true
		}
	}
	return nil, false
}
