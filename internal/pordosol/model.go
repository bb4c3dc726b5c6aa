package pordosol

import (
	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Model is everything derived from one version of a document. It is built
// wholesale by Analyze and never mutated afterwards.
type Model struct {
	Text        string
	Lines       []string
	Tokens      []Token
	Structure   *Structure
	Symbols     *SymbolTable
	Diagnostics []Diagnostic
}

// Analyze runs Scanner, Structural Tracker, Symbol Indexer and the rule
// engine over text.
func Analyze(text string) *Model {
	tokens := Scan(text)
	st := Track(tokens)
	snap := NewSnapshot(text, tokens, st)
	return &Model{
		Text:        text,
		Lines:       snap.Lines,
		Tokens:      tokens,
		Structure:   st,
		Symbols:     safeIndex(tokens, st),
		Diagnostics: Evaluate(snap, DefaultRules),
	}
}

func safeIndex(tokens []Token, st *Structure) (t *SymbolTable) {
	defer func() {
		if rec := recover(); rec != nil {
			commonlog.GetLogger("pordosol.symbols").Errorf("indexing failed: %v", rec)
			t = newSymbolTable()
		}
	}()
	return Index(tokens, st)
}

// Offset converts an LSP position to a byte offset, clamped to the text.
func (m *Model) Offset(pos protocol.Position) int {
	off := pos.IndexIn(m.Text)
	if off < 0 {
		return 0
	}
	if off > len(m.Text) {
		return len(m.Text)
	}
	return off
}

// LinePrefix returns the text of pos's line up to pos.
func (m *Model) LinePrefix(pos protocol.Position) string {
	if int(pos.Line) >= len(m.Lines) {
		return ""
	}
	line := m.Lines[pos.Line]
	lineStart := protocol.Position{Line: pos.Line, Character: 0}.IndexIn(m.Text)
	end := m.Offset(pos) - lineStart
	if end < 0 {
		return ""
	}
	if end > len(line) {
		end = len(line)
	}
	return line[:end]
}

// TokenAt returns the token covering offset. When offset sits between two
// tokens the identifier or keyword wins, so a caret right after a word still
// finds it.
func (m *Model) TokenAt(offset int) (Token, bool) {
	var found *Token
	for i := range m.Tokens {
		tok := &m.Tokens[i]
		if tok.Start > offset {
			break
		}
		if offset < tok.Start || offset > tok.End {
			continue
		}
		if found == nil || tok.Kind == TokenIdentifier || tok.Kind == TokenKeyword {
			found = tok
		}
	}
	if found == nil {
		return Token{}, false
	}
	return *found, true
}

// SymbolAt resolves the identifier at pos against the symbol table.
func (m *Model) SymbolAt(pos protocol.Position) (*Symbol, Token, bool) {
	tok, ok := m.TokenAt(m.Offset(pos))
	if !ok || tok.Kind != TokenIdentifier {
		return nil, tok, false
	}
	sym, ok := m.Symbols.Lookup(tok.Text)
	return sym, tok, ok
}

// FullRange spans the whole document, for edits that replace all of it.
func (m *Model) FullRange() protocol.Range {
	last := len(m.Lines) - 1
	if last < 0 {
		return protocol.Range{}
	}
	return protocol.Range{
		End: protocol.Position{Line: uint32(last), Character: uint32(utf16Len(m.Lines[last]))},
	}
}
