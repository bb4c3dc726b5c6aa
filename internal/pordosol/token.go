package pordosol

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// TokenKind classifies a scanned token.
type TokenKind int

const (
	TokenUnknown TokenKind = iota
	TokenKeyword
	TokenIdentifier
	TokenString
	TokenNumber
	TokenOperator
	TokenPunctuation
	TokenComment
)

func (k TokenKind) String() string {
	switch k {
	case TokenKeyword:
		return "keyword"
	case TokenIdentifier:
		return "identifier"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenOperator:
		return "operator"
	case TokenPunctuation:
		return "punctuation"
	case TokenComment:
		return "comment"
	default:
		return "unknown"
	}
}

// Token is a lexical token. Start and End are byte offsets into the source,
// Line is 0-based and Column counts UTF-16 code units so tokens map directly
// onto LSP positions.
type Token struct {
	Kind   TokenKind
	Text   string
	Start  int
	End    int
	Line   int
	Column int
	// Set on strings that reached end of line (or input) without a closing quote.
	Unterminated bool
	// Set on strings written with the $"..." prefix.
	Interpolated bool
}

// Is reports whether the token is a keyword or punctuation/operator with the given text.
func (t Token) Is(text string) bool {
	switch t.Kind {
	case TokenKeyword, TokenOperator, TokenPunctuation:
		return t.Text == text
	}
	return false
}

// IsKeyword reports whether the token is the given keyword, accepting the
// unaccented spelling as well.
func (t Token) IsKeyword(k Keyword) bool {
	return t.Kind == TokenKeyword && LookupKeyword(t.Text) == k
}

// Position returns the LSP position of the token start.
func (t Token) Position() protocol.Position {
	return protocol.Position{Line: uint32(t.Line), Character: uint32(t.Column)}
}

// Range returns the LSP range covered by the token. Tokens never span lines.
func (t Token) Range() protocol.Range {
	return protocol.Range{
		Start: t.Position(),
		End:   protocol.Position{Line: uint32(t.Line), Character: uint32(t.Column + utf16Len(t.Text))},
	}
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}
