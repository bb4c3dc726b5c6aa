package pordosol

import (
	"strings"
	"unicode"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ContextKind is the classified cursor situation.
type ContextKind int

const (
	ContextTopLevel ContextKind = iota
	ContextClassBody
	ContextCondition
	ContextAfterAssignment
	ContextInterpolation
	ContextMemberAccess
	ContextParamList
)

func (k ContextKind) String() string {
	switch k {
	case ContextClassBody:
		return "class-body"
	case ContextCondition:
		return "condition-expr"
	case ContextAfterAssignment:
		return "after-assignment"
	case ContextInterpolation:
		return "string-interpolation"
	case ContextMemberAccess:
		return "member-access"
	case ContextParamList:
		return "param-list"
	default:
		return "top-level"
	}
}

// CompletionContext tells completion which suggestions make sense at the cursor.
type CompletionContext struct {
	Kind ContextKind
	// EnclosingClass is the class whose body holds the cursor, or the class of
	// the receiver for member access.
	EnclosingClass string
	// Receiver is the name left of '.' for member access.
	Receiver string
	// PartialText is the identifier fragment being typed.
	PartialText string
	// WantsClassName is set after 'novo '.
	WantsClassName bool
}

// Classify determines the completion context at pos. The result is advisory:
// on any internal failure it degrades to a top-level context.
func Classify(m *Model, pos protocol.Position, linePrefix string) (ctx CompletionContext) {
	partial := trailingIdent(linePrefix)
	defer func() {
		if recover() != nil {
			ctx = CompletionContext{Kind: ContextTopLevel, PartialText: partial}
		}
	}()

	toks := withoutComments(Scan(linePrefix))

	if inInterpolation(toks) {
		return CompletionContext{Kind: ContextInterpolation, PartialText: partial}
	}

	if m != nil {
		if b := m.Structure.BlockAt(m.Offset(pos)); b.Kind == BlockClass {
			return CompletionContext{Kind: ContextClassBody, EnclosingClass: b.Name, PartialText: partial}
		}
	}

	if inOpenCondition(toks, linePrefix) {
		return CompletionContext{Kind: ContextCondition, PartialText: partial}
	}

	if i := strings.LastIndex(linePrefix, "novo "); i >= 0 {
		after := strings.TrimLeft(linePrefix[i+len("novo "):], " \t")
		if after == trailingIdent(after) {
			return CompletionContext{Kind: ContextAfterAssignment, PartialText: after, WantsClassName: true}
		}
	}

	if recv, ok := memberReceiver(linePrefix, partial); ok && m != nil {
		if sym, ok := m.Symbols.Lookup(recv); ok {
			class := sym.Type
			if sym.Kind == SymbolClass {
				class = sym.Name
			}
			return CompletionContext{Kind: ContextMemberAccess, Receiver: recv, EnclosingClass: class, PartialText: partial}
		}
	}

	for _, t := range toks {
		if t.Kind == TokenOperator && (t.Text == "=" || t.Text == "+=" || t.Text == "-=") {
			return CompletionContext{Kind: ContextAfterAssignment, PartialText: partial}
		}
	}

	if inOpenParamList(toks) {
		return CompletionContext{Kind: ContextParamList, PartialText: partial}
	}

	return CompletionContext{Kind: ContextTopLevel, PartialText: partial}
}

func withoutComments(toks []Token) []Token {
	out := toks[:0:0]
	for _, t := range toks {
		if t.Kind != TokenComment {
			out = append(out, t)
		}
	}
	return out
}

// inInterpolation reports whether the prefix ends inside the {...} of an
// unfinished $"..." string.
func inInterpolation(toks []Token) bool {
	if len(toks) == 0 {
		return false
	}
	last := toks[len(toks)-1]
	if last.Kind != TokenString || !last.Interpolated || !last.Unterminated {
		return false
	}
	depth := 0
	for _, r := range strings.TrimPrefix(last.Text, `$"`) {
		switch r {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		}
	}
	return depth > 0
}

// inOpenCondition matches `se (...` / `enquanto (...` with the parenthesis not
// yet closed, and the parenthesis-free `se x` form before 'então'. A bare
// keyword still being typed is not a condition.
func inOpenCondition(toks []Token, linePrefix string) bool {
	if len(toks) == 0 {
		return false
	}
	i := 0
	if toks[0].IsKeyword(KwSenao) {
		i = 1
	}
	if i >= len(toks) || !(toks[i].IsKeyword(KwSe) || toks[i].IsKeyword(KwEnquanto)) {
		return false
	}
	if i == len(toks)-1 && toks[i].End == len(linePrefix) {
		return false
	}
	depth, sawParen := 0, false
	for _, t := range toks[i+1:] {
		switch {
		case t.Is("("):
			depth++
			sawParen = true
		case t.Is(")"):
			depth--
		case t.Is("{") || t.IsKeyword(KwEntao):
			return false
		}
	}
	return depth > 0 || !sawParen
}

// inOpenParamList matches a function header whose parameter list is open.
func inOpenParamList(toks []Token) bool {
	rest, _ := stripModifiers(toks)
	if len(rest) < 3 {
		return false
	}
	isHeader := rest[0].IsKeyword(KwFuncao) || isTypeToken(rest[0]) && rest[1].Kind == TokenIdentifier
	if !isHeader || rest[1].Kind != TokenIdentifier || !rest[2].Is("(") {
		return false
	}
	depth := 0
	for _, t := range rest[2:] {
		switch {
		case t.Is("("):
			depth++
		case t.Is(")"):
			depth--
		}
	}
	return depth > 0
}

// memberReceiver extracts `recv` from a prefix ending in `recv.partial`.
func memberReceiver(prefix, partial string) (string, bool) {
	head := strings.TrimSuffix(prefix, partial)
	if !strings.HasSuffix(head, ".") {
		return "", false
	}
	recv := trailingIdent(strings.TrimSuffix(head, "."))
	return recv, recv != ""
}

// trailingIdent returns the identifier characters at the end of s.
func trailingIdent(s string) string {
	i := len(s)
	for i > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:i])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		i -= size
	}
	return s[i:]
}
