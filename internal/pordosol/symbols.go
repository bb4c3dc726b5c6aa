package pordosol

import (
	"sort"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// SymbolKind says what a declared name refers to.
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
	SymbolClass
	SymbolProperty
	SymbolMethod
	SymbolConstructor
	SymbolParameter
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolFunction:
		return "function"
	case SymbolClass:
		return "class"
	case SymbolProperty:
		return "property"
	case SymbolMethod:
		return "method"
	case SymbolConstructor:
		return "constructor"
	case SymbolParameter:
		return "parameter"
	default:
		return "variable"
	}
}

// Symbol is a declared name together with the places it is used.
type Symbol struct {
	Name     string
	Kind     SymbolKind
	Location protocol.Range
	// Offset is the byte offset of the declaring identifier.
	Offset int
	// Block is the block the declaration appears in.
	Block *Block
	// Type is the syntactic type written at the declaration: a type keyword,
	// "var", a class name, or a function's return type. Empty when absent.
	Type string
	// Detail is the declaration header as written, for hover.
	Detail string
	Static bool
	// Container names the class owning a property, method or constructor.
	Container  string
	References []protocol.Range
	// Members lists properties, methods and constructors of a class.
	Members []*Symbol
}

// SymbolTable holds one symbol per declared name. Redeclaring a name replaces
// the earlier entry.
type SymbolTable struct {
	byName map[string]*Symbol
}

func newSymbolTable() *SymbolTable {
	return &SymbolTable{byName: make(map[string]*Symbol)}
}

// Lookup finds the symbol declared with name.
func (t *SymbolTable) Lookup(name string) (*Symbol, bool) {
	if t == nil {
		return nil, false
	}
	s, ok := t.byName[name]
	return s, ok
}

// Len returns the number of symbols.
func (t *SymbolTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byName)
}

// All returns every symbol ordered by declaration offset.
func (t *SymbolTable) All() []*Symbol {
	if t == nil {
		return nil
	}
	out := make([]*Symbol, 0, len(t.byName))
	for _, s := range t.byName {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out
}

// OfKind returns the symbols of the given kinds ordered by declaration offset.
func (t *SymbolTable) OfKind(kinds ...SymbolKind) []*Symbol {
	var out []*Symbol
	for _, s := range t.All() {
		for _, k := range kinds {
			if s.Kind == k {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// Index builds the symbol table from tokens and the tracked structure.
func Index(tokens []Token, st *Structure) *SymbolTable {
	t := newSymbolTable()
	classes := make(map[*Block]*Symbol)

	declare := func(s *Symbol) {
		t.byName[s.Name] = s
	}
	addMember := func(owner *Block, s *Symbol) {
		if owner == nil || owner.Kind != BlockClass {
			return
		}
		s.Container = owner.Name
		if cls, ok := classes[owner]; ok {
			cls.Members = append(cls.Members, s)
		}
	}

	for _, stmt := range st.Statements {
		rest, static := stripModifiers(stmt.Tokens)
		if len(rest) == 0 {
			continue
		}

		if b := stmt.Opened; b != nil {
			switch b.Kind {
			case BlockClass:
				if b.Name == "" {
					continue
				}
				cls := &Symbol{
					Name:     b.Name,
					Kind:     SymbolClass,
					Location: b.NameRange,
					Offset:   nameOffset(rest, b.Name),
					Block:    stmt.Block,
					Detail:   joinTokens(stmt.Tokens),
					Static:   b.Static,
				}
				classes[b] = cls
				declare(cls)

			case BlockFunction:
				if b.Name == "" {
					continue
				}
				fn := &Symbol{
					Name:     b.Name,
					Kind:     SymbolFunction,
					Location: b.NameRange,
					Offset:   nameOffset(rest, b.Name),
					Block:    stmt.Block,
					Type:     returnType(rest, b.Name),
					Detail:   joinTokens(stmt.Tokens),
					Static:   static,
				}
				if stmt.Block.Kind == BlockClass {
					fn.Kind = SymbolMethod
					addMember(stmt.Block, fn)
				}
				declare(fn)
				for _, p := range parameters(rest, b) {
					declare(p)
				}

			case BlockConstructor:
				ctor := &Symbol{
					Name:     b.Name,
					Kind:     SymbolConstructor,
					Location: b.NameRange,
					Offset:   rest[0].Start,
					Block:    stmt.Block,
					Type:     b.Name,
					Detail:   joinTokens(stmt.Tokens),
					Static:   static,
				}
				addMember(stmt.Block, ctor)
				for _, p := range parameters(rest, b) {
					declare(p)
				}

			case BlockPropertyAccessor:
				if stmt.Block.Kind != BlockClass || len(rest) != 2 {
					continue
				}
				prop := &Symbol{
					Name:     rest[1].Text,
					Kind:     SymbolProperty,
					Location: rest[1].Range(),
					Offset:   rest[1].Start,
					Block:    stmt.Block,
					Type:     rest[0].Text,
					Detail:   joinTokens(stmt.Tokens),
					Static:   static,
				}
				addMember(stmt.Block, prop)
				declare(prop)

			case BlockLoop:
				// para (inteiro i = 0; ...)
				if len(rest) > 3 && rest[1].Is("(") {
					if v := variableDecl(rest[2:], b, static); v != nil {
						declare(v)
					}
				}
			}
			continue
		}

		v := variableDecl(rest, stmt.Block, static)
		if v == nil {
			continue
		}
		v.Detail = joinTokens(stmt.Tokens)
		if stmt.Block.Kind == BlockClass {
			v.Kind = SymbolProperty
			addMember(stmt.Block, v)
		}
		declare(v)
	}

	idents := make(map[string][]Token)
	for _, tok := range tokens {
		if tok.Kind == TokenIdentifier {
			idents[tok.Text] = append(idents[tok.Text], tok)
		}
	}
	for name, s := range t.byName {
		for _, tok := range idents[name] {
			if tok.Start == s.Offset {
				continue
			}
			s.References = append(s.References, tok.Range())
		}
	}

	return t
}

// variableDecl matches `type name`, `type name = ...` and `var name = ...`.
func variableDecl(rest []Token, block *Block, static bool) *Symbol {
	if len(rest) < 2 || !isTypeToken(rest[0]) || rest[1].Kind != TokenIdentifier {
		return nil
	}
	if len(rest) > 2 && !rest[2].Is("=") {
		return nil
	}
	return &Symbol{
		Name:     rest[1].Text,
		Kind:     SymbolVariable,
		Location: rest[1].Range(),
		Offset:   rest[1].Start,
		Block:    block,
		Type:     rest[0].Text,
		Static:   static,
	}
}

// parameters extracts `type name` pairs from the first parenthesised list of
// a function or constructor header.
func parameters(header []Token, owner *Block) []*Symbol {
	open := -1
	for i, tok := range header {
		if tok.Is("(") {
			open = i
			break
		}
	}
	if open < 0 {
		return nil
	}
	var params []*Symbol
	var cur []Token
	emit := func() {
		if len(cur) >= 2 && cur[len(cur)-1].Kind == TokenIdentifier && isTypeToken(cur[len(cur)-2]) {
			name := cur[len(cur)-1]
			params = append(params, &Symbol{
				Name:     name.Text,
				Kind:     SymbolParameter,
				Location: name.Range(),
				Offset:   name.Start,
				Block:    owner,
				Type:     cur[len(cur)-2].Text,
				Detail:   joinTokens(cur),
			})
		}
		cur = nil
	}
	depth := 0
	for _, tok := range header[open+1:] {
		switch {
		case tok.Is("(") || tok.Is("["):
			depth++
		case tok.Is(")") || tok.Is("]"):
			if depth == 0 {
				emit()
				return params
			}
			depth--
		case tok.Is(",") && depth == 0:
			emit()
			continue
		}
		cur = append(cur, tok)
	}
	emit()
	return params
}

// returnType reads `=> type` after the parameter list, or the type written
// before the name in `type name(...)` method headers.
func returnType(header []Token, name string) string {
	for i, tok := range header {
		if tok.Is("=>") && i+1 < len(header) {
			return header[i+1].Text
		}
	}
	for i, tok := range header {
		if tok.Kind == TokenIdentifier && tok.Text == name && i > 0 && isTypeToken(header[i-1]) && !header[i-1].IsKeyword(KwFuncao) {
			return header[i-1].Text
		}
	}
	return ""
}

func nameOffset(header []Token, name string) int {
	for _, tok := range header {
		if tok.Kind == TokenIdentifier && tok.Text == name {
			return tok.Start
		}
	}
	if len(header) > 0 {
		return header[0].Start
	}
	return 0
}

func stripModifiers(toks []Token) ([]Token, bool) {
	static := false
	i := 0
	for i < len(toks) && toks[i].Kind == TokenKeyword && IsModifier(LookupKeyword(toks[i].Text)) {
		if toks[i].IsKeyword(KwEstatico) {
			static = true
		}
		i++
	}
	return toks[i:], static
}

// joinTokens renders tokens back to source-like text with conventional spacing.
func joinTokens(toks []Token) string {
	var b strings.Builder
	for i, tok := range toks {
		if i > 0 {
			prev := toks[i-1]
			tight := tok.Is("(") && (prev.Kind == TokenIdentifier || prev.IsKeyword(KwImprima) || prev.IsKeyword(KwConstrutor)) ||
				tok.Is(")") || tok.Is(",") || tok.Is(".") || tok.Is("]") ||
				prev.Is("(") || prev.Is(".") || prev.Is("[")
			if !tight {
				b.WriteByte(' ')
			}
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}
