package pordosol

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// BlockKind says what introduced a brace-delimited region.
type BlockKind int

const (
	BlockDocument BlockKind = iota
	BlockGeneric
	BlockClass
	BlockFunction
	BlockConstructor
	BlockCondition
	BlockLoop
	BlockNamespace
	BlockPropertyAccessor
)

func (k BlockKind) String() string {
	switch k {
	case BlockDocument:
		return "document"
	case BlockClass:
		return "class"
	case BlockFunction:
		return "function"
	case BlockConstructor:
		return "constructor"
	case BlockCondition:
		return "condition"
	case BlockLoop:
		return "loop"
	case BlockNamespace:
		return "namespace"
	case BlockPropertyAccessor:
		return "property-accessor"
	default:
		return "generic"
	}
}

// Block is a node of the block tree. The root is the implicit document block.
type Block struct {
	Kind BlockKind
	Name string
	// NameRange is only meaningful when Name is set.
	NameRange protocol.Range
	// Range spans from the first header token to the closing brace.
	Range protocol.Range
	// Byte offsets of the opening and closing braces; Close is -1 while unclosed.
	Open  int
	Close int

	Parent   *Block
	Children []*Block

	// Static is set on classes declared with the static modifier.
	Static   bool
	Unclosed bool
}

// Depth is the number of ancestors; the document root has depth 0.
func (b *Block) Depth() int {
	d := 0
	for p := b.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

// Contains reports whether a byte offset lies between the block's braces.
func (b *Block) Contains(offset int) bool {
	if b.Parent == nil {
		return true
	}
	return offset > b.Open && (b.Close < 0 || offset <= b.Close)
}

// Group is a parenthesised or bracketed span. EndLine is -1 when the group
// runs to the end of input.
type Group struct {
	Open      Token
	StartLine int
	EndLine   int
	Unclosed  bool
}

// Statement is a run of tokens (comments excluded) ended by ';', '{', '}' or
// end of input. Semicolons inside parentheses do not end a statement.
type Statement struct {
	Tokens []Token
	// Terminator is ";", "{", "}" or "" at end of input.
	Terminator string
	// Block encloses the statement.
	Block *Block
	// Opened is the block introduced by this statement when Terminator is "{".
	Opened *Block
}

// Line returns the line of the first token, or -1 for an empty statement.
func (s Statement) Line() int {
	if len(s.Tokens) == 0 {
		return -1
	}
	return s.Tokens[0].Line
}

// AnomalyKind distinguishes delimiter problems found while tracking.
type AnomalyKind int

const (
	AnomalyUnmatchedCloser AnomalyKind = iota
	AnomalyUnclosedOpener
)

// Anomaly records a delimiter the tracker could not pair.
type Anomaly struct {
	Kind  AnomalyKind
	Token Token
}

// Structure is the output of Track.
type Structure struct {
	Root       *Block
	Blocks     []*Block
	Groups     []Group
	Statements []Statement
	Anomalies  []Anomaly
}

type openGroup struct {
	group int
	token int
}

// Track walks tokens left to right maintaining a stack of open blocks and
// paren groups. It never aborts: unmatched delimiters become anomalies.
func Track(tokens []Token) *Structure {
	root := &Block{Kind: BlockDocument, Open: -1, Close: -1}
	st := &Structure{Root: root}
	stack := []*Block{root}
	blockOpenToken := []int{-1}
	var parens []openGroup

	var cur []Token
	stmtStart := -1

	flush := func(term string, opened *Block) {
		if len(cur) > 0 || opened != nil {
			st.Statements = append(st.Statements, Statement{
				Tokens:     cur,
				Terminator: term,
				Block:      stack[len(stack)-1],
				Opened:     opened,
			})
		}
		cur = nil
		stmtStart = -1
	}

	// Groups still open past a point where they cannot legally continue are
	// given up on so one missing ')' does not swallow the rest of the file.
	dropParensFrom := func(tokenIdx, line int) {
		for len(parens) > 0 && parens[len(parens)-1].token >= tokenIdx {
			p := parens[len(parens)-1]
			parens = parens[:len(parens)-1]
			st.Groups[p.group].Unclosed = true
			st.Groups[p.group].EndLine = line
			st.Anomalies = append(st.Anomalies, Anomaly{Kind: AnomalyUnclosedOpener, Token: st.Groups[p.group].Open})
		}
	}

	for i, tok := range tokens {
		if tok.Kind == TokenComment {
			continue
		}
		switch {
		case tok.Is("(") || tok.Is("["):
			st.Groups = append(st.Groups, Group{Open: tok, StartLine: tok.Line, EndLine: -1})
			parens = append(parens, openGroup{group: len(st.Groups) - 1, token: i})
			if stmtStart < 0 {
				stmtStart = i
			}
			cur = append(cur, tok)

		case tok.Is(")") || tok.Is("]"):
			want := "("
			if tok.Text == "]" {
				want = "["
			}
			if n := len(parens); n > 0 && st.Groups[parens[n-1].group].Open.Text == want {
				st.Groups[parens[n-1].group].EndLine = tok.Line
				parens = parens[:n-1]
			} else {
				st.Anomalies = append(st.Anomalies, Anomaly{Kind: AnomalyUnmatchedCloser, Token: tok})
			}
			if stmtStart < 0 {
				stmtStart = i
			}
			cur = append(cur, tok)

		case tok.Is(";") && len(parens) == 0:
			flush(";", nil)

		case tok.Is("{"):
			if stmtStart >= 0 {
				dropParensFrom(stmtStart, tok.Line)
			}
			parent := stack[len(stack)-1]
			b := classifyHeader(cur, parent)
			b.Open = tok.Start
			b.Close = -1
			b.Range.Start = tok.Position()
			if len(cur) > 0 {
				b.Range.Start = cur[0].Position()
			}
			b.Parent = parent
			parent.Children = append(parent.Children, b)
			st.Blocks = append(st.Blocks, b)
			flush("{", b)
			stack = append(stack, b)
			blockOpenToken = append(blockOpenToken, i)

		case tok.Is("}"):
			flush("}", nil)
			if len(stack) == 1 {
				st.Anomalies = append(st.Anomalies, Anomaly{Kind: AnomalyUnmatchedCloser, Token: tok})
				continue
			}
			dropParensFrom(blockOpenToken[len(blockOpenToken)-1], tok.Line)
			b := stack[len(stack)-1]
			b.Close = tok.Start
			b.Range.End = tok.Range().End
			stack = stack[:len(stack)-1]
			blockOpenToken = blockOpenToken[:len(blockOpenToken)-1]

		default:
			if stmtStart < 0 {
				stmtStart = i
			}
			cur = append(cur, tok)
		}
	}
	flush("", nil)

	dropParensFrom(0, -1)

	var end protocol.Position
	if n := len(tokens); n > 0 {
		end = tokens[n-1].Range().End
	}
	for len(stack) > 1 {
		b := stack[len(stack)-1]
		b.Unclosed = true
		b.Range.End = end
		st.Anomalies = append(st.Anomalies, Anomaly{Kind: AnomalyUnclosedOpener, Token: tokens[blockOpenToken[len(blockOpenToken)-1]]})
		stack = stack[:len(stack)-1]
		blockOpenToken = blockOpenToken[:len(blockOpenToken)-1]
	}
	root.Range.End = end

	return st
}

// BlockAt returns the innermost block containing the byte offset.
func (st *Structure) BlockAt(offset int) *Block {
	b := st.Root
	for {
		var next *Block
		for _, c := range b.Children {
			if c.Contains(offset) {
				next = c
				break
			}
		}
		if next == nil {
			return b
		}
		b = next
	}
}

// InOpenHeader reports whether line sits inside a parenthesised span that
// crosses a line break, i.e. a multi-line header or argument list.
func (st *Structure) InOpenHeader(line int) bool {
	for _, g := range st.Groups {
		switch {
		case g.StartLine < line && (g.EndLine < 0 || g.EndLine >= line):
			return true
		case g.StartLine == line && (g.EndLine < 0 || g.EndLine > line):
			return true
		}
	}
	return false
}

func classifyHeader(header []Token, parent *Block) *Block {
	b := &Block{Kind: BlockGeneric}
	i := 0
	static := false
	for i < len(header) && header[i].Kind == TokenKeyword && IsModifier(LookupKeyword(header[i].Text)) {
		if header[i].IsKeyword(KwEstatico) {
			static = true
		}
		i++
	}
	rest := header[i:]
	if len(rest) == 0 {
		return b
	}
	first := rest[0]

	setName := func(tok Token) {
		b.Name = tok.Text
		b.NameRange = tok.Range()
	}
	nameAfter := func() {
		if len(rest) > 1 && rest[1].Kind == TokenIdentifier {
			setName(rest[1])
		}
	}

	if first.Kind == TokenKeyword {
		switch LookupKeyword(first.Text) {
		case KwClasse:
			b.Kind = BlockClass
			b.Static = static
			nameAfter()
			return b
		case KwEspaco:
			b.Kind = BlockNamespace
			nameAfter()
			return b
		case KwFuncao:
			b.Kind = BlockFunction
			nameAfter()
			return b
		case KwSe, KwSenao:
			b.Kind = BlockCondition
			return b
		case KwEnquanto, KwPara:
			b.Kind = BlockLoop
			return b
		case KwObter, KwDefinir:
			b.Kind = BlockPropertyAccessor
			setName(first)
			return b
		case KwConstrutor:
			b.Kind = BlockConstructor
			if parent.Kind == BlockClass {
				b.Name = parent.Name
				b.NameRange = first.Range()
			}
			return b
		}
	}

	if first.Kind == TokenIdentifier && len(rest) > 1 && rest[1].Is("(") &&
		parent.Kind == BlockClass && parent.Name == first.Text {
		b.Kind = BlockConstructor
		setName(first)
		return b
	}

	paren := -1
	for j, t := range rest {
		if t.Is("(") {
			paren = j
			break
		}
	}
	if paren >= 2 && rest[paren-1].Kind == TokenIdentifier && isTypeToken(rest[paren-2]) {
		b.Kind = BlockFunction
		setName(rest[paren-1])
		return b
	}

	if paren < 0 && parent.Kind == BlockClass && len(rest) == 2 &&
		isTypeToken(rest[0]) && rest[1].Kind == TokenIdentifier {
		b.Kind = BlockPropertyAccessor
		setName(rest[1])
		return b
	}

	return b
}

// isTypeToken reports whether tok can stand in type position: a built-in
// type, 'var', or a class name.
func isTypeToken(tok Token) bool {
	switch tok.Kind {
	case TokenIdentifier:
		return true
	case TokenKeyword:
		k := LookupKeyword(tok.Text)
		return IsTypeKeyword(k) || k == KwVar
	}
	return false
}
