package pordosol

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var twoCharOperators = map[string]bool{
	"==": true, "!=": true, "<=": true, ">=": true, "=>": true,
	"&&": true, "||": true, "+=": true, "-=": true, "++": true, "--": true,
}

const (
	operatorRunes    = "+-*/%=<>!&|?"
	punctuationRunes = "{}()[];,.:"
)

// Scanner turns source text into tokens. It never fails: anything it does not
// recognise becomes a single-rune unknown token.
type Scanner struct {
	src    string
	cur    int
	line   int
	col    int // UTF-16 units from line start
	tokens []Token

	start     int
	startLine int
	startCol  int
}

// Scan tokenizes text.
func Scan(text string) []Token {
	s := &Scanner{src: text}
	return s.scanAll()
}

func (s *Scanner) scanAll() []Token {
	for !s.atEnd() {
		s.start, s.startLine, s.startCol = s.cur, s.line, s.col
		r := s.peek()

		switch {
		case r == '\n':
			s.advance()
		case unicode.IsSpace(r):
			s.advance()
		case r == '/' && s.peekAt(1) == '/':
			s.lineComment()
		case r == '"':
			s.str(false)
		case r == '$' && s.peekAt(1) == '"':
			s.advance()
			s.str(true)
		case isIdentStart(r):
			s.ident()
		case isDigit(r):
			s.number()
		case strings.ContainsRune(operatorRunes, r):
			s.operator()
		case strings.ContainsRune(punctuationRunes, r):
			s.advance()
			s.emit(TokenPunctuation)
		default:
			s.advance()
			s.emit(TokenUnknown)
		}
	}
	return s.tokens
}

func (s *Scanner) atEnd() bool { return s.cur >= len(s.src) }

func (s *Scanner) peek() rune {
	if s.atEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.cur:])
	return r
}

// peekAt looks n bytes ahead; only used for ASCII lookahead.
func (s *Scanner) peekAt(n int) byte {
	if s.cur+n >= len(s.src) {
		return 0
	}
	return s.src[s.cur+n]
}

func (s *Scanner) advance() rune {
	r, size := utf8.DecodeRuneInString(s.src[s.cur:])
	s.cur += size
	if r == '\n' {
		s.line++
		s.col = 0
		return r
	}
	if r > 0xFFFF {
		s.col += 2
	} else {
		s.col++
	}
	return r
}

func (s *Scanner) emit(kind TokenKind) *Token {
	s.tokens = append(s.tokens, Token{
		Kind:   kind,
		Text:   s.src[s.start:s.cur],
		Start:  s.start,
		End:    s.cur,
		Line:   s.startLine,
		Column: s.startCol,
	})
	return &s.tokens[len(s.tokens)-1]
}

func (s *Scanner) lineComment() {
	for !s.atEnd() && s.peek() != '\n' {
		s.advance()
	}
	s.emit(TokenComment)
}

// str scans a double-quoted string. The opening quote is the current rune;
// for interpolated strings the '$' has already been consumed. Inside a {...}
// expression of an interpolated string a quote opens a nested literal instead
// of closing the string.
func (s *Scanner) str(interpolated bool) {
	s.advance()
	closed := false
	depth, nested := 0, false
	// first quote seen inside braces; the string closes there when the
	// line ends before the literal does
	fallback, fallbackCol := -1, 0
scan:
	for !s.atEnd() {
		r := s.peek()
		if r == '\n' || r == '\r' {
			break
		}
		s.advance()
		if r == '\\' && !s.atEnd() && s.peek() != '\n' {
			s.advance()
			continue
		}
		switch {
		case nested:
			nested = r != '"'
		case r == '"' && depth > 0:
			nested = true
			if fallback < 0 {
				fallback, fallbackCol = s.cur, s.col
			}
		case r == '"':
			closed = true
			break scan
		case interpolated && r == '{':
			depth++
		case interpolated && r == '}' && depth > 0:
			depth--
		}
	}
	if !closed && fallback >= 0 {
		s.cur, s.col = fallback, fallbackCol
		closed = true
	}
	tok := s.emit(TokenString)
	tok.Unterminated = !closed
	tok.Interpolated = interpolated
}

func (s *Scanner) ident() {
	for !s.atEnd() && isIdentPart(s.peek()) {
		s.advance()
	}
	if LookupKeyword(s.src[s.start:s.cur]) != KwNone {
		s.emit(TokenKeyword)
		return
	}
	s.emit(TokenIdentifier)
}

func (s *Scanner) number() {
	for !s.atEnd() && isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && s.cur+1 < len(s.src) && isDigit(rune(s.src[s.cur+1])) {
		s.advance()
		for !s.atEnd() && isDigit(s.peek()) {
			s.advance()
		}
	}
	s.emit(TokenNumber)
}

func (s *Scanner) operator() {
	if s.cur+2 <= len(s.src) && twoCharOperators[s.src[s.cur:s.cur+2]] {
		s.advance()
		s.advance()
	} else {
		s.advance()
	}
	s.emit(TokenOperator)
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
