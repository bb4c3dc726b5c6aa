package pordosol

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultRules is the rule set run by Analyze.
var DefaultRules = []Rule{
	{Code: CodeMissingTerminator, Check: checkMissingTerminator},
	{Code: CodeUnclosedString, Check: checkUnclosedString},
	{Code: CodeMalformedInterpolation, Check: checkMalformedInterpolation},
	{Code: CodeClassNaming, Check: checkClassNaming},
	{Code: CodeReservedKeywordMisuse, Check: checkReservedKeywordMisuse},
	{Code: CodeStaticMemberRequired, Check: checkStaticMemberRequired},
	{Code: CodeLocalizationHint, Check: checkLocalizationHint},
	{Code: CodeUnmatchedDelimiter, Check: checkUnmatchedDelimiters},
}

func checkMissingTerminator(s *Snapshot) []Diagnostic {
	var out []Diagnostic
	for line := range s.Lines {
		toks := s.LineTokens(line)
		if len(toks) == 0 {
			continue
		}
		last := toks[len(toks)-1]
		if last.Is(";") || last.Is("{") || last.Is("}") || last.Is(",") {
			continue
		}
		if last.Kind == TokenString && last.Unterminated {
			continue
		}
		if s.Structure.InOpenHeader(line) {
			continue
		}
		if s.Structure.BlockAt(toks[0].Start).Kind == BlockPropertyAccessor {
			continue
		}
		if isDeclaratorLine(toks) || s.nextLineOpensBlock(line) {
			continue
		}
		matched, strict := isCompleteStatement(toks)
		if !matched {
			continue
		}
		out = append(out, Diagnostic{
			Severity: SeverityError,
			Range:    s.LineRange(line),
			Message:  "Comando deve terminar com ponto e vírgula (;)",
			Code:     CodeMissingTerminator,
			Strict:   strict,
		})
	}
	return out
}

func isDeclaratorLine(toks []Token) bool {
	for _, t := range toks {
		if t.IsKeyword(KwClasse) || t.IsKeyword(KwEspaco) {
			return true
		}
	}
	return false
}

// nextLineOpensBlock reports whether the next non-blank line starts with '{',
// as in headers written with the brace on its own line.
func (s *Snapshot) nextLineOpensBlock(line int) bool {
	for l := line + 1; l < len(s.Lines); l++ {
		toks := s.LineTokens(l)
		if len(toks) == 0 {
			continue
		}
		return toks[0].Is("{")
	}
	return false
}

// isCompleteStatement recognises print calls, simple declarations, simple
// assignments and member calls. Returns and bare calls are only recognised in
// strict mode.
func isCompleteStatement(toks []Token) (matched bool, strict bool) {
	rest, _ := stripModifiers(toks)
	if len(rest) == 0 {
		return false, false
	}
	first := rest[0]

	if first.IsKeyword(KwImprima) && len(rest) > 1 && rest[1].Is("(") {
		return true, false
	}
	if isTypeToken(first) && len(rest) > 1 && rest[1].Kind == TokenIdentifier &&
		(len(rest) == 2 || rest[2].Is("=")) {
		return true, false
	}
	if first.IsKeyword(KwRetorne) {
		return true, true
	}
	if first.Kind != TokenIdentifier {
		return false, false
	}

	// ident(.ident)* followed by an assignment, increment or call
	i := 1
	for i+1 < len(rest) && rest[i].Is(".") && rest[i+1].Kind == TokenIdentifier {
		i += 2
	}
	if i >= len(rest) {
		return false, false
	}
	next := rest[i]
	switch {
	case next.Is("=") || next.Is("+=") || next.Is("-="):
		return true, false
	case (next.Is("++") || next.Is("--")) && i == len(rest)-1:
		return true, false
	case next.Is("(") && rest[len(rest)-1].Is(")"):
		return true, i == 1
	}
	return false, false
}

func checkUnclosedString(s *Snapshot) []Diagnostic {
	var out []Diagnostic
	for _, tok := range s.Tokens {
		if tok.Kind != TokenString || !tok.Unterminated {
			continue
		}
		out = append(out, Diagnostic{
			Severity: SeverityError,
			Range:    tok.Range(),
			Message:  "String não fechada - adicione aspas duplas no final",
			Code:     CodeUnclosedString,
		})
	}
	return out
}

func checkMalformedInterpolation(s *Snapshot) []Diagnostic {
	var out []Diagnostic
	for _, tok := range s.Tokens {
		if tok.Kind != TokenString || !tok.Interpolated {
			continue
		}
		body := strings.TrimPrefix(tok.Text, `$"`)
		if !tok.Unterminated {
			body = strings.TrimSuffix(body, `"`)
		}
		if interpolationBalanced(body) {
			continue
		}
		out = append(out, Diagnostic{
			Severity: SeverityError,
			Range:    tok.Range(),
			Message:  `Interpolação malformada: use chaves balanceadas, por exemplo $"Olá {nome}"`,
			Code:     CodeMalformedInterpolation,
		})
	}
	return out
}

// interpolationBalanced requires at least one {...} pair and no stray or
// unclosed braces. Braces inside string literals of an expression are text.
func interpolationBalanced(body string) bool {
	depth, pairs := 0, 0
	nested, escaped := false, false
	for _, r := range body {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case nested:
			nested = r != '"'
		case r == '"' && depth > 0:
			nested = true
		case r == '{':
			depth++
		case r == '}':
			if depth == 0 {
				return false
			}
			depth--
			pairs++
		}
	}
	return depth == 0 && pairs > 0
}

func checkClassNaming(s *Snapshot) []Diagnostic {
	var out []Diagnostic
	for _, b := range s.Structure.Blocks {
		if b.Kind != BlockClass || b.Name == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(b.Name)
		if unicode.IsUpper(r) {
			continue
		}
		out = append(out, Diagnostic{
			Severity: SeverityWarning,
			Range:    b.NameRange,
			Message:  fmt.Sprintf("Nome de classe '%s' deve começar com letra maiúscula", b.Name),
			Code:     CodeClassNaming,
		})
	}
	return out
}

func checkReservedKeywordMisuse(s *Snapshot) []Diagnostic {
	var out []Diagnostic
	for _, stmt := range s.Structure.Statements {
		rest, _ := stripModifiers(stmt.Tokens)
		if len(rest) < 2 || !rest[0].IsKeyword(KwConstrutor) || !rest[1].Is("(") {
			continue
		}
		msg := "'construtor' é reservado: declare o construtor com o nome da classe"
		if b := stmt.Block; b.Kind == BlockClass && b.Name != "" {
			msg = fmt.Sprintf("'construtor' é reservado: declare o construtor como '%s(...)'", b.Name)
		}
		out = append(out, Diagnostic{
			Severity: SeverityError,
			Range:    rest[0].Range(),
			Message:  msg,
			Code:     CodeReservedKeywordMisuse,
		})
	}
	return out
}

func checkStaticMemberRequired(s *Snapshot) []Diagnostic {
	var out []Diagnostic
	for _, stmt := range s.Structure.Statements {
		if stmt.Block.Kind != BlockClass || !stmt.Block.Static {
			continue
		}
		rest, static := stripModifiers(stmt.Tokens)
		if static || len(rest) == 0 {
			continue
		}
		member := false
		if b := stmt.Opened; b != nil {
			switch b.Kind {
			case BlockPropertyAccessor:
				continue
			case BlockFunction, BlockConstructor:
				member = true
			}
		} else {
			member = rest[0].IsKeyword(KwFuncao) || variableDecl(rest, stmt.Block, false) != nil
		}
		if !member {
			continue
		}
		first := stmt.Tokens[0]
		rng := first.Range()
		for _, t := range stmt.Tokens {
			if t.Line == first.Line {
				rng.End = t.Range().End
			}
		}
		out = append(out, Diagnostic{
			Severity: SeverityError,
			Range:    rng,
			Message:  fmt.Sprintf("Membros da classe estática '%s' devem ser declarados com 'estatico'", stmt.Block.Name),
			Code:     CodeStaticMemberRequired,
		})
	}
	return out
}

func checkLocalizationHint(s *Snapshot) []Diagnostic {
	var out []Diagnostic
	for _, tok := range s.Tokens {
		if tok.Kind != TokenIdentifier {
			continue
		}
		native, ok := ForeignKeywords[tok.Text]
		if !ok {
			continue
		}
		out = append(out, Diagnostic{
			Severity: SeverityWarning,
			Range:    tok.Range(),
			Message:  fmt.Sprintf("Use '%s' em vez de '%s' na linguagem Por Do Sol", native, tok.Text),
			Code:     CodeLocalizationHint,
		})
	}
	return out
}

func checkUnmatchedDelimiters(s *Snapshot) []Diagnostic {
	var out []Diagnostic
	for _, a := range s.Structure.Anomalies {
		msg := fmt.Sprintf("'%s' sem abertura correspondente", a.Token.Text)
		if a.Kind == AnomalyUnclosedOpener {
			msg = fmt.Sprintf("'%s' sem fechamento correspondente", a.Token.Text)
		}
		out = append(out, Diagnostic{
			Severity: SeverityError,
			Range:    a.Token.Range(),
			Message:  msg,
			Code:     CodeUnmatchedDelimiter,
		})
	}
	return out
}
