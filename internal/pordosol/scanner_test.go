package pordosol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func kinds(toks []Token) []TokenKind {
	out := make([]TokenKind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func texts(toks []Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}
	return out
}

func TestScan_Declaration(t *testing.T) {
	toks := Scan(`inteiro x = 5; // fim`)

	require.Equal(t, []string{"inteiro", "x", "=", "5", ";", "// fim"}, texts(toks))
	require.Equal(t, []TokenKind{
		TokenKeyword, TokenIdentifier, TokenOperator, TokenNumber, TokenPunctuation, TokenComment,
	}, kinds(toks))
}

func TestScan_AccentedKeywordsAndIdentifiers(t *testing.T) {
	toks := Scan("função ação() { senão }")

	require.Equal(t, TokenKeyword, toks[0].Kind)
	require.True(t, toks[0].IsKeyword(KwFuncao))
	require.Equal(t, TokenIdentifier, toks[1].Kind)
	require.Equal(t, "ação", toks[1].Text)
	require.True(t, toks[5].IsKeyword(KwSenao))

	unaccented := Scan("funcao senao")
	require.True(t, unaccented[0].IsKeyword(KwFuncao))
	require.True(t, unaccented[1].IsKeyword(KwSenao))
}

func TestScan_Strings(t *testing.T) {
	toks := Scan(`texto s = "a \"b\" c"; texto t = $"Olá {nome}";`)

	var strs []Token
	for _, tok := range toks {
		if tok.Kind == TokenString {
			strs = append(strs, tok)
		}
	}
	require.Len(t, strs, 2)
	require.Equal(t, `"a \"b\" c"`, strs[0].Text)
	require.False(t, strs[0].Unterminated)
	require.False(t, strs[0].Interpolated)
	require.Equal(t, `$"Olá {nome}"`, strs[1].Text)
	require.True(t, strs[1].Interpolated)
	require.False(t, strs[1].Unterminated)
}

func TestScan_InterpolationWithNestedString(t *testing.T) {
	toks := Scan(`texto s = $"Olá {f("a")}";`)

	require.Equal(t, `$"Olá {f("a")}"`, toks[3].Text)
	require.True(t, toks[3].Interpolated)
	require.False(t, toks[3].Unterminated)
	require.True(t, toks[4].Is(";"))

	unclosed := Scan(`texto s = $"Olá {nome";`)
	require.Equal(t, `$"Olá {nome"`, unclosed[3].Text)
	require.False(t, unclosed[3].Unterminated)
	require.True(t, unclosed[4].Is(";"))
}

func TestScan_UnterminatedStringStopsAtLineEnd(t *testing.T) {
	toks := Scan("texto s = \"abc\ninteiro y;")

	require.Equal(t, `"abc`, toks[3].Text)
	require.True(t, toks[3].Unterminated)
	require.Equal(t, "inteiro", toks[4].Text)
	require.Equal(t, 1, toks[4].Line)
	require.Equal(t, 0, toks[4].Column)
}

func TestScan_Operators(t *testing.T) {
	toks := Scan("a == b != c <= d >= e => f && g || h += 1 -= 2 ++ -- ! ?")

	var ops []string
	for _, tok := range toks {
		if tok.Kind == TokenOperator {
			ops = append(ops, tok.Text)
		}
	}
	require.Equal(t, []string{"==", "!=", "<=", ">=", "=>", "&&", "||", "+=", "-=", "++", "--", "!", "?"}, ops)
}

func TestScan_DecimalNumberAndMemberAccess(t *testing.T) {
	toks := Scan("x = 3.14; p.nome")

	require.Equal(t, []string{"x", "=", "3.14", ";", "p", ".", "nome"}, texts(toks))
}

func TestScan_UnknownRuneNeverFails(t *testing.T) {
	toks := Scan("x @ # y")

	require.Equal(t, []TokenKind{TokenIdentifier, TokenUnknown, TokenUnknown, TokenIdentifier}, kinds(toks))
}

func TestScan_ColumnsCountUTF16Units(t *testing.T) {
	toks := Scan(`texto s = "😀"; x`)

	last := toks[len(toks)-1]
	require.Equal(t, "x", last.Text)
	// the emoji is two UTF-16 units but four bytes
	require.Equal(t, 16, last.Column)
	require.Equal(t, 18, last.Start)
	require.Equal(t, uint32(17), last.Range().End.Character)
}
