package pordosol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const pessoaSrc = `classe Pessoa {
    texto nome;
    Pessoa(texto n) {
        nome = n;
    }
    texto saudacao() {
        retorne nome;
    }
}
função soma(inteiro a, inteiro b) => inteiro {
    retorne a + b;
}
var p = novo Pessoa("Ana");
`

func TestIndex_Declarations(t *testing.T) {
	m := Analyze(pessoaSrc)

	cls, ok := m.Symbols.Lookup("Pessoa")
	require.True(t, ok)
	require.Equal(t, SymbolClass, cls.Kind)
	require.Len(t, cls.Members, 3)
	require.Equal(t, SymbolProperty, cls.Members[0].Kind)
	require.Equal(t, SymbolConstructor, cls.Members[1].Kind)
	require.Equal(t, SymbolMethod, cls.Members[2].Kind)
	for _, member := range cls.Members {
		require.Equal(t, "Pessoa", member.Container)
	}

	nome, ok := m.Symbols.Lookup("nome")
	require.True(t, ok)
	require.Equal(t, SymbolProperty, nome.Kind)
	require.Equal(t, "texto", nome.Type)

	n, ok := m.Symbols.Lookup("n")
	require.True(t, ok)
	require.Equal(t, SymbolParameter, n.Kind)

	saudacao, ok := m.Symbols.Lookup("saudacao")
	require.True(t, ok)
	require.Equal(t, SymbolMethod, saudacao.Kind)
	require.Equal(t, "texto", saudacao.Type)

	soma, ok := m.Symbols.Lookup("soma")
	require.True(t, ok)
	require.Equal(t, SymbolFunction, soma.Kind)
	require.Equal(t, "inteiro", soma.Type)
	require.Equal(t, "função soma(inteiro a, inteiro b) => inteiro", soma.Detail)

	for _, name := range []string{"a", "b"} {
		param, ok := m.Symbols.Lookup(name)
		require.True(t, ok, name)
		require.Equal(t, SymbolParameter, param.Kind)
		require.Equal(t, "inteiro", param.Type)
	}

	p, ok := m.Symbols.Lookup("p")
	require.True(t, ok)
	require.Equal(t, SymbolVariable, p.Kind)
	require.Equal(t, "var", p.Type)
}

func TestIndex_ClassReferencesExcludeDeclaration(t *testing.T) {
	m := Analyze(pessoaSrc)

	cls, _ := m.Symbols.Lookup("Pessoa")
	require.Equal(t, uint32(0), cls.Location.Start.Line)
	require.Len(t, cls.References, 2)
	require.Equal(t, uint32(2), cls.References[0].Start.Line)
	require.Equal(t, uint32(12), cls.References[1].Start.Line)
}

func TestIndex_ReferencesMatchNameExactly(t *testing.T) {
	src := "inteiro total = 1;\ninteiro totalGeral = 2;\nimprima(total);\nimprima(totalGeral);\n"
	m := Analyze(src)

	total, ok := m.Symbols.Lookup("total")
	require.True(t, ok)
	require.Len(t, total.References, 1)
	require.Equal(t, uint32(2), total.References[0].Start.Line)

	lines := splitLines(src)
	for _, sym := range m.Symbols.All() {
		for _, ref := range sym.References {
			line := []rune(lines[ref.Start.Line])
			require.Equal(t, sym.Name, string(line[ref.Start.Character:ref.End.Character]))
		}
	}
}

func TestIndex_RedeclarationKeepsLast(t *testing.T) {
	m := Analyze("var x = 1;\nvar x = 2;\n")

	require.Equal(t, 1, m.Symbols.Len())
	x, ok := m.Symbols.Lookup("x")
	require.True(t, ok)
	require.Equal(t, uint32(1), x.Location.Start.Line)
}

func TestIndex_LoopVariable(t *testing.T) {
	m := Analyze("para (inteiro i = 0; i < 10; i++) {\n    imprima(i);\n}\n")

	i, ok := m.Symbols.Lookup("i")
	require.True(t, ok)
	require.Equal(t, SymbolVariable, i.Kind)
	require.Equal(t, "inteiro", i.Type)
	require.Len(t, i.References, 3)
}

func TestSymbolTable_OfKind(t *testing.T) {
	m := Analyze(pessoaSrc)

	var names []string
	for _, s := range m.Symbols.OfKind(SymbolFunction, SymbolMethod) {
		names = append(names, s.Name)
	}
	require.Equal(t, []string{"saudacao", "soma"}, names)
}
