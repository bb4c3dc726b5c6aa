package pordosol

import (
	"testing"

	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// classifyAtEnd places the cursor at the end of src's last line.
func classifyAtEnd(src string) CompletionContext {
	m := Analyze(src)
	lines := splitLines(src)
	last := len(lines) - 1
	pos := protocol.Position{Line: uint32(last), Character: uint32(utf16Len(lines[last]))}
	return Classify(m, pos, m.LinePrefix(pos))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want CompletionContext
	}{
		{
			name: "top level",
			src:  "imp",
			want: CompletionContext{Kind: ContextTopLevel, PartialText: "imp"},
		},
		{
			name: "interpolation",
			src:  `texto s = $"Olá {no`,
			want: CompletionContext{Kind: ContextInterpolation, PartialText: "no"},
		},
		{
			name: "closed interpolation hole",
			src:  `texto s = $"Olá {nome} e`,
			want: CompletionContext{Kind: ContextAfterAssignment, PartialText: "e"},
		},
		{
			name: "class body",
			src:  "classe Pessoa {\n    te",
			want: CompletionContext{Kind: ContextClassBody, EnclosingClass: "Pessoa", PartialText: "te"},
		},
		{
			name: "condition with parens",
			src:  "se (x > ",
			want: CompletionContext{Kind: ContextCondition},
		},
		{
			name: "condition without parens",
			src:  "senão se ativo",
			want: CompletionContext{Kind: ContextCondition, PartialText: "ativo"},
		},
		{
			name: "bare keyword is still being typed",
			src:  "se",
			want: CompletionContext{Kind: ContextTopLevel, PartialText: "se"},
		},
		{
			name: "keyword followed by space",
			src:  "enquanto ",
			want: CompletionContext{Kind: ContextCondition},
		},
		{
			name: "loop condition",
			src:  "enquanto (i < li",
			want: CompletionContext{Kind: ContextCondition, PartialText: "li"},
		},
		{
			name: "new instance",
			src:  "Pessoa p = novo Pe",
			want: CompletionContext{Kind: ContextAfterAssignment, PartialText: "Pe", WantsClassName: true},
		},
		{
			name: "member access on variable",
			src:  "Pessoa p = novo Pessoa();\np.no",
			want: CompletionContext{Kind: ContextMemberAccess, Receiver: "p", EnclosingClass: "Pessoa", PartialText: "no"},
		},
		{
			name: "member access on class",
			src:  "classe Util { }\nUtil.",
			want: CompletionContext{Kind: ContextMemberAccess, Receiver: "Util", EnclosingClass: "Util"},
		},
		{
			name: "member access on unknown receiver",
			src:  "desconhecido.x",
			want: CompletionContext{Kind: ContextTopLevel, PartialText: "x"},
		},
		{
			name: "after assignment",
			src:  "inteiro x = ",
			want: CompletionContext{Kind: ContextAfterAssignment},
		},
		{
			name: "comparison is not assignment",
			src:  "x == y",
			want: CompletionContext{Kind: ContextTopLevel, PartialText: "y"},
		},
		{
			name: "param list",
			src:  "função soma(inteiro a, ",
			want: CompletionContext{Kind: ContextParamList},
		},
		{
			name: "typed method param list",
			src:  "publico texto nomear(tex",
			want: CompletionContext{Kind: ContextParamList, PartialText: "tex"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, classifyAtEnd(tt.src))
		})
	}
}

func TestClassify_MethodInsideClassIsNotClassBody(t *testing.T) {
	src := "classe Pessoa {\n    função falar() {\n        im"
	got := classifyAtEnd(src)

	require.Equal(t, ContextTopLevel, got.Kind)
	require.Equal(t, "im", got.PartialText)
}

func TestClassify_NilModel(t *testing.T) {
	got := Classify(nil, protocol.Position{}, "inteiro x = ")

	require.Equal(t, ContextAfterAssignment, got.Kind)
}
