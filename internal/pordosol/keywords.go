package pordosol

// Keyword identifies a reserved word of the language independently of its
// spelling (accented or not).
type Keyword int

const (
	KwNone Keyword = iota
	KwSe
	KwEntao
	KwSenao
	KwEnquanto
	KwPara
	KwRetorne
	KwImprima
	KwFuncao
	KwClasse
	KwEspaco
	KwNovo
	KwVar
	KwPublico
	KwPrivado
	KwProtegido
	KwEstatico
	KwConstrutor
	KwObter
	KwDefinir
	KwInteiro
	KwTexto
	KwBooleano
	KwDecimal
	KwVazio
	KwVerdadeiro
	KwFalso
	KwNulo
)

var keywords = map[string]Keyword{
	"se":         KwSe,
	"então":      KwEntao,
	"entao":      KwEntao,
	"senão":      KwSenao,
	"senao":      KwSenao,
	"enquanto":   KwEnquanto,
	"para":       KwPara,
	"retorne":    KwRetorne,
	"imprima":    KwImprima,
	"função":     KwFuncao,
	"funcao":     KwFuncao,
	"classe":     KwClasse,
	"espaço":     KwEspaco,
	"espaco":     KwEspaco,
	"novo":       KwNovo,
	"var":        KwVar,
	"publico":    KwPublico,
	"público":    KwPublico,
	"privado":    KwPrivado,
	"protegido":  KwProtegido,
	"estatico":   KwEstatico,
	"estático":   KwEstatico,
	"construtor": KwConstrutor,
	"obter":      KwObter,
	"definir":    KwDefinir,
	"inteiro":    KwInteiro,
	"texto":      KwTexto,
	"booleano":   KwBooleano,
	"decimal":    KwDecimal,
	"vazio":      KwVazio,
	"verdadeiro": KwVerdadeiro,
	"falso":      KwFalso,
	"nulo":       KwNulo,
}

// LookupKeyword returns the keyword spelled by word, or KwNone.
func LookupKeyword(word string) Keyword {
	return keywords[word]
}

// IsTypeKeyword reports whether k names a built-in type.
func IsTypeKeyword(k Keyword) bool {
	switch k {
	case KwInteiro, KwTexto, KwBooleano, KwDecimal, KwVazio:
		return true
	}
	return false
}

// IsModifier reports whether k is an access or static modifier.
func IsModifier(k Keyword) bool {
	switch k {
	case KwPublico, KwPrivado, KwProtegido, KwEstatico:
		return true
	}
	return false
}

// ForeignKeywords maps English keywords people habitually type to their
// native equivalent.
var ForeignKeywords = map[string]string{
	"if":       "se",
	"else":     "senão",
	"then":     "então",
	"while":    "enquanto",
	"for":      "para",
	"print":    "imprima",
	"int":      "inteiro",
	"string":   "texto",
	"bool":     "booleano",
	"true":     "verdadeiro",
	"false":    "falso",
	"class":    "classe",
	"function": "função",
	"return":   "retorne",
	"new":      "novo",
	"public":   "publico",
	"private":  "privado",
	"static":   "estatico",
}
