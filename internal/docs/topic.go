package docs

// Topic identifies a documented keyword, type, value or operator. Completion
// items carry their Topic so documentation can be attached on resolve.
type Topic int

const (
	TopicNone Topic = iota
	TopicSe
	TopicEntao
	TopicSenao
	TopicEnquanto
	TopicPara
	TopicRetorne
	TopicImprima
	TopicFuncao
	TopicClasse
	TopicEspaco
	TopicNovo
	TopicVar
	TopicPublico
	TopicPrivado
	TopicProtegido
	TopicEstatico
	TopicConstrutor
	TopicObter
	TopicDefinir
	TopicInteiro
	TopicTexto
	TopicBooleano
	TopicDecimal
	TopicVazio
	TopicVerdadeiro
	TopicFalso
	TopicNulo
	TopicIgual
	TopicDiferente
	TopicMaiorIgual
	TopicMenorIgual
	TopicE
	TopicOu
	TopicAtribuicao
)

var topicLabels = map[string]Topic{
	"se":         TopicSe,
	"então":      TopicEntao,
	"senão":      TopicSenao,
	"enquanto":   TopicEnquanto,
	"para":       TopicPara,
	"retorne":    TopicRetorne,
	"imprima":    TopicImprima,
	"função":     TopicFuncao,
	"classe":     TopicClasse,
	"espaço":     TopicEspaco,
	"novo":       TopicNovo,
	"var":        TopicVar,
	"publico":    TopicPublico,
	"privado":    TopicPrivado,
	"protegido":  TopicProtegido,
	"estatico":   TopicEstatico,
	"construtor": TopicConstrutor,
	"obter":      TopicObter,
	"definir":    TopicDefinir,
	"inteiro":    TopicInteiro,
	"texto":      TopicTexto,
	"booleano":   TopicBooleano,
	"decimal":    TopicDecimal,
	"vazio":      TopicVazio,
	"verdadeiro": TopicVerdadeiro,
	"falso":      TopicFalso,
	"nulo":       TopicNulo,
	"==":         TopicIgual,
	"!=":         TopicDiferente,
	">=":         TopicMaiorIgual,
	"<=":         TopicMenorIgual,
	"&&":         TopicE,
	"||":         TopicOu,
	"=":          TopicAtribuicao,
}

// TopicFor returns the topic documented under label.
func TopicFor(label string) Topic {
	return topicLabels[label]
}

// Category groups topics into the suggestion sets completion offers.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryControl
	CategoryDeclarator
	CategoryFunction
	CategoryType
	CategoryModifier
	CategoryAccessor
	CategoryValue
	CategoryOperator
)

var categoryNames = map[string]Category{
	"control":    CategoryControl,
	"declarator": CategoryDeclarator,
	"function":   CategoryFunction,
	"type":       CategoryType,
	"modifier":   CategoryModifier,
	"accessor":   CategoryAccessor,
	"value":      CategoryValue,
	"operator":   CategoryOperator,
}

func (c Category) String() string {
	for name, cat := range categoryNames {
		if cat == c {
			return name
		}
	}
	return "unknown"
}
