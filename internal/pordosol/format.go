package pordosol

import (
	"strings"
)

// DefaultIndentWidth is used when the caller passes a non-positive width.
const DefaultIndentWidth = 4

// Format re-indents text from its brace, paren and bracket nesting. Only
// leading and trailing whitespace of each line changes, so
// Format(Format(x, n), n) == Format(x, n).
func Format(text string, indentWidth int) string {
	if indentWidth <= 0 {
		indentWidth = DefaultIndentWidth
	}
	lines := splitLines(text)

	perLine := make([][]Token, len(lines))
	for _, tok := range Scan(text) {
		if tok.Kind == TokenComment || tok.Kind == TokenString || tok.Line >= len(lines) {
			continue
		}
		perLine[tok.Line] = append(perLine[tok.Line], tok)
	}

	unit := strings.Repeat(" ", indentWidth)
	var b strings.Builder
	depth := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			leading, net := 0, 0
			counting := true
			for _, tok := range perLine[i] {
				switch {
				case isCloser(tok):
					net--
					if counting {
						leading++
					}
				case isOpener(tok):
					net++
					counting = false
				default:
					counting = false
				}
			}
			level := max(depth-leading, 0)
			b.WriteString(strings.Repeat(unit, level))
			b.WriteString(trimmed)
			depth = max(depth+net, 0)
		}
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func isOpener(tok Token) bool {
	return tok.Is("{") || tok.Is("(") || tok.Is("[")
}

func isCloser(tok Token) bool {
	return tok.Is("}") || tok.Is(")") || tok.Is("]")
}
