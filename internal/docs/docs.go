package docs

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/tliron/commonlog"
	"gopkg.in/yaml.v3"
)

//go:embed keywords.yaml
var keywordsYAML []byte

// Entry is the documentation record of one topic.
type Entry struct {
	Topic    Topic
	Label    string
	Category Category
	Aliases  []string
	// Detail is the short line shown next to a completion item.
	Detail string
	// Summary is plain-text completion documentation.
	Summary string
	// Snippet is the insert text in LSP snippet syntax; empty means Label.
	Snippet string
	// Hover is Markdown.
	Hover string
}

type rawEntry struct {
	Category string   `yaml:"category"`
	Aliases  []string `yaml:"aliases"`
	Detail   string   `yaml:"detail"`
	Summary  string   `yaml:"summary"`
	Snippet  string   `yaml:"snippet"`
	Hover    string   `yaml:"hover"`
}

// Table maps topics and words to their documentation.
type Table struct {
	entries map[Topic]*Entry
	words   map[string]*Entry
	order   []*Entry
}

// Parse reads a documentation document. Entries keep the order they are
// written in.
func Parse(data []byte) (*Table, error) {
	logger := commonlog.GetLogger("pordosol.docs")

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parse documentation: %w", err)
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = *node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse documentation: expected a mapping at line %d", node.Line)
	}

	t := &Table{
		entries: make(map[Topic]*Entry),
		words:   make(map[string]*Entry),
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		topic := TopicFor(keyNode.Value)
		if topic == TopicNone {
			logger.Warningf("line %d: no topic for %q", keyNode.Line, keyNode.Value)
			continue
		}
		var raw rawEntry
		if err := valueNode.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse documentation for %q: %w", keyNode.Value, err)
		}
		cat, ok := categoryNames[raw.Category]
		if !ok {
			return nil, fmt.Errorf("line %d: unknown category %q", valueNode.Line, raw.Category)
		}

		e := &Entry{
			Topic:    topic,
			Label:    keyNode.Value,
			Category: cat,
			Aliases:  raw.Aliases,
			Detail:   raw.Detail,
			Summary:  raw.Summary,
			Snippet:  raw.Snippet,
			Hover:    raw.Hover,
		}
		t.entries[topic] = e
		t.words[e.Label] = e
		for _, alias := range e.Aliases {
			t.words[alias] = e
		}
		t.order = append(t.order, e)
	}
	return t, nil
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the table built from the embedded documentation.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Parse(keywordsYAML)
		if err != nil {
			commonlog.GetLogger("pordosol.docs").Errorf("embedded documentation: %v", err)
			t = &Table{entries: map[Topic]*Entry{}, words: map[string]*Entry{}}
		}
		defaultTable = t
	})
	return defaultTable
}

// Lookup returns the entry for topic.
func (t *Table) Lookup(topic Topic) (*Entry, bool) {
	e, ok := t.entries[topic]
	return e, ok
}

// ForWord returns the entry documenting word, accepting alternative spellings.
func (t *Table) ForWord(word string) (*Entry, bool) {
	e, ok := t.words[word]
	return e, ok
}

// InCategory returns the entries of the given categories in document order.
func (t *Table) InCategory(cats ...Category) []*Entry {
	var out []*Entry
	for _, e := range t.order {
		for _, c := range cats {
			if e.Category == c {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.order)
}
