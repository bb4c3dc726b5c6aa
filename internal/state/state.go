package state

import (
	"sort"
	"sync"

	"github.com/pordosol/pordosol-ls/internal/config"
	"github.com/pordosol/pordosol-ls/internal/pordosol"
	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// State is the per-session store of open documents and their per-document
// settings.
type State struct {
	mu       sync.RWMutex
	docs     map[protocol.DocumentUri]*Document
	settings map[protocol.DocumentUri]config.Settings
}

func NewState() *State {
	return &State{
		docs:     make(map[protocol.DocumentUri]*Document),
		settings: make(map[protocol.DocumentUri]config.Settings),
	}
}

// Open registers a document and analyses it. Reopening a URI replaces the
// previous document.
func (s *State) Open(uri protocol.DocumentUri, languageID string, version int32, text string) *pordosol.Model {
	doc := newDocument(uri, languageID, version, text)

	s.mu.Lock()
	if old, ok := s.docs[uri]; ok {
		old.close()
	}
	s.docs[uri] = doc
	delete(s.settings, uri)
	s.mu.Unlock()

	model, _ := doc.runAnalysis(version, text)
	return model
}

// Change replaces the text of an open document and re-analyses it. It
// returns false when the document is not open or version is older than the
// one already stored.
func (s *State) Change(uri protocol.DocumentUri, version int32, text string) (*pordosol.Model, bool) {
	doc, ok := s.GetDocument(uri)
	if !ok {
		return nil, false
	}
	if !doc.update(version, text) {
		commonlog.GetLogger("pordosol.state").Debugf("dropping stale change %d for %s", version, uri)
		return nil, false
	}
	return doc.runAnalysis(version, text)
}

// Close releases the document, its model and its settings entry.
func (s *State) Close(uri protocol.DocumentUri) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.docs[uri]; ok {
		doc.close()
		delete(s.docs, uri)
	}
	delete(s.settings, uri)
}

// GetDocument retrieves an open document.
func (s *State) GetDocument(uri protocol.DocumentUri) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc, ok
}

// Documents returns the open documents ordered by URI.
func (s *State) Documents() []*Document {
	s.mu.RLock()
	out := make([]*Document, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, doc)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].URI < out[j].URI })
	return out
}

// Model returns the current model of an open document.
func (s *State) Model(uri protocol.DocumentUri) (*pordosol.Model, bool) {
	doc, ok := s.GetDocument(uri)
	if !ok {
		return nil, false
	}
	m := doc.Model()
	return m, m != nil
}

// Diagnostics returns the document's diagnostics filtered by settings and
// capped at MaxNumberOfProblems, earliest first.
func (s *State) Diagnostics(uri protocol.DocumentUri, settings config.Settings) []pordosol.Diagnostic {
	m, ok := s.Model(uri)
	if !ok {
		return nil
	}
	return pordosol.Select(m.Diagnostics, settings.SelectOptions())
}

// Symbols returns the document's symbol table, or nil when it is not open.
func (s *State) Symbols(uri protocol.DocumentUri) *pordosol.SymbolTable {
	m, ok := s.Model(uri)
	if !ok {
		return nil
	}
	return m.Symbols
}

// ClassifyContext classifies the cursor at pos. An empty prefix is taken
// from the document text.
func (s *State) ClassifyContext(uri protocol.DocumentUri, pos protocol.Position, prefix string) (pordosol.CompletionContext, bool) {
	m, ok := s.Model(uri)
	if !ok {
		return pordosol.CompletionContext{}, false
	}
	if prefix == "" {
		prefix = m.LinePrefix(pos)
	}
	return pordosol.Classify(m, pos, prefix), true
}

// Format re-indents the document's current model text.
func (s *State) Format(uri protocol.DocumentUri, indentWidth int) (string, bool) {
	m, ok := s.Model(uri)
	if !ok {
		return "", false
	}
	return pordosol.Format(m.Text, indentWidth), true
}

// SetSettings caches settings for an open document. Settings arriving after
// the document was closed are dropped.
func (s *State) SetSettings(uri protocol.DocumentUri, settings config.Settings) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[uri]; !ok {
		return false
	}
	s.settings[uri] = settings
	return true
}

// Settings returns the cached settings of a document.
func (s *State) Settings(uri protocol.DocumentUri) (config.Settings, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.settings[uri]
	return st, ok
}

// ClearSettings drops every cached settings entry.
func (s *State) ClearSettings() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.settings)
}
