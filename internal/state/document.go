package state

import (
	"math"
	"sync"

	"github.com/pordosol/pordosol-ls/internal/pordosol"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Document is an open document together with the model of its latest
// analysed version.
type Document struct {
	URI        protocol.DocumentUri
	LanguageID string

	mu       sync.RWMutex
	version  int32
	text     string
	model    *pordosol.Model
	analyzed int32
	closed   bool
}

func newDocument(uri protocol.DocumentUri, languageID string, version int32, text string) *Document {
	return &Document{
		URI:        uri,
		LanguageID: languageID,
		version:    version,
		text:       text,
		analyzed:   math.MinInt32,
	}
}

// Text returns the latest text and its version.
func (d *Document) Text() (string, int32) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text, d.version
}

// Model returns the model of the most recently applied analysis, or nil
// before the first one completes.
func (d *Document) Model() *pordosol.Model {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.model
}

// Version returns the version of the latest text.
func (d *Document) Version() int32 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}

// update stores text unless a newer version is already known.
func (d *Document) update(version int32, text string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || version < d.version {
		return false
	}
	d.version = version
	d.text = text
	return true
}

// runAnalysis analyses the given version outside the lock and applies the
// result unless the document was closed or a newer version was applied in
// the meantime.
func (d *Document) runAnalysis(version int32, text string) (*pordosol.Model, bool) {
	model := pordosol.Analyze(text)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || version < d.analyzed {
		return nil, false
	}
	d.model = model
	d.analyzed = version
	return model, true
}

func (d *Document) close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.model = nil
	d.text = ""
}
