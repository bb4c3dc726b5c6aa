package state

import (
	"fmt"
	"sync"
	"testing"

	"github.com/pordosol/pordosol-ls/internal/config"
	"github.com/pordosol/pordosol-ls/internal/pordosol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const uri = protocol.DocumentUri("file:///tmp/main.pds")

func TestOpenChangeClose(t *testing.T) {
	s := NewState()

	m := s.Open(uri, "pordosol", 1, "inteiro x = 5")
	require.NotNil(t, m)
	require.Len(t, m.Diagnostics, 1)

	m, ok := s.Change(uri, 2, "inteiro x = 5;")
	require.True(t, ok)
	require.Empty(t, m.Diagnostics)

	current, ok := s.Model(uri)
	require.True(t, ok)
	require.Same(t, m, current)

	s.Close(uri)
	_, ok = s.Model(uri)
	require.False(t, ok)
	require.Nil(t, s.Symbols(uri))
	require.Empty(t, s.Diagnostics(uri, config.Defaults()))
}

func TestChange_UnknownDocument(t *testing.T) {
	s := NewState()

	_, ok := s.Change(uri, 1, "x")
	require.False(t, ok)
}

func TestChange_StaleVersionIsDropped(t *testing.T) {
	s := NewState()
	s.Open(uri, "pordosol", 5, "inteiro a = 1;")

	_, ok := s.Change(uri, 4, "inteiro velho = 1;")
	require.False(t, ok)

	doc, ok := s.GetDocument(uri)
	require.True(t, ok)
	text, version := doc.Text()
	assert.Equal(t, "inteiro a = 1;", text)
	assert.Equal(t, int32(5), version)

	_, ok = s.Symbols(uri).Lookup("a")
	assert.True(t, ok)
}

func TestRunAnalysis_OlderResultDoesNotReplaceNewer(t *testing.T) {
	doc := newDocument(uri, "pordosol", 1, "")

	newer, ok := doc.runAnalysis(3, "inteiro novo3 = 1;")
	require.True(t, ok)
	_, ok = doc.runAnalysis(2, "inteiro velho = 1;")
	require.False(t, ok)

	require.Same(t, newer, doc.Model())
}

func TestDiagnostics_FilteredBySettings(t *testing.T) {
	s := NewState()
	s.Open(uri, "pordosol", 1, "inteiro a = 1\ninteiro b = 2\nif\nfalar()\n")

	all := s.Diagnostics(uri, config.Defaults())
	require.Len(t, all, 4)

	lenient := s.Diagnostics(uri, config.Settings{MaxNumberOfProblems: 1000})
	require.Len(t, lenient, 2)

	capped := s.Diagnostics(uri, config.Settings{MaxNumberOfProblems: 1, ShowWarnings: true, EnableStrictMode: true})
	require.Len(t, capped, 1)
	assert.Equal(t, uint32(0), capped[0].Range.Start.Line)
}

func TestSettingsCache(t *testing.T) {
	s := NewState()
	custom := config.Settings{MaxNumberOfProblems: 3}

	require.False(t, s.SetSettings(uri, custom), "settings for a document that is not open are dropped")

	s.Open(uri, "pordosol", 1, "")
	require.True(t, s.SetSettings(uri, custom))
	got, ok := s.Settings(uri)
	require.True(t, ok)
	assert.Equal(t, custom, got)

	s.ClearSettings()
	_, ok = s.Settings(uri)
	assert.False(t, ok)

	s.SetSettings(uri, custom)
	s.Close(uri)
	_, ok = s.Settings(uri)
	assert.False(t, ok)
	assert.False(t, s.SetSettings(uri, custom))
}

func TestClassifyContextAndFormat(t *testing.T) {
	s := NewState()
	s.Open(uri, "pordosol", 1, "classe Pessoa {\ntexto nome;\n}\n")

	ctx, ok := s.ClassifyContext(uri, protocol.Position{Line: 1, Character: 0}, "")
	require.True(t, ok)
	assert.Equal(t, pordosol.ContextClassBody, ctx.Kind)
	assert.Equal(t, "Pessoa", ctx.EnclosingClass)

	formatted, ok := s.Format(uri, 2)
	require.True(t, ok)
	assert.Equal(t, "classe Pessoa {\n  texto nome;\n}\n", formatted)

	_, ok = s.Format("file:///nao-aberto.pds", 2)
	assert.False(t, ok)
}

func TestDocuments_SortedByURI(t *testing.T) {
	s := NewState()
	s.Open("file:///b.pds", "pordosol", 1, "")
	s.Open("file:///a.pds", "pordosol", 1, "")

	docs := s.Documents()
	require.Len(t, docs, 2)
	assert.Equal(t, protocol.DocumentUri("file:///a.pds"), docs[0].URI)
}

func TestConcurrentDocumentsAreIndependent(t *testing.T) {
	s := NewState()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u := protocol.DocumentUri(fmt.Sprintf("file:///doc%d.pds", i))
			s.Open(u, "pordosol", 1, "")
			for v := int32(2); v <= 20; v++ {
				s.Change(u, v, fmt.Sprintf("inteiro v%d = %d;", v, i))
			}
		}()
	}
	wg.Wait()

	for i := range 8 {
		u := protocol.DocumentUri(fmt.Sprintf("file:///doc%d.pds", i))
		_, ok := s.Symbols(u).Lookup("v20")
		assert.True(t, ok, u)
	}
}
