package server

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/pordosol/pordosol-ls/internal/config"
	"github.com/pordosol/pordosol-ls/internal/docs"
	"github.com/pordosol/pordosol-ls/internal/pordosol"
	"github.com/pordosol/pordosol-ls/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const testURI = protocol.DocumentUri("file:///workspace/main.pds")

// client records what the server sends and answers workspace/configuration.
type client struct {
	mu        sync.Mutex
	published map[protocol.DocumentUri]protocol.PublishDiagnosticsParams
	calls     int
	settings  any
}

func newClient() *client {
	return &client{published: make(map[protocol.DocumentUri]protocol.PublishDiagnosticsParams)}
}

func (c *client) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if method != protocol.ServerTextDocumentPublishDiagnostics {
				return
			}
			p := params.(protocol.PublishDiagnosticsParams)
			c.mu.Lock()
			c.published[p.URI] = p
			c.mu.Unlock()
		},
		Call: func(method string, params any, result any) {
			if method != protocol.ServerWorkspaceConfiguration {
				return
			}
			c.mu.Lock()
			c.calls++
			settings := c.settings
			c.mu.Unlock()
			if r, ok := result.(*[]any); ok {
				*r = []any{settings}
			}
		},
	}
}

func (c *client) diagnostics(t *testing.T, uri protocol.DocumentUri) protocol.PublishDiagnosticsParams {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.published[uri]
	require.True(t, ok, "nothing published for %s", uri)
	return p
}

func (c *client) configurationCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func newTestServer(t *testing.T) (*Server, *client) {
	t.Helper()
	return NewServer(config.NewConfig()), newClient()
}

func open(t *testing.T, s *Server, ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	t.Helper()
	require.NoError(t, s.didOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "pordosol", Version: 1, Text: text},
	}))
	s.pending.Wait()
}

func codes(diags []protocol.Diagnostic) []string {
	var out []string
	for _, d := range diags {
		out = append(out, d.Code.Value.(string))
	}
	return out
}

func TestInitialize_LoadsWorkspaceSettings(t *testing.T) {
	for _, key := range []string{config.EnvMaxProblems, config.EnvShowWarnings, config.EnvStrict} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, config.RCFileName), []byte("showWarnings: false\n"), 0o644))

	s, _ := newTestServer(t)
	rootURI := protocol.DocumentUri(utils.PathToURI(root))
	res, err := s.initialize(&glsp.Context{}, &protocol.InitializeParams{
		RootURI:               &rootURI,
		InitializationOptions: map[string]any{"maxNumberOfProblems": float64(5)},
	})
	require.NoError(t, err)

	result := res.(protocol.InitializeResult)
	assert.Equal(t, lsName, result.ServerInfo.Name)
	require.NotNil(t, result.Capabilities.CompletionProvider)
	assert.True(t, *result.Capabilities.CompletionProvider.ResolveProvider)
	assert.NotNil(t, result.Capabilities.HoverProvider)
	assert.NotNil(t, result.Capabilities.DocumentFormattingProvider)
	assert.NotNil(t, result.Capabilities.ReferencesProvider)

	assert.Equal(t, root, s.config.WorkspaceRoot)
	assert.Equal(t, config.Settings{MaxNumberOfProblems: 5, ShowWarnings: false, EnableStrictMode: true}, s.global)
	assert.False(t, s.hasConfigurationCapability)
}

func TestDidOpen_PublishesDiagnostics(t *testing.T) {
	s, c := newTestServer(t)
	open(t, s, c.context(), testURI, "inteiro x = 5")

	p := c.diagnostics(t, testURI)
	require.NotNil(t, p.Version)
	assert.Equal(t, protocol.UInteger(1), *p.Version)
	assert.Equal(t, []string{pordosol.CodeMissingTerminator}, codes(p.Diagnostics))
}

func TestDidChange_IncrementalEdit(t *testing.T) {
	s, c := newTestServer(t)
	ctx := c.context()
	open(t, s, ctx, testURI, "inteiro x = 5")

	at := protocol.Position{Line: 0, Character: 13}
	require.NoError(t, s.didChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEvent{Range: &protocol.Range{Start: at, End: at}, Text: ";"},
		},
	}))
	s.pending.Wait()

	doc, ok := s.state.GetDocument(testURI)
	require.True(t, ok)
	text, version := doc.Text()
	assert.Equal(t, "inteiro x = 5;", text)
	assert.Equal(t, int32(2), version)

	p := c.diagnostics(t, testURI)
	assert.Empty(t, p.Diagnostics)
	assert.NotNil(t, p.Diagnostics)
}

func TestDidChange_StaleVersionIgnored(t *testing.T) {
	s, c := newTestServer(t)
	ctx := c.context()
	open(t, s, ctx, testURI, "inteiro x = 5")

	change := func(version int32, text string) {
		require.NoError(t, s.didChange(ctx, &protocol.DidChangeTextDocumentParams{
			TextDocument: protocol.VersionedTextDocumentIdentifier{
				TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
				Version:                version,
			},
			ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: text}},
		}))
		s.pending.Wait()
	}
	change(3, "inteiro x = 5;")
	change(2, "inteiro y = 1")

	doc, _ := s.state.GetDocument(testURI)
	text, version := doc.Text()
	assert.Equal(t, "inteiro x = 5;", text)
	assert.Equal(t, int32(3), version)
	assert.Empty(t, c.diagnostics(t, testURI).Diagnostics)
}

func TestDidClose_ClearsDiagnostics(t *testing.T) {
	s, c := newTestServer(t)
	ctx := c.context()
	open(t, s, ctx, testURI, "inteiro x = 5")

	require.NoError(t, s.didClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	}))

	_, ok := s.state.GetDocument(testURI)
	assert.False(t, ok)
	assert.Empty(t, c.diagnostics(t, testURI).Diagnostics)
}

func TestDocumentSettings_FetchedOnceAndCached(t *testing.T) {
	s, c := newTestServer(t)
	s.hasConfigurationCapability = true
	c.settings = map[string]any{"showWarnings": false}
	ctx := c.context()

	src := "if (x) {\n}\n"
	open(t, s, ctx, testURI, src)
	assert.Empty(t, c.diagnostics(t, testURI).Diagnostics)
	assert.Equal(t, 1, c.configurationCalls())

	s.validate(ctx, testURI)
	s.pending.Wait()
	assert.Equal(t, 1, c.configurationCalls())

	c.mu.Lock()
	c.settings = map[string]any{"showWarnings": true}
	c.mu.Unlock()
	require.NoError(t, s.didChangeConfiguration(ctx, &protocol.DidChangeConfigurationParams{}))
	s.pending.Wait()

	assert.Equal(t, 2, c.configurationCalls())
	assert.Equal(t, []string{pordosol.CodeLocalizationHint}, codes(c.diagnostics(t, testURI).Diagnostics))
}

func TestDidChangeConfiguration_GlobalSettings(t *testing.T) {
	s, c := newTestServer(t)
	ctx := c.context()
	open(t, s, ctx, testURI, "inteiro x = 5\ninteiro y = 6\n")
	require.Len(t, c.diagnostics(t, testURI).Diagnostics, 2)

	require.NoError(t, s.didChangeConfiguration(ctx, &protocol.DidChangeConfigurationParams{
		Settings: map[string]any{config.Section: map[string]any{"maxNumberOfProblems": float64(1)}},
	}))
	s.pending.Wait()

	diags := c.diagnostics(t, testURI).Diagnostics
	require.Len(t, diags, 1)
	assert.Equal(t, uint32(0), diags[0].Range.Start.Line)
}

func TestFeatureRequests(t *testing.T) {
	s, c := newTestServer(t)
	ctx := c.context()
	src := "classe Conta {\n    inteiro saldo;\n}\nConta c = novo Conta();\nimprima(c.saldo);\n"
	open(t, s, ctx, testURI, src)
	doc := protocol.TextDocumentIdentifier{URI: testURI}

	t.Run("completion", func(t *testing.T) {
		res, err := s.onCompletion(ctx, &protocol.CompletionParams{
			TextDocumentPositionParams: protocol.TextDocumentPositionParams{
				TextDocument: doc,
				Position:     protocol.Position{Line: 4, Character: 10},
			},
		})
		require.NoError(t, err)
		items := res.([]protocol.CompletionItem)
		require.NotEmpty(t, items)
		assert.Equal(t, "saldo", items[0].Label)
	})

	t.Run("resolve", func(t *testing.T) {
		item, err := s.onCompletionResolve(ctx, &protocol.CompletionItem{Label: "se", Data: float64(docs.TopicSe)})
		require.NoError(t, err)
		assert.NotNil(t, item.Documentation)
	})

	t.Run("hover", func(t *testing.T) {
		h, err := s.onHover(ctx, &protocol.HoverParams{
			TextDocumentPositionParams: protocol.TextDocumentPositionParams{
				TextDocument: doc,
				Position:     protocol.Position{Line: 3, Character: 2},
			},
		})
		require.NoError(t, err)
		require.NotNil(t, h)
		assert.Contains(t, h.Contents.(protocol.MarkupContent).Value, "classe Conta")
	})

	t.Run("definition", func(t *testing.T) {
		res, err := s.onDefinition(ctx, &protocol.DefinitionParams{
			TextDocumentPositionParams: protocol.TextDocumentPositionParams{
				TextDocument: doc,
				Position:     protocol.Position{Line: 4, Character: 8},
			},
		})
		require.NoError(t, err)
		locations := res.([]protocol.Location)
		require.Len(t, locations, 1)
		assert.Equal(t, uint32(3), locations[0].Range.Start.Line)
	})

	t.Run("references", func(t *testing.T) {
		refs, err := s.onReferences(ctx, &protocol.ReferenceParams{
			TextDocumentPositionParams: protocol.TextDocumentPositionParams{
				TextDocument: doc,
				Position:     protocol.Position{Line: 0, Character: 8},
			},
			Context: protocol.ReferenceContext{IncludeDeclaration: true},
		})
		require.NoError(t, err)
		assert.Len(t, refs, 3)
	})

	t.Run("document symbols", func(t *testing.T) {
		res, err := s.onDocumentSymbol(ctx, &protocol.DocumentSymbolParams{TextDocument: doc})
		require.NoError(t, err)
		symbols := res.([]protocol.DocumentSymbol)
		require.Len(t, symbols, 2)
		assert.Equal(t, "Conta", symbols[0].Name)
		assert.Equal(t, "c", symbols[1].Name)
	})
}

func TestCodeActionRequest(t *testing.T) {
	s, c := newTestServer(t)
	ctx := c.context()
	open(t, s, ctx, testURI, "inteiro x = 5")

	res, err := s.onCodeAction(ctx, &protocol.CodeActionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		Context:      protocol.CodeActionContext{Diagnostics: c.diagnostics(t, testURI).Diagnostics},
	})
	require.NoError(t, err)
	actions := res.([]protocol.CodeAction)
	require.Len(t, actions, 1)
	assert.Equal(t, ";", actions[0].Edit.Changes[testURI][0].NewText)
}

func TestFormattingRequest(t *testing.T) {
	s, c := newTestServer(t)
	ctx := c.context()
	open(t, s, ctx, testURI, "se x {\nimprima(x);\n}\n")

	edits, err := s.onFormatting(ctx, &protocol.DocumentFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		Options:      protocol.FormattingOptions{protocol.FormattingOptionTabSize: float64(2)},
	})
	require.NoError(t, err)
	require.Len(t, edits, 1)
	assert.Equal(t, "se x {\n  imprima(x);\n}\n", edits[0].NewText)
	assert.Equal(t, protocol.Position{Line: 3, Character: 0}, edits[0].Range.End)

	open(t, s, ctx, testURI, edits[0].NewText)
	edits, err = s.onFormatting(ctx, &protocol.DocumentFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		Options:      protocol.FormattingOptions{protocol.FormattingOptionTabSize: float64(2)},
	})
	require.NoError(t, err)
	assert.Empty(t, edits)
}

func TestRequestsForUnknownDocument(t *testing.T) {
	s, c := newTestServer(t)
	ctx := c.context()
	pos := protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///missing.pds"},
	}

	res, err := s.onCompletion(ctx, &protocol.CompletionParams{TextDocumentPositionParams: pos})
	require.NoError(t, err)
	assert.Nil(t, res)

	h, err := s.onHover(ctx, &protocol.HoverParams{TextDocumentPositionParams: pos})
	require.NoError(t, err)
	assert.Nil(t, h)

	edits, err := s.onFormatting(ctx, &protocol.DocumentFormattingParams{TextDocument: pos.TextDocument})
	require.NoError(t, err)
	assert.Nil(t, edits)
}
