package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"

	"github.com/jward/frond"
	"github.com/jward/frond/internal/scope"
)

const docURI = protocol.DocumentURI("file:///work/app.py")

// startServer runs a Server on one end of a pipe and returns a client
// connection on the other, plus a channel carrying Serve's result.
func startServer(t *testing.T) (*jsonrpc2.Conn, <-chan error) {
	t.Helper()
	engine, err := frond.New("")
	require.NoError(t, err)
	srv := NewServer(engine, nil, "test")

	serverSide, clientSide := net.Pipe()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, serverSide) }()

	noop := jsonrpc2.HandlerWithError(func(context.Context, *jsonrpc2.Conn, *jsonrpc2.Request) (interface{}, error) {
		return nil, nil
	})
	client := jsonrpc2.NewConn(ctx, jsonrpc2.NewBufferedStream(clientSide, jsonrpc2.VSCodeObjectCodec{}), noop)
	t.Cleanup(func() { _ = client.Close() })
	return client, done
}

func complete(t *testing.T, client *jsonrpc2.Conn, line, char uint32) []string {
	t.Helper()
	var list protocol.CompletionList
	err := client.Call(context.Background(), "textDocument/completion", protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: docURI},
			Position:     protocol.Position{Line: line, Character: char},
		},
	}, &list)
	require.NoError(t, err)
	labels := make([]string, 0, len(list.Items))
	for _, it := range list.Items {
		labels = append(labels, it.Label)
	}
	return labels
}

func TestServer_Initialize(t *testing.T) {
	t.Parallel()
	client, _ := startServer(t)

	var result protocol.InitializeResult
	require.NoError(t, client.Call(context.Background(), "initialize", &protocol.InitializeParams{}, &result))
	require.NotNil(t, result.ServerInfo)
	assert.Equal(t, "frond", result.ServerInfo.Name)
	assert.Equal(t, "test", result.ServerInfo.Version)
	require.NotNil(t, result.Capabilities.CompletionProvider)
	assert.Equal(t, []string{"."}, result.Capabilities.CompletionProvider.TriggerCharacters)
}

func TestServer_DocumentLifecycle(t *testing.T) {
	t.Parallel()
	client, _ := startServer(t)
	ctx := context.Background()

	var initResult protocol.InitializeResult
	require.NoError(t, client.Call(ctx, "initialize", &protocol.InitializeParams{}, &initResult))
	require.NoError(t, client.Notify(ctx, "initialized", &protocol.InitializedParams{}))

	require.NoError(t, client.Notify(ctx, "textDocument/didOpen", protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        docURI,
			LanguageID: "python",
			Version:    1,
			Text:       "class P:\n    def m(self):\n        self.v = 1\np = P()\np.",
		},
	}))
	assert.Equal(t, []string{"m", "v"}, complete(t, client, 4, 2))

	require.NoError(t, client.Notify(ctx, "textDocument/didChange", protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: docURI},
			Version:                2,
		},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{
			{Text: "class P:\n    def m(self):\n        pass\nq = P()\nq."},
		},
	}))
	assert.Equal(t, []string{"m"}, complete(t, client, 4, 2))

	require.NoError(t, client.Notify(ctx, "textDocument/didClose", protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: docURI},
	}))
	assert.Empty(t, complete(t, client, 4, 2))
}

func TestServer_UnknownMethod(t *testing.T) {
	t.Parallel()
	client, _ := startServer(t)

	err := client.Call(context.Background(), "workspace/symbol", protocol.WorkspaceSymbolParams{Query: "x"}, &json.RawMessage{})
	var rpcErr *jsonrpc2.Error
	require.True(t, errors.As(err, &rpcErr), "got %v", err)
	assert.Equal(t, int64(jsonrpc2.CodeMethodNotFound), rpcErr.Code)
}

func TestServer_ShutdownExit(t *testing.T) {
	t.Parallel()
	client, done := startServer(t)
	ctx := context.Background()

	var out json.RawMessage
	require.NoError(t, client.Call(ctx, "shutdown", nil, &out))
	require.NoError(t, client.Notify(ctx, "exit", nil))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after exit")
	}
}

func TestServer_RejectsRequestsAfterShutdown(t *testing.T) {
	t.Parallel()
	client, _ := startServer(t)
	ctx := context.Background()

	var out json.RawMessage
	require.NoError(t, client.Call(ctx, "shutdown", nil, &out))

	params := protocol.CompletionParams{}
	params.TextDocument.URI = "file:///tmp/x.py"
	err := client.Call(ctx, "textDocument/completion", params, &out)
	var rpcErr *jsonrpc2.Error
	require.True(t, errors.As(err, &rpcErr), "got %v", err)
	assert.Equal(t, int64(jsonrpc2.CodeInvalidRequest), rpcErr.Code)
}

func TestRuneColumn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		line   string
		offset int
		want   int
	}{
		{"start", "abc", 0, 1},
		{"ascii", "abc", 2, 3},
		{"past end", "abc", 10, 4},
		{"bmp rune", "é.x", 2, 3},
		{"surrogate pair", "😀.x", 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, runeColumn(tt.line, tt.offset))
		})
	}
}

func TestLineText(t *testing.T) {
	t.Parallel()
	text := "one\r\ntwo\nthree"
	assert.Equal(t, "one", lineText(text, 1))
	assert.Equal(t, "two", lineText(text, 2))
	assert.Equal(t, "three", lineText(text, 3))
	assert.Equal(t, "", lineText(text, 9))
}

func TestDocumentLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		uri  protocol.DocumentURI
		want string
	}{
		{"python", "file:///a.txt", "python"},
		{"javascriptreact", "file:///a.jsx", "javascript"},
		{"", "file:///src/a.py", "python"},
		{"plaintext", "file:///src/a.js", "javascript"},
		{"rust", "file:///src/a.rs", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, documentLanguage(tt.id, tt.uri), "%s %s", tt.id, tt.uri)
	}
}

func TestURIPath(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "/work/my file.py", uriPath("file:///work/my%20file.py"))
	assert.Equal(t, "untitled:1", uriPath("untitled:1"))
}

func TestCompletionKind(t *testing.T) {
	t.Parallel()
	assert.Equal(t, protocol.CompletionItemKindMethod, completionKind(scope.BindFunc, frond.ContextMember))
	assert.Equal(t, protocol.CompletionItemKindFunction, completionKind(scope.BindFunc, frond.ContextName))
	assert.Equal(t, protocol.CompletionItemKindClass, completionKind(scope.BindClass, frond.ContextName))
	assert.Equal(t, protocol.CompletionItemKindField, completionKind(scope.BindMember, frond.ContextMember))
	assert.Equal(t, protocol.CompletionItemKindVariable, completionKind(scope.BindVar, frond.ContextName))
}
