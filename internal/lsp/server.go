// Package lsp serves completions over the Language Server Protocol.
package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/sourcegraph/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/jward/frond"
)

// Completer answers completion requests.
type Completer interface {
	Complete(ctx context.Context, req frond.Request) (*frond.Set, error)
}

// Server implements the subset of LSP needed for completion: document
// sync and textDocument/completion.
type Server struct {
	engine  Completer
	logger  *slog.Logger
	version string

	mu       sync.RWMutex
	docs     map[protocol.DocumentURI]*Document
	shutdown bool
}

// Document tracks an open file from the editor.
type Document struct {
	URI      protocol.DocumentURI
	Language string
	Version  int32
	Text     string
}

// NewServer builds a server that completes with engine.
func NewServer(engine Completer, logger *slog.Logger, version string) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		engine:  engine,
		logger:  logger,
		version: version,
		docs:    make(map[protocol.DocumentURI]*Document),
	}
}

// Serve runs the protocol over rwc until the client disconnects or ctx is
// cancelled.
func (s *Server) Serve(ctx context.Context, rwc io.ReadWriteCloser) error {
	stream := jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{})
	conn := jsonrpc2.NewConn(ctx, stream, jsonrpc2.HandlerWithError(s.handle))
	select {
	case <-ctx.Done():
		_ = conn.Close()
		return ctx.Err()
	case <-conn.DisconnectNotify():
		return nil
	}
}

func (s *Server) handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
	s.logger.Debug("lsp request", "method", req.Method, "notif", req.Notif)
	if req.Method != "exit" && s.isShutdown() {
		if req.Notif {
			return nil, nil
		}
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidRequest, Message: "server is shut down"}
	}
	switch req.Method {
	case "initialize":
		return s.initialize(), nil
	case "initialized":
		return nil, nil
	case "shutdown":
		s.mu.Lock()
		s.shutdown = true
		s.mu.Unlock()
		return nil, nil
	case "exit":
		return nil, conn.Close()
	case "textDocument/didOpen":
		var params protocol.DidOpenTextDocumentParams
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		s.DidOpen(params)
		return nil, nil
	case "textDocument/didChange":
		var params protocol.DidChangeTextDocumentParams
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		s.DidChange(params)
		return nil, nil
	case "textDocument/didClose":
		var params protocol.DidCloseTextDocumentParams
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		s.DidClose(params)
		return nil, nil
	case "textDocument/completion":
		var params protocol.CompletionParams
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		return s.Completion(ctx, params)
	}
	if req.Notif {
		return nil, nil
	}
	return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound, Message: "method not supported: " + req.Method}
}

func (s *Server) isShutdown() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shutdown
}

func unmarshalParams(req *jsonrpc2.Request, v any) error {
	if req.Params == nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "missing params"}
	}
	if err := json.Unmarshal(*req.Params, v); err != nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
	}
	return nil
}

func (s *Server) initialize() *protocol.InitializeResult {
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
			},
			CompletionProvider: &protocol.CompletionOptions{
				TriggerCharacters: []string{"."},
			},
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    "frond",
			Version: s.version,
		},
	}
}

// DidOpen stores document state.
func (s *Server) DidOpen(params protocol.DidOpenTextDocumentParams) {
	item := params.TextDocument
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[item.URI] = &Document{
		URI:      item.URI,
		Language: documentLanguage(string(item.LanguageID), item.URI),
		Version:  item.Version,
		Text:     item.Text,
	}
}

// DidChange replaces the document text. Only full sync is advertised, so
// the last change carries the whole document.
func (s *Server) DidChange(params protocol.DidChangeTextDocumentParams) {
	if len(params.ContentChanges) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[params.TextDocument.URI]
	if !ok {
		s.logger.Warn("change for unopened document", "uri", params.TextDocument.URI)
		return
	}
	doc.Text = params.ContentChanges[len(params.ContentChanges)-1].Text
	doc.Version = params.TextDocument.Version
}

// DidClose forgets the document.
func (s *Server) DidClose(params protocol.DidCloseTextDocumentParams) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, params.TextDocument.URI)
}

// Document returns a copy of the open document for uri.
func (s *Server) Document(uri protocol.DocumentURI) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	if !ok {
		return Document{}, false
	}
	return *doc, true
}

// Completion answers textDocument/completion. Unknown documents and
// unsupported languages give an empty list.
func (s *Server) Completion(ctx context.Context, params protocol.CompletionParams) (*protocol.CompletionList, error) {
	list := &protocol.CompletionList{Items: []protocol.CompletionItem{}}
	doc, ok := s.Document(params.TextDocument.URI)
	if !ok || doc.Language == "" {
		return list, nil
	}

	line := int(params.Position.Line) + 1
	req := frond.Request{
		Language: doc.Language,
		Path:     uriPath(doc.URI),
		Source:   []byte(doc.Text),
		Line:     line,
		Col:      runeColumn(lineText(doc.Text, line), int(params.Position.Character)),
	}
	set, err := s.engine.Complete(ctx, req)
	if err != nil {
		if errors.Is(err, frond.ErrUnsupportedLanguage) {
			return list, nil
		}
		return nil, err
	}
	for _, p := range set.Proposals() {
		list.Items = append(list.Items, completionItem(p, set.Context))
	}
	return list, nil
}

// documentLanguage picks the language from the client's language id,
// falling back to the file extension.
func documentLanguage(languageID string, uri protocol.DocumentURI) string {
	switch strings.ToLower(languageID) {
	case "python":
		return "python"
	case "javascript", "javascriptreact":
		return "javascript"
	}
	if lang, ok := frond.LanguageForFile(uriPath(uri)); ok {
		return lang
	}
	return ""
}

func uriPath(uri protocol.DocumentURI) string {
	u, err := url.Parse(string(uri))
	if err != nil || u.Scheme != "file" {
		return string(uri)
	}
	return u.Path
}

// lineText returns the 1-based line of text, without its terminator.
func lineText(text string, line int) string {
	for i := 1; i < line; i++ {
		nl := strings.IndexByte(text, '\n')
		if nl < 0 {
			return ""
		}
		text = text[nl+1:]
	}
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[:nl]
	}
	return strings.TrimSuffix(text, "\r")
}

// runeColumn converts an LSP character offset, counted in UTF-16 code
// units, to a 1-based rune column.
func runeColumn(line string, utf16Offset int) int {
	col, units := 1, 0
	for _, r := range line {
		if units >= utf16Offset {
			break
		}
		units++
		if r >= 0x10000 {
			units++
		}
		col++
	}
	return col
}

// StdioConn joins a reader and a writer, such as stdin and stdout, into
// the stream Serve expects.
func StdioConn(r io.ReadCloser, w io.WriteCloser) io.ReadWriteCloser {
	return &stdioReadWriteCloser{reader: r, writer: w}
}

type stdioReadWriteCloser struct {
	reader io.ReadCloser
	writer io.WriteCloser
}

func (s *stdioReadWriteCloser) Read(p []byte) (int, error)  { return s.reader.Read(p) }
func (s *stdioReadWriteCloser) Write(p []byte) (int, error) { return s.writer.Write(p) }
func (s *stdioReadWriteCloser) Close() error {
	_ = s.reader.Close()
	return s.writer.Close()
}
