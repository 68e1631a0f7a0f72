// Package lspserver implements a Language Server Protocol shell over
// internal/compiler/tooling. It is deliberately thin (§1: the LSP
// JSON-RPC server is an external collaborator, only the shape of the data
// it consumes is specified by the core): every request it handles is a
// direct dispatch to internal/compiler/tooling.API, converting between
// LSP wire types and the tooling package's own query-result types.
package lspserver

import (
	"context"
	"encoding/json"
	"os"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/zap"

	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/tooling"
)

// Server dispatches JSON-RPC requests from an LSP client to one shared
// tooling.API. tooling.API already owns the external mutex §5 requires
// (read queries and didChange-triggered recompiles can race from the
// dispatch loop); Server itself holds no compiler state of its own.
type Server struct {
	api *tooling.API

	conn   jsonrpc2.Conn
	client protocol.Client
	logger *zap.Logger

	workspaceRoot string
	capabilities  protocol.ServerCapabilities

	cancel context.CancelFunc
}

// NewServer returns a Server backed by a fresh tooling.API.
func NewServer(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		api:    tooling.NewAPI(),
		logger: logger,
		capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
			},
			CompletionProvider: &protocol.CompletionOptions{
				TriggerCharacters: []string{".", ":"},
			},
			HoverProvider:          true,
			DefinitionProvider:     &protocol.DefinitionOptions{},
			ReferencesProvider:     true,
			DocumentSymbolProvider: true,
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: semanticTokensLegend,
				Full:   true,
			},
		},
	}
}

// Run drives the server over stdio until ctx is cancelled or the client
// sends exit: a stdio jsonrpc2 stream, a protocol.Client dispatcher for
// server-to-client notifications (publishDiagnostics), and one dispatch
// switch.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	stream := jsonrpc2.NewStream(stdrwc{})
	conn := jsonrpc2.NewConn(stream)
	s.conn = conn
	s.client = protocol.ClientDispatcher(conn, s.logger)

	conn.Go(ctx, s.handler())

	<-ctx.Done()
	return conn.Close()
}

func (s *Server) handler() jsonrpc2.Handler {
	return func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		s.logger.Debug("request", zap.String("method", req.Method()))

		switch req.Method() {
		case protocol.MethodInitialize:
			return s.handleInitialize(ctx, reply, req)
		case protocol.MethodInitialized:
			return reply(ctx, nil, nil)
		case protocol.MethodShutdown:
			return reply(ctx, nil, nil)
		case protocol.MethodExit:
			if s.cancel != nil {
				s.cancel()
			}
			return reply(ctx, nil, nil)
		case protocol.MethodTextDocumentDidOpen:
			return s.handleDidOpen(ctx, reply, req)
		case protocol.MethodTextDocumentDidChange:
			return s.handleDidChange(ctx, reply, req)
		case protocol.MethodTextDocumentDidClose:
			return s.handleDidClose(ctx, reply, req)
		case protocol.MethodTextDocumentHover:
			return s.handleHover(ctx, reply, req)
		case protocol.MethodTextDocumentDefinition:
			return s.handleDefinition(ctx, reply, req)
		case protocol.MethodTextDocumentReferences:
			return s.handleReferences(ctx, reply, req)
		case protocol.MethodTextDocumentCompletion:
			return s.handleCompletion(ctx, reply, req)
		case protocol.MethodTextDocumentDocumentSymbol:
			return s.handleDocumentSymbol(ctx, reply, req)
		case protocol.MethodTextDocumentSemanticTokensFull:
			return s.handleSemanticTokensFull(ctx, reply, req)
		default:
			return reply(ctx, nil, jsonrpc2.ErrMethodNotFound)
		}
	}
}

func (s *Server) handleInitialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.InitializeParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyError(ctx, reply, "failed to parse initialize params")
	}
	if len(params.WorkspaceFolders) > 0 {
		s.workspaceRoot = uri.URI(params.WorkspaceFolders[0].URI).Filename()
	} else if params.RootURI != "" {
		s.workspaceRoot = params.RootURI.Filename()
	}
	return reply(ctx, protocol.InitializeResult{
		Capabilities: s.capabilities,
		ServerInfo:   &protocol.ServerInfo{Name: "kieli-lsp", Version: "0.1.0"},
	}, nil)
}

func (s *Server) handleDidOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidOpenTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyError(ctx, reply, "failed to parse didOpen params")
	}
	docURI := string(params.TextDocument.URI)
	_, diags := s.api.OpenDocument(docURI, params.TextDocument.Text, params.TextDocument.LanguageID, int(params.TextDocument.Version))
	s.publishDiagnostics(ctx, docURI, diags)
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidChangeTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyError(ctx, reply, "failed to parse didChange params")
	}
	if len(params.ContentChanges) == 0 {
		return reply(ctx, nil, nil)
	}
	docURI := string(params.TextDocument.URI)
	id, ok := s.api.DocumentID(docURI)
	if !ok {
		return reply(ctx, nil, nil)
	}
	// Full document sync (§6.1/§3.8: every revision rebuilds arenas from
	// scratch), so only the last change's full text matters.
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	diags := s.api.ChangeDocument(id, text, int(params.TextDocument.Version))
	s.publishDiagnostics(ctx, docURI, diags)
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidCloseTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyError(ctx, reply, "failed to parse didClose params")
	}
	docURI := string(params.TextDocument.URI)
	if id, ok := s.api.DocumentID(docURI); ok {
		s.api.CloseDocument(id)
	}
	return reply(ctx, nil, nil)
}

// publishDiagnostics converts diags (in pipeline order, §8.1) to LSP
// Diagnostic values and pushes them to the client via
// textDocument/publishDiagnostics.
func (s *Server) publishDiagnostics(ctx context.Context, docURI string, diags []diag.Diagnostic) {
	lspDiags := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		lspDiags = append(lspDiags, convertDiagnostic(d))
	}
	err := s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(docURI),
		Diagnostics: lspDiags,
	})
	if err != nil {
		s.logger.Warn("publishDiagnostics failed", zap.Error(err))
	}
}

func replyError(ctx context.Context, reply jsonrpc2.Replier, message string) error {
	return reply(ctx, nil, &jsonrpc2.Error{Code: jsonrpc2.InvalidParams, Message: message})
}

// stdrwc implements io.ReadWriteCloser over stdin/stdout for the JSON-RPC
// transport.
type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdrwc) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}
