package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"docmcp/internal/config"
	"docmcp/internal/document"
	"docmcp/internal/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"
)

const instructions = `This server holds a small set of text documents addressed by ID.
List IDs with the docs://documents resource, read one with read_doc_contents or
docs://documents/{doc_id}, and change one with edit_doc by exact string replacement.`

// shutdownTimeout bounds how long network transports wait for open requests.
const shutdownTimeout = 5 * time.Second

// streamableEndpoint is where the streamable HTTP transport is mounted.
const streamableEndpoint = "/mcp"

// httpTransport is the part of the SSE and streamable HTTP servers Stop needs.
// Both are built around an *http.Server owned by Serve, so Shutdown always
// reaches it, even before it starts listening.
type httpTransport interface {
	Shutdown(ctx context.Context) error
}

// Server represents an MCP server instance using mcp-go
type Server struct {
	config    *config.Config
	logger    *logging.AppLogger
	ops       *document.Operations
	registry  *Registry
	mcpServer *server.MCPServer

	stdin  io.Reader
	stdout io.Writer

	mu        sync.Mutex
	transport httpTransport
}

// NewServer creates a new MCP server instance. Nothing is registered until
// Build is called.
func NewServer(cfg *config.Config, logger *logging.AppLogger, ops *document.Operations) *Server {
	return &Server{
		config: cfg,
		logger: logger,
		ops:    ops,
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}
}

// Build fills the registry and creates the mcp-go server from it.
func (s *Server) Build() error {
	if s.mcpServer != nil {
		return nil
	}

	reg := NewRegistry()
	h := &handlers{ops: s.ops, logger: s.logger}
	if err := h.register(reg); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}

	mcpServer := server.NewMCPServer(s.config.Name, s.config.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithInstructions(instructions),
		server.WithHooks(s.hooks()),
		server.WithRecovery(),
	)
	reg.Install(mcpServer)

	s.registry = reg
	s.mcpServer = mcpServer

	s.logger.Info("MCP server built",
		"name", s.config.Name,
		"tools", len(reg.ToolNames()),
		"resources", len(reg.ResourceURIs())+len(reg.TemplateURIs()),
		"prompts", len(reg.PromptNames()),
		"documents", s.ops.Store().Len(),
	)
	return nil
}

// MCPServer returns the underlying mcp-go server, or nil before Build.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Registry returns the registry populated by Build.
func (s *Server) Registry() *Registry {
	return s.registry
}

// Serve runs the configured transport until ctx is cancelled or the transport
// fails. Cancellation is a clean exit.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.Build(); err != nil {
		return err
	}

	s.logger.Info("Starting MCP server", "transport", s.config.Transport, "address", s.config.Address)

	switch s.config.Transport {
	case config.TransportStdio:
		return s.serveStdio(ctx)
	case config.TransportSSE:
		httpSrv := s.newHTTPServer()
		opts := []server.SSEOption{server.WithHTTPServer(httpSrv)}
		if s.config.BaseURL != "" {
			opts = append(opts, server.WithBaseURL(s.config.BaseURL))
		}
		sse := server.NewSSEServer(s.mcpServer, opts...)
		httpSrv.Handler = sse
		return s.serveHTTP(ctx, httpSrv, sse)
	case config.TransportHTTP:
		httpSrv := s.newHTTPServer()
		streamable := server.NewStreamableHTTPServer(s.mcpServer,
			server.WithEndpointPath(streamableEndpoint),
			server.WithStreamableHTTPServer(httpSrv),
		)
		mux := http.NewServeMux()
		mux.Handle(streamableEndpoint, streamable)
		httpSrv.Handler = mux
		return s.serveHTTP(ctx, httpSrv, streamable)
	default:
		return fmt.Errorf("unsupported transport %q", s.config.Transport)
	}
}

// Stop shuts down a running network transport. For stdio, cancel the context
// passed to Serve instead.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	t := s.transport
	s.transport = nil
	s.mu.Unlock()

	if t == nil {
		return nil
	}

	s.logger.Info("Stopping MCP server")
	return t.Shutdown(ctx)
}

func (s *Server) serveStdio(ctx context.Context) error {
	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(s.logger.StandardLog())

	err := stdio.Listen(ctx, s.stdin, s.stdout)
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		s.logger.Info("Stdio transport closed")
		return nil
	}
	return fmt.Errorf("stdio transport failed: %w", err)
}

func (s *Server) newHTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.config.Address,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          s.logger.StandardLog(),
	}
}

// serveHTTP runs httpSrv until ctx is done. Shutdown may land before
// ListenAndServe; http.Server remembers it and ListenAndServe then returns
// ErrServerClosed instead of listening.
func (s *Server) serveHTTP(ctx context.Context, httpSrv *http.Server, t httpTransport) error {
	s.mu.Lock()
	s.transport = t
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s transport failed: %w", s.config.Transport, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Stop(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) hooks() *server.Hooks {
	hooks := &server.Hooks{}

	hooks.AddBeforeAny(func(ctx context.Context, id any, method mcp.MCPMethod, message any) {
		s.logger.Debug("Request received", "id", id, "method", method)
	})

	hooks.AddOnError(func(ctx context.Context, id any, method mcp.MCPMethod, message any, err error) {
		s.logger.Warn("Request failed", "id", id, "method", method, "error", err)
	})

	hooks.AddOnRegisterSession(func(ctx context.Context, session server.ClientSession) {
		s.logger.Info("Client session registered", "session", session.SessionID())
	})

	return hooks
}
