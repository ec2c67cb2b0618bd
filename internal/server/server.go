package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"scout/internal/config"
	"scout/pkg/logging"
)

// Server exposes one catalog of materialized tools over MCP.
type Server struct {
	config  config.ServerConfig
	catalog *Catalog

	server               *mcpserver.MCPServer
	streamableHTTPServer *mcpserver.StreamableHTTPServer
	stdioServer          *mcpserver.StdioServer

	ctx        context.Context
	cancelFunc context.CancelFunc
	mu         sync.Mutex
}

// New creates a server over an already-built catalog.
func New(cfg config.ServerConfig, catalog *Catalog) *Server {
	return &Server{config: cfg, catalog: catalog}
}

// Catalog returns the catalog this server exposes.
func (s *Server) Catalog() *Catalog { return s.catalog }

// Start registers every tool with a fresh MCP server and starts the
// configured transport. It returns once the transport is listening.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server != nil {
		return fmt.Errorf("server already started")
	}

	s.ctx, s.cancelFunc = context.WithCancel(ctx)

	s.server = mcpserver.NewMCPServer(
		"scout",
		"1.0.0",
		mcpserver.WithToolCapabilities(true),
	)
	s.server.AddTools(serverTools(s.catalog.Table)...)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	switch s.config.Transport {
	case config.TransportStdio:
		logging.Info("Server", "Starting MCP server with stdio transport")
		s.stdioServer = mcpserver.NewStdioServer(s.server)
		stdioServer := s.stdioServer
		go func() {
			if err := stdioServer.Listen(s.ctx, os.Stdin, os.Stdout); err != nil {
				logging.Error("Server", err, "Stdio server error")
			}
		}()

	case config.TransportStreamableHTTP:
		fallthrough
	default:
		logging.Info("Server", "Starting MCP server with streamable-http transport on %s", addr)
		s.streamableHTTPServer = mcpserver.NewStreamableHTTPServer(s.server)
		streamableServer := s.streamableHTTPServer
		go func() {
			if err := streamableServer.Start(addr); err != nil && err != http.ErrServerClosed {
				logging.Error("Server", err, "Streamable HTTP server error")
			}
		}()
	}

	return nil
}

// Stop shuts the transport down and closes every provider.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.server == nil {
		s.mu.Unlock()
		return fmt.Errorf("server not started")
	}
	logging.Info("Server", "Stopping MCP server")

	cancelFunc := s.cancelFunc
	streamableServer := s.streamableHTTPServer
	s.mu.Unlock()

	if cancelFunc != nil {
		cancelFunc()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if streamableServer != nil {
		if err := streamableServer.Shutdown(shutdownCtx); err != nil {
			logging.Error("Server", err, "Error shutting down streamable HTTP server")
		}
	}
	// The stdio server stops on context cancellation.

	s.catalog.Registry.Close()

	s.mu.Lock()
	s.server = nil
	s.streamableHTTPServer = nil
	s.stdioServer = nil
	s.mu.Unlock()

	return nil
}
