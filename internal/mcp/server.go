// Package mcp exposes the opportunity, assessment and profile operations as
// MCP tools over streamable HTTP.
package mcp

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobfit/internal/config"
	"github.com/honeycarbs/jobfit/internal/mcp/tools"
	"github.com/honeycarbs/jobfit/pkg/logging"
)

// Version is reported to MCP clients
const Version = "0.1.0"

// Server wraps an MCP SDK server with an HTTP listener
type Server struct {
	logger *logging.Logger

	mcp     *sdkmcp.Server
	srv     *http.Server
	started atomic.Bool
}

// NewServer constructs a new MCP HTTP server with the given tools
func NewServer(log *logging.Logger, cfg config.Config, opts ...tools.Option) *Server {
	impl := &sdkmcp.Implementation{
		Name:    "jobfit",
		Version: Version,
	}

	mcpServer := sdkmcp.NewServer(impl, nil)
	tools.Register(mcpServer, opts...)

	return &Server{
		logger: log,
		mcp:    mcpServer,
		srv: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
			Handler:           Handler(mcpServer),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Handler serves the MCP stream and a health check
func Handler(mcpServer *sdkmcp.Server) http.Handler {
	stream := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return mcpServer
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp/stream", stream)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// MCP returns the SDK server, for in-process transports
func (s *Server) MCP() *sdkmcp.Server {
	return s.mcp
}

// Run starts the HTTP server and blocks until shutdown
func (s *Server) Run() error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	s.logger.Info("MCP HTTP server listening", "addr", s.srv.Addr)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutdown requested for MCP HTTP server")
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("MCP HTTP server shutdown with error", "err", err)
		return err
	}

	s.logger.Info("MCP HTTP server shutdown complete")
	return nil
}
