// Package transport connects an MCP server to its clients over stdio or SSE
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/averycrespi/calculatte-mcp/internal/logging"
	"github.com/averycrespi/calculatte-mcp/pkg/types"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Transport serves an MCP server until ctx is cancelled or the client goes away
type Transport interface {
	Serve(ctx context.Context, s *server.MCPServer) error
}

var (
	_ Transport = &StdioTransport{}
	_ Transport = &SSETransport{}
)

// New selects the transport named by cfg
func New(cfg types.ServerConfig, logger *zap.Logger) (Transport, error) {
	switch cfg.Transport {
	case types.TransportStdio, "":
		return NewStdioTransport(os.Stdin, os.Stdout, logger), nil
	case types.TransportSSE:
		if cfg.Address == "" {
			return nil, errors.New("sse transport requires an address")
		}
		return NewSSETransport(cfg.Address, cfg.BaseURL, logger), nil
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
}

// StdioTransport exchanges newline delimited JSON-RPC messages over a reader and writer
type StdioTransport struct {
	in     io.Reader
	out    io.Writer
	logger *zap.Logger
}

// NewStdioTransport creates a stdio transport reading from in and writing to out
func NewStdioTransport(in io.Reader, out io.Writer, logger *zap.Logger) *StdioTransport {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StdioTransport{in: in, out: out, logger: logger}
}

// Serve blocks until the input is closed or ctx is cancelled
func (t *StdioTransport) Serve(ctx context.Context, s *server.MCPServer) error {
	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(logging.NewStdLog(t.logger))

	t.logger.Info("Serving MCP over stdio")
	err := stdio.Listen(ctx, t.in, t.out)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio transport failed: %w", err)
	}
	return nil
}

// SSETransport serves MCP clients over HTTP server-sent events
type SSETransport struct {
	address string
	baseURL string
	logger  *zap.Logger
}

// NewSSETransport creates an SSE transport listening on address. baseURL defaults to
// http://<address>.
func NewSSETransport(address, baseURL string, logger *zap.Logger) *SSETransport {
	if baseURL == "" {
		baseURL = "http://" + address
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SSETransport{address: address, baseURL: baseURL, logger: logger}
}

// Serve blocks until ctx is cancelled, then shuts the HTTP server down
func (t *SSETransport) Serve(ctx context.Context, s *server.MCPServer) error {
	sse := server.NewSSEServer(s, server.WithBaseURL(t.baseURL))

	errCh := make(chan error, 1)
	go func() {
		t.logger.Info("Serving MCP over SSE",
			zap.String("address", t.address),
			zap.String("base_url", t.baseURL),
		)
		errCh <- sse.Start(t.address)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("sse transport failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := sse.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown sse transport: %w", err)
		}
		return nil
	}
}
