package types

import (
	"context"

	"github.com/averycrespi/calculatte-mcp/pkg/calculus"
)

// Server defines the MCP server interface
type Server interface {
	Serve(ctx context.Context) error
}

// EngineProvider hands out the engine tool calls evaluate against
type EngineProvider interface {
	Engine() *calculus.Engine
	Reconfigure(opts ...calculus.Option) (*calculus.Engine, error)
	Reset(opts ...calculus.Option) (*calculus.Engine, error)
}
