package tools

import (
	"context"

	"github.com/averycrespi/calculatte-mcp/internal/metrics"
	"github.com/averycrespi/calculatte-mcp/internal/results"
	"github.com/averycrespi/calculatte-mcp/pkg/types"

	"github.com/mark3labs/mcp-go/mcp"
)

// Tool is an MCP tool definition paired with its handler
type Tool interface {
	GetTool() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// NewTools creates every calculus tool backed by engines. m may be nil.
func NewTools(engines types.EngineProvider, m *metrics.Metrics) []Tool {
	return []Tool{
		NewIntegrateTool(engines),
		NewDerivativeTool(engines),
		NewTangentLineTool(engines),
		NewLimitTool(engines),
		NewRiemannSumTool(engines, results.RiemannMethodLeft),
		NewRiemannSumTool(engines, results.RiemannMethodRight),
		NewRiemannSumTool(engines, results.RiemannMethodMidpoint),
		NewRiemannSumTool(engines, results.RiemannMethodTrapezoidal),
		NewRevolveTool(engines),
		NewCrossSectionTool(engines),
		NewPolarAreaTool(engines),
		NewRoundTool(engines),
		NewGetAccuracyTool(engines),
		NewSetAccuracyTool(engines, m),
	}
}
