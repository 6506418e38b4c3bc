package tools

import (
	"context"
	"fmt"

	"github.com/averycrespi/calculatte-mcp/internal/results"
	"github.com/averycrespi/calculatte-mcp/pkg/types"

	"github.com/mark3labs/mcp-go/mcp"
)

// IntegrateTool approximates definite integrals with Simpson's rule
type IntegrateTool struct {
	engines types.EngineProvider
}

// NewIntegrateTool creates a new integrate tool
func NewIntegrateTool(engines types.EngineProvider) *IntegrateTool {
	return &IntegrateTool{engines: engines}
}

// GetTool returns the MCP tool definition
func (t *IntegrateTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolIntegrate,
		mcp.WithDescription("Approximate the definite integral of a function of x from a to b using Simpson's rule"),
		mcp.WithString("expression", mcp.Required(), mcp.Description(expressionDescription)),
		mcp.WithString("a", mcp.Required(), mcp.Description("Lower bound. "+boundDescription)),
		mcp.WithString("b", mcp.Required(), mcp.Description("Upper bound. "+boundDescription)),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// Handle processes the tool request
func (t *IntegrateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	e, err := ParseExpression(req, "expression")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a, err := ParseNumber(ctx, req, "a")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := ParseNumber(ctx, req, "b")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	f, release := bind(ctx, e)
	defer release()

	value := t.engines.Engine().Integrate(a, b, f)
	if res := interrupted(ctx); res != nil {
		return res, nil
	}

	toolResult := results.IntegrateToolResult{
		Message: fmt.Sprintf("The integral of %s from %s to %s is approximately %s.",
			e, formatNumber(a), formatNumber(b), formatNumber(value)),
		Arguments: results.IntegrateToolArgs{
			Expression: e.String(),
			A:          results.Number(a),
			B:          results.Number(b),
		},
		Value: results.Number(value),
	}
	return marshalResult(toolResult)
}
