package tools

import (
	"context"
	"fmt"
	"math"

	"github.com/averycrespi/calculatte-mcp/internal/results"
	"github.com/averycrespi/calculatte-mcp/pkg/types"

	"github.com/mark3labs/mcp-go/mcp"
)

// DerivativeTool approximates the derivative of a function at a point
type DerivativeTool struct {
	engines types.EngineProvider
}

// NewDerivativeTool creates a new derivative tool
func NewDerivativeTool(engines types.EngineProvider) *DerivativeTool {
	return &DerivativeTool{engines: engines}
}

// GetTool returns the MCP tool definition
func (t *DerivativeTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolDerivative,
		mcp.WithDescription("Approximate the derivative of a function of x at a point. "+
			"The derivative is reported as not existing when the left and right derivatives disagree, "+
			"for example at a corner or a discontinuity."),
		mcp.WithString("expression", mcp.Required(), mcp.Description(expressionDescription)),
		mcp.WithString("x", mcp.Required(), mcp.Description("Point of differentiation. "+boundDescription)),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// Handle processes the tool request
func (t *DerivativeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	e, err := ParseExpression(req, "expression")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	x, err := ParseNumber(ctx, req, "x")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	f, release := bind(ctx, e)
	defer release()

	engine := t.engines.Engine()
	places := engine.Config().Precision.Derivation
	value := engine.Derivate(x, f)
	left := engine.Round(engine.LeftDerivative(x, f), places)
	right := engine.Round(engine.RightDerivative(x, f), places)
	if res := interrupted(ctx); res != nil {
		return res, nil
	}

	toolResult := results.DerivativeToolResult{
		Arguments: results.DerivativeToolArgs{
			Expression: e.String(),
			X:          results.Number(x),
		},
		Exists: !math.IsNaN(value),
		Value:  results.Number(value),
		Left:   results.Number(left),
		Right:  results.Number(right),
	}
	if toolResult.Exists {
		toolResult.Message = fmt.Sprintf("The derivative of %s at x = %s is approximately %s.",
			e, formatNumber(x), formatNumber(value))
	} else {
		markUndefined(ctx)
		toolResult.Message = fmt.Sprintf("The derivative of %s does not exist at x = %s: "+
			"the left derivative (%s) and the right derivative (%s) disagree.",
			e, formatNumber(x), formatNumber(left), formatNumber(right))
	}

	return marshalResult(toolResult)
}
