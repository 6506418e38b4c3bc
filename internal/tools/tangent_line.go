package tools

import (
	"context"
	"fmt"
	"math"

	"github.com/averycrespi/calculatte-mcp/internal/results"
	"github.com/averycrespi/calculatte-mcp/pkg/calculus"
	"github.com/averycrespi/calculatte-mcp/pkg/types"

	"github.com/mark3labs/mcp-go/mcp"
)

// TangentLineTool computes the tangent line of a function at a point
type TangentLineTool struct {
	engines types.EngineProvider
}

// NewTangentLineTool creates a new tangent line tool
func NewTangentLineTool(engines types.EngineProvider) *TangentLineTool {
	return &TangentLineTool{engines: engines}
}

// GetTool returns the MCP tool definition
func (t *TangentLineTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolTangentLine,
		mcp.WithDescription("Compute the line tangent to a function of x at a point, "+
			"optionally evaluating the line at another point"),
		mcp.WithString("expression", mcp.Required(), mcp.Description(expressionDescription)),
		mcp.WithString("x", mcp.Required(), mcp.Description("Point of tangency. "+boundDescription)),
		mcp.WithString("at", mcp.Description("Optional point at which to evaluate the tangent line. "+boundDescription)),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// Handle processes the tool request
func (t *TangentLineTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	e, err := ParseExpression(req, "expression")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	x, err := ParseNumber(ctx, req, "x")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var at *float64
	if _, ok := req.GetArguments()["at"]; ok {
		v, err := ParseNumber(ctx, req, "at")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		at = &v
	}

	f, release := bind(ctx, e)
	defer release()

	slope, intercept := t.engines.Engine().TangentLineCoefficients(x, f)
	if res := interrupted(ctx); res != nil {
		return res, nil
	}

	toolResult := results.TangentLineToolResult{
		Arguments: results.TangentLineToolArgs{
			Expression: e.String(),
			X:          results.Number(x),
		},
		Exists:    !math.IsNaN(slope),
		Slope:     results.Number(slope),
		Intercept: results.Number(intercept),
	}
	if at != nil {
		atNumber := results.Number(*at)
		valueAt := results.Number(calculus.Line(slope, intercept)(*at))
		toolResult.Arguments.At = &atNumber
		toolResult.ValueAt = &valueAt
	}

	if !toolResult.Exists {
		markUndefined(ctx)
		toolResult.Message = fmt.Sprintf("%s has no tangent line at x = %s because its derivative does not exist there.",
			e, formatNumber(x))
		return marshalResult(toolResult)
	}

	toolResult.Equation = lineEquation(slope, intercept)
	toolResult.Message = fmt.Sprintf("The tangent line of %s at x = %s is %s.", e, formatNumber(x), toolResult.Equation)
	return marshalResult(toolResult)
}

// lineEquation renders y = m·x + b, e.g. "y = 4x - 4"
func lineEquation(m, b float64) string {
	switch {
	case b == 0:
		return fmt.Sprintf("y = %sx", formatNumber(m))
	case b < 0:
		return fmt.Sprintf("y = %sx - %s", formatNumber(m), formatNumber(-b))
	default:
		return fmt.Sprintf("y = %sx + %s", formatNumber(m), formatNumber(b))
	}
}
