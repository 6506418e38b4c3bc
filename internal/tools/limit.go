package tools

import (
	"context"
	"fmt"
	"math"

	"github.com/averycrespi/calculatte-mcp/internal/results"
	"github.com/averycrespi/calculatte-mcp/pkg/types"

	"github.com/mark3labs/mcp-go/mcp"
)

// LimitTool approximates one-sided and two-sided limits
type LimitTool struct {
	engines types.EngineProvider
}

// NewLimitTool creates a new limit tool
func NewLimitTool(engines types.EngineProvider) *LimitTool {
	return &LimitTool{engines: engines}
}

// GetTool returns the MCP tool definition
func (t *LimitTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolLimit,
		mcp.WithDescription("Approximate the limit of a function of x as x approaches a point or infinity. "+
			"The left and right limits are always reported; the limit exists only when they agree."),
		mcp.WithString("expression", mcp.Required(), mcp.Description(expressionDescription)),
		mcp.WithString("x", mcp.Required(), mcp.Description("Point approached. "+boundDescription)),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// Handle processes the tool request
func (t *LimitTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
	value := engine.Limit(x, f)
	left := engine.LeftLimit(x, f)
	right := engine.RightLimit(x, f)
	if res := interrupted(ctx); res != nil {
		return res, nil
	}

	toolResult := results.LimitToolResult{
		Arguments: results.LimitToolArgs{
			Expression: e.String(),
			X:          results.Number(x),
		},
		Exists: !math.IsNaN(value),
		Value:  results.Number(value),
		Left:   results.Number(left),
		Right:  results.Number(right),
	}
	if toolResult.Exists {
		toolResult.Message = fmt.Sprintf("The limit of %s as x approaches %s is approximately %s.",
			e, formatNumber(x), formatNumber(value))
	} else {
		markUndefined(ctx)
		toolResult.Message = fmt.Sprintf("The limit of %s as x approaches %s does not exist: "+
			"the left limit (%s) and the right limit (%s) disagree.",
			e, formatNumber(x), formatNumber(left), formatNumber(right))
	}

	return marshalResult(toolResult)
}
