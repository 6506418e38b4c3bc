package tools

import (
	"context"
	"fmt"

	"github.com/averycrespi/calculatte-mcp/internal/results"
	"github.com/averycrespi/calculatte-mcp/pkg/calculus"
	"github.com/averycrespi/calculatte-mcp/pkg/types"

	"github.com/mark3labs/mcp-go/mcp"
)

// RoundTool rounds a number half-to-even under the engine's infinity thresholds
type RoundTool struct {
	engines types.EngineProvider
}

// NewRoundTool creates a new round tool
func NewRoundTool(engines types.EngineProvider) *RoundTool {
	return &RoundTool{engines: engines}
}

// GetTool returns the MCP tool definition
func (t *RoundTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolRound,
		mcp.WithDescription("Round a number to a number of decimal places using round-half-to-even. "+
			"Values beyond the configured infinity thresholds become infinite."),
		mcp.WithString("value", mcp.Required(), mcp.Description("Value to round. "+boundDescription)),
		mcp.WithNumber("places", mcp.Description("Decimal places, defaults to 3. -1 returns the value unchanged"),
			mcp.Min(calculus.NoRounding)),
		mcp.WithBoolean("chop_to_zero", mcp.Description("Treat magnitudes below 10^-places as exactly zero")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// Handle processes the tool request
func (t *RoundTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := ParseNumber(ctx, req, "value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	places, err := ParseOptionalInt(req, "places", calculus.DefaultDecimalPlaces)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if places < calculus.NoRounding {
		return mcp.NewToolResultError(fmt.Sprintf("places parameter must be -1 or non-negative: got %d", places)), nil
	}
	chop := mcp.ParseBoolean(req, "chop_to_zero", false)

	engine := t.engines.Engine()
	var rounded float64
	if chop {
		rounded = engine.ChopToZero(value, places)
	} else {
		rounded = engine.Round(value, places)
	}

	toolResult := results.RoundToolResult{
		Message: fmt.Sprintf("%s rounded to %d decimal places is %s.",
			formatNumber(value), places, formatNumber(rounded)),
		Arguments: results.RoundToolArgs{
			Value:      results.Number(value),
			Places:     places,
			ChopToZero: chop,
		},
		Value: results.Number(rounded),
	}
	return marshalResult(toolResult)
}
