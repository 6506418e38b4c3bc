package tools

import (
	"context"
	"fmt"

	"github.com/averycrespi/calculatte-mcp/internal/results"
	"github.com/averycrespi/calculatte-mcp/pkg/calculus"
	"github.com/averycrespi/calculatte-mcp/pkg/types"

	"github.com/mark3labs/mcp-go/mcp"
)

type riemannRule func(e *calculus.Engine, a, b float64, f calculus.Function, n int) (float64, error)

var riemannTools = map[results.RiemannMethod]struct {
	name        string
	description string
	rule        riemannRule
}{
	results.RiemannMethodLeft: {
		name:        ToolLeftRiemannSum,
		description: "Approximate the integral of a function of x from a to b with n rectangles sampled at their left edges",
		rule:        (*calculus.Engine).LeftRiemannSum,
	},
	results.RiemannMethodRight: {
		name:        ToolRightRiemannSum,
		description: "Approximate the integral of a function of x from a to b with n rectangles sampled at their right edges",
		rule:        (*calculus.Engine).RightRiemannSum,
	},
	results.RiemannMethodMidpoint: {
		name:        ToolMidpointRule,
		description: "Approximate the integral of a function of x from a to b with n rectangles sampled at their midpoints",
		rule:        (*calculus.Engine).MidpointRule,
	},
	results.RiemannMethodTrapezoidal: {
		name:        ToolTrapezoidalSum,
		description: "Approximate the integral of a function of x from a to b with n trapezoids",
		rule:        (*calculus.Engine).TrapezoidalSum,
	},
}

// RiemannSumTool approximates an integral with one of the Riemann-family rules
type RiemannSumTool struct {
	engines types.EngineProvider
	method  results.RiemannMethod
}

// NewRiemannSumTool creates a Riemann-family tool for method
func NewRiemannSumTool(engines types.EngineProvider, method results.RiemannMethod) *RiemannSumTool {
	return &RiemannSumTool{engines: engines, method: method}
}

// GetTool returns the MCP tool definition
func (t *RiemannSumTool) GetTool() mcp.Tool {
	entry := riemannTools[t.method]
	return mcp.NewTool(entry.name,
		mcp.WithDescription(entry.description),
		mcp.WithString("expression", mcp.Required(), mcp.Description(expressionDescription)),
		mcp.WithString("a", mcp.Required(), mcp.Description("Lower bound. "+boundDescription)),
		mcp.WithString("b", mcp.Required(), mcp.Description("Upper bound. "+boundDescription)),
		mcp.WithNumber("n", mcp.Required(), mcp.Min(1), mcp.Description("Number of subintervals")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// Handle processes the tool request
func (t *RiemannSumTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entry, ok := riemannTools[t.method]
	if !ok {
		return nil, fmt.Errorf("unknown Riemann method %q", t.method)
	}

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
	n, err := ParseInt(req, "n")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	f, release := bind(ctx, e)
	defer release()

	value, err := entry.rule(t.engines.Engine(), a, b, f, n)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to compute the %s: %v", t.method.Description(), err)), nil
	}
	if res := interrupted(ctx); res != nil {
		return res, nil
	}

	toolResult := results.RiemannSumToolResult{
		Message: fmt.Sprintf("The %s of %s from %s to %s with %d subintervals is %s.",
			t.method.Description(), e, formatNumber(a), formatNumber(b), n, formatNumber(value)),
		Method: t.method,
		Arguments: results.RiemannSumToolArgs{
			Expression:   e.String(),
			A:            results.Number(a),
			B:            results.Number(b),
			Subintervals: n,
		},
		Value: results.Number(value),
	}
	return marshalResult(toolResult)
}
