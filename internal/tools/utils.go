package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/averycrespi/calculatte-mcp/internal/expr"
	"github.com/averycrespi/calculatte-mcp/pkg/calculus"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"
)

// ParseExpression compiles the required expression argument named key
func ParseExpression(req mcp.CallToolRequest, key string) (*expr.Expression, error) {
	src := mcp.ParseString(req, key, "")
	if src == "" {
		return nil, fmt.Errorf("%s parameter is required", key)
	}

	e, err := expr.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("%s parameter is not a valid expression: %w", key, err)
	}
	return e, nil
}

// ParseOptionalExpression is like ParseExpression but falls back to def when the argument is absent
func ParseOptionalExpression(req mcp.CallToolRequest, key, def string) (*expr.Expression, error) {
	if _, ok := req.GetArguments()[key]; !ok {
		return expr.Compile(def)
	}
	return ParseExpression(req, key)
}

// ParseNumber reads the required numeric argument named key. Strings are evaluated as
// constant expressions bounded by ctx, so "pi/2" and "-inf" are accepted.
func ParseNumber(ctx context.Context, req mcp.CallToolRequest, key string) (float64, error) {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return 0, fmt.Errorf("%s parameter is required", key)
	}
	return toNumber(ctx, key, raw)
}

// ParseOptionalNumber is like ParseNumber but returns def when the argument is absent
func ParseOptionalNumber(ctx context.Context, req mcp.CallToolRequest, key string, def float64) (float64, error) {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return def, nil
	}
	return toNumber(ctx, key, raw)
}

// ParseInt reads the required integer argument named key
func ParseInt(req mcp.CallToolRequest, key string) (int, error) {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return 0, fmt.Errorf("%s parameter is required", key)
	}
	return toInt(key, raw)
}

// ParseOptionalInt is like ParseInt but returns def when the argument is absent
func ParseOptionalInt(req mcp.CallToolRequest, key string, def int) (int, error) {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return def, nil
	}
	return toInt(key, raw)
}

func toNumber(ctx context.Context, key string, raw any) (float64, error) {
	if s, ok := raw.(string); ok {
		v, err := expr.Evaluate(ctx, s)
		if err != nil {
			return 0, fmt.Errorf("%s parameter must be a number: %w", key, err)
		}
		return v, nil
	}

	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, fmt.Errorf("%s parameter must be a number: %w", key, err)
	}
	return v, nil
}

func toInt(key string, raw any) (int, error) {
	if f, ok := raw.(float64); ok && (f != math.Trunc(f) || math.IsInf(f, 0)) {
		return 0, fmt.Errorf("%s parameter must be an integer: got %v", key, f)
	}

	v, err := cast.ToIntE(raw)
	if err != nil {
		return 0, fmt.Errorf("%s parameter must be an integer: %w", key, err)
	}
	return v, nil
}

// bind turns a compiled expression into a function that stops with ctx and counts its evaluations
func bind(ctx context.Context, e *expr.Expression) (calculus.Function, func()) {
	f, release := e.Bind(ctx)
	stats := statsFromContext(ctx)
	if stats == nil {
		return f, release
	}

	return func(x float64) float64 {
		stats.evaluations.Add(1)
		return f(x)
	}, release
}

// interrupted converts a cancelled or timed out call into a tool error
func interrupted(ctx context.Context) *mcp.CallToolResult {
	if err := ctx.Err(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Evaluation was interrupted: %v", err))
	}
	return nil
}

// markUndefined flags the current call as having produced a result that does not exist
func markUndefined(ctx context.Context) {
	if stats := statsFromContext(ctx); stats != nil {
		stats.undefined.Store(true)
	}
}

// marshalResult renders a tool result as indented JSON text
func marshalResult(toolResult any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.MarshalIndent(toolResult, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal JSON: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// formatNumber renders x for human readable messages
func formatNumber(x float64) string {
	return cast.ToString(x)
}
