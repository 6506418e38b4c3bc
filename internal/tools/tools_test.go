package tools

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/averycrespi/calculatte-mcp/internal/engine"
	"github.com/averycrespi/calculatte-mcp/internal/results"
	"github.com/averycrespi/calculatte-mcp/pkg/calculus"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *engine.Manager {
	t.Helper()
	m, err := engine.NewManager(calculus.DefaultConfig(), nil)
	require.NoError(t, err)
	return m
}

func callTool(t *testing.T, tool Tool, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	result, err := tool.Handle(context.Background(), newRequest(args))
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	return result
}

func resultText(result *mcp.CallToolResult) string {
	return result.Content[0].(mcp.TextContent).Text
}

func decodeResult[T any](t *testing.T, result *mcp.CallToolResult) T {
	t.Helper()
	require.False(t, result.IsError, resultText(result))

	var toolResult T
	require.NoError(t, json.Unmarshal([]byte(resultText(result)), &toolResult))
	return toolResult
}

func requireToolError(t *testing.T, result *mcp.CallToolResult, contains string) {
	t.Helper()
	require.True(t, result.IsError, resultText(result))
	assert.Contains(t, resultText(result), contains)
}

func TestNewTools(t *testing.T) {
	tools := NewTools(newTestManager(t), nil)

	names := make([]string, len(tools))
	for i, tool := range tools {
		names[i] = tool.GetTool().Name
	}
	assert.Equal(t, []string{
		ToolIntegrate, ToolDerivative, ToolTangentLine, ToolLimit,
		ToolLeftRiemannSum, ToolRightRiemannSum, ToolMidpointRule, ToolTrapezoidalSum,
		ToolRevolve, ToolCrossSection, ToolPolarArea,
		ToolRound, ToolGetAccuracy, ToolSetAccuracy,
	}, names)
}

func TestIntegrateTool(t *testing.T) {
	tool := NewIntegrateTool(newTestManager(t))

	tests := []struct {
		name     string
		args     map[string]any
		expected float64
	}{
		{
			name:     "Polynomial",
			args:     map[string]any{"expression": "x^2", "a": 0, "b": 3},
			expected: 9,
		},
		{
			name:     "Trigonometric with constant bounds",
			args:     map[string]any{"expression": "sin(x)", "a": "0", "b": "pi"},
			expected: 2,
		},
		{
			name:     "Reversed bounds",
			args:     map[string]any{"expression": "x^2", "a": 3, "b": 0},
			expected: -9,
		},
		{
			name:     "Piecewise",
			args:     map[string]any{"expression": "x < 1 ? x : 2 - x", "a": 0, "b": 2},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toolResult := decodeResult[results.IntegrateToolResult](t, callTool(t, tool, tt.args))
			assert.InDelta(t, tt.expected, toolResult.Value.Float64(), 1e-9)
			assert.Contains(t, toolResult.Message, "The integral of")
		})
	}
}

func TestIntegrateTool_InvalidArguments(t *testing.T) {
	tool := NewIntegrateTool(newTestManager(t))

	tests := []struct {
		name     string
		args     map[string]any
		expected string
	}{
		{name: "Missing expression", args: map[string]any{"a": 0, "b": 1}, expected: "expression parameter is required"},
		{name: "Invalid expression", args: map[string]any{"expression": "x +", "a": 0, "b": 1}, expected: "not a valid expression"},
		{name: "Missing bound", args: map[string]any{"expression": "x", "a": 0}, expected: "b parameter is required"},
		{name: "Invalid bound", args: map[string]any{"expression": "x", "a": "zero", "b": 1}, expected: "a parameter must be a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireToolError(t, callTool(t, tool, tt.args), tt.expected)
		})
	}
}

func TestDerivativeTool(t *testing.T) {
	tool := NewDerivativeTool(newTestManager(t))

	toolResult := decodeResult[results.DerivativeToolResult](t,
		callTool(t, tool, map[string]any{"expression": "x^2", "x": 2}))
	assert.True(t, toolResult.Exists)
	assert.InDelta(t, 4, toolResult.Value.Float64(), 1e-9)
	assert.InDelta(t, 4, toolResult.Left.Float64(), 1e-9)
	assert.InDelta(t, 4, toolResult.Right.Float64(), 1e-9)
}

func TestDerivativeTool_DoesNotExist(t *testing.T) {
	tool := NewDerivativeTool(newTestManager(t))

	result := callTool(t, tool, map[string]any{"expression": "abs(x)", "x": 0})
	assert.Contains(t, resultText(result), `"value": "NaN"`)

	toolResult := decodeResult[results.DerivativeToolResult](t, result)
	assert.False(t, toolResult.Exists)
	assert.True(t, toolResult.Value.IsNaN())
	assert.Equal(t, -1.0, toolResult.Left.Float64())
	assert.Equal(t, 1.0, toolResult.Right.Float64())
	assert.Contains(t, toolResult.Message, "does not exist")
}

func TestTangentLineTool(t *testing.T) {
	tool := NewTangentLineTool(newTestManager(t))

	toolResult := decodeResult[results.TangentLineToolResult](t,
		callTool(t, tool, map[string]any{"expression": "x^2", "x": 2, "at": 3}))
	assert.True(t, toolResult.Exists)
	assert.Equal(t, 4.0, toolResult.Slope.Float64())
	assert.Equal(t, -4.0, toolResult.Intercept.Float64())
	assert.Equal(t, "y = 4x - 4", toolResult.Equation)
	require.NotNil(t, toolResult.ValueAt)
	assert.Equal(t, 8.0, toolResult.ValueAt.Float64())
}

func TestTangentLineTool_DoesNotExist(t *testing.T) {
	tool := NewTangentLineTool(newTestManager(t))

	toolResult := decodeResult[results.TangentLineToolResult](t,
		callTool(t, tool, map[string]any{"expression": "abs(x)", "x": 0}))
	assert.False(t, toolResult.Exists)
	assert.Empty(t, toolResult.Equation)
	assert.Nil(t, toolResult.ValueAt)
	assert.Contains(t, toolResult.Message, "has no tangent line")
}

func TestLimitTool(t *testing.T) {
	tool := NewLimitTool(newTestManager(t))

	tests := []struct {
		name     string
		args     map[string]any
		exists   bool
		expected float64
	}{
		{
			name:     "Continuous",
			args:     map[string]any{"expression": "x^2", "x": 2},
			exists:   true,
			expected: 4,
		},
		{
			name:     "Removable discontinuity",
			args:     map[string]any{"expression": "(x^2 - 2*x - 8) / (x - 4)", "x": 4},
			exists:   true,
			expected: 6,
		},
		{
			name:     "At infinity",
			args:     map[string]any{"expression": "5 + 3 / x^2", "x": "inf"},
			exists:   true,
			expected: 5,
		},
		{
			name:   "Oscillation",
			args:   map[string]any{"expression": "sin(1 / x)", "x": 0},
			exists: false,
		},
		{
			name:   "Jump",
			args:   map[string]any{"expression": "x < 1 ? 0 : 1", "x": 1},
			exists: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toolResult := decodeResult[results.LimitToolResult](t, callTool(t, tool, tt.args))
			assert.Equal(t, tt.exists, toolResult.Exists)
			if tt.exists {
				assert.InDelta(t, tt.expected, toolResult.Value.Float64(), 1e-9)
			} else {
				assert.True(t, toolResult.Value.IsNaN())
				assert.Contains(t, toolResult.Message, "does not exist")
			}
		})
	}
}

func TestRiemannSumTool(t *testing.T) {
	manager := newTestManager(t)

	tests := []struct {
		method   results.RiemannMethod
		name     string
		expected float64
	}{
		{method: results.RiemannMethodLeft, name: ToolLeftRiemannSum, expected: 896},
		{method: results.RiemannMethodRight, name: ToolRightRiemannSum, expected: 1920},
		{method: results.RiemannMethodMidpoint, name: ToolMidpointRule, expected: 1344},
		{method: results.RiemannMethodTrapezoidal, name: ToolTrapezoidalSum, expected: 1408},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := NewRiemannSumTool(manager, tt.method)
			assert.Equal(t, tt.name, tool.GetTool().Name)

			toolResult := decodeResult[results.RiemannSumToolResult](t,
				callTool(t, tool, map[string]any{"expression": "x*x", "a": 0, "b": 16, "n": 4}))
			assert.Equal(t, tt.method, toolResult.Method)
			assert.Equal(t, 4, toolResult.Arguments.Subintervals)
			assert.InDelta(t, tt.expected, toolResult.Value.Float64(), 1e-9)
			assert.Contains(t, toolResult.Message, tt.method.Description())
		})
	}
}

func TestRiemannSumTool_InvalidSubintervals(t *testing.T) {
	tool := NewRiemannSumTool(newTestManager(t), results.RiemannMethodMidpoint)

	tests := []struct {
		name     string
		n        any
		expected string
	}{
		{name: "Zero", n: 0, expected: "there must be at least one subinterval"},
		{name: "Negative", n: -2, expected: "there must be at least one subinterval"},
		{name: "Fraction", n: 2.5, expected: "n parameter must be an integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, tool, map[string]any{"expression": "x", "a": 0, "b": 1, "n": tt.n})
			requireToolError(t, result, tt.expected)
		})
	}
}

func TestRevolveTool(t *testing.T) {
	tool := NewRevolveTool(newTestManager(t))

	tests := []struct {
		name     string
		args     map[string]any
		expected float64
	}{
		{
			name:     "Disk",
			args:     map[string]any{"top": "x^2", "a": 0, "b": 2},
			expected: 20.106,
		},
		{
			name:     "Washer",
			args:     map[string]any{"top": "x", "bottom": "x^2", "a": 0, "b": 1},
			expected: 0.419,
		},
		{
			name:     "Offset axis",
			args:     map[string]any{"top": "1", "a": 0, "b": 1, "axis": -1},
			expected: 9.425,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toolResult := decodeResult[results.RevolveToolResult](t, callTool(t, tool, tt.args))
			assert.InDelta(t, tt.expected, toolResult.Volume.Float64(), 1e-9)
		})
	}
}

func TestCrossSectionTool(t *testing.T) {
	tool := NewCrossSectionTool(newTestManager(t))

	tests := []struct {
		name     string
		shape    any
		expected float64
	}{
		{name: "Square by name", shape: "square", expected: 2.667},
		{name: "Equilateral by number", shape: 1, expected: 1.155},
		{name: "Isosceles", shape: "isosceles-triangle", expected: 2},
		{name: "Right", shape: "3", expected: 1.333},
		{name: "Semicircle", shape: 4.0, expected: 1.047},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]any{"top": "1 - x/2", "bottom": "-1 + x/2", "type": tt.shape, "a": 0, "b": 2}
			toolResult := decodeResult[results.CrossSectionToolResult](t, callTool(t, tool, args))
			assert.InDelta(t, tt.expected, toolResult.Volume.Float64(), 1e-9)
			assert.NotEmpty(t, toolResult.Arguments.Shape)
		})
	}
}

func TestCrossSectionTool_Integrand(t *testing.T) {
	tool := NewCrossSectionTool(newTestManager(t))

	toolResult := decodeResult[results.CrossSectionToolResult](t,
		callTool(t, tool, map[string]any{"integrand": "x^2", "a": 0, "b": 3}))
	assert.InDelta(t, 9, toolResult.Volume.Float64(), 1e-9)
	assert.Equal(t, "x^2", toolResult.Arguments.Integrand)
	assert.Empty(t, toolResult.Arguments.Shape)
}

func TestCrossSectionTool_InvalidType(t *testing.T) {
	tool := NewCrossSectionTool(newTestManager(t))

	tests := []struct {
		name     string
		args     map[string]any
		expected string
	}{
		{
			name:     "Out of range",
			args:     map[string]any{"top": "1", "type": 5, "a": 0, "b": 2},
			expected: "<5> is not a valid cross-section type, valid types are 0 - 4",
		},
		{
			name:     "Unknown name",
			args:     map[string]any{"top": "1", "type": "hexagon", "a": 0, "b": 2},
			expected: "unknown cross-section type",
		},
		{
			name:     "Missing",
			args:     map[string]any{"top": "1", "a": 0, "b": 2},
			expected: "type parameter is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireToolError(t, callTool(t, tool, tt.args), tt.expected)
		})
	}
}

func TestPolarAreaTool(t *testing.T) {
	tool := NewPolarAreaTool(newTestManager(t))

	tests := []struct {
		name     string
		args     map[string]any
		expected float64
	}{
		{name: "Half turn", args: map[string]any{"expression": "sin(x)", "a": 0, "b": "pi"}, expected: 0.785},
		{name: "Full turn", args: map[string]any{"expression": "sin(x)", "a": 0, "b": "2*pi"}, expected: 1.571},
		{name: "Rose", args: map[string]any{"expression": "2*cos(3*x)", "a": 0, "b": "pi"}, expected: 3.142},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toolResult := decodeResult[results.PolarAreaToolResult](t, callTool(t, tool, tt.args))
			assert.InDelta(t, tt.expected, toolResult.Area.Float64(), 1e-9)
		})
	}
}

func TestRoundTool(t *testing.T) {
	tool := NewRoundTool(newTestManager(t))

	tests := []struct {
		name     string
		args     map[string]any
		expected float64
	}{
		{name: "Default places", args: map[string]any{"value": 1.23456}, expected: 1.235},
		{name: "Half to even down", args: map[string]any{"value": 2.5, "places": 0}, expected: 2},
		{name: "Half to even up", args: map[string]any{"value": 3.5, "places": 0}, expected: 4},
		{name: "Shortest decimal", args: map[string]any{"value": 2.345, "places": 2}, expected: 2.34},
		{name: "No rounding", args: map[string]any{"value": 1.23456, "places": -1}, expected: 1.23456},
		{name: "Tiny kept", args: map[string]any{"value": "1e-5", "places": 3}, expected: 0},
		{name: "Chop to zero", args: map[string]any{"value": "-1e-5", "places": 3, "chop_to_zero": true}, expected: 0},
		{name: "Chop keeps large", args: map[string]any{"value": 0.0126, "places": 2, "chop_to_zero": true}, expected: 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toolResult := decodeResult[results.RoundToolResult](t, callTool(t, tool, tt.args))
			assert.Equal(t, tt.expected, toolResult.Value.Float64())
		})
	}
}

func TestRoundTool_InfinityThresholds(t *testing.T) {
	manager := newTestManager(t)
	_, err := manager.Reconfigure(calculus.WithInfinityThresholds(-1e6, 1e6))
	require.NoError(t, err)

	toolResult := decodeResult[results.RoundToolResult](t,
		callTool(t, NewRoundTool(manager), map[string]any{"value": 2e6}))
	assert.True(t, math.IsInf(toolResult.Value.Float64(), 1))
}

func TestRoundTool_InvalidPlaces(t *testing.T) {
	tool := NewRoundTool(newTestManager(t))
	requireToolError(t, callTool(t, tool, map[string]any{"value": 1, "places": -2}),
		"places parameter must be -1 or non-negative")
}
