package tools

import (
	"math"
	"testing"

	"github.com/averycrespi/calculatte-mcp/internal/engine"
	"github.com/averycrespi/calculatte-mcp/internal/metrics"
	"github.com/averycrespi/calculatte-mcp/internal/results"
	"github.com/averycrespi/calculatte-mcp/pkg/calculus"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAccuracyTool(t *testing.T) {
	tool := NewGetAccuracyTool(newTestManager(t))

	result := callTool(t, tool, map[string]any{})
	toolResult := decodeResult[results.AccuracyToolResult](t, result)
	assert.Equal(t, calculus.DefaultSampleCount, toolResult.Accuracy.SampleCount)
	assert.Equal(t, calculus.UniformPrecision(calculus.DefaultDecimalPlaces), toolResult.Accuracy.Precision)
	assert.Equal(t, math.MaxFloat64, toolResult.Accuracy.PositiveInfinity.Float64())
	assert.Empty(t, toolResult.Changed)
}

func TestSetAccuracyTool(t *testing.T) {
	tests := []struct {
		name            string
		args            map[string]any
		expectedChanged []string
		check           func(t *testing.T, cfg calculus.Config)
	}{
		{
			name:            "Sample count",
			args:            map[string]any{"sample_count": 1000},
			expectedChanged: []string{"sample_count"},
			check: func(t *testing.T, cfg calculus.Config) {
				assert.Equal(t, 1000, cfg.SampleCount)
			},
		},
		{
			name:            "Tolerances as expressions",
			args:            map[string]any{"derivative_tolerance": "1e-6", "limit_tolerance": 0.01},
			expectedChanged: []string{"derivative_tolerance", "limit_tolerance"},
			check: func(t *testing.T, cfg calculus.Config) {
				assert.Equal(t, 1e-6, cfg.DerivativeTolerance)
				assert.Equal(t, 0.01, cfg.LimitTolerance)
			},
		},
		{
			name:            "Infinite thresholds",
			args:            map[string]any{"positive_infinity": "inf", "negative_infinity": "-inf"},
			expectedChanged: []string{"positive_infinity", "negative_infinity"},
			check: func(t *testing.T, cfg calculus.Config) {
				assert.True(t, math.IsInf(cfg.PositiveInfinity, 1))
				assert.True(t, math.IsInf(cfg.NegativeInfinity, -1))
			},
		},
		{
			name:            "Uniform decimal places",
			args:            map[string]any{"decimal_places": 6},
			expectedChanged: []string{"decimal_places"},
			check: func(t *testing.T, cfg calculus.Config) {
				assert.Equal(t, calculus.UniformPrecision(6), cfg.Precision)
			},
		},
		{
			name: "Per family precision after decimal places",
			args: map[string]any{
				"decimal_places": -1,
				"precision":      map[string]any{"integration": 5, "polar_area": 2},
			},
			expectedChanged: []string{"decimal_places", "precision.integration", "precision.polar_area"},
			check: func(t *testing.T, cfg calculus.Config) {
				assert.Equal(t, 5, cfg.Precision.Integration)
				assert.Equal(t, 2, cfg.Precision.PolarArea)
				assert.Equal(t, calculus.NoRounding, cfg.Precision.Derivation)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := newTestManager(t)
			tool := NewSetAccuracyTool(manager, nil)

			toolResult := decodeResult[results.AccuracyToolResult](t, callTool(t, tool, tt.args))
			assert.Equal(t, tt.expectedChanged, toolResult.Changed)
			tt.check(t, manager.Config())
			assert.Equal(t, results.NewAccuracy(manager.Config()), toolResult.Accuracy)
		})
	}
}

func TestSetAccuracyTool_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]any
		expected string
	}{
		{
			name:     "Nothing to change",
			args:     map[string]any{},
			expected: "at least one accuracy setting or reset is required",
		},
		{
			name:     "Sample count too small",
			args:     map[string]any{"sample_count": 1},
			expected: "sample count must be at least 2",
		},
		{
			name:     "Fractional sample count",
			args:     map[string]any{"sample_count": 10.5},
			expected: "sample_count parameter must be an integer",
		},
		{
			name:     "Negative tolerance",
			args:     map[string]any{"limit_tolerance": -1},
			expected: "limit tolerance must be finite and non-negative",
		},
		{
			name:     "Crossed thresholds",
			args:     map[string]any{"positive_infinity": -10, "negative_infinity": 10},
			expected: "exceeds positive threshold",
		},
		{
			name:     "Unknown precision family",
			args:     map[string]any{"precision": map[string]any{"bogus": 2}},
			expected: "unknown precision family \"bogus\"",
		},
		{
			name:     "Precision not an object",
			args:     map[string]any{"precision": 3},
			expected: "precision parameter must be an object",
		},
		{
			name:     "Invalid after reset",
			args:     map[string]any{"reset": true, "decimal_places": -5},
			expected: "precision must be -1 or non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := newTestManager(t)
			_, err := manager.Reconfigure(calculus.WithSampleCount(500))
			require.NoError(t, err)
			before := manager.Config()

			requireToolError(t, callTool(t, NewSetAccuracyTool(manager, nil), tt.args), tt.expected)
			assert.Equal(t, before, manager.Config())
		})
	}
}

func TestSetAccuracyTool_Reset(t *testing.T) {
	manager := newTestManager(t)
	m := metrics.New()
	tool := NewSetAccuracyTool(manager, m)

	callTool(t, tool, map[string]any{"sample_count": 100, "decimal_places": 1})
	assert.Equal(t, 100, manager.Config().SampleCount)

	toolResult := decodeResult[results.AccuracyToolResult](t, callTool(t, tool, map[string]any{"reset": true}))
	assert.Equal(t, "Accuracy configuration reset.", toolResult.Message)
	assert.Equal(t, calculus.DefaultConfig(), manager.Config())

	toolResult = decodeResult[results.AccuracyToolResult](t,
		callTool(t, tool, map[string]any{"reset": true, "sample_count": 2000}))
	assert.Equal(t, "Accuracy configuration reset and updated.", toolResult.Message)
	assert.Equal(t, 2000, manager.Config().SampleCount)
	assert.Equal(t, calculus.UniformPrecision(calculus.DefaultDecimalPlaces), manager.Config().Precision)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.Reconfigurations))
}

func TestSetAccuracyTool_ResetRestoresStartupConfig(t *testing.T) {
	cfg := calculus.DefaultConfig()
	cfg.SampleCount = 1001
	manager, err := engine.NewManager(cfg, nil)
	require.NoError(t, err)
	tool := NewSetAccuracyTool(manager, nil)

	callTool(t, tool, map[string]any{"sample_count": 100})
	toolResult := decodeResult[results.AccuracyToolResult](t, callTool(t, tool, map[string]any{"reset": true}))
	assert.Equal(t, 1001, toolResult.Accuracy.SampleCount)
	assert.Equal(t, cfg, manager.Config())
}

func TestSetAccuracyTool_ResetInvalidKeepsCurrent(t *testing.T) {
	manager := newTestManager(t)
	tool := NewSetAccuracyTool(manager, nil)

	callTool(t, tool, map[string]any{"sample_count": 100})
	requireToolError(t, callTool(t, tool, map[string]any{"reset": true, "sample_count": 1}), "Failed to set accuracy")
	assert.Equal(t, 100, manager.Config().SampleCount)
}

func TestSetAccuracyTool_AffectsLaterCalls(t *testing.T) {
	manager := newTestManager(t)

	callTool(t, NewSetAccuracyTool(manager, nil), map[string]any{"precision": map[string]any{"integration": 1}})

	toolResult := decodeResult[results.IntegrateToolResult](t,
		callTool(t, NewIntegrateTool(manager), map[string]any{"expression": "x^2", "a": 0, "b": 1}))
	assert.Equal(t, 0.3, toolResult.Value.Float64())
}
