package calculus

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Limit(t *testing.T) {
	e := Default()

	tests := []struct {
		name     string
		x        float64
		f        Function
		expected float64
	}{
		{
			name:     "1 over x^2 at 0",
			x:        0,
			f:        func(x float64) float64 { return 1 / (x * x) },
			expected: 9.9999999999999987e17,
		},
		{
			name:     "x^2 at 2",
			x:        2,
			f:        square,
			expected: 4,
		},
		{
			name:     "removable discontinuity",
			x:        4,
			f:        func(x float64) float64 { return (x*x - 2*x - 8) / (x - 4) },
			expected: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, e.Limit(tt.x, tt.f))
		})
	}
}

func TestEngine_Limit_DoesNotExist(t *testing.T) {
	e := Default()

	tests := []struct {
		name string
		x    float64
		f    Function
	}{
		{name: "violent oscillation", x: 0, f: func(x float64) float64 { return math.Sin(1 / x) }},
		{name: "vertical asymptote", x: 0, f: func(x float64) float64 { return (x + 2) / x }},
		{name: "jump", x: 1, f: func(x float64) float64 {
			if x < 1 {
				return 0
			}
			return 1
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, math.IsNaN(e.Limit(tt.x, tt.f)))
		})
	}
}

func TestEngine_Limit_AtInfinity(t *testing.T) {
	e := Default()
	f := func(x float64) float64 { return 5 + 3/(x*x) }

	for _, x := range []float64{math.Inf(1), math.MaxFloat64, math.Inf(-1), -math.MaxFloat64} {
		assert.Equal(t, 5.0, e.LeftLimit(x, f), "x=%v", x)
		assert.Equal(t, 5.0, e.RightLimit(x, f), "x=%v", x)
		assert.Equal(t, 5.0, e.Limit(x, f), "x=%v", x)
	}
}

func TestEngine_Limit_AtInfinity_RationalFunction(t *testing.T) {
	e := Default()
	f := func(x float64) float64 { return (3*x + 1) / (x - 2) }

	assert.Equal(t, 3.0, e.Limit(math.Inf(1), f))
	assert.Equal(t, 3.0, e.Limit(math.Inf(-1), f))
}

func TestEngine_OneSidedLimits(t *testing.T) {
	e := Default()
	jump := func(x float64) float64 {
		if x < 1 {
			return -2
		}
		return 7
	}

	assert.Equal(t, -2.0, e.LeftLimit(1, jump))
	assert.Equal(t, 7.0, e.RightLimit(1, jump))
}

func TestEngine_Limit_LargeFiniteInput(t *testing.T) {
	e := Default()
	identity := func(x float64) float64 { return x }

	assert.Equal(t, 2e12, e.RightLimit(2e12, identity))
	assert.Equal(t, 2e12, e.LeftLimit(2e12, identity))
	assert.Equal(t, -3e15, e.Limit(-3e15, identity))
}

func TestEngine_Limit_CustomInfinityThreshold(t *testing.T) {
	e, err := Default().With(WithInfinityThresholds(-1e6, 1e6))
	require.NoError(t, err)
	f := func(x float64) float64 { return 5 + 3/(x*x) }

	assert.Equal(t, 5.0, e.Limit(2e6, f))
	assert.Equal(t, 5.0, e.Limit(-2e6, f))
	assert.Equal(t, 1000.0, e.RightLimit(1e3, func(x float64) float64 { return x }))
}
