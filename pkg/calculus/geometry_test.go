package calculus

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Revolve(t *testing.T) {
	e := Default()

	tests := []struct {
		name        string
		a, b, axis  float64
		top, bottom Function
		expected    float64
	}{
		{name: "disk x^2 about x-axis", a: 0, b: 2, axis: 0, top: square, bottom: Constant(0), expected: 20.106},
		{name: "washer between x and x^2", a: 0, b: 1, axis: 0, top: func(x float64) float64 { return x }, bottom: square, expected: 0.419},
		{name: "offset axis", a: 0, b: 1, axis: -1, top: Constant(1), bottom: Constant(0), expected: 9.425},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, e.Revolve(tt.a, tt.b, tt.axis, tt.top, tt.bottom))
		})
	}
}

func TestEngine_CrossSection(t *testing.T) {
	e := Default()
	top := func(x float64) float64 { return 1 - x/2 }
	bottom := func(x float64) float64 { return -1 + x/2 }

	tests := []struct {
		shape    CrossSectionType
		expected float64
	}{
		{shape: Square, expected: 2.667},
		{shape: EquilateralTriangle, expected: 1.155},
		{shape: IsoscelesTriangle, expected: 2},
		{shape: RightTriangle, expected: 1.333},
		{shape: Semicircle, expected: 1.047},
	}

	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			volume, err := e.CrossSection(0, 2, top, bottom, tt.shape)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, volume)
		})
	}
}

func TestEngine_CrossSection_InvalidType(t *testing.T) {
	e := Default()

	_, err := e.CrossSection(0, 2, Constant(1), Constant(0), CrossSectionType(5))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "<5> is not a valid cross-section type")
	assert.Contains(t, err.Error(), "0 - 4")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	var typeErr *InvalidCrossSectionTypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, CrossSectionType(5), typeErr.Type)
}

func TestEngine_CrossSectionIntegrand(t *testing.T) {
	e := Default()
	assert.Equal(t, 9.0, e.CrossSectionIntegrand(0, 3, square))
}

func TestEngine_PolarArea(t *testing.T) {
	e := Default()

	tests := []struct {
		name     string
		a, b     float64
		r        Function
		expected float64
	}{
		{name: "sin from 0 to pi", a: 0, b: math.Pi, r: math.Sin, expected: 0.785},
		{name: "sin from 0 to 2pi", a: 0, b: 2 * math.Pi, r: math.Sin, expected: 1.571},
		{name: "2cos(3x) from 0 to pi", a: 0, b: math.Pi, r: func(x float64) float64 { return 2 * math.Cos(3*x) }, expected: 3.142},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, e.PolarArea(tt.a, tt.b, tt.r))
		})
	}
}

func TestCrossSectionType_Scale(t *testing.T) {
	scale, err := Semicircle.Scale()
	require.NoError(t, err)
	assert.Equal(t, math.Pi/8, scale)

	scale, err = EquilateralTriangle.Scale()
	require.NoError(t, err)
	assert.Equal(t, math.Sqrt(3)/4, scale)

	_, err = CrossSectionType(-1).Scale()
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParseCrossSectionType(t *testing.T) {
	tests := []struct {
		input         string
		expected      CrossSectionType
		errorContains string
	}{
		{input: "square", expected: Square},
		{input: "Equilateral Triangle", expected: EquilateralTriangle},
		{input: "isosceles-triangle", expected: IsoscelesTriangle},
		{input: "right_triangle", expected: RightTriangle},
		{input: " 4 ", expected: Semicircle},
		{input: "0", expected: Square},
		{input: "5", errorContains: "<5> is not a valid cross-section type"},
		{input: "hexagon", errorContains: "unknown cross-section type"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseCrossSectionType(tt.input)
			if tt.errorContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCrossSectionType_String(t *testing.T) {
	assert.Equal(t, "semicircle", Semicircle.String())
	assert.Equal(t, "unknown(9)", CrossSectionType(9).String())
}
