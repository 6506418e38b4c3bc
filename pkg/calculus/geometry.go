package calculus

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CrossSectionType selects the shape of a known cross-section
type CrossSectionType int

const (
	Square CrossSectionType = iota
	EquilateralTriangle
	IsoscelesTriangle
	RightTriangle
	Semicircle
)

var crossSectionNames = map[CrossSectionType]string{
	Square:              "square",
	EquilateralTriangle: "equilateral_triangle",
	IsoscelesTriangle:   "isosceles_triangle",
	RightTriangle:       "right_triangle",
	Semicircle:          "semicircle",
}

// Area of each shape per unit of squared base length
var crossSectionScales = map[CrossSectionType]float64{
	Square:              1,
	EquilateralTriangle: math.Sqrt(3) / 4,
	IsoscelesTriangle:   0.75,
	RightTriangle:       0.5,
	Semicircle:          math.Pi / 8,
}

// String returns the snake_case name of the shape
func (t CrossSectionType) String() string {
	if name, ok := crossSectionNames[t]; ok {
		return name
	}
	return "unknown(" + strconv.Itoa(int(t)) + ")"
}

// Scale returns the area factor applied to the squared distance between the bounding functions
func (t CrossSectionType) Scale() (float64, error) {
	scale, ok := crossSectionScales[t]
	if !ok {
		return 0, &InvalidCrossSectionTypeError{Type: t}
	}
	return scale, nil
}

// ParseCrossSectionType accepts a shape name ("semicircle", "right-triangle") or its number ("4")
func ParseCrossSectionType(s string) (CrossSectionType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		t := CrossSectionType(n)
		if _, ok := crossSectionScales[t]; !ok {
			return t, &InvalidCrossSectionTypeError{Type: t}
		}
		return t, nil
	}

	normalized := strings.NewReplacer("-", "_", " ", "_").Replace(s)
	for t, name := range crossSectionNames {
		if name == normalized {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown cross-section type %q", ErrInvalidArgument, s)
}

// Revolve returns the volume of the solid formed by revolving the region between top
// and bottom on [a, b] about the horizontal line y = axis (washer method). Rotations
// about a vertical axis are the same problem with the roles of x and y swapped.
func (e *Engine) Revolve(a, b, axis float64, top, bottom Function) float64 {
	outer := e.IntegrateRaw(a, b, squaredOffset(axis, top))
	inner := e.IntegrateRaw(a, b, squaredOffset(axis, bottom))
	return e.Round(math.Pi*(outer-inner), e.cfg.Precision.Revolution)
}

// CrossSection returns the volume of a solid on [a, b] whose cross-sections perpendicular
// to the x-axis are shapes of type t with their base spanning bottom(x) to top(x)
func (e *Engine) CrossSection(a, b float64, top, bottom Function, t CrossSectionType) (float64, error) {
	scale, err := t.Scale()
	if err != nil {
		return 0, err
	}
	return e.CrossSectionIntegrand(a, b, squaredGap(scale, top, bottom)), nil
}

// CrossSectionIntegrand returns the volume of a known cross-section from an already built
// area integrand
func (e *Engine) CrossSectionIntegrand(a, b float64, integrand Function) float64 {
	return e.Round(e.IntegrateRaw(a, b, integrand), e.cfg.Precision.CrossSection)
}

// PolarArea returns the area swept by the polar curve r(θ) between θ = a and θ = b
func (e *Engine) PolarArea(a, b float64, r Function) float64 {
	return e.Round(0.5*e.IntegrateRaw(a, b, squared(r)), e.cfg.Precision.PolarArea)
}
