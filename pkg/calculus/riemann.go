package calculus

import "math"

// Sample points are computed by index rather than by accumulating Δx, so each rule
// evaluates f exactly n (or n+1) times and the last point lands exactly on b.
// A NaN partial sum ends the loop early: the result is NaN either way.

// LeftRiemannSum approximates the integral of f from a to b with n rectangles sampled
// at their left edges, rounded to Precision.LeftRiemannSum places.
func (e *Engine) LeftRiemannSum(a, b float64, f Function, n int) (float64, error) {
	if n < 1 {
		return 0, subintervalError(n)
	}

	dx := (b - a) / float64(n)
	sum := 0.0
	for i := 0; i < n && !math.IsNaN(sum); i++ {
		sum += f(a + dx*float64(i))
	}

	return e.Round(dx*sum, e.cfg.Precision.LeftRiemannSum), nil
}

// RightRiemannSum approximates the integral of f from a to b with n rectangles sampled
// at their right edges, rounded to Precision.RightRiemannSum places.
func (e *Engine) RightRiemannSum(a, b float64, f Function, n int) (float64, error) {
	if n < 1 {
		return 0, subintervalError(n)
	}

	dx := (b - a) / float64(n)
	sum := 0.0
	for i := 1; i < n && !math.IsNaN(sum); i++ {
		sum += f(a + dx*float64(i))
	}
	sum += f(b)

	return e.Round(dx*sum, e.cfg.Precision.RightRiemannSum), nil
}

// MidpointRule approximates the integral of f from a to b with n rectangles sampled
// at their midpoints, rounded to Precision.MidpointRule places.
func (e *Engine) MidpointRule(a, b float64, f Function, n int) (float64, error) {
	if n < 1 {
		return 0, subintervalError(n)
	}

	dx := (b - a) / float64(n)
	sum := 0.0
	for i := 0; i < n && !math.IsNaN(sum); i++ {
		left := a + dx*float64(i)
		sum += f((left + (left + dx)) / 2)
	}

	return e.Round(dx*sum, e.cfg.Precision.MidpointRule), nil
}

// TrapezoidalSum approximates the integral of f from a to b with n trapezoids,
// rounded to Precision.TrapezoidalSum places.
func (e *Engine) TrapezoidalSum(a, b float64, f Function, n int) (float64, error) {
	if n < 1 {
		return 0, subintervalError(n)
	}

	dx := (b - a) / float64(n)
	sum := f(a) + f(b)
	for i := 1; i < n && !math.IsNaN(sum); i++ {
		sum += 2 * f(a+dx*float64(i))
	}

	return e.Round((b-a)/(2*float64(n))*sum, e.cfg.Precision.TrapezoidalSum), nil
}
