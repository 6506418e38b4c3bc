package calculus

import "math"

// Integrate approximates the integral of f from a to b with composite Simpson's rule
// over SampleCount points, rounded to Precision.Integration places.
// a > b yields the negated integral and a == b yields 0.
func (e *Engine) Integrate(a, b float64, f Function) float64 {
	return e.Round(e.IntegrateRaw(a, b, f), e.cfg.Precision.Integration)
}

// IntegrateRaw is Integrate without rounding. Compositions build on it so that only
// their final result is rounded. Sampling stops once the sum is NaN.
func (e *Engine) IntegrateRaw(a, b float64, f Function) float64 {
	n := e.cfg.SampleCount
	h := (b - a) / float64(n-1)

	// Endpoints
	sum := 1.0 / 3.0 * (f(a) + f(b))

	// Odd interior points
	for i := 1; i < n-1 && !math.IsNaN(sum); i += 2 {
		sum += 4.0 / 3.0 * f(a+h*float64(i))
	}

	// Even interior points
	for i := 2; i < n-1 && !math.IsNaN(sum); i += 2 {
		sum += 2.0 / 3.0 * f(a+h*float64(i))
	}

	return sum * h
}
