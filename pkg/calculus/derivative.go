package calculus

import "math"

// Derivate approximates f'(x) with a forward difference, rounded to
// Precision.Derivation places. When the left and right derivatives disagree by
// more than DerivativeTolerance the derivative does not exist and NaN is returned.
func (e *Engine) Derivate(x float64, f Function) float64 {
	left := e.LeftDerivative(x, f)
	right := e.RightDerivative(x, f)
	if math.Abs(left-right) > e.cfg.DerivativeTolerance {
		return math.NaN()
	}

	return e.Round(e.forwardDifference(x, f), e.cfg.Precision.Derivation)
}

// LeftDerivative is the unrounded forward difference taken DerivativeOffset left of x
func (e *Engine) LeftDerivative(x float64, f Function) float64 {
	return e.forwardDifference(x-e.cfg.DerivativeOffset, f)
}

// RightDerivative is the unrounded forward difference taken DerivativeOffset right of x
func (e *Engine) RightDerivative(x float64, f Function) float64 {
	return e.forwardDifference(x+e.cfg.DerivativeOffset, f)
}

// TangentLine returns the line tangent to f at x. The line captures only its slope
// and intercept, so f is not referenced after TangentLine returns.
func (e *Engine) TangentLine(x float64, f Function) Function {
	return Line(e.TangentLineCoefficients(x, f))
}

// TangentLineCoefficients returns the slope m and intercept b of the tangent to f at x.
// m is NaN when the derivative does not exist.
func (e *Engine) TangentLineCoefficients(x float64, f Function) (m, b float64) {
	m = e.Derivate(x, f)
	b = f(x) - m*x
	return m, b
}

// forwardDifference divides by the representable step (x+H)-x rather than H itself
func (e *Engine) forwardDifference(x float64, f Function) float64 {
	xh := x + e.cfg.DerivativeStep
	return (f(xh) - f(x)) / (xh - x)
}
