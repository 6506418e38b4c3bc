package calculus

import "math"

// Limit approximates the limit of f at x. When the one-sided limits differ by more
// than LimitTolerance the limit does not exist and NaN is returned; otherwise the
// right-hand probe rounded to Precision.Limit places is returned.
//
// This is a numerical heuristic: an oscillating f is only detected when the probes
// happen to land on divergent samples.
func (e *Engine) Limit(x float64, f Function) float64 {
	left := e.LeftLimit(x, f)
	right := e.RightLimit(x, f)
	if math.Abs(left-right) > e.cfg.LimitTolerance {
		return math.NaN()
	}

	return e.Round(f(e.probePoint(x)+e.cfg.LimitOffset), e.cfg.Precision.Limit)
}

// LeftLimit evaluates f LimitOffset left of x, rounded to Precision.LeftLimit places
func (e *Engine) LeftLimit(x float64, f Function) float64 {
	return e.Round(f(e.probePoint(x)-e.cfg.LimitOffset), e.cfg.Precision.LeftLimit)
}

// RightLimit evaluates f LimitOffset right of x, rounded to Precision.RightLimit places
func (e *Engine) RightLimit(x float64, f Function) float64 {
	return e.Round(f(e.probePoint(x)+e.cfg.LimitOffset), e.cfg.Precision.RightLimit)
}

// probePoint replaces x at or beyond the infinity thresholds (±Inf and, by default,
// ±math.MaxFloat64) with ±LimitInfinityProbe so that end behavior is estimated at a
// finite point. Every other x is probed as given.
func (e *Engine) probePoint(x float64) float64 {
	switch {
	case math.IsInf(x, 1) || x >= e.cfg.PositiveInfinity:
		return e.cfg.LimitInfinityProbe
	case math.IsInf(x, -1) || x <= e.cfg.NegativeInfinity:
		return -e.cfg.LimitInfinityProbe
	default:
		return x
	}
}
