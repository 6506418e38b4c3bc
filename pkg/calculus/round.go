package calculus

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round rounds x to places decimal digits using round-half-to-even on the shortest
// decimal representation of x. Values beyond the configured infinity thresholds
// collapse to ±Inf, NaN passes through, and a negative places returns x unchanged.
func (e *Engine) Round(x float64, places int) float64 {
	if places < 0 || math.IsNaN(x) {
		return x
	}
	if x > e.cfg.PositiveInfinity {
		return math.Inf(1)
	}
	if x < e.cfg.NegativeInfinity {
		return math.Inf(-1)
	}
	if math.IsInf(x, 0) {
		return x
	}

	rounded, _ := decimal.NewFromFloat(x).RoundBank(int32(places)).Float64()
	return rounded
}

// ChopToZero treats magnitudes below 10^-places as exactly zero and rounds
// everything else with Round. Negative zero is normalized to zero.
func (e *Engine) ChopToZero(x float64, places int) float64 {
	if places >= 0 && math.Abs(x) < math.Pow10(-places) {
		return 0
	}
	rounded := e.Round(x, places)
	if rounded == 0 {
		return 0
	}
	return rounded
}
