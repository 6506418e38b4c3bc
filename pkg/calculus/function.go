package calculus

// Function is a real-valued function of one real argument.
// The engine calls it a bounded number of times per operation and never retains it.
type Function func(x float64) float64

// Constant returns a Function that always yields c
func Constant(c float64) Function {
	return func(float64) float64 { return c }
}

// Line returns the Function y = m·x + b
func Line(m, b float64) Function {
	return func(x float64) float64 { return m*x + b }
}

// squaredOffset returns x ↦ (axis − f(x))²
func squaredOffset(axis float64, f Function) Function {
	return func(x float64) float64 {
		d := axis - f(x)
		return d * d
	}
}

// squaredGap returns x ↦ scale·(top(x) − bottom(x))²
func squaredGap(scale float64, top, bottom Function) Function {
	return func(x float64) float64 {
		d := top(x) - bottom(x)
		return scale * (d * d)
	}
}

// squared returns x ↦ f(x)²
func squared(f Function) Function {
	return func(x float64) float64 {
		y := f(x)
		return y * y
	}
}
