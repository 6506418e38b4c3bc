// Package calculus approximates integrals, derivatives, limits, Riemann sums and
// solid volumes of arbitrary real functions.
//
// Every operation reads its accuracy knobs from the Config bound into an Engine.
// Engines are immutable, so one Engine may be shared by concurrent callers; use
// Engine.With to derive a differently configured copy.
//
// Invalid parameters (subinterval counts, cross-section types) are rejected with an
// error wrapping ErrInvalidArgument. Mathematical non-existence (no derivative, no
// limit) is reported as NaN in the result instead.
package calculus

// Option adjusts a Config before an Engine is built from it
type Option func(*Config)

// WithSampleCount sets the number of Simpson's rule sample points
func WithSampleCount(n int) Option {
	return func(c *Config) { c.SampleCount = n }
}

// WithDerivativeStep sets the finite-difference step H
func WithDerivativeStep(h float64) Option {
	return func(c *Config) { c.DerivativeStep = h }
}

// WithDerivativeOffset sets the one-sided derivative probe offset
func WithDerivativeOffset(offset float64) Option {
	return func(c *Config) { c.DerivativeOffset = offset }
}

// WithDerivativeTolerance sets the largest allowed left/right derivative discrepancy
func WithDerivativeTolerance(tol float64) Option {
	return func(c *Config) { c.DerivativeTolerance = tol }
}

// WithLimitOffset sets the one-sided limit probe offset
func WithLimitOffset(offset float64) Option {
	return func(c *Config) { c.LimitOffset = offset }
}

// WithLimitTolerance sets the largest allowed left/right limit discrepancy
func WithLimitTolerance(tol float64) Option {
	return func(c *Config) { c.LimitTolerance = tol }
}

// WithLimitInfinityProbe sets the magnitude used to probe limits at infinity
func WithLimitInfinityProbe(probe float64) Option {
	return func(c *Config) { c.LimitInfinityProbe = probe }
}

// WithInfinityThresholds sets the magnitudes beyond which rounding yields ±Inf
func WithInfinityThresholds(negative, positive float64) Option {
	return func(c *Config) {
		c.NegativeInfinity = negative
		c.PositiveInfinity = positive
	}
}

// WithPrecision replaces the per-family rounding precision
func WithPrecision(p Precision) Option {
	return func(c *Config) { c.Precision = p }
}

// WithAllPrecision rounds every family to the same number of decimal places
func WithAllPrecision(places int) Option {
	return func(c *Config) { c.Precision = UniformPrecision(places) }
}

// Engine evaluates calculus operations under a fixed accuracy configuration
type Engine struct {
	cfg Config
}

// New creates an Engine from cfg after validating it
func New(cfg Config, opts ...Option) (*Engine, error) {
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Default creates an Engine with DefaultConfig
func Default() *Engine {
	return &Engine{cfg: DefaultConfig()}
}

// Config returns a copy of the engine's configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// With returns a new Engine with opts applied on top of this engine's configuration
func (e *Engine) With(opts ...Option) (*Engine, error) {
	return New(e.cfg, opts...)
}
