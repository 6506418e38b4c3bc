package calculus

import (
	"errors"
	"fmt"
	"math"
)

// Default accuracy values
const (
	DefaultSampleCount        = 64000
	DefaultDerivativeStep     = 1e-9
	DefaultDerivativeOffset   = 1e-9
	DefaultDerivativeTol      = 1e-9
	DefaultLimitOffset        = 1e-9
	DefaultLimitTol           = 1e-9
	DefaultLimitInfinityProbe = 1e12
	DefaultDecimalPlaces      = 3

	// NoRounding disables rounding for an operation family
	NoRounding = -1
)

// Precision holds the number of decimal places each operation family rounds to.
// A value of NoRounding returns the raw result.
type Precision struct {
	Integration     int `json:"integration" yaml:"integration"`
	Derivation      int `json:"derivation" yaml:"derivation"`
	LeftRiemannSum  int `json:"left_riemann_sum" yaml:"left_riemann_sum"`
	RightRiemannSum int `json:"right_riemann_sum" yaml:"right_riemann_sum"`
	MidpointRule    int `json:"midpoint_rule" yaml:"midpoint_rule"`
	TrapezoidalSum  int `json:"trapezoidal_sum" yaml:"trapezoidal_sum"`
	Revolution      int `json:"revolution" yaml:"revolution"`
	CrossSection    int `json:"cross_section" yaml:"cross_section"`
	Limit           int `json:"limit" yaml:"limit"`
	LeftLimit       int `json:"left_limit" yaml:"left_limit"`
	RightLimit      int `json:"right_limit" yaml:"right_limit"`
	PolarArea       int `json:"polar_area" yaml:"polar_area"`
}

// UniformPrecision returns a Precision with every family set to places
func UniformPrecision(places int) Precision {
	return Precision{
		Integration:     places,
		Derivation:      places,
		LeftRiemannSum:  places,
		RightRiemannSum: places,
		MidpointRule:    places,
		TrapezoidalSum:  places,
		Revolution:      places,
		CrossSection:    places,
		Limit:           places,
		LeftLimit:       places,
		RightLimit:      places,
		PolarArea:       places,
	}
}

// fields returns every precision knob keyed by name, in declaration order
func (p Precision) fields() []struct {
	name   string
	places int
} {
	return []struct {
		name   string
		places int
	}{
		{"integration", p.Integration},
		{"derivation", p.Derivation},
		{"left_riemann_sum", p.LeftRiemannSum},
		{"right_riemann_sum", p.RightRiemannSum},
		{"midpoint_rule", p.MidpointRule},
		{"trapezoidal_sum", p.TrapezoidalSum},
		{"revolution", p.Revolution},
		{"cross_section", p.CrossSection},
		{"limit", p.Limit},
		{"left_limit", p.LeftLimit},
		{"right_limit", p.RightLimit},
		{"polar_area", p.PolarArea},
	}
}

// Families returns the snake_case names of every operation family, in declaration order
func Families() []string {
	var p Precision
	fields := p.fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	return names
}

var precisionTargets = map[string]func(p *Precision) *int{
	"integration":       func(p *Precision) *int { return &p.Integration },
	"derivation":        func(p *Precision) *int { return &p.Derivation },
	"left_riemann_sum":  func(p *Precision) *int { return &p.LeftRiemannSum },
	"right_riemann_sum": func(p *Precision) *int { return &p.RightRiemannSum },
	"midpoint_rule":     func(p *Precision) *int { return &p.MidpointRule },
	"trapezoidal_sum":   func(p *Precision) *int { return &p.TrapezoidalSum },
	"revolution":        func(p *Precision) *int { return &p.Revolution },
	"cross_section":     func(p *Precision) *int { return &p.CrossSection },
	"limit":             func(p *Precision) *int { return &p.Limit },
	"left_limit":        func(p *Precision) *int { return &p.LeftLimit },
	"right_limit":       func(p *Precision) *int { return &p.RightLimit },
	"polar_area":        func(p *Precision) *int { return &p.PolarArea },
}

// PrecisionSetter returns a function that changes the precision of the family named
// by its snake_case key
func PrecisionSetter(family string) (func(p *Precision, places int), error) {
	target, ok := precisionTargets[family]
	if !ok {
		return nil, fmt.Errorf("%w: unknown precision family %q", ErrInvalidArgument, family)
	}
	return func(p *Precision, places int) { *target(p) = places }, nil
}

// Set changes the precision of the family named by its snake_case key
func (p *Precision) Set(family string, places int) error {
	set, err := PrecisionSetter(family)
	if err != nil {
		return err
	}
	set(p, places)
	return nil
}

// Config holds the accuracy knobs read by every engine operation
type Config struct {
	// SampleCount is the number of Simpson's rule sample points. Larger is more accurate.
	SampleCount int `json:"sample_count" yaml:"sample_count"`

	// DerivativeStep is the finite-difference offset H.
	DerivativeStep      float64 `json:"derivative_step" yaml:"derivative_step"`
	// DerivativeOffset is how far left and right of x the one-sided derivatives are taken.
	DerivativeOffset    float64 `json:"derivative_offset" yaml:"derivative_offset"`
	// DerivativeTolerance is the largest allowed left/right discrepancy.
	DerivativeTolerance float64 `json:"derivative_tolerance" yaml:"derivative_tolerance"`

	LimitOffset        float64 `json:"limit_offset" yaml:"limit_offset"`
	LimitTolerance     float64 `json:"limit_tolerance" yaml:"limit_tolerance"`
	// LimitInfinityProbe replaces x at or beyond the infinity thresholds when probing limits.
	LimitInfinityProbe float64 `json:"limit_infinity_probe" yaml:"limit_infinity_probe"`

	// Rounded values above PositiveInfinity or below NegativeInfinity become ±Inf.
	PositiveInfinity float64 `json:"positive_infinity" yaml:"positive_infinity"`
	NegativeInfinity float64 `json:"negative_infinity" yaml:"negative_infinity"`

	Precision Precision `json:"precision" yaml:"precision"`
}

// DefaultConfig returns the stable default accuracy configuration
func DefaultConfig() Config {
	return Config{
		SampleCount:         DefaultSampleCount,
		DerivativeStep:      DefaultDerivativeStep,
		DerivativeOffset:    DefaultDerivativeOffset,
		DerivativeTolerance: DefaultDerivativeTol,
		LimitOffset:         DefaultLimitOffset,
		LimitTolerance:      DefaultLimitTol,
		LimitInfinityProbe:  DefaultLimitInfinityProbe,
		PositiveInfinity:    math.MaxFloat64,
		NegativeInfinity:    -math.MaxFloat64,
		Precision:           UniformPrecision(DefaultDecimalPlaces),
	}
}

// Validate checks the configuration invariants
func (c Config) Validate() error {
	var errs []error

	if c.SampleCount < 2 {
		errs = append(errs, fmt.Errorf("sample count must be at least 2: got %d", c.SampleCount))
	}
	if !isFinite(c.DerivativeStep) || c.DerivativeStep <= 0 {
		errs = append(errs, fmt.Errorf("derivative step must be finite and positive: got %v", c.DerivativeStep))
	}

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"derivative offset", c.DerivativeOffset},
		{"derivative tolerance", c.DerivativeTolerance},
		{"limit offset", c.LimitOffset},
		{"limit tolerance", c.LimitTolerance},
	}
	for _, nn := range nonNegative {
		if !isFinite(nn.value) || nn.value < 0 {
			errs = append(errs, fmt.Errorf("%s must be finite and non-negative: got %v", nn.name, nn.value))
		}
	}

	if !isFinite(c.LimitInfinityProbe) || c.LimitInfinityProbe <= 0 {
		errs = append(errs, fmt.Errorf("limit infinity probe must be finite and positive: got %v", c.LimitInfinityProbe))
	}
	if math.IsNaN(c.PositiveInfinity) || math.IsNaN(c.NegativeInfinity) {
		errs = append(errs, errors.New("infinity thresholds must not be NaN"))
	} else if c.NegativeInfinity > c.PositiveInfinity {
		errs = append(errs, fmt.Errorf("negative infinity threshold %v exceeds positive threshold %v",
			c.NegativeInfinity, c.PositiveInfinity))
	}

	for _, f := range c.Precision.fields() {
		if f.places < NoRounding {
			errs = append(errs, fmt.Errorf("%s precision must be -1 or non-negative: got %d", f.name, f.places))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
