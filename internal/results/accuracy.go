package results

import "github.com/averycrespi/calculatte-mcp/pkg/calculus"

// AccuracyToolResult represents the result of the get_accuracy and set_accuracy tools
type AccuracyToolResult struct {
	Message  string   `json:"message"`
	Changed  []string `json:"changed,omitempty"`
	Accuracy Accuracy `json:"accuracy"`
}

// Accuracy is the JSON view of an engine configuration
type Accuracy struct {
	SampleCount         int                `json:"sample_count"`
	DerivativeStep      Number             `json:"derivative_step"`
	DerivativeOffset    Number             `json:"derivative_offset"`
	DerivativeTolerance Number             `json:"derivative_tolerance"`
	LimitOffset         Number             `json:"limit_offset"`
	LimitTolerance      Number             `json:"limit_tolerance"`
	LimitInfinityProbe  Number             `json:"limit_infinity_probe"`
	PositiveInfinity    Number             `json:"positive_infinity"`
	NegativeInfinity    Number             `json:"negative_infinity"`
	Precision           calculus.Precision `json:"precision"`
}

// NewAccuracy converts an engine configuration into its JSON view
func NewAccuracy(c calculus.Config) Accuracy {
	return Accuracy{
		SampleCount:         c.SampleCount,
		DerivativeStep:      Number(c.DerivativeStep),
		DerivativeOffset:    Number(c.DerivativeOffset),
		DerivativeTolerance: Number(c.DerivativeTolerance),
		LimitOffset:         Number(c.LimitOffset),
		LimitTolerance:      Number(c.LimitTolerance),
		LimitInfinityProbe:  Number(c.LimitInfinityProbe),
		PositiveInfinity:    Number(c.PositiveInfinity),
		NegativeInfinity:    Number(c.NegativeInfinity),
		Precision:           c.Precision,
	}
}

// RoundToolResult represents the result of the round tool
type RoundToolResult struct {
	Message   string        `json:"message"`
	Arguments RoundToolArgs `json:"arguments"`
	Value     Number        `json:"value"`
}

// RoundToolArgs represents the arguments for the round tool
type RoundToolArgs struct {
	Value      Number `json:"value"`
	Places     int    `json:"places"`
	ChopToZero bool   `json:"chop_to_zero,omitempty"`
}
