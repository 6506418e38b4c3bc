package results

// DerivativeToolResult represents the result of the derivative tool.
// Value is NaN when the one-sided derivatives disagree.
type DerivativeToolResult struct {
	Message   string             `json:"message"`
	Arguments DerivativeToolArgs `json:"arguments"`
	Exists    bool               `json:"exists"`
	Value     Number             `json:"value"`
	Left      Number             `json:"left"`
	Right     Number             `json:"right"`
}

// DerivativeToolArgs represents the arguments for the derivative tool
type DerivativeToolArgs struct {
	Expression string `json:"expression"`
	X          Number `json:"x"`
}

// TangentLineToolResult represents the result of the tangent line tool
type TangentLineToolResult struct {
	Message   string              `json:"message"`
	Arguments TangentLineToolArgs `json:"arguments"`
	Exists    bool                `json:"exists"`
	Slope     Number              `json:"slope"`
	Intercept Number              `json:"intercept"`
	Equation  string              `json:"equation,omitempty"`
	ValueAt   *Number             `json:"value_at,omitempty"`
}

// TangentLineToolArgs represents the arguments for the tangent line tool
type TangentLineToolArgs struct {
	Expression string  `json:"expression"`
	X          Number  `json:"x"`
	At         *Number `json:"at,omitempty"`
}
