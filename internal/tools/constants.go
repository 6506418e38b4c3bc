package tools

// Tool names
const (
	ToolIntegrate       = "integrate"
	ToolDerivative      = "derivative"
	ToolTangentLine     = "tangent_line"
	ToolLimit           = "limit"
	ToolLeftRiemannSum  = "left_riemann_sum"
	ToolRightRiemannSum = "right_riemann_sum"
	ToolMidpointRule    = "midpoint_rule"
	ToolTrapezoidalSum  = "trapezoidal_sum"
	ToolRevolve         = "revolve"
	ToolCrossSection    = "cross_section"
	ToolPolarArea       = "polar_area"
	ToolRound           = "round"
	ToolGetAccuracy     = "get_accuracy"
	ToolSetAccuracy     = "set_accuracy"
)

// Shared parameter descriptions
const (
	expressionDescription = "JavaScript expression in x, e.g. \"x^2\", \"sin(x) / x\" or \"x < 0 ? -x : x\". " +
		"Math functions and the constants pi and e are available without the Math prefix; ^ is exponentiation and -x^2 means -(x^2)."
	boundDescription = "A number or a constant expression such as \"pi/2\", \"inf\" or \"-inf\""
)
