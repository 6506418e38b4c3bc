package results

// RiemannMethod names the sampling rule of a Riemann-family approximation
type RiemannMethod string

const (
	RiemannMethodLeft        RiemannMethod = "left"
	RiemannMethodRight       RiemannMethod = "right"
	RiemannMethodMidpoint    RiemannMethod = "midpoint"
	RiemannMethodTrapezoidal RiemannMethod = "trapezoidal"
)

var riemannMethodDescriptions = map[RiemannMethod]string{
	RiemannMethodLeft:        "left Riemann sum",
	RiemannMethodRight:       "right Riemann sum",
	RiemannMethodMidpoint:    "midpoint rule",
	RiemannMethodTrapezoidal: "trapezoidal sum",
}

// Description returns a human readable name for the method
func (m RiemannMethod) Description() string {
	if d, ok := riemannMethodDescriptions[m]; ok {
		return d
	}
	return string(m)
}

// RiemannSumToolResult represents the result of the Riemann-family tools
type RiemannSumToolResult struct {
	Message   string             `json:"message"`
	Method    RiemannMethod      `json:"method"`
	Arguments RiemannSumToolArgs `json:"arguments"`
	Value     Number             `json:"value"`
}

// RiemannSumToolArgs represents the arguments for the Riemann-family tools
type RiemannSumToolArgs struct {
	Expression   string `json:"expression"`
	A            Number `json:"a"`
	B            Number `json:"b"`
	Subintervals int    `json:"n"`
}
