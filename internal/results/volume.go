package results

// RevolveToolResult represents the result of the revolve tool
type RevolveToolResult struct {
	Message   string          `json:"message"`
	Arguments RevolveToolArgs `json:"arguments"`
	Volume    Number          `json:"volume"`
}

// RevolveToolArgs represents the arguments for the revolve tool
type RevolveToolArgs struct {
	Top    string `json:"top"`
	Bottom string `json:"bottom"`
	A      Number `json:"a"`
	B      Number `json:"b"`
	Axis   Number `json:"axis"`
}

// CrossSectionToolResult represents the result of the cross-section tool
type CrossSectionToolResult struct {
	Message   string               `json:"message"`
	Arguments CrossSectionToolArgs `json:"arguments"`
	Volume    Number               `json:"volume"`
}

// CrossSectionToolArgs represents the arguments for the cross-section tool.
// Either Integrand or Top, Bottom and Shape are set.
type CrossSectionToolArgs struct {
	Top       string `json:"top,omitempty"`
	Bottom    string `json:"bottom,omitempty"`
	Integrand string `json:"integrand,omitempty"`
	Shape     string `json:"shape,omitempty"`
	A         Number `json:"a"`
	B         Number `json:"b"`
}

// PolarAreaToolResult represents the result of the polar area tool
type PolarAreaToolResult struct {
	Message   string            `json:"message"`
	Arguments PolarAreaToolArgs `json:"arguments"`
	Area      Number            `json:"area"`
}

// PolarAreaToolArgs represents the arguments for the polar area tool
type PolarAreaToolArgs struct {
	Expression string `json:"expression"`
	A          Number `json:"a"`
	B          Number `json:"b"`
}
