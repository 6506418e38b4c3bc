package results

// IntegrateToolResult represents the result of the integrate tool
type IntegrateToolResult struct {
	Message   string            `json:"message"`
	Arguments IntegrateToolArgs `json:"arguments"`
	Value     Number            `json:"value"`
}

// IntegrateToolArgs represents the arguments for the integrate tool
type IntegrateToolArgs struct {
	Expression string `json:"expression"`
	A          Number `json:"a"`
	B          Number `json:"b"`
}
