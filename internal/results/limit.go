package results

// LimitToolResult represents the result of the limit tool.
// Value is NaN when the one-sided limits disagree.
type LimitToolResult struct {
	Message   string        `json:"message"`
	Arguments LimitToolArgs `json:"arguments"`
	Exists    bool          `json:"exists"`
	Value     Number        `json:"value"`
	Left      Number        `json:"left"`
	Right     Number        `json:"right"`
}

// LimitToolArgs represents the arguments for the limit tool
type LimitToolArgs struct {
	Expression string `json:"expression"`
	X          Number `json:"x"`
}
