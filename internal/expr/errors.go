package expr

import (
	"errors"
	"fmt"
)

// ErrInvalidExpression is wrapped by every compile failure
var ErrInvalidExpression = errors.New("invalid expression")

// CompileError reports an expression that cannot be turned into a function
type CompileError struct {
	Expression string
	Err        error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("invalid expression %q: %v", e.Expression, e.Err)
}

func (e *CompileError) Unwrap() []error {
	return []error{ErrInvalidExpression, e.Err}
}
