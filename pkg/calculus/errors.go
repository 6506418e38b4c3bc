package calculus

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is wrapped by every rejected call
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidConfig is wrapped by Config.Validate failures
	ErrInvalidConfig = errors.New("invalid accuracy configuration")
)

// InvalidCrossSectionTypeError reports a cross-section type outside the known shapes
type InvalidCrossSectionTypeError struct {
	Type CrossSectionType
}

func (e *InvalidCrossSectionTypeError) Error() string {
	return fmt.Sprintf("<%d> is not a valid cross-section type, valid types are %d - %d",
		int(e.Type), int(Square), int(Semicircle))
}

// Unwrap lets errors.Is match ErrInvalidArgument
func (e *InvalidCrossSectionTypeError) Unwrap() error {
	return ErrInvalidArgument
}

// subintervalError rejects a Riemann-family call with fewer than one subinterval
func subintervalError(n int) error {
	return fmt.Errorf("%w: there must be at least one subinterval: got %d", ErrInvalidArgument, n)
}
