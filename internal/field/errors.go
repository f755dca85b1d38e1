package field

import "errors"

// Domain errors for field configuration.
var (
	// ErrUnknownMode indicates a mode tag outside default, network, fluid and matrix.
	ErrUnknownMode = errors.New("field: unknown mode")

	// ErrInvalidColor indicates a base color that is not a #rgb or #rrggbb hex string.
	ErrInvalidColor = errors.New("field: invalid color")
)

// ParamError wraps an error with the offending parameter.
type ParamError struct {
	Param   string
	Value   any
	Wrapped error
}

func (e *ParamError) Error() string {
	return e.Wrapped.Error() + " (" + e.Param + ")"
}

func (e *ParamError) Unwrap() error {
	return e.Wrapped
}
