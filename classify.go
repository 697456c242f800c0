package actz

import (
	"errors"
	"fmt"
)

// panicError boxes a recovered panic payload so it can travel the same error
// path as a returned error. When the payload was itself an error its message
// stays reachable for development-mode classification; any other payload
// (string, number, nil) is opaque and never leaks its literal value.
type panicError struct {
	value any
	err   error
}

func newPanicError(recovered any) *panicError {
	pe := &panicError{value: recovered}
	if err, ok := recovered.(error); ok {
		pe.err = err
	}
	return pe
}

// Error implements the error interface.
func (p *panicError) Error() string {
	if p.err != nil {
		return p.err.Error()
	}
	return fmt.Sprintf("panic: %v", p.value)
}

// Unwrap exposes the underlying error for errors.Is/As when the panic payload
// was an error.
func (p *panicError) Unwrap() error {
	return p.err
}

// classifyServerError decides the user-visible message for a failure that
// reached the action's top-level boundary.
//
// In production mode the configured default message is always returned,
// regardless of what the underlying failure says. This is a deliberate
// data-leak prevention boundary.
//
// In development mode the failure's own message is returned when it has one.
// A failure with an empty message, a nil cause, or a recovered panic whose
// payload was not an error all fall back to the default message - raw
// non-error panic values never surface their literal value in any mode.
func classifyServerError(cause error, defaultMessage string, production bool) string {
	if production || cause == nil {
		return defaultMessage
	}

	var pe *panicError
	if errors.As(cause, &pe) && pe.err == nil {
		return defaultMessage
	}

	if msg := cause.Error(); msg != "" {
		return msg
	}
	return defaultMessage
}
