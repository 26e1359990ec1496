package action

import (
	"errors"
	"fmt"
)

// Sentinel errors for action operations.
// All use prefix "action:". Callers should use errors.Is/errors.As.
var (
	ErrMissingInput      = errors.New("action: required input not provided")
	ErrInvalidInput      = errors.New("action: input is malformed")
	ErrInputTooLong      = errors.New("action: input exceeds the model token limit")
	ErrUnknownAction     = errors.New("action: unknown action")
	ErrInvalidDefinition = errors.New("action: invalid action definition")
)

// InputError wraps a sentinel error with the offending input field and action.
// Use errors.Is(err, ErrMissingInput) and errors.As(err, &inputErr) to inspect.
type InputError struct {
	Field  string
	Action Kind
	Err    error
}

// Error implements error.
func (e *InputError) Error() string {
	return fmt.Sprintf("action: input %q of %s: %v", e.Field, e.Action, e.Err)
}

// Unwrap returns the wrapped error for errors.Is/errors.As.
func (e *InputError) Unwrap() error { return e.Err }

// Compile-time check that InputError implements error.
var _ error = (*InputError)(nil)
