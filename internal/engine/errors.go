package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when a request cannot be optimized at all.
// Match it with errors.Is; the concrete error is an *InputError carrying the reason.
var ErrInvalidInput = errors.New("invalid input")

// InputError describes why a request was rejected.
type InputError struct {
	Reason string
}

// Error returns the reason prefixed with "invalid input".
func (e *InputError) Error() string {
	return "invalid input: " + e.Reason
}

// Is makes every InputError match ErrInvalidInput.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalidInput(format string, args ...any) error {
	return &InputError{Reason: fmt.Sprintf(format, args...)}
}
