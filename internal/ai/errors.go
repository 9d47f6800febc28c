package ai

import (
	"errors"
	"fmt"
)

// Sentinel errors for AI operations.
var (
	ErrDisabled      = errors.New("ai: no API key configured")
	ErrEmptyInput    = errors.New("ai: empty input")
	ErrInputTooLarge = errors.New("ai: input exceeds maximum length")
	ErrUnauthorized  = errors.New("ai: invalid API key")
	ErrRateLimited   = errors.New("ai: rate limited by provider")
	ErrServer        = errors.New("ai: provider server error")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op  string // Operation: "enhance", "narrate"
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("ai %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError creates an Error with context.
func wrapError(op string, err error) error {
	return &Error{Op: op, Err: err}
}
