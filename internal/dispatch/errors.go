package dispatch

import (
	"errors"
	"fmt"
)

// ToolNotFoundError reports a dispatch against a name absent from the
// routing table. It is recoverable: callers typically surface it to the
// agent and continue.
type ToolNotFoundError struct {
	Name string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("tool %s not found", e.Name)
}

// IsToolNotFound reports whether err is or wraps a ToolNotFoundError.
func IsToolNotFound(err error) bool {
	var notFound *ToolNotFoundError
	return errors.As(err, &notFound)
}

// ArgumentError reports invalid tool arguments. Unlike backend
// failures, argument errors are programmer errors and propagate out of
// dispatch instead of being folded into an error-status result.
type ArgumentError struct {
	Argument string
	Reason   string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument %s: %s", e.Argument, e.Reason)
}

// IsArgumentError reports whether err is or wraps an ArgumentError.
func IsArgumentError(err error) bool {
	var argErr *ArgumentError
	return errors.As(err, &argErr)
}

// NewMissingArgumentError is the standard missing-required-argument error.
func NewMissingArgumentError(name string) *ArgumentError {
	return &ArgumentError{Argument: name, Reason: "required argument missing"}
}
