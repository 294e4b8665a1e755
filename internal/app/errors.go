package app

import (
	"errors"
	"fmt"
)

// Editor errors.
var (
	// ErrClosed indicates the editor was closed.
	ErrClosed = errors.New("editor closed")

	// ErrNoTrigger indicates no palette or mention trigger is open.
	ErrNoTrigger = errors.New("no open trigger")

	// ErrNothingSelected indicates an operation needs a selection.
	ErrNothingSelected = errors.New("nothing selected")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name (e.g., "load script", "paste")
	Target string // Target of the operation (e.g., file path, command id)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
