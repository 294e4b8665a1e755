package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrInvalidCommand is raised when a script registers a malformed command.
	ErrInvalidCommand = errors.New("invalid lua command")
)
