package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrUnknownCommand indicates no command matched an id or query.
	ErrUnknownCommand = errors.New("dispatcher: unknown command")

	// ErrInvalidCommand indicates a command failed validation on register.
	ErrInvalidCommand = errors.New("dispatcher: invalid command")

	// ErrPanic indicates the command panicked.
	ErrPanic = errors.New("dispatcher: command panic")

	// ErrCancelled indicates a pre-hook cancelled the command.
	ErrCancelled = errors.New("dispatcher: command cancelled")

	// ErrNoTarget indicates Execute was called without an Applier.
	ErrNoTarget = errors.New("dispatcher: no target")
)
