package dispatcher

import (
	"fmt"

	"github.com/dshills/blockpad/internal/engine/document"
)

// SourceBuiltin marks commands registered by RegisterBuiltins.
const SourceBuiltin = "builtin"

// Command is a named document transform.
type Command struct {
	// ID is the stable identifier, e.g. "heading1".
	ID string

	// Label is the human-readable name matched by palette queries.
	Label string

	// Shortcut is the typed prefix that suggests the command, e.g. "# ".
	Shortcut string

	// Category groups commands for display.
	Category string

	// Source identifies who registered the command ("builtin", "lua:<file>").
	Source string

	// Execute returns the next snapshot. It must not mutate its input.
	Execute func(document.Document) document.Document
}

// Validate checks that the command can be registered.
func (c Command) Validate() error {
	switch {
	case c.ID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidCommand)
	case c.Execute == nil:
		return fmt.Errorf("%w: %s has no Execute", ErrInvalidCommand, c.ID)
	}
	return nil
}

// DisplayLabel returns the label, falling back to the id.
func (c Command) DisplayLabel() string {
	if c.Label != "" {
		return c.Label
	}
	return c.ID
}
