package keymap

import (
	"github.com/dshills/blockpad/internal/input/key"
)

// Binding represents a single chord-to-action mapping.
type Binding struct {
	// Keys is the chord that triggers this binding.
	// Formats: "Ctrl+B", "Cmd+Shift+Z", "<C-b>"
	Keys string

	// Action is the action to execute.
	// Examples: "format.bold", "history.undo", "cursor.down"
	Action string

	// Description provides documentation for the binding.
	Description string

	// Category groups bindings for display purposes.
	Category string
}

// NewBinding creates a new binding with the given keys and action.
func NewBinding(keys, action string) Binding {
	return Binding{
		Keys:   keys,
		Action: action,
	}
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// WithCategory sets the category for this binding.
func (b Binding) WithCategory(category string) Binding {
	b.Category = category
	return b
}

// ParsedBinding is a binding with its chord parsed.
type ParsedBinding struct {
	Binding
	Event key.Event
}

// BindingMatch is a binding together with the keymap that holds it.
type BindingMatch struct {
	ParsedBinding
	Keymap *Keymap
}
