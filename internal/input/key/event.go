package key

import (
	"strings"
	"unicode"
)

// Event represents a single key press. Events built with NewEvent,
// NewRuneEvent, Parse or FromTcell are normalized and comparable with ==.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewEvent creates a normalized key event.
func NewEvent(key Key, r rune, mods Modifier) Event {
	return Event{Key: key, Rune: r, Modifiers: mods}.Normalize()
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return NewEvent(KeyRune, r, mods)
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return NewEvent(key, 0, mods)
}

// Normalize returns the canonical form of e.
func (e Event) Normalize() Event {
	if e.Key != KeyRune {
		e.Rune = 0
		return e
	}
	if e.Modifiers.Has(ModCtrl | ModAlt | ModMeta) {
		if unicode.IsUpper(e.Rune) {
			e.Rune = unicode.ToLower(e.Rune)
			e.Modifiers = e.Modifiers.With(ModShift)
		}
		return e
	}
	// Plain characters carry Shift in the rune.
	e.Modifiers = e.Modifiers.Without(ModShift)
	return e
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character typed without
// command modifiers.
func (e Event) IsChar() bool {
	return e.IsRune() && !e.IsModified() && unicode.IsPrint(e.Rune)
}

// IsModified returns true if Ctrl, Alt or Meta is pressed. For special keys
// Shift also counts.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers.Has(ModCtrl | ModAlt | ModMeta)
	}
	return e.Modifiers != ModNone
}

// String returns the display form, "Ctrl+Shift+Z", "Enter" or "a".
func (e Event) String() string {
	var name string
	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		name = "Space"
	case e.Key == KeyRune && e.IsModified():
		name = strings.ToUpper(string(e.Rune))
	case e.Key == KeyRune:
		name = string(e.Rune)
	default:
		name = e.Key.String()
	}
	if mods := e.Modifiers.String(); mods != "" {
		return mods + "+" + name
	}
	return name
}

// VimString returns a Vim-style string representation.
// Examples: "<Esc>", "<C-b>", "<D-S-z>", "<CR>", "a"
func (e Event) VimString() string {
	if e.IsRune() && !e.IsModified() {
		if e.Rune == ' ' {
			return "<Space>"
		}
		return string(e.Rune)
	}

	var parts []string
	if e.Modifiers.Has(ModCtrl) {
		parts = append(parts, "C")
	}
	if e.Modifiers.Has(ModAlt) {
		parts = append(parts, "A")
	}
	if e.Modifiers.Has(ModMeta) {
		parts = append(parts, "D")
	}
	if e.Modifiers.Has(ModShift) {
		parts = append(parts, "S")
	}

	var name string
	switch e.Key {
	case KeyRune:
		name = string(e.Rune)
		if e.Rune == ' ' {
			name = "Space"
		}
	case KeyEscape:
		name = "Esc"
	case KeyEnter:
		name = "CR"
	case KeyBackspace:
		name = "BS"
	case KeyDelete:
		name = "Del"
	default:
		name = e.Key.String()
	}
	parts = append(parts, name)

	return "<" + strings.Join(parts, "-") + ">"
}

// Matches checks if this event matches a key specification string.
func (e Event) Matches(spec string) bool {
	parsed, err := Parse(spec)
	if err != nil {
		return false
	}
	return e.Normalize() == parsed
}
