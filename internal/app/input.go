package app

import (
	"github.com/dshills/blockpad/internal/engine/cursor"
	"github.com/dshills/blockpad/internal/input/key"
	"github.com/dshills/blockpad/internal/input/keymap"
)

// HandleKey routes a key event through the keymaps. Bound actions run
// editor operations or dispatcher commands; unbound printable runes are
// typed. Shift on an arrow key extends the selection. It reports whether the
// event was consumed.
func (e *Editor) HandleKey(ev key.Event) (bool, error) {
	extend := false
	m, ok := e.keymaps.Lookup(ev)
	if !ok && isArrow(ev.Key) && ev.Modifiers.Has(key.ModShift) {
		m, ok = e.keymaps.Lookup(key.Event{Key: ev.Key, Modifiers: ev.Modifiers.Without(key.ModShift)})
		extend = ok
	}
	if !ok {
		if ev.IsChar() {
			return e.Type(string(ev.Rune)), nil
		}
		return false, nil
	}

	if _, open := e.PaletteTrigger(); open && ev.Key == key.KeyEnter {
		if res := e.PaletteResults(1); len(res) > 0 {
			return e.ChooseCommand(res[0].Command.ID)
		}
	}

	switch m.Action {
	case keymap.ActionUndo:
		return e.Undo(), nil
	case keymap.ActionRedo:
		return e.Redo(), nil
	case keymap.ActionUp:
		e.Navigate(cursor.Vertical, cursor.Backward, extend)
	case keymap.ActionDown:
		e.Navigate(cursor.Vertical, cursor.Forward, extend)
	case keymap.ActionLeft:
		e.Navigate(cursor.Horizontal, cursor.Backward, extend)
	case keymap.ActionRight:
		e.Navigate(cursor.Horizontal, cursor.Forward, extend)
	case keymap.ActionBackspace:
		return e.Backspace(), nil
	case keymap.ActionDelete:
		return e.Delete(), nil
	case keymap.ActionCopy:
		return true, e.Copy()
	case keymap.ActionCut:
		return true, e.Cut()
	case keymap.ActionPaste:
		_, err := e.Paste()
		return true, err
	case keymap.ActionEscape:
		return e.Dismiss(), nil
	default:
		return e.Execute(m.Action)
	}
	return true, nil
}

func isArrow(k key.Key) bool {
	switch k {
	case key.KeyUp, key.KeyDown, key.KeyLeft, key.KeyRight:
		return true
	}
	return false
}
