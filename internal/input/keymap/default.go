package keymap

// Action ids bound by the default keymap that are not dispatcher commands.
const (
	ActionUndo      = "history.undo"
	ActionRedo      = "history.redo"
	ActionUp        = "cursor.up"
	ActionDown      = "cursor.down"
	ActionLeft      = "cursor.left"
	ActionRight     = "cursor.right"
	ActionBackspace = "edit.backspace"
	ActionDelete    = "edit.delete"
	ActionCopy      = "clipboard.copy"
	ActionCut       = "clipboard.cut"
	ActionPaste     = "clipboard.paste"
	ActionEscape    = "editor.escape"
)

// Default returns the default keymap. Every modifier chord is bound for both
// Ctrl and Cmd.
func Default() *Keymap {
	km := &Keymap{
		Name:     "default",
		Source:   "default",
		Priority: PriorityDefault,
	}

	chords := []struct {
		key, action, desc, category string
	}{
		{"B", "format.bold", "Toggle bold", "Format"},
		{"I", "format.italic", "Toggle italic", "Format"},
		{"U", "format.underline", "Toggle underline", "Format"},
		{"]", "indent.increase", "Increase indent", "Block"},
		{"[", "indent.decrease", "Decrease indent", "Block"},
		{"Z", ActionUndo, "Undo", "History"},
		{"Shift+Z", ActionRedo, "Redo", "History"},
		{"Y", ActionRedo, "Redo", "History"},
		{"C", ActionCopy, "Copy", "Clipboard"},
		{"X", ActionCut, "Cut", "Clipboard"},
		{"V", ActionPaste, "Paste", "Clipboard"},
	}
	for _, mod := range []string{"Ctrl+", "Cmd+"} {
		for _, c := range chords {
			km.AddBinding(NewBinding(mod+c.key, c.action).WithDescription(c.desc).WithCategory(c.category))
		}
	}

	km.AddBinding(NewBinding("Up", ActionUp).WithDescription("Previous block").WithCategory("Movement"))
	km.AddBinding(NewBinding("Down", ActionDown).WithDescription("Next block").WithCategory("Movement"))
	km.AddBinding(NewBinding("Left", ActionLeft).WithDescription("Move left").WithCategory("Movement"))
	km.AddBinding(NewBinding("Right", ActionRight).WithDescription("Move right").WithCategory("Movement"))
	km.AddBinding(NewBinding("Enter", "block.split").WithDescription("Split block").WithCategory("Block"))
	km.AddBinding(NewBinding("Backspace", ActionBackspace).WithDescription("Delete backward").WithCategory("Edit"))
	km.AddBinding(NewBinding("Delete", ActionDelete).WithDescription("Delete forward").WithCategory("Edit"))
	km.AddBinding(NewBinding("Escape", ActionEscape).WithDescription("Close palette or mention list").WithCategory("Edit"))
	return km
}
