package key

import "github.com/gdamore/tcell/v2"

// tcellSpecial maps tcell keys to special keys. Several tcell names share a
// value (KeyTab is Ctrl+I), so this is a list scanned in order rather than
// a switch.
var tcellSpecial = []struct {
	from tcell.Key
	to   Key
}{
	{tcell.KeyEnter, KeyEnter},
	{tcell.KeyTab, KeyTab},
	{tcell.KeyBackspace, KeyBackspace},
	{tcell.KeyBackspace2, KeyBackspace},
	{tcell.KeyEscape, KeyEscape},
	{tcell.KeyDelete, KeyDelete},
	{tcell.KeyHome, KeyHome},
	{tcell.KeyEnd, KeyEnd},
	{tcell.KeyPgUp, KeyPageUp},
	{tcell.KeyPgDn, KeyPageDown},
	{tcell.KeyUp, KeyUp},
	{tcell.KeyDown, KeyDown},
	{tcell.KeyLeft, KeyLeft},
	{tcell.KeyRight, KeyRight},
}

// FromTcell converts a tcell key event. It returns false for keys the editor
// has no name for.
func FromTcell(ev *tcell.EventKey) (Event, bool) {
	if ev == nil {
		return Event{}, false
	}
	mods := fromTcellModifiers(ev.Modifiers())
	k := ev.Key()

	if k == tcell.KeyRune {
		return NewRuneEvent(ev.Rune(), mods), true
	}
	for _, s := range tcellSpecial {
		if s.from == k {
			return NewSpecialEvent(s.to, mods), true
		}
	}

	switch {
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return NewRuneEvent('a'+rune(k-tcell.KeyCtrlA), mods.With(ModCtrl)), true
	case k == tcell.KeyCtrlRightSq:
		return NewRuneEvent(']', mods.With(ModCtrl)), true
	case k == tcell.KeyCtrlBackslash:
		return NewRuneEvent('\\', mods.With(ModCtrl)), true
	case k == tcell.KeyCtrlSpace:
		return NewRuneEvent(' ', mods.With(ModCtrl)), true
	}
	return Event{}, false
}

func fromTcellModifiers(m tcell.ModMask) Modifier {
	var mods Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(ModMeta)
	}
	return mods
}
