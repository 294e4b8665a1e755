package history

import "github.com/dshills/blockpad/internal/engine/document"

// Group is a handle on the open undo group. Edits recorded while it is open
// undo as one entry described by the group's name. The editor holds one for
// the length of an IME composition.
type Group struct {
	h    *History
	gen  int
	done bool
}

// Open starts a group and returns its handle. It returns nil if a group is
// already open.
func (h *History) Open(name string) *Group {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.grouping {
		return nil
	}
	h.grouping = true
	h.groupName = name
	h.groupPre = nil
	h.groupGen++
	return &Group{h: h, gen: h.groupGen}
}

// openLocked reports whether the history's open group is still this one.
func (g *Group) openLocked() bool {
	return !g.done && g.h.grouping && g.h.groupGen == g.gen
}

// Commit closes the group and reports whether an undo entry was pushed. A
// closed handle, or one whose group was closed elsewhere, commits nothing.
func (g *Group) Commit() bool {
	g.h.mu.Lock()
	defer g.h.mu.Unlock()
	if !g.openLocked() {
		g.done = true
		return false
	}
	g.done = true
	pushed := g.h.groupPre != nil
	g.h.endGroupLocked()
	return pushed
}

// Rollback closes the group without recording it. It returns the snapshot
// taken before the first grouped edit so the caller can restore it; false
// means nothing was recorded.
func (g *Group) Rollback() (document.Document, bool) {
	g.h.mu.Lock()
	defer g.h.mu.Unlock()
	if !g.openLocked() {
		g.done = true
		return document.Document{}, false
	}
	g.done = true
	pre := g.h.groupPre
	g.h.grouping = false
	g.h.groupPre = nil
	if pre == nil {
		return document.Document{}, false
	}
	return pre.doc, true
}
