package history

import (
	"sync"
	"time"

	"github.com/dshills/blockpad/internal/engine/document"
)

// DefaultMaxEntries is the undo bound used when none is configured.
const DefaultMaxEntries = 100

// entry wraps a snapshot with metadata.
type entry struct {
	doc         document.Document
	description string
	timestamp   time.Time
}

// OperationInfo describes a history entry for display.
type OperationInfo struct {
	Description string
	Timestamp   time.Time
}

// History manages the undo/redo stacks of one editor.
type History struct {
	mu sync.Mutex

	// past holds snapshots older than the current document, newest last.
	past []entry
	// future holds undone snapshots, the next redo last.
	future []entry

	// Grouping state
	grouping  bool
	groupName string
	groupPre  *entry
	groupGen  int

	maxEntries int
}

// NewHistory creates a history bounded to maxEntries undo snapshots.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Record pushes pre, the document as it was before an edit, onto the undo
// stack and clears the redo stack.
func (h *History) Record(pre document.Document, description string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	e := entry{doc: pre, description: description, timestamp: time.Now()}
	if h.grouping {
		if h.groupPre == nil {
			h.groupPre = &e
		}
		h.future = nil
		return
	}

	h.pushLocked(e)
}

// pushLocked adds an entry without acquiring the lock.
func (h *History) pushLocked(e entry) {
	h.past = append(h.past, e)
	h.future = nil

	if len(h.past) > h.maxEntries {
		excess := len(h.past) - h.maxEntries
		h.past = append([]entry(nil), h.past[excess:]...)
	}
}

// Undo returns the most recent snapshot and pushes current onto the redo
// stack. It reports false, returning current, when there is nothing to undo.
func (h *History) Undo(current document.Document) (document.Document, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.past) == 0 {
		return current, false
	}

	prev := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, entry{doc: current, description: prev.description, timestamp: time.Now()})
	return prev.doc, true
}

// Redo returns the most recently undone snapshot and pushes current onto the
// undo stack. It reports false, returning current, when there is nothing to
// redo.
func (h *History) Redo(current document.Document) (document.Document, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.future) == 0 {
		return current, false
	}

	next := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, entry{doc: current, description: next.description, timestamp: time.Now()})
	if len(h.past) > h.maxEntries {
		h.past = h.past[len(h.past)-h.maxEntries:]
	}
	return next.doc, true
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.past) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.future) > 0
}

// UndoCount returns the number of undo snapshots available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.past)
}

// RedoCount returns the number of redo snapshots available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.future)
}

// BeginGroup starts a group. Edits recorded until EndGroup undo as one unit.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		// Already grouping, ignore nested calls
		return
	}

	h.grouping = true
	h.groupName = name
	h.groupPre = nil
	h.groupGen++
}

// EndGroup closes the current group, pushing its first snapshot if anything
// was recorded.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.grouping {
		return
	}
	h.endGroupLocked()
}

func (h *History) endGroupLocked() {
	h.grouping = false
	if h.groupPre != nil {
		e := *h.groupPre
		if h.groupName != "" {
			e.description = h.groupName
		}
		h.pushLocked(e)
	}
	h.groupPre = nil
}

// CancelGroup closes the current group without recording it.
// Edits already applied to the document are not reverted.
func (h *History) CancelGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.grouping = false
	h.groupPre = nil
}

// IsGrouping returns true if a group is open.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.grouping
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.past = nil
	h.future = nil
	h.grouping = false
	h.groupPre = nil
}

// UndoInfo describes the undo stack, oldest first.
func (h *History) UndoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return infos(h.past)
}

// RedoInfo describes the redo stack, next redo last.
func (h *History) RedoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return infos(h.future)
}

func infos(entries []entry) []OperationInfo {
	result := make([]OperationInfo, len(entries))
	for i, e := range entries {
		result[i] = OperationInfo{Description: e.description, Timestamp: e.timestamp}
	}
	return result
}

// PeekUndo returns info about the next undo without removing it.
func (h *History) PeekUndo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.past) == 0 {
		return OperationInfo{}, false
	}
	e := h.past[len(h.past)-1]
	return OperationInfo{Description: e.description, Timestamp: e.timestamp}, true
}

// PeekRedo returns info about the next redo without removing it.
func (h *History) PeekRedo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.future) == 0 {
		return OperationInfo{}, false
	}
	e := h.future[len(h.future)-1]
	return OperationInfo{Description: e.description, Timestamp: e.timestamp}, true
}

// SetMaxEntries changes the undo bound, evicting the oldest snapshots if the
// stack is now too large.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max
	if len(h.past) > max {
		h.past = append([]entry(nil), h.past[len(h.past)-max:]...)
	}
}

// MaxEntries returns the undo bound.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
