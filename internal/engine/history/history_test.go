package history

import (
	"fmt"
	"testing"

	"github.com/dshills/blockpad/internal/engine/document"
)

func doc(texts ...string) document.Document {
	blocks := make([]document.Block, len(texts))
	for i, t := range texts {
		blocks[i] = document.Paragraph(t)
	}
	return document.FromBlocks(blocks...)
}

func TestNewHistoryDefaults(t *testing.T) {
	for _, max := range []int{0, -5} {
		h := NewHistory(max)
		if h.MaxEntries() != DefaultMaxEntries {
			t.Errorf("NewHistory(%d).MaxEntries() = %d, want %d", max, h.MaxEntries(), DefaultMaxEntries)
		}
	}
	if NewHistory(7).MaxEntries() != 7 {
		t.Error("explicit bound not kept")
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	h := NewHistory(0)
	d0 := doc("a")
	d1 := doc("ab")

	h.Record(d0, "type")
	if !h.CanUndo() || h.CanRedo() {
		t.Fatal("after Record: want undo only")
	}

	got, ok := h.Undo(d1)
	if !ok {
		t.Fatal("Undo reported nothing to undo")
	}
	if !got.Equal(d0) {
		t.Errorf("Undo = %q, want %q", got.Text(), d0.Text())
	}
	if h.CanUndo() || !h.CanRedo() {
		t.Fatal("after Undo: want redo only")
	}

	got, ok = h.Redo(got)
	if !ok {
		t.Fatal("Redo reported nothing to redo")
	}
	if !got.Equal(d1) {
		t.Errorf("Redo = %q, want %q", got.Text(), d1.Text())
	}
	if h.UndoCount() != 1 || h.RedoCount() != 0 {
		t.Errorf("counts = %d/%d, want 1/0", h.UndoCount(), h.RedoCount())
	}
}

func TestEmptyStacksAreNoOps(t *testing.T) {
	h := NewHistory(0)
	current := doc("x")

	got, ok := h.Undo(current)
	if ok || !got.Equal(current) {
		t.Error("Undo on empty history should return current and false")
	}
	got, ok = h.Redo(current)
	if ok || !got.Equal(current) {
		t.Error("Redo on empty history should return current and false")
	}
	if _, ok := h.PeekUndo(); ok {
		t.Error("PeekUndo on empty history")
	}
	if _, ok := h.PeekRedo(); ok {
		t.Error("PeekRedo on empty history")
	}
}

func TestRecordClearsRedo(t *testing.T) {
	h := NewHistory(0)
	h.Record(doc("a"), "one")
	h.Undo(doc("b"))
	if !h.CanRedo() {
		t.Fatal("expected redo after undo")
	}

	h.Record(doc("a"), "two")
	if h.CanRedo() {
		t.Error("Record should clear redo stack")
	}
	if h.UndoCount() != 1 {
		t.Errorf("UndoCount = %d, want 1", h.UndoCount())
	}
}

func TestEvictsOldestPastBound(t *testing.T) {
	h := NewHistory(100)
	for i := 0; i < 101; i++ {
		h.Record(doc(fmt.Sprint(i)), fmt.Sprint("edit ", i))
	}
	if h.UndoCount() != 100 {
		t.Fatalf("UndoCount = %d, want 100", h.UndoCount())
	}

	current := doc("current")
	var last document.Document
	for h.CanUndo() {
		current, _ = h.Undo(current)
		last = current
	}
	// Snapshot 0 was evicted; the oldest reachable state is snapshot 1.
	if last.Text() != "1" {
		t.Errorf("oldest reachable = %q, want %q", last.Text(), "1")
	}
}

func TestSetMaxEntriesTrims(t *testing.T) {
	h := NewHistory(10)
	for i := 0; i < 10; i++ {
		h.Record(doc(fmt.Sprint(i)), "")
	}
	h.SetMaxEntries(3)
	if h.UndoCount() != 3 {
		t.Fatalf("UndoCount = %d, want 3", h.UndoCount())
	}
	info := h.UndoInfo()
	if len(info) != 3 {
		t.Fatalf("len(UndoInfo) = %d", len(info))
	}
	got, _ := h.Undo(doc("x"))
	if got.Text() != "9" {
		t.Errorf("Undo = %q, want 9", got.Text())
	}
}

func TestRedoRespectsBound(t *testing.T) {
	h := NewHistory(2)
	h.Record(doc("a"), "")
	h.Record(doc("b"), "")
	h.Undo(doc("c"))
	h.Redo(doc("b"))
	if h.UndoCount() != 2 {
		t.Errorf("UndoCount after redo = %d, want 2", h.UndoCount())
	}
	h.Record(doc("z"), "")
	if h.CanRedo() {
		t.Fatal("redo should be cleared")
	}
	if h.UndoCount() != 2 {
		t.Errorf("UndoCount = %d, want 2", h.UndoCount())
	}
}

func TestPeekAndInfo(t *testing.T) {
	h := NewHistory(0)
	h.Record(doc("a"), "Bold")
	h.Record(doc("b"), "Italic")

	info, ok := h.PeekUndo()
	if !ok || info.Description != "Italic" {
		t.Errorf("PeekUndo = %+v, %v", info, ok)
	}
	if info.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}

	h.Undo(doc("c"))
	info, ok = h.PeekRedo()
	if !ok || info.Description != "Italic" {
		t.Errorf("PeekRedo = %+v, %v", info, ok)
	}

	undo := h.UndoInfo()
	if len(undo) != 1 || undo[0].Description != "Bold" {
		t.Errorf("UndoInfo = %+v", undo)
	}
	redo := h.RedoInfo()
	if len(redo) != 1 || redo[0].Description != "Italic" {
		t.Errorf("RedoInfo = %+v", redo)
	}
}

func TestClear(t *testing.T) {
	h := NewHistory(0)
	h.Record(doc("a"), "")
	h.Undo(doc("b"))
	h.Record(doc("c"), "")
	h.BeginGroup("g")
	h.Clear()

	if h.CanUndo() || h.CanRedo() || h.IsGrouping() {
		t.Error("Clear should reset all state")
	}
}

func TestGroupKeepsFirstSnapshot(t *testing.T) {
	h := NewHistory(0)
	h.BeginGroup("Composition")
	if !h.IsGrouping() {
		t.Fatal("IsGrouping = false")
	}
	h.Record(doc(""), "k")
	h.Record(doc("k"), "ka")
	h.Record(doc("ka"), "kan")
	if h.CanUndo() {
		t.Error("open group should not be undoable yet")
	}
	h.EndGroup()

	if h.UndoCount() != 1 {
		t.Fatalf("UndoCount = %d, want 1", h.UndoCount())
	}
	info, _ := h.PeekUndo()
	if info.Description != "Composition" {
		t.Errorf("Description = %q", info.Description)
	}
	got, _ := h.Undo(doc("kan"))
	if got.Text() != "" {
		t.Errorf("Undo = %q, want empty", got.Text())
	}
}

func TestEmptyGroupRecordsNothing(t *testing.T) {
	h := NewHistory(0)
	h.BeginGroup("nothing")
	h.EndGroup()
	if h.CanUndo() {
		t.Error("empty group should not create an entry")
	}
	// EndGroup without BeginGroup is ignored
	h.EndGroup()
}

func TestNestedBeginGroupIgnored(t *testing.T) {
	h := NewHistory(0)
	h.BeginGroup("outer")
	h.Record(doc("a"), "")
	h.BeginGroup("inner")
	h.Record(doc("b"), "")
	h.EndGroup()

	info, _ := h.PeekUndo()
	if info.Description != "outer" {
		t.Errorf("Description = %q, want outer", info.Description)
	}
	if h.UndoCount() != 1 {
		t.Errorf("UndoCount = %d", h.UndoCount())
	}
}

func TestCancelGroup(t *testing.T) {
	h := NewHistory(0)
	h.BeginGroup("g")
	h.Record(doc("a"), "")
	h.CancelGroup()
	if h.IsGrouping() || h.CanUndo() {
		t.Error("cancelled group should leave no entry")
	}
}

func TestGroupCommit(t *testing.T) {
	h := NewHistory(0)
	g := h.Open("Composition")
	if g == nil {
		t.Fatal("Open returned nil")
	}
	if h.Open("second") != nil {
		t.Error("second Open while grouping should return nil")
	}
	h.Record(doc("a"), "")
	h.Record(doc("ab"), "")
	if !g.Commit() {
		t.Error("Commit = false, want true")
	}
	if g.Commit() {
		t.Error("second Commit should be a no-op")
	}
	info, ok := h.PeekUndo()
	if !ok || info.Description != "Composition" || h.UndoCount() != 1 {
		t.Errorf("PeekUndo = %+v %v, count %d", info, ok, h.UndoCount())
	}

	empty := h.Open("empty")
	if empty.Commit() || h.UndoCount() != 1 {
		t.Errorf("empty group recorded: count=%d", h.UndoCount())
	}
}

func TestGroupRollback(t *testing.T) {
	h := NewHistory(0)
	h.Record(doc("base"), "")

	g := h.Open("Composition")
	h.Record(doc("x"), "")
	h.Record(doc("xy"), "")
	pre, ok := g.Rollback()
	if !ok || pre.Text() != "x" {
		t.Errorf("Rollback = %q %v, want x true", pre.Text(), ok)
	}
	if h.IsGrouping() || h.UndoCount() != 1 {
		t.Errorf("grouping=%v count=%d after rollback", h.IsGrouping(), h.UndoCount())
	}
	if _, ok := g.Rollback(); ok {
		t.Error("second Rollback should report false")
	}
	if g.Commit() {
		t.Error("Commit after Rollback should be a no-op")
	}
}

func TestGroupHandleOutlivedByClear(t *testing.T) {
	h := NewHistory(0)
	stale := h.Open("stale")
	h.Clear()

	fresh := h.Open("fresh")
	h.Record(doc("a"), "")
	if stale.Commit() {
		t.Error("stale handle committed")
	}
	if !h.IsGrouping() {
		t.Fatal("stale handle closed the fresh group")
	}
	if !fresh.Commit() || h.UndoCount() != 1 {
		t.Errorf("fresh commit: count=%d", h.UndoCount())
	}
}
