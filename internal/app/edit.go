package app

import (
	"github.com/dshills/blockpad/internal/engine/cursor"
	"github.com/dshills/blockpad/internal/engine/document"
)

// History descriptions for direct edits.
const (
	DescTyping      = "Typing"
	DescDelete      = "Delete"
	DescComposition = "Composition"
)

// Select sets the selection without recording history. It closes any open
// trigger.
func (e *Editor) Select(sel document.Selection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc = e.doc.WithSelection(sel)
	e.slash, e.at = nil, nil
}

// MoveTo collapses the selection onto the location reported by loc. An
// unresolvable location is a no-op and reports false.
func (e *Editor) MoveTo(loc cursor.Locator) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	sel, ok := cursor.ResolveSelection(e.doc, loc)
	if !ok {
		return false
	}
	e.doc = e.doc.WithSelection(sel)
	e.slash, e.at = nil, nil
	return true
}

// Navigate steps the cursor one block (vertical) or one slot (horizontal).
// With extend the selection anchor stays put.
func (e *Editor) Navigate(step cursor.Step, dir cursor.Direction, extend bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc = e.doc.WithSelection(cursor.Move(e.doc, e.doc.Selection(), step, dir, extend))
	e.slash, e.at = nil, nil
}

// Type inserts text at the cursor, replacing the selection. The inserted
// text inherits the formatting at the cursor.
func (e *Editor) Type(text string) bool {
	if text == "" {
		return false
	}
	return e.Apply(DescTyping, func(doc document.Document) document.Document {
		return insertText(deleteSelection(doc), text)
	})
}

// Backspace deletes the selection, or the slot before the cursor. At the
// start of a block it merges the block into the previous one.
func (e *Editor) Backspace() bool {
	return e.Apply(DescDelete, func(doc document.Document) document.Document {
		if !doc.Selection().IsCollapsed() {
			return deleteSelection(doc)
		}
		p := doc.Selection().End
		if p.Offset > 0 {
			nd := doc.DeleteRange(p.Block, p.Offset-1, p.Offset)
			return nd.WithSelection(document.Collapsed(document.Position{Block: p.Block, Offset: p.Offset - 1}))
		}
		if p.Block == 0 {
			return doc
		}
		join := doc.BlockLen(p.Block - 1)
		nd := doc.MergeWithNext(p.Block - 1)
		return nd.WithSelection(document.Collapsed(document.Position{Block: p.Block - 1, Offset: join}))
	})
}

// Delete deletes the selection, or the slot after the cursor. At the end of
// a block it merges the next block into it.
func (e *Editor) Delete() bool {
	return e.Apply(DescDelete, func(doc document.Document) document.Document {
		if !doc.Selection().IsCollapsed() {
			return deleteSelection(doc)
		}
		p := doc.Selection().End
		if p.Offset < doc.BlockLen(p.Block) {
			return doc.DeleteRange(p.Block, p.Offset, p.Offset+1).WithSelection(document.Collapsed(p))
		}
		return doc.MergeWithNext(p.Block).WithSelection(document.Collapsed(p))
	})
}

// deleteSelection removes the selected content, joining the first and last
// blocks of a multi-block selection, and collapses the cursor to its start.
func deleteSelection(doc document.Document) document.Document {
	sel := doc.Selection().Normalized()
	if sel.IsCollapsed() {
		return doc
	}
	start := sel.Start
	if sel.SingleBlock() {
		return doc.DeleteRange(start.Block, start.Offset, sel.End.Offset).WithSelection(document.Collapsed(start))
	}

	nd := doc.DeleteRange(sel.End.Block, 0, sel.End.Offset)
	nd = nd.DeleteRange(start.Block, start.Offset, nd.BlockLen(start.Block))
	if sel.End.Block-start.Block > 1 {
		nd = nd.RemoveBlocks(start.Block+1, sel.End.Block-1)
	}
	return nd.MergeWithNext(start.Block).WithSelection(document.Collapsed(start))
}

// insertText inserts at a collapsed cursor and moves the cursor past the
// inserted slots.
func insertText(doc document.Document, text string) document.Document {
	p := doc.Selection().End
	before := doc.BlockLen(p.Block)
	nd := doc.InsertText(p, text)
	grown := nd.BlockLen(p.Block) - before
	return nd.WithSelection(document.Collapsed(document.Position{Block: p.Block, Offset: p.Offset + grown}))
}

// CompositionStart opens an IME composition. Until CompositionEnd, edits
// still apply but share one history entry and no trigger is detected. Undo
// and redo are disabled meanwhile.
func (e *Editor) CompositionStart() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.composition != nil {
		return
	}
	e.composition = e.history.Open(DescComposition)
	e.slash, e.at = nil, nil
}

// CompositionEnd closes the composition and detects triggers on the settled
// content.
func (e *Editor) CompositionEnd() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.composition == nil {
		return
	}
	if e.composition.Commit() {
		e.log.Debug().Msg("composition recorded")
	}
	e.composition = nil
	e.detectLocked()
}

// CompositionCancel closes the composition and restores the document as it
// was before the composition's first edit. Nothing is recorded. It reports
// whether the document changed.
func (e *Editor) CompositionCancel() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.composition == nil {
		return false
	}
	pre, ok := e.composition.Rollback()
	e.composition = nil
	if ok {
		e.doc = pre
	}
	e.detectLocked()
	return ok
}

// Composing reports whether an IME composition is open.
func (e *Editor) Composing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.composition != nil
}
