// Package history provides undo/redo for the editor engine.
//
// History keeps two bounded stacks of whole-document snapshots. The caller
// records the document as it was before each edit and applies the edit
// itself; the log never mutates a document.
//
//	h := history.NewHistory(100)
//
//	h.Record(doc, "Bold")      // doc is the pre-edit snapshot
//	doc = doc.MapFormatting(...)
//
//	doc, _ = h.Undo(doc)       // back to the recorded snapshot
//	doc, _ = h.Redo(doc)       // forward again
//
// Recording clears the redo stack. Once the undo stack exceeds the bound the
// oldest snapshot is evicted.
//
// # Grouping
//
// Several edits can be grouped into one undo unit. While a group is open only
// the first recorded snapshot is kept:
//
//	h.BeginGroup("Composition")
//	// ... several recorded edits ...
//	h.EndGroup()
//
// Open returns a Group handle for the same purpose. Its Rollback closes the
// group unrecorded and hands back the snapshot from before the first edit.
//
// Undo and redo on an empty stack are no-ops and report false.
package history
