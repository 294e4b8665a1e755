// Package cursor maps live cursor positions to document coordinates.
//
// A host UI knows where its text cursor is; the editor core only knows
// (block, offset) pairs. The Locator capability bridges the two: the host
// passes a Locator into each handler and the core resolves it against the
// current document snapshot.
//
//	loc := cursor.Fixed(2, 5)
//	pos, ok := cursor.Resolve(doc, loc)
//	if !ok {
//	    return // event fired outside editable content
//	}
//
// Resolution never surfaces an error. A locator that reports nothing, or that
// names a block the document does not have, resolves to false and the caller
// does nothing. Offsets are clamped into the owning block.
//
// Navigation:
//
// Vertical moves between blocks by index and is a no-op at either end.
// Horizontal moves one offset slot and wraps across block boundaries.
//
// Selections use an anchor/head model: Start is the anchor, End is the head.
// Extend moves the head and keeps the anchor, so a backward selection stays
// backward until a consumer normalizes it.
package cursor
