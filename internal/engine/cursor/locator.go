package cursor

import "github.com/dshills/blockpad/internal/engine/document"

// Location is a cursor position as reported by the host: the identifier of
// the block hosting the cursor and a character offset within it.
type Location struct {
	Block  int
	Offset int
}

// Locator reports the live cursor location. It returns false when the cursor
// is not inside any editable block.
type Locator interface {
	Locate() (Location, bool)
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func() (Location, bool)

// Locate calls f.
func (f LocatorFunc) Locate() (Location, bool) {
	if f == nil {
		return Location{}, false
	}
	return f()
}

// Fixed returns a Locator that always reports the same location.
func Fixed(block, offset int) Locator {
	return LocatorFunc(func() (Location, bool) {
		return Location{Block: block, Offset: offset}, true
	})
}

// Nowhere is a Locator that never resolves.
var Nowhere Locator = LocatorFunc(func() (Location, bool) { return Location{}, false })

// Resolve maps the locator's current location to a document position.
// It returns false when the locator reports nothing or names a block outside
// the document. The offset is clamped to [0, BlockLen].
func Resolve(doc document.Document, loc Locator) (document.Position, bool) {
	if loc == nil {
		return document.Position{}, false
	}
	l, ok := loc.Locate()
	if !ok || !doc.Valid(l.Block) {
		return document.Position{}, false
	}
	return doc.Clamp(document.Position{Block: l.Block, Offset: l.Offset}), true
}

// ResolveSelection resolves loc into a collapsed selection.
func ResolveSelection(doc document.Document, loc Locator) (document.Selection, bool) {
	p, ok := Resolve(doc, loc)
	if !ok {
		return document.Selection{}, false
	}
	return document.Collapsed(p), true
}
