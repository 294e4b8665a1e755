package cursor

import "github.com/dshills/blockpad/internal/engine/document"

// Direction is a navigation direction.
type Direction int

// Navigation directions.
const (
	Backward Direction = -1
	Forward  Direction = 1
)

// Vertical moves pos to the previous or next block, keeping the offset
// clamped to the target block. Moving past either end is a no-op and reports
// false.
func Vertical(doc document.Document, pos document.Position, dir Direction) (document.Position, bool) {
	if !doc.Valid(pos.Block) {
		return pos, false
	}
	target := pos.Block + int(dir.sign())
	if dir == 0 || !doc.Valid(target) {
		return pos, false
	}
	return doc.Clamp(document.Position{Block: target, Offset: pos.Offset}), true
}

// Horizontal moves pos one offset slot. Moving past the end of a block lands
// at the start of the next; moving before the start lands at the end of the
// previous. Moving past either end of the document is a no-op and reports
// false.
func Horizontal(doc document.Document, pos document.Position, dir Direction) (document.Position, bool) {
	if !doc.Valid(pos.Block) || dir == 0 {
		return pos, false
	}
	pos = doc.Clamp(pos)

	switch dir.sign() {
	case Forward:
		if pos.Offset < doc.BlockLen(pos.Block) {
			return document.Position{Block: pos.Block, Offset: pos.Offset + 1}, true
		}
		if doc.Valid(pos.Block + 1) {
			return document.Position{Block: pos.Block + 1}, true
		}
	case Backward:
		if pos.Offset > 0 {
			return document.Position{Block: pos.Block, Offset: pos.Offset - 1}, true
		}
		if doc.Valid(pos.Block - 1) {
			return document.Position{Block: pos.Block - 1, Offset: doc.BlockLen(pos.Block - 1)}, true
		}
	}
	return pos, false
}

// BlockStart returns the start of pos's block.
func BlockStart(pos document.Position) document.Position {
	return document.Position{Block: pos.Block}
}

// BlockEnd returns the end of pos's block.
func BlockEnd(doc document.Document, pos document.Position) document.Position {
	return document.Position{Block: pos.Block, Offset: doc.BlockLen(pos.Block)}
}

func (d Direction) sign() Direction {
	switch {
	case d > 0:
		return Forward
	case d < 0:
		return Backward
	}
	return 0
}
