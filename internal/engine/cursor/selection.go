package cursor

import "github.com/dshills/blockpad/internal/engine/document"

// Extend returns sel with its head moved to pos. The anchor is unchanged.
func Extend(sel document.Selection, pos document.Position) document.Selection {
	return document.Selection{Start: sel.Start, End: pos}
}

// CollapseToStart collapses sel to its earlier end in document order.
func CollapseToStart(sel document.Selection) document.Selection {
	return document.Collapsed(sel.Normalized().Start)
}

// CollapseToEnd collapses sel to its later end in document order.
func CollapseToEnd(sel document.Selection) document.Selection {
	return document.Collapsed(sel.Normalized().End)
}

// SelectBlock selects the whole content of block i.
func SelectBlock(doc document.Document, i int) (document.Selection, bool) {
	if !doc.Valid(i) {
		return document.Selection{}, false
	}
	return document.Selection{
		Start: document.Position{Block: i},
		End:   document.Position{Block: i, Offset: doc.BlockLen(i)},
	}, true
}

// SelectAll selects the whole document.
func SelectAll(doc document.Document) document.Selection {
	last := doc.Len() - 1
	return document.Selection{
		Start: document.Position{},
		End:   document.Position{Block: last, Offset: doc.BlockLen(last)},
	}
}

// Step is a navigation function such as Vertical or Horizontal.
type Step func(doc document.Document, pos document.Position, dir Direction) (document.Position, bool)

// Move steps the head of sel in dir and collapses the selection onto it.
// When extend is true the anchor is kept instead.
func Move(doc document.Document, sel document.Selection, step Step, dir Direction, extend bool) document.Selection {
	head, ok := step(doc, sel.End, dir)
	if !ok {
		if extend {
			return sel
		}
		return document.Collapsed(sel.End)
	}
	if extend {
		return Extend(sel, head)
	}
	return document.Collapsed(head)
}
