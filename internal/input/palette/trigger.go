package palette

import (
	"strings"

	"github.com/dshills/blockpad/internal/engine/document"
)

// TriggerRune opens the palette when it starts a block.
const TriggerRune = "/"

// Trigger is an open palette: Block starts with "/" and Query is the text
// between it and Cursor.
type Trigger struct {
	Block  int
	Cursor int
	Query  string
}

// Detect reports whether the block at pos starts with "/" with the cursor
// after it.
func Detect(doc document.Document, pos document.Position) (Trigger, bool) {
	if !doc.Valid(pos.Block) {
		return Trigger{}, false
	}
	pos = doc.Clamp(pos)
	slots := doc.Slots(pos.Block)
	if len(slots) == 0 || slots[0] != TriggerRune || pos.Offset < 1 {
		return Trigger{}, false
	}
	return Trigger{
		Block:  pos.Block,
		Cursor: pos.Offset,
		Query:  strings.Join(slots[1:pos.Offset], ""),
	}, true
}

// Remove deletes the "/query" text of t and leaves the cursor where it
// started.
func (t Trigger) Remove(doc document.Document) document.Document {
	if !doc.Valid(t.Block) || t.Cursor < 1 {
		return doc
	}
	doc = doc.DeleteRange(t.Block, 0, t.Cursor)
	return doc.WithSelection(document.Collapsed(document.Position{Block: t.Block}))
}
