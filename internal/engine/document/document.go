package document

import "fmt"

// Position addresses a slot in the document: a block index and an offset
// into that block's content.
type Position struct {
	Block  int
	Offset int
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Block, p.Offset)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	switch {
	case p.Block < other.Block:
		return -1
	case p.Block > other.Block:
		return 1
	case p.Offset < other.Offset:
		return -1
	case p.Offset > other.Offset:
		return 1
	default:
		return 0
	}
}

// Before returns true if p comes before other in document order.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// Selection is the current cursor or range. End may precede Start.
type Selection struct {
	Start Position
	End   Position
}

// Collapsed returns a selection with no extent at p.
func Collapsed(p Position) Selection {
	return Selection{Start: p, End: p}
}

// IsCollapsed reports whether the selection has no extent.
func (s Selection) IsCollapsed() bool {
	return s.Start == s.End
}

// Normalized returns the selection with Start <= End in document order.
func (s Selection) Normalized() Selection {
	if s.End.Before(s.Start) {
		return Selection{Start: s.End, End: s.Start}
	}
	return s
}

// BlockRange returns the ordered block indices spanned by the selection.
func (s Selection) BlockRange() (from, to int) {
	return min(s.Start.Block, s.End.Block), max(s.Start.Block, s.End.Block)
}

// SingleBlock reports whether both ends lie in the same block.
func (s Selection) SingleBlock() bool {
	return s.Start.Block == s.End.Block
}

// Document is an immutable snapshot of the editor content.
// The zero value is an empty document.
type Document struct {
	blocks     []Block
	selection  Selection
	components []Component
}

// New returns an empty document: one paragraph holding one empty Text run.
func New() Document {
	return Document{blocks: []Block{emptyParagraph()}}
}

// FromBlocks returns a document holding normalized copies of blocks.
func FromBlocks(blocks ...Block) Document {
	if len(blocks) == 0 {
		return New()
	}
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = b.Clone().normalize()
	}
	return Document{blocks: out}
}

// all returns the document's blocks, substituting the empty document for the
// zero value. The returned slice must not be modified.
func (d Document) all() []Block {
	if len(d.blocks) == 0 {
		return []Block{emptyParagraph()}
	}
	return d.blocks
}

// Len returns the number of blocks. It is never zero.
func (d Document) Len() int {
	return len(d.all())
}

// Valid reports whether i addresses a block.
func (d Document) Valid(i int) bool {
	return i >= 0 && i < d.Len()
}

// Block returns a copy of the block at index i.
func (d Document) Block(i int) (Block, bool) {
	if !d.Valid(i) {
		return Block{}, false
	}
	return d.all()[i].Clone(), true
}

// Blocks returns a copy of all blocks in document order.
func (d Document) Blocks() []Block {
	return d.Slice(0, d.Len()-1)
}

// Slice returns copies of the blocks in [from, to] inclusive.
// Reverse ranges are normalized; out-of-range bounds return nil.
func (d Document) Slice(from, to int) []Block {
	from, to = min(from, to), max(from, to)
	if !d.Valid(from) || !d.Valid(to) {
		return nil
	}
	blocks := d.all()
	out := make([]Block, 0, to-from+1)
	for _, b := range blocks[from : to+1] {
		out = append(out, b.Clone())
	}
	return out
}

// BlockText returns the logical text content of block i.
func (d Document) BlockText(i int) string {
	if !d.Valid(i) {
		return ""
	}
	return d.all()[i].Text()
}

// BlockLen returns the number of offset slots in block i.
func (d Document) BlockLen(i int) int {
	if !d.Valid(i) {
		return 0
	}
	return d.all()[i].Len()
}

// Text returns the text of every block joined by newlines.
func (d Document) Text() string {
	blocks := d.all()
	out := make([]byte, 0, 64)
	for i, b := range blocks {
		if i > 0 {
			out = append(out, '\n')
		}
		out = append(out, b.Text()...)
	}
	return string(out)
}

// Selection returns the current selection.
func (d Document) Selection() Selection {
	return d.clampSelection(d.selection)
}

// WithSelection returns a document with sel as its selection, clamped into
// the document's bounds.
func (d Document) WithSelection(sel Selection) Document {
	d.blocks = d.all()
	d.selection = d.clampSelection(sel)
	return d
}

// Clamp returns p moved into the nearest valid position.
func (d Document) Clamp(p Position) Position {
	p.Block = max(0, min(p.Block, d.Len()-1))
	p.Offset = max(0, min(p.Offset, d.BlockLen(p.Block)))
	return p
}

func (d Document) clampSelection(sel Selection) Selection {
	return Selection{Start: d.Clamp(sel.Start), End: d.Clamp(sel.End)}
}

// Equal reports whether two documents have the same structural value.
func (d Document) Equal(other Document) bool {
	a, b := d.all(), other.all()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	if d.Selection() != other.Selection() {
		return false
	}
	if len(d.components) != len(other.components) {
		return false
	}
	for i := range d.components {
		if !d.components[i].Equal(other.components[i]) {
			return false
		}
	}
	return true
}

// withBlocks returns a copy of d using blocks, keeping the selection in range.
func (d Document) withBlocks(blocks []Block) Document {
	if len(blocks) == 0 {
		blocks = []Block{emptyParagraph()}
	}
	out := Document{blocks: blocks, components: d.components}
	out.selection = out.clampSelection(d.selection)
	return out
}

// replaceBlock returns a copy of the block slice with index i set to b.
func (d Document) replaceBlock(i int, b Block) Document {
	blocks := d.all()
	out := make([]Block, len(blocks))
	copy(out, blocks)
	out[i] = b.normalize()
	return d.withBlocks(out)
}
