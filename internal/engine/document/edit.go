package document

// Edits never modify the receiver. Invalid block indices return the receiver
// unchanged; offsets are clamped into the addressed block.

// ReplaceBlockText replaces the children of block i with a single Text run.
func (d Document) ReplaceBlockText(i int, text string, f Formatting) Document {
	if !d.Valid(i) {
		return d
	}
	b := d.all()[i]
	nd := d.replaceBlock(i, Block{Kind: b.Kind, Indent: b.Indent, Children: []Inline{Text{Text: text, Formatting: f}}})
	limit := nd.BlockLen(i)
	return nd.mapComponents(func(c Component) (Component, bool) {
		if c.BlockIndex == i && c.Offset > limit {
			c.Offset = limit
		}
		return c, true
	})
}

// SetKind changes the kind of block i.
func (d Document) SetKind(i int, kind Kind) Document {
	if !d.Valid(i) || !kind.Valid() {
		return d
	}
	b := d.all()[i]
	b.Kind = kind
	return d.replaceBlock(i, b)
}

// SetIndent changes the indent level of block i. Negative levels become 0.
func (d Document) SetIndent(i, indent int) Document {
	if !d.Valid(i) {
		return d
	}
	b := d.all()[i]
	b.Indent = max(0, indent)
	return d.replaceBlock(i, b)
}

// clampRange orders and clamps [start, end) into block i.
func (d Document) clampRange(i, start, end int) (int, int) {
	if start > end {
		start, end = end, start
	}
	n := d.BlockLen(i)
	return max(0, min(start, n)), max(0, min(end, n))
}

// partition splits the children of block i into the runs before start, the
// runs in [start, end) and the runs after end.
func (d Document) partition(i, start, end int) (left, mid, right []Inline) {
	left, rest := splitChildren(d.all()[i].Children, start)
	mid, right = splitChildren(rest, end-start)
	return left, mid, right
}

// MapFormatting applies fn to the formatting of every Text run in [start, end)
// of block i, splitting runs at the range bounds. An empty range applies fn to
// the whole block.
func (d Document) MapFormatting(i, start, end int, fn func(Formatting) Formatting) Document {
	if !d.Valid(i) || fn == nil {
		return d
	}
	b := d.all()[i]
	start, end = d.clampRange(i, start, end)

	apply := func(nodes []Inline) []Inline {
		out := make([]Inline, len(nodes))
		for j, n := range nodes {
			if t, ok := n.(Text); ok {
				t.Formatting = fn(t.Formatting)
				n = t
			}
			out[j] = n
		}
		return out
	}

	var children []Inline
	if start == end {
		children = apply(b.Children)
	} else {
		left, mid, right := d.partition(i, start, end)
		children = append(append(left, apply(mid)...), right...)
	}
	return d.replaceBlock(i, Block{Kind: b.Kind, Indent: b.Indent, Children: children})
}

// Runs returns the Text runs covering [start, end) of block i. An empty range
// returns every Text run of the block.
func (d Document) Runs(i, start, end int) []Text {
	if !d.Valid(i) {
		return nil
	}
	start, end = d.clampRange(i, start, end)
	nodes := d.all()[i].Children
	if start != end {
		_, nodes, _ = d.partition(i, start, end)
	}
	var out []Text
	for _, n := range nodes {
		if t, ok := n.(Text); ok {
			out = append(out, t)
		}
	}
	return out
}

// TextRange returns the Text content of [start, end) in block i.
func (d Document) TextRange(i, start, end int) string {
	if !d.Valid(i) {
		return ""
	}
	start, end = d.clampRange(i, start, end)
	if start == end {
		return ""
	}
	_, mid, _ := d.partition(i, start, end)
	return Block{Children: mid}.Text()
}

// FormattingAt returns the formatting text typed at p would inherit.
func (d Document) FormattingAt(p Position) Formatting {
	if !d.Valid(p.Block) {
		return Formatting{}
	}
	p = d.Clamp(p)
	return formattingAt(d.all()[p.Block].Children, p.Offset)
}

// InsertText inserts text at p using the formatting of the surrounding run.
func (d Document) InsertText(p Position, text string) Document {
	return d.InsertFormatted(p, text, d.FormattingAt(p))
}

// InsertFormatted inserts text at p as a run with formatting f.
func (d Document) InsertFormatted(p Position, text string, f Formatting) Document {
	if text == "" {
		return d
	}
	return d.InsertInline(p, Text{Text: text, Formatting: f})
}

// InsertInline inserts node at p. Components at or after p in the same block
// move right by the node's length.
func (d Document) InsertInline(p Position, node Inline) Document {
	if node == nil || !d.Valid(p.Block) {
		return d
	}
	p = d.Clamp(p)
	b := d.all()[p.Block]
	left, right := splitChildren(b.Children, p.Offset)
	children := append(append(left, node.clone()), right...)
	nd := d.replaceBlock(p.Block, Block{Kind: b.Kind, Indent: b.Indent, Children: children})

	delta := node.Len()
	return nd.mapComponents(func(c Component) (Component, bool) {
		if c.BlockIndex == p.Block && c.Offset >= p.Offset {
			c.Offset += delta
		}
		return c, true
	})
}

// DeleteRange removes [start, end) from block i. Components whose
// interactive node is removed are dropped from the collection.
func (d Document) DeleteRange(i, start, end int) Document {
	if !d.Valid(i) {
		return d
	}
	start, end = d.clampRange(i, start, end)
	if start == end {
		return d
	}
	b := d.all()[i]
	left, mid, right := d.partition(i, start, end)

	removed := make(map[string]bool)
	for _, n := range mid {
		if node, ok := n.(Interactive); ok && node.ComponentID() != "" {
			removed[node.ComponentID()] = true
		}
	}

	nd := d.replaceBlock(i, Block{Kind: b.Kind, Indent: b.Indent, Children: append(left, right...)})
	width := end - start
	return nd.mapComponents(func(c Component) (Component, bool) {
		if removed[c.ID] {
			return c, false
		}
		if c.BlockIndex != i {
			return c, true
		}
		switch {
		case c.Offset >= end:
			c.Offset -= width
		case c.Offset > start:
			c.Offset = start
		}
		return c, true
	})
}

// SplitBlock splits the block at p into two blocks of the same kind and
// indent. Content from p onwards moves to the new block at p.Block+1.
func (d Document) SplitBlock(p Position) Document {
	if !d.Valid(p.Block) {
		return d
	}
	p = d.Clamp(p)
	blocks := d.all()
	b := blocks[p.Block]
	left, right := splitChildren(b.Children, p.Offset)

	out := make([]Block, 0, len(blocks)+1)
	out = append(out, blocks[:p.Block]...)
	out = append(out,
		Block{Kind: b.Kind, Indent: b.Indent, Children: left}.normalize(),
		Block{Kind: b.Kind, Indent: b.Indent, Children: right}.normalize(),
	)
	out = append(out, blocks[p.Block+1:]...)

	return d.withBlocks(out).mapComponents(func(c Component) (Component, bool) {
		switch {
		case c.BlockIndex > p.Block:
			c.BlockIndex++
		case c.BlockIndex == p.Block && c.Offset >= p.Offset:
			c.BlockIndex++
			c.Offset -= p.Offset
		}
		return c, true
	})
}

// MergeWithNext appends the content of block i+1 to block i and removes
// block i+1. Block i keeps its kind and indent.
func (d Document) MergeWithNext(i int) Document {
	if !d.Valid(i) || !d.Valid(i+1) {
		return d
	}
	blocks := d.all()
	a, b := blocks[i], blocks[i+1]
	shift := a.Len()

	children := make([]Inline, 0, len(a.Children)+len(b.Children))
	children = append(children, a.Children...)
	children = append(children, b.Children...)

	out := make([]Block, 0, len(blocks)-1)
	out = append(out, blocks[:i]...)
	out = append(out, Block{Kind: a.Kind, Indent: a.Indent, Children: children}.normalize())
	out = append(out, blocks[i+2:]...)

	return d.withBlocks(out).mapComponents(func(c Component) (Component, bool) {
		switch {
		case c.BlockIndex == i+1:
			c.BlockIndex = i
			c.Offset += shift
		case c.BlockIndex > i+1:
			c.BlockIndex--
		}
		return c, true
	})
}

// ReplaceBlocks replaces the single block at index at with blocks. This is
// replace-at-point, not insert-after. Components anchored in the replaced
// block are dropped.
func (d Document) ReplaceBlocks(at int, blocks []Block) Document {
	if !d.Valid(at) {
		return d
	}
	if len(blocks) == 0 {
		return d.RemoveBlocks(at, at)
	}
	all := d.all()
	out := make([]Block, 0, len(all)-1+len(blocks))
	out = append(out, all[:at]...)
	for _, b := range blocks {
		out = append(out, b.Clone().normalize())
	}
	out = append(out, all[at+1:]...)
	return d.withBlocks(out).shiftBlocks(at, at, len(blocks)-1)
}

// InsertBlocks inserts blocks before index at. An index equal to Len appends.
func (d Document) InsertBlocks(at int, blocks []Block) Document {
	if at < 0 || at > d.Len() || len(blocks) == 0 {
		return d
	}
	all := d.all()
	out := make([]Block, 0, len(all)+len(blocks))
	out = append(out, all[:at]...)
	for _, b := range blocks {
		out = append(out, b.Clone().normalize())
	}
	out = append(out, all[at:]...)
	return d.withBlocks(out).shiftBlocks(at, at-1, len(blocks))
}

// ValidRange reports whether [from, to] (in either order) addresses blocks.
func (d Document) ValidRange(from, to int) bool {
	return d.Valid(from) && d.Valid(to)
}

// RemoveBlocks removes blocks [from, to] inclusive; reverse ranges are
// normalized. Removing every block leaves an empty document. Components
// anchored in removed blocks are dropped and later ones are renumbered.
func (d Document) RemoveBlocks(from, to int) Document {
	from, to = min(from, to), max(from, to)
	if !d.ValidRange(from, to) {
		return d
	}
	all := d.all()
	out := make([]Block, 0, len(all)-(to-from+1))
	out = append(out, all[:from]...)
	out = append(out, all[to+1:]...)
	return d.withBlocks(out).shiftBlocks(from, to, -(to - from + 1))
}
