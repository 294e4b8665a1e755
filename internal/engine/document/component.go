package document

import (
	"maps"
	"reflect"
)

// Component is a non-text artifact (mention, tag, widget) anchored at a
// block and offset. The Document owns components; BlockIndex is only a
// back-reference to the owning block.
type Component struct {
	ID         string
	Type       string
	Content    string
	Properties map[string]any
	BlockIndex int
	Offset     int
}

// Clone returns a copy of c with its own Properties map.
func (c Component) Clone() Component {
	c.Properties = maps.Clone(c.Properties)
	return c
}

// Equal reports whether two components have the same value.
func (c Component) Equal(other Component) bool {
	if c.ID != other.ID || c.Type != other.Type || c.Content != other.Content ||
		c.BlockIndex != other.BlockIndex || c.Offset != other.Offset {
		return false
	}
	if len(c.Properties) == 0 && len(other.Properties) == 0 {
		return true
	}
	return reflect.DeepEqual(c.Properties, other.Properties)
}

// Components returns copies of the document's components in collection order.
func (d Document) Components() []Component {
	out := make([]Component, len(d.components))
	for i, c := range d.components {
		out[i] = c.Clone()
	}
	return out
}

// Component returns the component with the given id.
func (d Document) Component(id string) (Component, int, bool) {
	for i, c := range d.components {
		if c.ID == id {
			return c.Clone(), i, true
		}
	}
	return Component{}, -1, false
}

// WithComponents returns a document whose component collection is cs.
func (d Document) WithComponents(cs []Component) Document {
	out := make([]Component, len(cs))
	for i, c := range cs {
		out[i] = c.Clone()
	}
	d.blocks = d.all()
	d.components = out
	return d
}

// mapComponents returns a document whose components were passed through fn.
// Components for which fn reports false are dropped.
func (d Document) mapComponents(fn func(c Component) (Component, bool)) Document {
	if len(d.components) == 0 {
		return d
	}
	out := make([]Component, 0, len(d.components))
	for _, c := range d.components {
		if nc, keep := fn(c); keep {
			out = append(out, nc)
		}
	}
	d.components = out
	return d
}

// shiftBlocks renumbers components after a structural change: components in
// removed blocks [from, to] are dropped and those after to move by delta.
func (d Document) shiftBlocks(from, to, delta int) Document {
	return d.mapComponents(func(c Component) (Component, bool) {
		switch {
		case c.BlockIndex >= from && c.BlockIndex <= to:
			return c, false
		case c.BlockIndex > to:
			c.BlockIndex += delta
		}
		return c, true
	})
}

// LocateInline returns the position of the interactive node whose props carry
// the given component id.
func (d Document) LocateInline(id string) (Position, bool) {
	if id == "" {
		return Position{}, false
	}
	for i, b := range d.all() {
		offset := 0
		for _, n := range b.Children {
			if node, ok := n.(Interactive); ok && node.ComponentID() == id {
				return Position{Block: i, Offset: offset}, true
			}
			offset += n.Len()
		}
	}
	return Position{}, false
}

// SetInlineType changes the component type of the interactive node carrying
// the given component id.
func (d Document) SetInlineType(id, componentType string) Document {
	p, ok := d.LocateInline(id)
	if !ok {
		return d
	}
	b := d.all()[p.Block]
	children := make([]Inline, len(b.Children))
	for j, n := range b.Children {
		if node, ok := n.(Interactive); ok && node.ComponentID() == id {
			node = node.clone().(Interactive)
			node.ComponentType = componentType
			n = node
		}
		children[j] = n
	}
	return d.replaceBlock(p.Block, Block{Kind: b.Kind, Indent: b.Indent, Children: children})
}
