package component

import (
	"errors"
	"maps"

	"github.com/rs/zerolog"

	"github.com/dshills/blockpad/internal/engine/document"
)

// ErrUnknownIDSource is returned by ParseIDSource for unknown names.
var ErrUnknownIDSource = errors.New("unknown id source")

// PropID is the Interactive prop holding the component id.
const PropID = "id"

// Patch is a partial update. Nil fields are left unchanged. Properties are
// merged key by key; a nil value deletes the key.
type Patch struct {
	Type       *string
	Content    *string
	Properties map[string]any
}

// Option configures a Registry.
type Option func(*Registry)

// WithIDSource sets the id source.
func WithIDSource(ids IDSource) Option {
	return func(r *Registry) {
		if ids != nil {
			r.ids = ids
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Registry) {
		r.log = l
	}
}

// Registry creates and edits inline components.
type Registry struct {
	ids IDSource
	log zerolog.Logger
}

// NewRegistry creates a registry. Without options it uses UUID ids and a
// disabled logger.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		ids: UUIDSource{},
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create converts the text covered by sel into a component of type typ.
// The selection must be non-empty and lie within a single block. The covered
// span is removed and an Interactive node is inserted at its start; the new
// component's content is the removed text. The returned document has the
// cursor after the new node. On failure the input is returned with false.
func (r *Registry) Create(doc document.Document, sel document.Selection, typ string) (document.Document, document.Component, bool) {
	sel = sel.Normalized()
	if sel.IsCollapsed() || !sel.SingleBlock() || !doc.Valid(sel.Start.Block) {
		r.log.Debug().Str("selection", sel.Start.String()+"-"+sel.End.String()).Msg("create: selection not convertible")
		return doc, document.Component{}, false
	}

	block := sel.Start.Block
	start := max(0, min(sel.Start.Offset, doc.BlockLen(block)))
	end := max(0, min(sel.End.Offset, doc.BlockLen(block)))
	if start == end {
		return doc, document.Component{}, false
	}

	c := document.Component{
		ID:         r.ids.NewID(),
		Type:       typ,
		Content:    doc.TextRange(block, start, end),
		Properties: map[string]any{},
		BlockIndex: block,
		Offset:     start,
	}
	node := document.Interactive{ComponentType: typ, Props: map[string]any{PropID: c.ID}}

	nd := doc.DeleteRange(block, start, end).InsertInline(document.Position{Block: block, Offset: start}, node)
	nd = nd.WithComponents(append(nd.Components(), c))
	nd = nd.WithSelection(document.Collapsed(document.Position{Block: block, Offset: start + 1}))

	r.log.Debug().Str("id", c.ID).Str("type", typ).Int("block", block).Int("offset", start).Msg("component created")
	return nd, c, true
}

// Get returns the component with the given id.
func (r *Registry) Get(doc document.Document, id string) (document.Component, bool) {
	c, _, ok := doc.Component(id)
	return c, ok
}

// Update merges patch into the component with the given id. Unknown ids are
// a no-op.
func (r *Registry) Update(doc document.Document, id string, patch Patch) document.Document {
	cs := doc.Components()
	_, idx, ok := doc.Component(id)
	if !ok {
		r.log.Debug().Str("id", id).Msg("update: unknown component")
		return doc
	}

	c := cs[idx]
	if patch.Type != nil {
		c.Type = *patch.Type
	}
	if patch.Content != nil {
		c.Content = *patch.Content
	}
	if len(patch.Properties) > 0 {
		props := maps.Clone(c.Properties)
		if props == nil {
			props = make(map[string]any, len(patch.Properties))
		}
		for k, v := range patch.Properties {
			if v == nil {
				delete(props, k)
				continue
			}
			props[k] = v
		}
		c.Properties = props
	}
	cs[idx] = c

	nd := doc.WithComponents(cs)
	if patch.Type != nil {
		nd = nd.SetInlineType(id, c.Type)
	}
	return nd
}

// Move reorders the component with the given id within the collection by
// direction places. The target index is clamped to [0, len-1]. Unknown ids
// are a no-op.
func (r *Registry) Move(doc document.Document, id string, direction int) document.Document {
	cs := doc.Components()
	_, idx, ok := doc.Component(id)
	if !ok {
		r.log.Debug().Str("id", id).Msg("move: unknown component")
		return doc
	}

	target := max(0, min(idx+direction, len(cs)-1))
	if target == idx {
		return doc
	}

	c := cs[idx]
	cs = append(cs[:idx], cs[idx+1:]...)
	cs = append(cs[:target], append([]document.Component{c}, cs[target:]...)...)
	return doc.WithComponents(cs)
}

// Remove deletes the component with the given id and its Interactive node.
// Unknown ids are a no-op.
func (r *Registry) Remove(doc document.Document, id string) document.Document {
	if _, _, ok := doc.Component(id); !ok {
		r.log.Debug().Str("id", id).Msg("remove: unknown component")
		return doc
	}

	if p, ok := doc.LocateInline(id); ok {
		doc = doc.DeleteRange(p.Block, p.Offset, p.Offset+1)
	}

	// The node may already be gone; drop any remaining entry.
	cs := doc.Components()
	out := cs[:0]
	for _, c := range cs {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return doc.WithComponents(out)
}

// InBlock returns the components anchored in block i, in collection order.
func (r *Registry) InBlock(doc document.Document, i int) []document.Component {
	var out []document.Component
	for _, c := range doc.Components() {
		if c.BlockIndex == i {
			out = append(out, c)
		}
	}
	return out
}
