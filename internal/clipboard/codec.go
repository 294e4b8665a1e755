package clipboard

import (
	"errors"
	"maps"

	"github.com/rs/zerolog"

	"github.com/dshills/blockpad/internal/engine/component"
	"github.com/dshills/blockpad/internal/engine/document"
)

// ErrNoFormat is returned by Paste when the payload holds no usable format.
var ErrNoFormat = errors.New("clipboard: payload has no usable format")

// Option configures a Codec.
type Option func(*Codec)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Codec) {
		c.log = l
	}
}

// WithIDSource sets the source of ids for components re-created on paste.
func WithIDSource(ids component.IDSource) Option {
	return func(c *Codec) {
		if ids != nil {
			c.ids = ids
		}
	}
}

// Codec serializes block ranges and pastes payloads.
type Codec struct {
	log zerolog.Logger
	ids component.IDSource
}

// NewCodec creates a codec.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{log: zerolog.Nop(), ids: component.UUIDSource{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encode renders blocks in every format.
func (c *Codec) Encode(blocks []document.Block) Payload {
	native, err := document.MarshalBlocks(blocks)
	if err != nil {
		// Blocks built by this module always marshal; keep the other formats.
		c.log.Warn().Err(err).Msg("encode native clipboard format")
		native = []byte("[]")
	}
	return NewPayload(string(native), EncodeHTML(blocks), EncodePlain(blocks))
}

// Copy serializes blocks [from, to] (inclusive, either order). An invalid
// range yields false.
func (c *Codec) Copy(doc document.Document, from, to int) (Payload, bool) {
	from, to = min(from, to), max(from, to)
	if !doc.ValidRange(from, to) {
		c.log.Debug().Int("from", from).Int("to", to).Msg("copy: invalid block range")
		return nil, false
	}
	return c.Encode(doc.Slice(from, to)), true
}

// CopySelection copies the blocks spanned by the document's selection.
func (c *Codec) CopySelection(doc document.Document) (Payload, bool) {
	from, to := doc.Selection().BlockRange()
	return c.Copy(doc, from, to)
}

// Cut copies blocks [from, to] and removes them. An invalid range degrades
// to Copy without removal.
func (c *Codec) Cut(doc document.Document, from, to int) (document.Document, Payload, bool) {
	p, ok := c.Copy(doc, from, to)
	if !ok {
		return doc, p, false
	}
	nd := doc.RemoveBlocks(from, to)
	at := min(min(from, to), nd.Len()-1)
	return nd.WithSelection(document.Collapsed(document.Position{Block: at})), p, true
}

// Decode returns the blocks of the highest-priority format that parses,
// along with that format. Entries that fail to parse are logged and skipped.
func (c *Codec) Decode(p Payload) ([]document.Block, string, error) {
	if raw, ok := p.Get(MIMENative); ok {
		blocks, err := document.UnmarshalBlocks([]byte(raw))
		switch {
		case err != nil:
			c.log.Debug().Err(err).Str("format", MIMENative).Msg("paste: falling through")
		case len(blocks) == 0:
			c.log.Debug().Str("format", MIMENative).Msg("paste: no blocks, falling through")
		default:
			return blocks, MIMENative, nil
		}
	}

	if markup, ok := p.Get(MIMEHTML); ok {
		blocks, err := DecodeHTML(markup)
		if err == nil {
			return blocks, MIMEHTML, nil
		}
		c.log.Debug().Err(err).Str("format", MIMEHTML).Msg("paste: falling through")
	}

	if text, ok := p.Get(MIMEPlain); ok {
		return DecodePlain(text), MIMEPlain, nil
	}
	return nil, "", ErrNoFormat
}

// Paste replaces block at with the decoded payload and returns the format
// used. The cursor ends at the end of the last pasted block. An invalid index
// or unusable payload returns doc unchanged.
//
// Every pasted interactive node that carries an id gets a component. A node
// whose id is still used outside the replaced block gets a fresh id; known
// components keep their type, content and properties.
func (c *Codec) Paste(doc document.Document, at int, p Payload) (document.Document, string, error) {
	if !doc.Valid(at) {
		c.log.Debug().Int("block", at).Msg("paste: invalid block")
		return doc, "", nil
	}
	blocks, format, err := c.Decode(p)
	if err != nil {
		return doc, "", err
	}

	blocks, adopted := c.adopt(doc, at, blocks)
	nd := doc.ReplaceBlocks(at, blocks)
	if len(adopted) > 0 {
		nd = nd.WithComponents(append(nd.Components(), adopted...))
	}
	last := at + len(blocks) - 1
	nd = nd.WithSelection(document.Collapsed(document.Position{Block: last, Offset: nd.BlockLen(last)}))

	c.log.Debug().Str("format", format).Int("block", at).Int("blocks", len(blocks)).
		Int("components", len(adopted)).Msg("pasted")
	return nd, format, nil
}

// adopt returns blocks, about to replace block at of doc, with the ids of
// their interactive nodes made unique, and the components those nodes render.
func (c *Codec) adopt(doc document.Document, at int, blocks []document.Block) ([]document.Block, []document.Component) {
	taken := make(map[string]bool)
	for i, b := range doc.Blocks() {
		if i == at {
			continue
		}
		for _, n := range b.Children {
			if node, ok := n.(document.Interactive); ok && node.ComponentID() != "" {
				taken[node.ComponentID()] = true
			}
		}
	}
	for _, comp := range doc.Components() {
		if comp.BlockIndex != at {
			taken[comp.ID] = true
		}
	}

	var adopted []document.Component
	out := make([]document.Block, len(blocks))
	for k, b := range blocks {
		children := make([]document.Inline, len(b.Children))
		offset := 0
		for j, n := range b.Children {
			children[j] = n
			node, ok := n.(document.Interactive)
			if !ok || node.ComponentID() == "" {
				offset += n.Len()
				continue
			}

			id := node.ComponentID()
			comp, _, known := doc.Component(id)
			if !known {
				comp = document.Component{Type: node.ComponentType, Properties: map[string]any{}}
			}
			if taken[id] {
				fresh := c.ids.NewID()
				c.log.Debug().Str("id", id).Str("fresh", fresh).Msg("paste: duplicate component id")
				id = fresh
				node.Props = maps.Clone(node.Props)
				node.Props[component.PropID] = id
				children[j] = node
			}
			taken[id] = true

			comp.ID = id
			comp.BlockIndex = at + k
			comp.Offset = offset
			adopted = append(adopted, comp)
			offset += n.Len()
		}
		b.Children = children
		out[k] = b
	}
	return out, adopted
}
