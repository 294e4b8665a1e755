package document

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Native form errors.
var (
	ErrMalformed     = errors.New("malformed native document")
	ErrUnknownKind   = errors.New("unknown block kind")
	ErrUnknownInline = errors.New("unknown inline node type")
)

// Inline node type discriminators in the native form.
const (
	inlineText        = "text"
	inlineInteractive = "interactive"
)

type textWire struct {
	Type       string     `json:"type"`
	Text       string     `json:"text"`
	Formatting Formatting `json:"formatting"`
}

type interactiveWire struct {
	Type          string         `json:"type"`
	ComponentType string         `json:"componentType"`
	Props         map[string]any `json:"props"`
}

type blockWire struct {
	Type     Kind     `json:"type"`
	Children []Inline `json:"children"`
	Indent   int      `json:"indent"`
}

// MarshalJSON encodes the run as {"type":"text","text":...,"formatting":{...}}.
func (t Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(textWire{Type: inlineText, Text: t.Text, Formatting: t.Formatting})
}

// MarshalJSON encodes the node as {"type":"interactive","componentType":...,"props":{...}}.
func (n Interactive) MarshalJSON() ([]byte, error) {
	props := n.Props
	if props == nil {
		props = map[string]any{}
	}
	return json.Marshal(interactiveWire{Type: inlineInteractive, ComponentType: n.ComponentType, Props: props})
}

// MarshalJSON encodes the block in the native form.
func (b Block) MarshalJSON() ([]byte, error) {
	b = b.normalize()
	return json.Marshal(blockWire{Type: b.Kind, Children: b.Children, Indent: b.Indent})
}

// UnmarshalJSON decodes a block from the native form. Unknown kinds and
// inline types are rejected.
func (b *Block) UnmarshalJSON(data []byte) error {
	var w struct {
		Type     string            `json:"type"`
		Children []json.RawMessage `json:"children"`
		Indent   int               `json:"indent"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	kind, ok := ParseKind(w.Type)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, w.Type)
	}

	children := make([]Inline, 0, len(w.Children))
	for _, raw := range w.Children {
		node, err := DecodeInline(raw)
		if err != nil {
			return err
		}
		children = append(children, node)
	}

	*b = Block{Kind: kind, Children: children, Indent: w.Indent}.normalize()
	return nil
}

// DecodeInline decodes a single inline node, dispatching on its "type" field.
func DecodeInline(raw []byte) (Inline, error) {
	switch typ := gjson.GetBytes(raw, "type").String(); typ {
	case inlineText:
		var w textWire
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		return Text{Text: w.Text, Formatting: w.Formatting.normalize()}, nil
	case inlineInteractive:
		var w interactiveWire
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		return Interactive{ComponentType: w.ComponentType, Props: w.Props}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownInline, typ)
	}
}

// MarshalBlocks encodes blocks as a native JSON array.
func MarshalBlocks(blocks []Block) ([]byte, error) {
	if blocks == nil {
		blocks = []Block{}
	}
	return json.Marshal(blocks)
}

// UnmarshalBlocks decodes a native JSON array of blocks.
func UnmarshalBlocks(data []byte) ([]Block, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	if !gjson.ParseBytes(data).IsArray() {
		return nil, fmt.Errorf("%w: expected an array of blocks", ErrMalformed)
	}
	var blocks []Block
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}
