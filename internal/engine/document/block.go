package document

import (
	"maps"
	"reflect"
	"strings"
)

// Kind identifies the paragraph-level style of a block.
type Kind string

// Block kinds.
const (
	KindParagraph Kind = "paragraph"
	KindQuote     Kind = "quote"
	KindCode      Kind = "code"
	KindCallout   Kind = "callout"
	KindListItem  Kind = "list-item"
)

// Kinds returns all block kinds in display order.
func Kinds() []Kind {
	return []Kind{KindParagraph, KindQuote, KindCode, KindCallout, KindListItem}
}

// ParseKind returns the Kind named by s.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	return k, k.Valid()
}

// Valid reports whether k is a known block kind.
func (k Kind) Valid() bool {
	switch k {
	case KindParagraph, KindQuote, KindCode, KindCallout, KindListItem:
		return true
	default:
		return false
	}
}

// MaxHeading is the deepest heading level.
const MaxHeading = 6

// Formatting describes the inline style of a Text run.
// Heading is 0 when the run is not a heading, otherwise 1-6.
type Formatting struct {
	Bold      bool `json:"bold,omitempty"`
	Italic    bool `json:"italic,omitempty"`
	Underline bool `json:"underline,omitempty"`
	Heading   int  `json:"heading,omitempty"`
}

// IsZero reports whether no formatting is applied.
func (f Formatting) IsZero() bool {
	return f == Formatting{}
}

func (f Formatting) normalize() Formatting {
	if f.Heading < 0 || f.Heading > MaxHeading {
		f.Heading = 0
	}
	return f
}

// Inline is a node in a block's children: either Text or Interactive.
type Inline interface {
	// Len returns the number of offset slots the node occupies.
	Len() int

	clone() Inline
	equal(other Inline) bool
}

// Text is a run of characters sharing one Formatting.
type Text struct {
	Text       string
	Formatting Formatting
}

// Len returns the number of grapheme clusters in the run.
func (t Text) Len() int { return graphemeCount(t.Text) }

func (t Text) clone() Inline { return t }

func (t Text) equal(other Inline) bool {
	o, ok := other.(Text)
	return ok && o == t
}

// Interactive embeds a component inside a block.
type Interactive struct {
	ComponentType string
	Props         map[string]any
}

// Len always returns 1; an interactive node occupies a single offset slot.
func (Interactive) Len() int { return 1 }

// ComponentID returns the id of the component this node renders, if any.
func (n Interactive) ComponentID() string {
	id, _ := n.Props["id"].(string)
	return id
}

func (n Interactive) clone() Inline {
	return Interactive{ComponentType: n.ComponentType, Props: maps.Clone(n.Props)}
}

func (n Interactive) equal(other Inline) bool {
	o, ok := other.(Interactive)
	if !ok || o.ComponentType != n.ComponentType {
		return false
	}
	if len(o.Props) == 0 && len(n.Props) == 0 {
		return true
	}
	return reflect.DeepEqual(o.Props, n.Props)
}

// Block is a paragraph-level unit of the document.
type Block struct {
	Kind     Kind
	Children []Inline
	Indent   int
}

// NewBlock creates a normalized block.
func NewBlock(kind Kind, children ...Inline) Block {
	return Block{Kind: kind, Children: children}.normalize()
}

// Paragraph creates a paragraph holding a single unformatted run.
func Paragraph(text string) Block {
	return NewBlock(KindParagraph, Text{Text: text})
}

func emptyParagraph() Block {
	return Block{Kind: KindParagraph, Children: []Inline{Text{}}}
}

// Text returns the concatenated content of the block's Text runs.
func (b Block) Text() string {
	var sb strings.Builder
	for _, c := range b.Children {
		if t, ok := c.(Text); ok {
			sb.WriteString(t.Text)
		}
	}
	return sb.String()
}

// Len returns the number of offset slots in the block.
func (b Block) Len() int {
	n := 0
	for _, c := range b.Children {
		n += c.Len()
	}
	return n
}

// Clone returns a deep copy of the block.
func (b Block) Clone() Block {
	children := make([]Inline, len(b.Children))
	for i, c := range b.Children {
		children[i] = c.clone()
	}
	return Block{Kind: b.Kind, Children: children, Indent: b.Indent}
}

// Equal reports whether two blocks have the same structural value.
func (b Block) Equal(other Block) bool {
	if b.Kind != other.Kind || b.Indent != other.Indent || len(b.Children) != len(other.Children) {
		return false
	}
	for i := range b.Children {
		if !b.Children[i].equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// normalize returns a copy of b satisfying the run invariants: known kind,
// non-negative indent, no empty Text runs, no two adjacent Text runs with
// identical formatting, and at least one child.
func (b Block) normalize() Block {
	out := Block{Kind: b.Kind, Indent: b.Indent}
	if !out.Kind.Valid() {
		out.Kind = KindParagraph
	}
	if out.Indent < 0 {
		out.Indent = 0
	}

	children := make([]Inline, 0, len(b.Children))
	var firstEmpty *Text
	for _, c := range b.Children {
		switch n := c.(type) {
		case Text:
			n.Formatting = n.Formatting.normalize()
			if n.Text == "" {
				if firstEmpty == nil {
					empty := n
					firstEmpty = &empty
				}
				continue
			}
			if last := len(children) - 1; last >= 0 {
				if prev, ok := children[last].(Text); ok && prev.Formatting == n.Formatting {
					prev.Text += n.Text
					children[last] = prev
					continue
				}
			}
			children = append(children, n)
		case Interactive:
			children = append(children, n.clone())
		case nil:
			continue
		}
	}

	if len(children) == 0 {
		if firstEmpty != nil {
			children = append(children, *firstEmpty)
		} else {
			children = append(children, Text{})
		}
	}
	out.Children = children
	return out
}

// splitChildren splits children before offset, breaking a Text run if the
// offset falls inside it. The returned slices never alias children.
func splitChildren(children []Inline, offset int) (left, right []Inline) {
	pos := 0
	for _, c := range children {
		l := c.Len()
		switch {
		case offset >= pos+l:
			left = append(left, c)
		case offset <= pos:
			right = append(right, c)
		default:
			t := c.(Text) //nolint:errcheck // only Text runs span more than one slot
			a, b := graphemeSplit(t.Text, offset-pos)
			left = append(left, Text{Text: a, Formatting: t.Formatting})
			right = append(right, Text{Text: b, Formatting: t.Formatting})
		}
		pos += l
	}
	return left, right
}

// formattingAt returns the formatting a character inserted at offset inherits:
// the run before the offset, otherwise the first run after it.
func formattingAt(children []Inline, offset int) Formatting {
	left, right := splitChildren(children, offset)
	for i := len(left) - 1; i >= 0; i-- {
		if t, ok := left[i].(Text); ok {
			return t.Formatting
		}
	}
	for _, c := range right {
		if t, ok := c.(Text); ok {
			return t.Formatting
		}
	}
	return Formatting{}
}
