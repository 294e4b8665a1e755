package component

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/blockpad/internal/engine/document"
)

func sel(block, start, end int) document.Selection {
	return document.Selection{
		Start: document.Position{Block: block, Offset: start},
		End:   document.Position{Block: block, Offset: end},
	}
}

func newTestRegistry() *Registry {
	return NewRegistry(WithIDSource(NewCounterSource("c")))
}

func TestCreateFromSelectedText(t *testing.T) {
	r := newTestRegistry()
	doc := document.FromBlocks(document.Paragraph("say hello world"), document.Paragraph("next"))

	nd, c, ok := r.Create(doc, sel(0, 4, 9), "mention")
	require.True(t, ok)

	assert.NotContains(t, nd.BlockText(0), "hello")
	assert.Equal(t, "say  world", nd.BlockText(0))

	cs := nd.Components()
	require.Len(t, cs, 1)
	assert.Equal(t, "hello", cs[0].Content)
	assert.Equal(t, 0, cs[0].BlockIndex)
	assert.Equal(t, 4, cs[0].Offset)
	assert.Equal(t, "mention", cs[0].Type)
	assert.Equal(t, "c-1", c.ID)

	p, found := nd.LocateInline(c.ID)
	require.True(t, found)
	assert.Equal(t, document.Position{Block: 0, Offset: 4}, p)
	assert.Equal(t, document.Collapsed(document.Position{Block: 0, Offset: 5}), nd.Selection())

	// The input snapshot is untouched.
	assert.Equal(t, "say hello world", doc.BlockText(0))
	assert.Empty(t, doc.Components())
}

func TestCreateWholeBlockHello(t *testing.T) {
	r := newTestRegistry()
	doc := document.FromBlocks(document.Paragraph("hello"))

	nd, _, ok := r.Create(doc, sel(0, 0, 5), "tag")
	require.True(t, ok)
	assert.Equal(t, "", nd.BlockText(0))
	assert.Equal(t, 1, nd.BlockLen(0))
	require.Len(t, nd.Components(), 1)
	assert.Equal(t, "hello", nd.Components()[0].Content)
}

func TestCreateReversedSelection(t *testing.T) {
	r := newTestRegistry()
	doc := document.FromBlocks(document.Paragraph("abcdef"))

	nd, c, ok := r.Create(doc, document.Selection{
		Start: document.Position{Block: 0, Offset: 4},
		End:   document.Position{Block: 0, Offset: 1},
	}, "tag")
	require.True(t, ok)
	assert.Equal(t, "bcd", c.Content)
	assert.Equal(t, "aef", nd.BlockText(0))
}

func TestCreateRejects(t *testing.T) {
	r := newTestRegistry()
	doc := document.FromBlocks(document.Paragraph("abc"), document.Paragraph("def"))

	tests := []struct {
		name string
		sel  document.Selection
	}{
		{"collapsed", sel(0, 1, 1)},
		{"multi block", document.Selection{Start: document.Position{Block: 0, Offset: 1}, End: document.Position{Block: 1, Offset: 1}}},
		{"invalid block", sel(5, 0, 1)},
		{"clamps to empty", sel(0, 7, 9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nd, _, ok := r.Create(doc, tt.sel, "tag")
			assert.False(t, ok)
			assert.True(t, nd.Equal(doc))
		})
	}
}

func TestUpdate(t *testing.T) {
	r := newTestRegistry()
	doc, c, ok := r.Create(document.FromBlocks(document.Paragraph("hello")), sel(0, 0, 5), "tag")
	require.True(t, ok)

	content := "hi"
	doc = r.Update(doc, c.ID, Patch{Content: &content, Properties: map[string]any{"color": "red", "size": 2}})
	got, ok := r.Get(doc, c.ID)
	require.True(t, ok)
	assert.Equal(t, "hi", got.Content)
	assert.Equal(t, "tag", got.Type)
	assert.Equal(t, map[string]any{"color": "red", "size": 2}, got.Properties)

	typ := "link"
	doc = r.Update(doc, c.ID, Patch{Type: &typ, Properties: map[string]any{"size": nil}})
	got, _ = r.Get(doc, c.ID)
	assert.Equal(t, "link", got.Type)
	assert.Equal(t, map[string]any{"color": "red"}, got.Properties)

	b, _ := doc.Block(0)
	node, isNode := b.Children[0].(document.Interactive)
	require.True(t, isNode)
	assert.Equal(t, "link", node.ComponentType)
}

func TestUpdateUnknownIsNoOp(t *testing.T) {
	r := newTestRegistry()
	doc := document.FromBlocks(document.Paragraph("x"))
	content := "y"
	assert.True(t, r.Update(doc, "missing", Patch{Content: &content}).Equal(doc))
	assert.True(t, r.Remove(doc, "missing").Equal(doc))
	assert.True(t, r.Move(doc, "missing", 1).Equal(doc))
}

func threeComponents(t *testing.T, r *Registry) (document.Document, []string) {
	t.Helper()
	doc := document.FromBlocks(document.Paragraph("aa bb cc"))
	var ids []string
	// Create from the right so earlier offsets stay put.
	for _, span := range [][2]int{{6, 8}, {3, 5}, {0, 2}} {
		var c document.Component
		var ok bool
		doc, c, ok = r.Create(doc, sel(0, span[0], span[1]), "tag")
		require.True(t, ok)
		ids = append(ids, c.ID)
	}
	return doc, ids
}

func order(doc document.Document) []string {
	var out []string
	for _, c := range doc.Components() {
		out = append(out, c.ID)
	}
	return out
}

func TestMoveClamped(t *testing.T) {
	r := newTestRegistry()
	doc, ids := threeComponents(t, r)
	require.Equal(t, ids, order(doc))

	tests := []struct {
		name      string
		id        string
		direction int
		want      []string
	}{
		{"forward one", ids[0], 1, []string{ids[1], ids[0], ids[2]}},
		{"backward one", ids[2], -1, []string{ids[0], ids[2], ids[1]}},
		{"past end clamps", ids[0], 10, []string{ids[1], ids[2], ids[0]}},
		{"before start clamps", ids[2], -10, []string{ids[2], ids[0], ids[1]}},
		{"first backward no-op", ids[0], -1, ids},
		{"zero no-op", ids[1], 0, ids},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moved := r.Move(doc, tt.id, tt.direction)
			assert.Equal(t, tt.want, order(moved))
			assert.Len(t, moved.Components(), 3)
			assert.Equal(t, ids, order(doc), "input mutated")
		})
	}
}

func TestRemove(t *testing.T) {
	r := newTestRegistry()
	doc, ids := threeComponents(t, r)
	before := doc.BlockLen(0)

	doc = r.Remove(doc, ids[1])
	assert.Equal(t, []string{ids[0], ids[2]}, order(doc))
	assert.Equal(t, before-1, doc.BlockLen(0))
	_, found := doc.LocateInline(ids[1])
	assert.False(t, found)

	// Components after the removed node shift left.
	c, _ := r.Get(doc, ids[0])
	p, _ := doc.LocateInline(ids[0])
	assert.Equal(t, p.Offset, c.Offset)
}

func TestInBlock(t *testing.T) {
	r := newTestRegistry()
	doc := document.FromBlocks(document.Paragraph("one"), document.Paragraph("two"))
	doc, a, _ := r.Create(doc, sel(1, 0, 1), "tag")
	doc, b, _ := r.Create(doc, sel(0, 0, 1), "tag")
	doc, c, _ := r.Create(doc, sel(1, 2, 3), "tag")

	assert.Equal(t, []string{b.ID}, idsOf(r.InBlock(doc, 0)))
	assert.Equal(t, []string{a.ID, c.ID}, idsOf(r.InBlock(doc, 1)))
	assert.Empty(t, r.InBlock(doc, 2))
}

func idsOf(cs []document.Component) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestIDSources(t *testing.T) {
	id := UUIDSource{}.NewID()
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, UUIDSource{}.NewID())

	c := NewCounterSource("")
	assert.Equal(t, "component-1", c.NewID())
	assert.Equal(t, "component-2", c.NewID())

	fn := IDSourceFunc(func() string { return "fixed" })
	assert.Equal(t, "fixed", fn.NewID())
}

func TestCounterSourceConcurrent(t *testing.T) {
	c := NewCounterSource("x")
	var mu sync.Mutex
	seen := make(map[string]bool)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := c.NewID()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 800)
}

func TestParseIDSource(t *testing.T) {
	for _, name := range []string{"", "uuid"} {
		src, err := ParseIDSource(name)
		require.NoError(t, err)
		assert.IsType(t, UUIDSource{}, src)
	}
	src, err := ParseIDSource("counter")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(src.NewID(), "component-"))

	_, err = ParseIDSource("random")
	assert.ErrorIs(t, err, ErrUnknownIDSource)
}
