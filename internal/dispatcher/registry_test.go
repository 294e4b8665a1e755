package dispatcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/blockpad/internal/engine/document"
)

func identity(d document.Document) document.Document { return d }

func ids(cmds []Command) []string {
	out := make([]string, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, c.ID)
	}
	return out
}

func TestBuiltinsOrder(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, RegisterBuiltins(reg))

	got := ids(reg.All())
	assert.Equal(t, []string{"heading1", "heading2", "heading3"}, got[:3])
	assert.Contains(t, got, "quote")
	assert.Contains(t, got, "block.merge")

	h1, ok := reg.Get("heading1")
	require.True(t, ok)
	assert.Equal(t, "Heading 1", h1.Label)
	assert.Equal(t, "# ", h1.Shortcut)
	assert.Equal(t, SourceBuiltin, h1.Source)

	q, _ := reg.Get("quote")
	assert.Equal(t, "Quote Block", q.Label)
	assert.Equal(t, "> ", q.Shortcut)
	c, _ := reg.Get("code")
	assert.Equal(t, "```", c.Shortcut)
}

func TestRegisterReplacesInPlace(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterAll(
		Command{ID: "a", Label: "Alpha", Execute: identity},
		Command{ID: "b", Label: "Beta", Execute: identity},
	))
	require.NoError(t, reg.Register(Command{ID: "a", Label: "Apex", Execute: identity}))

	assert.Equal(t, []string{"a", "b"}, ids(reg.All()))
	cmd, _ := reg.Get("a")
	assert.Equal(t, "Apex", cmd.Label)

	// Label index follows the replacement.
	_, ok := reg.Find("alpha")
	assert.False(t, ok)
	found, ok := reg.Find("apex")
	require.True(t, ok)
	assert.Equal(t, "a", found.ID)
}

func TestRegisterInvalid(t *testing.T) {
	reg := NewRegistry()
	assert.ErrorIs(t, reg.Register(Command{Execute: identity}), ErrInvalidCommand)
	assert.ErrorIs(t, reg.Register(Command{ID: "x"}), ErrInvalidCommand)

	err := reg.RegisterAll(Command{ID: "ok", Execute: identity}, Command{ID: "bad"}, Command{ID: "never", Execute: identity})
	assert.ErrorIs(t, err, ErrInvalidCommand)
	assert.Equal(t, []string{"ok"}, ids(reg.All()))
}

func TestUnregister(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterAll(
		Command{ID: "a", Source: "lua:a.lua", Execute: identity},
		Command{ID: "b", Execute: identity},
		Command{ID: "c", Source: "lua:a.lua", Execute: identity},
	))

	assert.True(t, reg.Unregister("b"))
	assert.False(t, reg.Unregister("b"))
	assert.Equal(t, []string{"a", "c"}, ids(reg.All()))

	assert.Equal(t, 2, reg.UnregisterBySource("lua:a.lua"))
	assert.Equal(t, 0, reg.Len())
	assert.Empty(t, reg.Match(""))
}

func TestFindAndMatch(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, RegisterBuiltins(reg))

	tests := []struct {
		query string
		want  string
		ok    bool
	}{
		{"heading1", "heading1", true},
		{"Heading 4", "heading4", true},
		{"h4", "heading4", true},
		{"block", "quote", true},
		{"code", "code", true},
		{"", "heading1", true},
		{"xyzzy", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			cmd, ok := reg.Find(tt.query)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, cmd.ID)
		})
	}

	assert.Equal(t, []string{"quote", "code", "block.split", "block.merge"}, ids(reg.Match("block")))
}
