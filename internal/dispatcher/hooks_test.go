package dispatcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/blockpad/internal/engine/document"
	"github.com/dshills/blockpad/internal/engine/history"
)

func TestPreHookCancels(t *testing.T) {
	hooks := NewHooks()
	hooks.Register(NewPreFunc("no-code", 10, func(cmd Command) bool {
		return cmd.ID != "code"
	}))
	d := newTestDispatcher(t, WithHooks(hooks))
	target := &Target{Doc: at(document.New(), 0, 0), History: history.NewHistory(0)}

	changed, err := d.Execute(target, "code")
	require.ErrorIs(t, err, ErrCancelled)
	assert.False(t, changed)
	assert.Equal(t, 0, target.History.UndoCount())

	changed, err = d.Execute(target, "quote")
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestPostHookSeesOutcome(t *testing.T) {
	d := newTestDispatcher(t)
	var seen []Outcome
	d.Hooks().Register(NewPostFunc("trace", 0, func(cmd Command, out Outcome) {
		seen = append(seen, out)
	}))
	target := &Target{Doc: at(document.New(), 0, 0), History: history.NewHistory(0)}

	_, err := d.Execute(target, "quote")
	require.NoError(t, err)
	_, err = d.Execute(target, "quote")
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, StatusChanged, seen[0].Status)
	assert.True(t, seen[0].Changed)
	assert.Equal(t, StatusNoChange, seen[1].Status)
}

func TestHookOrderingAndReplace(t *testing.T) {
	h := NewHooks()
	h.Register(NewPreFunc("low", 1, nil))
	h.Register(NewPreFunc("high", 100, nil))
	h.Register(NewPostFunc("late", 100, nil))
	h.Register(NewPostFunc("early", 1, nil))
	h.Register(NewPreFunc("low", 200, nil))

	pre, post := h.Names()
	assert.Equal(t, []string{"low", "high"}, pre)
	assert.Equal(t, []string{"early", "late"}, post)

	assert.True(t, h.Unregister("low"))
	assert.False(t, h.Unregister("low"))
	pre, _ = h.Names()
	assert.Equal(t, []string{"high"}, pre)
}
