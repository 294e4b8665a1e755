package dispatcher

import (
	"sync"

	"github.com/dshills/blockpad/internal/input/fuzzy"
)

// Registry holds commands in registration order.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	byID    map[string]Command
	matcher *fuzzy.Matcher
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]Command),
		matcher: fuzzy.NewMatcher(fuzzy.DefaultOptions()),
	}
}

// Register adds a command. Re-registering an id replaces the command in
// place and keeps its position.
func (r *Registry) Register(cmd Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[cmd.ID]; !exists {
		r.order = append(r.order, cmd.ID)
	}
	r.byID[cmd.ID] = cmd
	r.reindexLocked()
	return nil
}

// RegisterAll registers cmds in order, stopping at the first invalid one.
func (r *Registry) RegisterAll(cmds ...Command) error {
	for _, cmd := range cmds {
		if err := r.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

// Unregister removes the command with the given id.
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.reindexLocked()
	return true
}

// UnregisterBySource removes every command registered by source and
// returns how many were removed.
func (r *Registry) UnregisterBySource(source string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.order[:0]
	removed := 0
	for _, id := range r.order {
		if r.byID[id].Source == source {
			delete(r.byID, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	if removed > 0 {
		r.reindexLocked()
	}
	return removed
}

// Get returns the command with the given id.
func (r *Registry) Get(id string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.byID[id]
	return cmd, ok
}

// All returns every command in registration order.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Command, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Find resolves query to a command: an exact id wins, otherwise the first
// command in registration order whose label fuzzy-matches.
func (r *Registry) Find(query string) (Command, bool) {
	if cmd, ok := r.Get(query); ok {
		return cmd, true
	}
	matches := r.matcher.Filter(query, 1)
	if len(matches) == 0 {
		return Command{}, false
	}
	return r.Get(matches[0].Item.Data.(string))
}

// Match returns every command whose label fuzzy-matches query, in
// registration order. An empty query matches everything.
func (r *Registry) Match(query string) []Command {
	results := r.matcher.Filter(query, 0)
	out := make([]Command, 0, len(results))
	for _, res := range results {
		if cmd, ok := r.Get(res.Item.Data.(string)); ok {
			out = append(out, cmd)
		}
	}
	return out
}

// reindexLocked rebuilds the label index. Caller holds r.mu.
func (r *Registry) reindexLocked() {
	items := make([]fuzzy.Item, 0, len(r.order))
	for _, id := range r.order {
		items = append(items, fuzzy.Item{Text: r.byID[id].DisplayLabel(), Data: id})
	}
	r.matcher.SetItems(items)
}
