package palette

import (
	"slices"
	"sync"
)

// DefaultRecents is the number of command ids Recents keeps by default.
const DefaultRecents = 20

// Recents tracks recently selected command ids, most recent first.
type Recents struct {
	mu       sync.Mutex
	items    []string
	maxItems int
}

// NewRecents creates a list holding at most maxItems ids.
func NewRecents(maxItems int) *Recents {
	if maxItems <= 0 {
		maxItems = DefaultRecents
	}
	return &Recents{
		items:    make([]string, 0, maxItems),
		maxItems: maxItems,
	}
}

// Add moves id to the front.
func (r *Recents) Add(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := slices.Index(r.items, id); i >= 0 {
		r.items = slices.Delete(r.items, i, i+1)
	}
	r.items = slices.Insert(r.items, 0, id)
	if len(r.items) > r.maxItems {
		r.items = r.items[:r.maxItems]
	}
}

// List returns up to limit ids, most recent first. A limit of zero or less
// returns all of them.
func (r *Recents) List(limit int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > len(r.items) {
		limit = len(r.items)
	}
	return slices.Clone(r.items[:limit])
}

// Position returns the rank of id (0 = most recent) or -1.
func (r *Recents) Position(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Index(r.items, id)
}

// Remove drops id from the list.
func (r *Recents) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.Index(r.items, id)
	if i < 0 {
		return false
	}
	r.items = slices.Delete(r.items, i, i+1)
	return true
}

// Len returns the number of ids held.
func (r *Recents) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Clear empties the list.
func (r *Recents) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = r.items[:0]
}
