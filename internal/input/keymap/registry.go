package keymap

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/blockpad/internal/input/key"
)

// ActionNone unbinds a chord. A higher-priority keymap can bind a chord to
// ActionNone to hide a default binding.
const ActionNone = "none"

// ErrNilKeymap is returned when registering a nil keymap.
var ErrNilKeymap = errors.New("cannot register nil keymap")

// Registry manages all keymaps and provides binding lookup.
type Registry struct {
	mu sync.RWMutex

	// keymaps holds all registered keymaps by name.
	keymaps map[string]*ParsedKeymap

	// seq orders keymaps by registration.
	seq  map[string]int
	next int
}

// NewRegistry creates a new keymap registry.
func NewRegistry() *Registry {
	return &Registry{
		keymaps: make(map[string]*ParsedKeymap),
		seq:     make(map[string]int),
	}
}

// Register adds a keymap to the registry.
// If a keymap with the same name already exists, it is replaced.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return ErrNilKeymap
	}

	parsed, err := km.Parse()
	if err != nil {
		return fmt.Errorf("parsing keymap %q: %w", km.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.keymaps[km.Name] = parsed
	r.next++
	r.seq[km.Name] = r.next
	return nil
}

// Unregister removes a keymap from the registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.keymaps, name)
	delete(r.seq, name)
}

// Get returns a keymap by name.
func (r *Registry) Get(name string) *ParsedKeymap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.keymaps[name]
}

// ordered returns keymaps from highest to lowest precedence.
// Caller must hold the read lock.
func (r *Registry) ordered() []*ParsedKeymap {
	out := make([]*ParsedKeymap, 0, len(r.keymaps))
	for _, km := range r.keymaps {
		out = append(out, km)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return r.seq[out[i].Name] > r.seq[out[j].Name]
	})
	return out
}

// Lookup finds the winning binding for a key event. A chord bound to
// ActionNone by the winning keymap reports false.
func (r *Registry) Lookup(ev key.Event) (BindingMatch, bool) {
	ev = ev.Normalize()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, km := range r.ordered() {
		// Later bindings in one keymap win.
		for i := len(km.ParsedBindings) - 1; i >= 0; i-- {
			pb := km.ParsedBindings[i]
			if pb.Event != ev {
				continue
			}
			if pb.Action == ActionNone {
				return BindingMatch{}, false
			}
			return BindingMatch{ParsedBinding: pb, Keymap: km.Keymap}, true
		}
	}
	return BindingMatch{}, false
}

// KeysFor returns the chords that currently resolve to action, in display
// form. Chords shadowed by a higher-precedence keymap are omitted.
func (r *Registry) KeysFor(action string) []string {
	var out []string
	for _, m := range r.AllBindings() {
		if m.Action == action {
			out = append(out, m.Event.String())
		}
	}
	return out
}

// AllBindings returns the effective binding of every bound chord, sorted by
// action then chord.
func (r *Registry) AllBindings() []BindingMatch {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[key.Event]bool)
	var out []BindingMatch
	for _, km := range r.ordered() {
		for i := len(km.ParsedBindings) - 1; i >= 0; i-- {
			pb := km.ParsedBindings[i]
			if seen[pb.Event] {
				continue
			}
			seen[pb.Event] = true
			if pb.Action == ActionNone {
				continue
			}
			out = append(out, BindingMatch{ParsedBinding: pb, Keymap: km.Keymap})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Action != out[j].Action {
			return out[i].Action < out[j].Action
		}
		return out[i].Event.String() < out[j].Event.String()
	})
	return out
}

// Keymaps returns all registered keymaps from highest to lowest precedence.
func (r *Registry) Keymaps() []*ParsedKeymap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ordered()
}
