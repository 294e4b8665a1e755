package keymap

import (
	"fmt"
	"sort"

	"github.com/dshills/blockpad/internal/input/key"
)

// Keymap priorities.
const (
	PriorityDefault = 0
	PriorityPlugin  = 50
	PriorityUser    = 100
)

// Keymap holds a named set of bindings.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	// Bindings are the chord-to-action mappings.
	Bindings []Binding

	// Priority determines precedence when multiple keymaps match.
	// Higher priority wins. Default is 0.
	Priority int

	// Source indicates where this keymap was defined.
	// Examples: "default", "user", "plugin:shortcuts.lua"
	Source string
}

// NewKeymap creates a new keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:     name,
		Bindings: make([]Binding, 0),
	}
}

// WithPriority sets the priority for this keymap.
func (k *Keymap) WithPriority(priority int) *Keymap {
	k.Priority = priority
	return k
}

// WithSource sets the source for this keymap.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add adds a binding to this keymap.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, NewBinding(keys, action))
	return k
}

// AddBinding adds a fully configured binding to this keymap.
func (k *Keymap) AddBinding(binding Binding) *Keymap {
	k.Bindings = append(k.Bindings, binding)
	return k
}

// Validate checks that all bindings in the keymap are valid.
func (k *Keymap) Validate() error {
	_, err := k.Parse()
	return err
}

// ParsedKeymap is a keymap with parsed chords.
type ParsedKeymap struct {
	*Keymap
	ParsedBindings []ParsedBinding
}

// Parse parses all bindings in the keymap.
func (k *Keymap) Parse() (*ParsedKeymap, error) {
	parsed := &ParsedKeymap{
		Keymap:         k,
		ParsedBindings: make([]ParsedBinding, 0, len(k.Bindings)),
	}

	for i, b := range k.Bindings {
		if b.Action == "" {
			return nil, fmt.Errorf("binding %d (%s): empty action", i, b.Keys)
		}
		ev, err := key.Parse(b.Keys)
		if err != nil {
			return nil, fmt.Errorf("binding %d: parsing %q: %w", i, b.Keys, err)
		}
		parsed.ParsedBindings = append(parsed.ParsedBindings, ParsedBinding{
			Binding: b,
			Event:   ev,
		})
	}

	return parsed, nil
}

// Clone creates a copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	clone := *k
	clone.Bindings = append([]Binding(nil), k.Bindings...)
	return &clone
}

// FromMap builds a keymap from a chord-to-action table, as found in
// configuration files. Bindings are sorted by chord for stable output.
func FromMap(name string, table map[string]string) *Keymap {
	km := NewKeymap(name)
	chords := make([]string, 0, len(table))
	for chord := range table {
		chords = append(chords, chord)
	}
	sort.Strings(chords)
	for _, chord := range chords {
		km.Add(chord, table[chord])
	}
	return km
}
