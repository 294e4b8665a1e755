// Package keymap maps key chords to action ids.
//
// # Key Concepts
//
// Keymap: A named collection of bindings, such as the defaults or the user's
// overrides from configuration.
//
// Binding: Maps one chord to an action id. Action ids name dispatcher
// commands ("format.bold") or editor actions ("history.undo").
//
// Registry: Holds all keymaps and resolves a key event to a binding.
//
// # Binding Precedence
//
// When more than one keymap binds a chord:
//  1. Keymap priority (higher wins)
//  2. Registration order (later wins)
//
// User overrides are registered at PriorityUser so they win over the
// defaults.
//
// # Usage
//
//	registry := keymap.NewRegistry()
//	_ = registry.Register(keymap.Default())
//
//	if b, ok := registry.Lookup(ev); ok {
//	    // Execute b.Action
//	}
package keymap
