// Package config provides blockpad's configuration.
//
// Settings are layered with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Overrides (CLI flags)   │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← BLOCKPAD_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← config.toml or config.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Each source is read into a map by the loader sub-package and merged with
// loader.DeepMerge before being decoded into a Config. The watcher
// sub-package reloads the file when it changes.
//
// # Configuration Files
//
//	# ~/.config/blockpad/config.toml
//	[history]
//	max_entries = 100
//
//	[logging]
//	level = "debug"
//	file = "/tmp/blockpad.log"
//
//	[components]
//	id_source = "counter"
//
//	[keymap]
//	"Ctrl+H" = "heading1"
//	"Ctrl+Y" = "none"
//
//	[plugins]
//	scripts = ["$HOME/.config/blockpad/commands.lua"]
//	timeout = "2s"
//
// # Error Handling
//
// File syntax errors are returned as *loader.ParseError. Semantic failures
// wrap ErrInvalidConfig.
package config
