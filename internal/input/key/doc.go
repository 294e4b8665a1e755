// Package key provides key events and chord parsing for the shortcut surface.
//
// The editor only consumes key events; the host toolkit produces them. An
// Event is a key (special key or rune) plus modifiers, normalized so that
// equal chords compare equal with ==:
//
//   - Ctrl/Alt/Meta letter chords are stored lowercase, with Shift explicit
//   - plain characters carry Shift in the rune itself
//   - the space bar is the rune ' '
//
// # Key Specifications
//
// Chords can be written in two formats:
//
//   - With modifiers: "Ctrl+B", "Cmd+Shift+Z", "Ctrl+]"
//   - Vim-style: "<C-b>", "<D-S-z>", "<CR>", "<Esc>"
//
// FromTcell converts events from a tcell-based host.
package key
