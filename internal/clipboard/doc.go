// Package clipboard converts block ranges to and from the three clipboard
// interchange formats and moves payloads through a Board.
//
// Copy always produces every format. Paste tries them in priority order:
//
//  1. MIMENative: the document's own JSON form, lossless
//  2. MIMEHTML: markup, block kind and formatting inferred from tags and styles
//  3. MIMEPlain: one paragraph per line
//
// A malformed entry is logged and skipped, so a payload carrying any plain
// text always pastes. Pasted blocks replace the block at the paste index.
package clipboard
