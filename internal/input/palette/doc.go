// Package palette is the slash-command menu over the dispatcher's command
// registry.
//
// Typing "/" at the start of a block opens the palette; the text after the
// slash up to the cursor is the query. Selecting a command removes the
// "/query" text and runs the command, both as one history entry.
//
//	p := palette.New(d)
//	if trig, ok := palette.Detect(doc, cursor); ok {
//	    results := p.Search(trig.Query, 10)
//	    _, err := p.Select(editor, trig, results[0].Command.ID)
//	}
//
// With an empty query, recently selected commands are listed first.
//
// All palette operations are safe for concurrent use.
package palette
