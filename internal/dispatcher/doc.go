// Package dispatcher holds the command registry and executes commands
// against the current document.
//
// A Command is a pure transform from one document snapshot to the next.
// Commands are registered in order; lookups by query try the exact id first
// and then the first command whose label fuzzy-matches the query.
//
// Execution goes through an Applier, which owns the current document and the
// history. The dispatcher hands it the command's transform and a description;
// the Applier records the pre-state and publishes the result in one step.
// Executions that leave the document unchanged are not recorded.
//
//	reg := dispatcher.NewRegistry()
//	dispatcher.RegisterBuiltins(reg)
//	d := dispatcher.New(reg, dispatcher.WithLogger(log))
//	changed, err := d.Execute(editor, "heading1")
//
// Panics raised by a command are recovered, logged with their stack, and
// reported as ErrPanic; the document is left as it was.
//
// Hooks run around every execution. A pre-hook returning false cancels the
// command with ErrCancelled; post-hooks see the Outcome.
package dispatcher
