// Package lua runs user commands written in Lua.
//
// A script registers commands through the blockpad module:
//
//	blockpad.command{
//	    id = "shout",
//	    label = "Shout",
//	    category = "Text",
//	    run = function(doc)
//	        local b = doc:current()
//	        doc:set_text(b, string.upper(doc:text(b)))
//	    end,
//	}
//
// LoadFile returns the script's commands as dispatcher commands. Running one
// hands the function a doc handle over the current snapshot; the edits it
// makes become the command's result. Block indices and offsets are 0-based,
// as in the document model.
//
// The state is sandboxed: only the base, string, table and math libraries
// are available, and file loading and require are removed. print writes to
// the state's logger. Every call runs under the execution timeout.
//
// A State serializes all access with a mutex; gopher-lua states are not
// goroutine-safe.
package lua
