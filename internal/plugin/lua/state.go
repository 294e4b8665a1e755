package lua

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/blockpad/internal/dispatcher"
	"github.com/dshills/blockpad/internal/engine/document"
)

// DefaultExecutionTimeout bounds every script load and command run.
const DefaultExecutionTimeout = 2 * time.Second

// State is a sandboxed Lua runtime holding user commands.
type State struct {
	L  *lua.LState
	mu sync.Mutex

	timeout time.Duration
	log     zerolog.Logger

	// defined collects blockpad.command calls during a load.
	defined []commandSpec
	closed  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout sets the timeout for loads and command runs. Zero
// disables it.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.timeout = d
	}
}

// WithLogger sets the logger that receives print output and command errors.
func WithLogger(l zerolog.Logger) StateOption {
	return func(s *State) {
		s.log = l
	}
}

// NewState creates a sandboxed state with the blockpad module installed.
func NewState(opts ...StateOption) *State {
	s := &State{
		timeout: DefaultExecutionTimeout,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	installSandbox(s.L, s.log)
	registerDocType(s.L)
	s.L.SetGlobal("blockpad", s.L.SetFuncs(s.L.NewTable(), map[string]lua.LGFunction{
		"command": s.luaCommand,
		"kinds":   luaKinds,
	}))
	return s
}

// LoadFile runs the script at path and returns the commands it registered.
// Their Source is "lua:" plus the file name.
func (s *State) LoadFile(path string) ([]dispatcher.Command, error) {
	return s.load("lua:"+filepath.Base(path), func() error {
		return s.L.DoFile(path)
	})
}

// LoadString runs code and returns the commands it registered under source.
func (s *State) LoadString(source, code string) ([]dispatcher.Command, error) {
	return s.load(source, func() error {
		return s.L.DoString(code)
	})
}

func (s *State) load(source string, do func() error) ([]dispatcher.Command, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStateClosed
	}

	s.defined = nil
	if err := s.withTimeout(do); err != nil {
		s.defined = nil
		return nil, fmt.Errorf("load %s: %w", source, err)
	}

	cmds := make([]dispatcher.Command, 0, len(s.defined))
	for _, spec := range s.defined {
		cmds = append(cmds, s.command(source, spec))
	}
	s.defined = nil

	s.log.Debug().Str("source", source).Int("commands", len(cmds)).Msg("lua script loaded")
	return cmds, nil
}

// command wraps a registered Lua function as a dispatcher command. Script
// errors are logged and leave the document unchanged.
func (s *State) command(source string, spec commandSpec) dispatcher.Command {
	return dispatcher.Command{
		ID:       spec.id,
		Label:    spec.label,
		Shortcut: spec.shortcut,
		Category: spec.category,
		Source:   source,
		Execute: func(doc document.Document) document.Document {
			next, err := s.Run(spec.fn, doc)
			if err != nil {
				s.log.Warn().Err(err).Str("command", spec.id).Str("source", source).Msg("lua command failed")
				return doc
			}
			return next
		},
	}
}

// Run calls fn with a doc handle over doc and returns the edited snapshot.
func (s *State) Run(fn *lua.LFunction, doc document.Document) (document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return doc, ErrStateClosed
	}

	ref := &docRef{doc: doc}
	err := s.withTimeout(func() error {
		return s.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, newDocHandle(s.L, ref))
	})
	if err != nil {
		return doc, err
	}
	return ref.doc, nil
}

// withTimeout runs fn with the state bound to a deadline. Caller holds s.mu.
func (s *State) withTimeout(fn func() error) (err error) {
	if s.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.L.SetContext(ctx)
		defer s.L.RemoveContext()
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases the Lua state. Commands from this state stop working and
// leave documents unchanged.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}

type commandSpec struct {
	id       string
	label    string
	shortcut string
	category string
	fn       *lua.LFunction
}

// luaCommand implements blockpad.command{...}. Runs inside load, so s.mu is
// already held.
func (s *State) luaCommand(L *lua.LState) int {
	tbl := L.CheckTable(1)

	spec := commandSpec{
		id:       strings.TrimSpace(lua.LVAsString(tbl.RawGetString("id"))),
		label:    lua.LVAsString(tbl.RawGetString("label")),
		shortcut: lua.LVAsString(tbl.RawGetString("shortcut")),
		category: lua.LVAsString(tbl.RawGetString("category")),
	}
	fn, ok := tbl.RawGetString("run").(*lua.LFunction)
	switch {
	case spec.id == "":
		L.ArgError(1, ErrInvalidCommand.Error()+": id is required")
	case !ok:
		L.ArgError(1, ErrInvalidCommand.Error()+": run must be a function")
	}
	spec.fn = fn
	if spec.category == "" {
		spec.category = "Lua"
	}
	s.defined = append(s.defined, spec)
	return 0
}

// luaKinds implements blockpad.kinds(), returning the block kind names.
func luaKinds(L *lua.LState) int {
	t := L.NewTable()
	for _, k := range document.Kinds() {
		t.Append(lua.LString(k))
	}
	L.Push(t)
	return 1
}
