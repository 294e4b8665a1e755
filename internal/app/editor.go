// Package app wires blockpad's engine, input and plugin packages into an
// editing session.
//
// An Editor owns the current document snapshot and its undo history. Every
// content change goes through Apply, which records the pre-change snapshot
// and publishes the new one under the editor mutex, then re-evaluates the
// slash-palette and mention triggers at the cursor.
package app

import (
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dshills/blockpad/internal/clipboard"
	"github.com/dshills/blockpad/internal/config"
	"github.com/dshills/blockpad/internal/dispatcher"
	"github.com/dshills/blockpad/internal/engine/component"
	"github.com/dshills/blockpad/internal/engine/document"
	"github.com/dshills/blockpad/internal/engine/history"
	"github.com/dshills/blockpad/internal/input/keymap"
	"github.com/dshills/blockpad/internal/input/mention"
	"github.com/dshills/blockpad/internal/input/palette"
	"github.com/dshills/blockpad/internal/plugin/lua"
)

// MentionLimit caps the candidates returned for a mention query.
const MentionLimit = 10

// Option configures an Editor.
type Option func(*Editor)

// WithConfig sets the configuration. Nil keeps the defaults.
func WithConfig(cfg *config.Config) Option {
	return func(e *Editor) {
		if cfg != nil {
			e.cfg = cfg
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Editor) { e.log = l }
}

// WithBoard sets the clipboard board instead of the one chosen by config.
func WithBoard(b clipboard.Board) Option {
	return func(e *Editor) { e.board = b }
}

// WithLookup sets the mention lookup instead of the configured candidates.
func WithLookup(l mention.Lookup) Option {
	return func(e *Editor) { e.lookup = l }
}

// WithIDSource sets the component id source instead of the configured one.
func WithIDSource(ids component.IDSource) Option {
	return func(e *Editor) { e.ids = ids }
}

// WithDocument sets the initial document.
func WithDocument(doc document.Document) Option {
	return func(e *Editor) { e.doc = doc }
}

// Editor is a single editing session.
type Editor struct {
	mu          sync.Mutex
	doc         document.Document
	composition *history.Group
	dismissed   bool
	slash       *palette.Trigger
	at          *mention.Trigger
	closed      bool

	cfg    *config.Config
	log    zerolog.Logger
	ids    component.IDSource
	lookup mention.Lookup
	board  clipboard.Board

	history    *history.History
	commands   *dispatcher.Registry
	dispatcher *dispatcher.Dispatcher
	palette    *palette.Palette
	components *component.Registry
	codec      *clipboard.Codec
	keymaps    *keymap.Registry

	scriptsMu sync.Mutex
	scripts   *lua.State
	sources   []string
}

// New creates an editor holding an empty document unless WithDocument is
// given.
func New(opts ...Option) (*Editor, error) {
	e := &Editor{
		doc: document.New(),
		cfg: config.Default(),
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.history = history.NewHistory(e.cfg.History.MaxEntries)

	e.commands = dispatcher.NewRegistry()
	if err := dispatcher.RegisterBuiltins(e.commands); err != nil {
		return nil, NewOperationError("register", "builtin commands", err)
	}
	e.dispatcher = dispatcher.New(e.commands,
		dispatcher.WithLogger(ComponentLogger(e.log, "dispatcher")),
		dispatcher.WithMetrics(dispatcher.NewMetrics()),
	)
	e.dispatcher.Hooks().Register(dispatcher.NewPreFunc("editor.closed", 1000, func(dispatcher.Command) bool {
		e.mu.Lock()
		defer e.mu.Unlock()
		return !e.closed
	}))
	e.palette = palette.New(e.dispatcher, palette.WithLogger(ComponentLogger(e.log, "palette")))

	if e.ids == nil {
		e.ids = e.cfg.IDSource()
	}
	e.components = component.NewRegistry(
		component.WithIDSource(e.ids),
		component.WithLogger(ComponentLogger(e.log, "components")),
	)

	e.codec = clipboard.NewCodec(
		clipboard.WithIDSource(e.ids),
		clipboard.WithLogger(ComponentLogger(e.log, "clipboard")),
	)
	if e.board == nil {
		e.board = boardFor(e.cfg, e.log)
	}
	if e.lookup == nil {
		e.lookup = lookupFor(e.cfg)
	}

	e.keymaps = keymap.NewRegistry()
	if err := e.keymaps.Register(keymap.Default()); err != nil {
		return nil, NewOperationError("register", "default keymap", err)
	}
	if err := e.keymaps.Register(e.cfg.UserKeymap()); err != nil {
		return nil, NewOperationError("register", "user keymap", err)
	}

	e.log.Debug().
		Int("history", e.cfg.History.MaxEntries).
		Int("commands", e.commands.Len()).
		Msg("editor ready")
	return e, nil
}

func boardFor(cfg *config.Config, log zerolog.Logger) clipboard.Board {
	if cfg.Clipboard.System {
		return clipboard.NewMirrorBoard(clipboard.SystemBoard{}, ComponentLogger(log, "clipboard"))
	}
	return clipboard.NewMemoryBoard()
}

func lookupFor(cfg *config.Config) mention.Lookup {
	if len(cfg.Mentions) > 0 {
		return mention.NewStaticLookup(cfg.Mentions, MentionLimit)
	}
	return mention.NewStaticLookup(mention.Samples(), MentionLimit)
}

// Document returns the current snapshot.
func (e *Editor) Document() document.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc
}

// Load replaces the document and clears the history. An open composition is
// abandoned.
func (e *Editor) Load(doc document.Document) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc = doc
	e.history.Clear()
	e.composition = nil
	e.slash, e.at = nil, nil
}

// Config returns the active configuration.
func (e *Editor) Config() *config.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// History returns the undo log.
func (e *Editor) History() *history.History { return e.history }

// Commands returns the command registry.
func (e *Editor) Commands() *dispatcher.Registry { return e.commands }

// Dispatcher returns the command dispatcher.
func (e *Editor) Dispatcher() *dispatcher.Dispatcher { return e.dispatcher }

// Hooks returns the command execution hooks.
func (e *Editor) Hooks() *dispatcher.Hooks { return e.dispatcher.Hooks() }

// Palette returns the command palette.
func (e *Editor) Palette() *palette.Palette { return e.palette }

// Keymaps returns the keymap registry.
func (e *Editor) Keymaps() *keymap.Registry { return e.keymaps }

// Components returns the inline component registry.
func (e *Editor) Components() *component.Registry { return e.components }

// Apply implements dispatcher.Applier. fn runs under the editor mutex; when
// it changes the document the previous snapshot is recorded with
// description and the triggers at the cursor are re-evaluated.
func (e *Editor) Apply(description string, fn func(document.Document) document.Document) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.applyLocked(description, fn)
}

func (e *Editor) applyLocked(description string, fn func(document.Document) document.Document) bool {
	if e.closed {
		return false
	}
	pre := e.doc
	next := fn(pre)
	if next.Equal(pre) {
		return false
	}
	e.history.Record(pre, description)
	e.doc = next
	e.dismissed = false
	e.detectLocked()
	return true
}

// Execute runs the command with the given id.
func (e *Editor) Execute(id string) (bool, error) {
	return e.dispatcher.Execute(e, id)
}

// Undo restores the previous snapshot. It is a no-op while a composition is
// open.
func (e *Editor) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.composition != nil {
		return false
	}
	doc, ok := e.history.Undo(e.doc)
	if ok {
		e.doc = doc
		e.slash, e.at = nil, nil
	}
	return ok
}

// Redo re-applies the last undone snapshot. It is a no-op while a
// composition is open.
func (e *Editor) Redo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.composition != nil {
		return false
	}
	doc, ok := e.history.Redo(e.doc)
	if ok {
		e.doc = doc
		e.slash, e.at = nil, nil
	}
	return ok
}

// ApplyConfig adopts a reloaded configuration: the history bound, keymap
// overrides and mention candidates. Scripts are reloaded when their list
// changed. Invalid configurations are rejected.
func (e *Editor) ApplyConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := e.keymaps.Register(cfg.UserKeymap()); err != nil {
		return NewOperationError("register", "user keymap", err)
	}

	e.mu.Lock()
	prev := e.cfg
	e.cfg = cfg
	e.history.SetMaxEntries(cfg.History.MaxEntries)
	if len(cfg.Mentions) > 0 {
		e.lookup = mention.NewStaticLookup(cfg.Mentions, MentionLimit)
	}
	e.mu.Unlock()

	e.log.Info().Int("history", cfg.History.MaxEntries).Int("keymap", len(cfg.Keymap)).Msg("configuration applied")

	if !slices.Equal(prev.Plugins.Scripts, cfg.Plugins.Scripts) {
		return e.LoadScripts(cfg.Plugins.Scripts...)
	}
	return nil
}

// Close releases the Lua state. The editor rejects edits afterwards.
func (e *Editor) Close() error {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()

	e.scriptsMu.Lock()
	defer e.scriptsMu.Unlock()
	if e.scripts == nil {
		return nil
	}
	err := e.scripts.Close()
	e.scripts = nil
	return err
}
