// Package watcher reloads blockpad configuration when its file changes.
//
// The watcher observes the config file's directory with fsnotify so that
// editors which save by rename are still seen, debounces bursts of events,
// and hands each successfully reloaded Config to a handler.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/dshills/blockpad/internal/config"
)

// DefaultDebounce is how long events must settle before a reload.
const DefaultDebounce = 100 * time.Millisecond

// ErrNoPath is returned by Run when the watcher has no file to watch.
var ErrNoPath = errors.New("watcher: no config path")

// Op is the kind of change seen on the config file.
type Op uint32

const (
	// OpWrite indicates the file was modified.
	OpWrite Op = 1 << iota
	// OpCreate indicates the file was created.
	OpCreate
	// OpRemove indicates the file was deleted.
	OpRemove
	// OpRename indicates the file was renamed away.
	OpRename
)

// String returns the operation name.
func (op Op) String() string {
	switch {
	case op&OpRemove != 0:
		return "remove"
	case op&OpRename != 0:
		return "rename"
	case op&OpCreate != 0:
		return "create"
	case op&OpWrite != 0:
		return "write"
	default:
		return "unknown"
	}
}

// Handler receives each reloaded configuration.
type Handler func(cfg *config.Config)

// ErrorHandler receives reload failures.
type ErrorHandler func(err error)

// LoadFunc reads a configuration file.
type LoadFunc func(path string) (*config.Config, error)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the settle time. Zero reloads on every event.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(w *Watcher) { w.log = l }
}

// WithLoadFunc replaces config.Load.
func WithLoadFunc(fn LoadFunc) Option {
	return func(w *Watcher) {
		if fn != nil {
			w.load = fn
		}
	}
}

// WithErrorHandler sets the reload failure callback.
func WithErrorHandler(fn ErrorHandler) Option {
	return func(w *Watcher) { w.onError = fn }
}

// Watcher monitors a single config file.
type Watcher struct {
	path     string
	debounce time.Duration
	log      zerolog.Logger
	load     LoadFunc
	onError  ErrorHandler
}

// New creates a watcher for the config file at path.
func New(path string, opts ...Option) *Watcher {
	w := &Watcher{
		path:     path,
		debounce: DefaultDebounce,
		log:      zerolog.Nop(),
		load: func(p string) (*config.Config, error) {
			return config.Load(p)
		},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is done, calling onChange after every settled
// change that loads cleanly. A removed file is not reloaded; the previous
// configuration stays in effect until it reappears.
func (w *Watcher) Run(ctx context.Context, onChange Handler) error {
	if w.path == "" {
		return ErrNoPath
	}
	target, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watcher: watching %s: %w", filepath.Dir(target), err)
	}
	w.log.Debug().Str("path", target).Msg("watching config")

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending Op
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			op := convertOp(ev.Op)
			if op == 0 {
				continue
			}
			pending |= op
			if w.debounce == 0 {
				w.reload(pending, onChange)
				pending = 0
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload(pending, onChange)
			pending = 0

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("config watcher error")
			w.report(err)
		}
	}
}

func (w *Watcher) reload(op Op, onChange Handler) {
	// A trailing create means the file came back after a rename-save.
	if op&(OpRemove|OpRename) != 0 && op&OpCreate == 0 {
		w.log.Info().Str("path", w.path).Str("op", op.String()).Msg("config file gone; keeping current settings")
		return
	}
	cfg, err := w.load(w.path)
	if err != nil {
		w.log.Warn().Err(err).Str("path", w.path).Msg("config reload failed")
		w.report(err)
		return
	}
	w.log.Info().Str("path", w.path).Msg("config reloaded")
	w.safeCall(onChange, cfg)
}

func (w *Watcher) report(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}

// safeCall keeps a panicking handler from stopping the watch loop.
func (w *Watcher) safeCall(fn Handler, cfg *config.Config) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			w.log.Error().Interface("panic", r).Msg("config change handler panicked")
		}
	}()
	fn(cfg)
}

func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}
