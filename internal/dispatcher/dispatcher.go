package dispatcher

import (
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/blockpad/internal/engine/document"
	"github.com/dshills/blockpad/internal/engine/history"
)

// Applier owns the current document. Apply runs fn on the current snapshot
// and, when the result differs, records the pre-state under description and
// publishes the result as one atomic step. It reports whether the document
// changed.
type Applier interface {
	Apply(description string, fn func(document.Document) document.Document) bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.log = l
	}
}

// WithMetrics enables execution metrics.
func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithHooks sets the hook set. Without it the dispatcher has an empty one.
func WithHooks(h *Hooks) Option {
	return func(d *Dispatcher) {
		if h != nil {
			d.hooks = h
		}
	}
}

// WithPanicRecovery sets whether command panics are recovered.
func WithPanicRecovery(recover bool) Option {
	return func(d *Dispatcher) {
		d.recover = recover
	}
}

// Dispatcher resolves and executes commands.
type Dispatcher struct {
	registry *Registry
	log      zerolog.Logger
	metrics  *Metrics
	hooks    *Hooks
	recover  bool
}

// New creates a dispatcher over registry. A nil registry gets an empty one.
func New(registry *Registry, opts ...Option) *Dispatcher {
	if registry == nil {
		registry = NewRegistry()
	}
	d := &Dispatcher{
		registry: registry,
		log:      zerolog.Nop(),
		hooks:    NewHooks(),
		recover:  true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the command registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Hooks returns the execution hooks.
func (d *Dispatcher) Hooks() *Hooks {
	return d.hooks
}

// Metrics returns the metrics collector, or nil if disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Execute runs the command with the given id against target. It reports
// whether the document changed.
func (d *Dispatcher) Execute(target Applier, id string) (bool, error) {
	cmd, ok := d.registry.Get(id)
	if !ok {
		d.record(id, 0, StatusError)
		return false, fmt.Errorf("%w: %s", ErrUnknownCommand, id)
	}
	return d.execute(target, cmd, nil)
}

// ExecuteAfter runs pre and then the command with the given id as a single
// Apply, so both land in one history entry.
func (d *Dispatcher) ExecuteAfter(target Applier, id string, pre func(document.Document) document.Document) (bool, error) {
	cmd, ok := d.registry.Get(id)
	if !ok {
		d.record(id, 0, StatusError)
		return false, fmt.Errorf("%w: %s", ErrUnknownCommand, id)
	}
	return d.execute(target, cmd, pre)
}

// ExecuteQuery resolves query with Registry.Find and runs the result.
func (d *Dispatcher) ExecuteQuery(target Applier, query string) (Command, bool, error) {
	cmd, ok := d.registry.Find(query)
	if !ok {
		return Command{}, false, fmt.Errorf("%w: %q", ErrUnknownCommand, query)
	}
	changed, err := d.execute(target, cmd, nil)
	return cmd, changed, err
}

// Run applies the command with the given id to doc without any history.
func (d *Dispatcher) Run(doc document.Document, id string) (document.Document, error) {
	cmd, ok := d.registry.Get(id)
	if !ok {
		return doc, fmt.Errorf("%w: %s", ErrUnknownCommand, id)
	}
	return d.run(cmd, doc)
}

func (d *Dispatcher) execute(target Applier, cmd Command, pre func(document.Document) document.Document) (bool, error) {
	if target == nil {
		return false, ErrNoTarget
	}

	if name, ok := d.hooks.runPre(cmd); !ok {
		d.log.Debug().Str("command", cmd.ID).Str("hook", name).Msg("command cancelled")
		return false, fmt.Errorf("%w: %s by %s", ErrCancelled, cmd.ID, name)
	}

	start := time.Now()
	var runErr error
	changed := target.Apply(cmd.DisplayLabel(), func(doc document.Document) document.Document {
		prepared := doc
		if pre != nil {
			prepared = pre(doc)
		}
		next, err := d.run(cmd, prepared)
		if err != nil {
			runErr = err
			return doc
		}
		return next
	})

	status := StatusNoChange
	switch {
	case runErr != nil:
		status = StatusError
	case changed:
		status = StatusChanged
	}
	took := time.Since(start)
	d.record(cmd.ID, took, status)
	d.hooks.runPost(cmd, Outcome{Status: status, Changed: changed, Err: runErr, Took: took})

	d.log.Debug().
		Str("command", cmd.ID).
		Str("status", status.String()).
		Dur("took", took).
		Msg("command executed")
	return changed, runErr
}

func (d *Dispatcher) run(cmd Command, doc document.Document) (document.Document, error) {
	if !d.recover {
		return cmd.Execute(doc), nil
	}
	return d.runWithRecovery(cmd, doc)
}

// runWithRecovery executes a command with panic recovery.
func (d *Dispatcher) runWithRecovery(cmd Command, doc document.Document) (next document.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			d.log.Error().
				Str("command", cmd.ID).
				Interface("panic", r).
				Str("stack", string(stack[:n])).
				Msg("command panicked")
			if d.metrics != nil {
				d.metrics.RecordPanic(cmd.ID)
			}
			next, err = doc, fmt.Errorf("%w: %s: %v", ErrPanic, cmd.ID, r)
		}
	}()
	return cmd.Execute(doc), nil
}

func (d *Dispatcher) record(id string, took time.Duration, status Status) {
	if d.metrics != nil {
		d.metrics.RecordExecution(id, took, status)
	}
}

// Target is an Applier over a document value with optional history. It is
// not safe for concurrent use.
type Target struct {
	Doc     document.Document
	History *history.History
}

// Apply implements Applier.
func (t *Target) Apply(description string, fn func(document.Document) document.Document) bool {
	next := fn(t.Doc)
	if next.Equal(t.Doc) {
		return false
	}
	if t.History != nil {
		t.History.Record(t.Doc, description)
	}
	t.Doc = next
	return true
}
