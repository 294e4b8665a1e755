package dispatcher

import (
	"sort"
	"sync"
	"time"
)

// Hook is the base interface for execution hooks.
type Hook interface {
	// Name returns a unique identifier for this hook.
	Name() string

	// Priority orders hooks. Higher values run first for pre-hooks and last
	// for post-hooks.
	Priority() int
}

// PreHook runs before a command. Returning false cancels the execution.
type PreHook interface {
	Hook
	PreExecute(cmd Command) bool
}

// PostHook runs after a command, including failed ones.
type PostHook interface {
	Hook
	PostExecute(cmd Command, out Outcome)
}

// Outcome describes one finished execution.
type Outcome struct {
	Status  Status
	Changed bool
	Err     error
	Took    time.Duration
}

// PreFunc adapts a function to PreHook.
type PreFunc struct {
	name     string
	priority int
	fn       func(cmd Command) bool
}

// NewPreFunc creates a PreHook from fn.
func NewPreFunc(name string, priority int, fn func(cmd Command) bool) *PreFunc {
	return &PreFunc{name: name, priority: priority, fn: fn}
}

// Name implements Hook.
func (f *PreFunc) Name() string { return f.name }

// Priority implements Hook.
func (f *PreFunc) Priority() int { return f.priority }

// PreExecute implements PreHook. A nil function allows everything.
func (f *PreFunc) PreExecute(cmd Command) bool {
	if f.fn == nil {
		return true
	}
	return f.fn(cmd)
}

// PostFunc adapts a function to PostHook.
type PostFunc struct {
	name     string
	priority int
	fn       func(cmd Command, out Outcome)
}

// NewPostFunc creates a PostHook from fn.
func NewPostFunc(name string, priority int, fn func(cmd Command, out Outcome)) *PostFunc {
	return &PostFunc{name: name, priority: priority, fn: fn}
}

// Name implements Hook.
func (f *PostFunc) Name() string { return f.name }

// Priority implements Hook.
func (f *PostFunc) Priority() int { return f.priority }

// PostExecute implements PostHook.
func (f *PostFunc) PostExecute(cmd Command, out Outcome) {
	if f.fn != nil {
		f.fn(cmd, out)
	}
}

// Hooks holds execution hooks ordered by priority.
type Hooks struct {
	mu   sync.RWMutex
	pre  []PreHook
	post []PostHook
}

// NewHooks creates an empty hook set.
func NewHooks() *Hooks {
	return &Hooks{}
}

// Register adds h as a pre-hook, a post-hook or both, depending on which
// interfaces it implements. A hook with the same name is replaced.
func (h *Hooks) Register(hook Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if pre, ok := hook.(PreHook); ok {
		h.pre = replaceByName(h.pre, pre)
		sort.SliceStable(h.pre, func(i, j int) bool {
			return h.pre[i].Priority() > h.pre[j].Priority()
		})
	}
	if post, ok := hook.(PostHook); ok {
		h.post = replaceByName(h.post, post)
		sort.SliceStable(h.post, func(i, j int) bool {
			return h.post[i].Priority() < h.post[j].Priority()
		})
	}
}

func replaceByName[T Hook](hooks []T, h T) []T {
	for i, existing := range hooks {
		if existing.Name() == h.Name() {
			hooks[i] = h
			return hooks
		}
	}
	return append(hooks, h)
}

// Unregister removes every hook with the given name.
func (h *Hooks) Unregister(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	removed := false
	for i, p := range h.pre {
		if p.Name() == name {
			h.pre = append(h.pre[:i], h.pre[i+1:]...)
			removed = true
			break
		}
	}
	for i, p := range h.post {
		if p.Name() == name {
			h.post = append(h.post[:i], h.post[i+1:]...)
			removed = true
			break
		}
	}
	return removed
}

// Names returns the pre-hook then post-hook names in run order.
func (h *Hooks) Names() (pre, post []string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, p := range h.pre {
		pre = append(pre, p.Name())
	}
	for _, p := range h.post {
		post = append(post, p.Name())
	}
	return pre, post
}

// runPre reports the name of the first hook that cancelled cmd.
func (h *Hooks) runPre(cmd Command) (string, bool) {
	h.mu.RLock()
	hooks := append([]PreHook(nil), h.pre...)
	h.mu.RUnlock()

	for _, p := range hooks {
		if !p.PreExecute(cmd) {
			return p.Name(), false
		}
	}
	return "", true
}

func (h *Hooks) runPost(cmd Command, out Outcome) {
	h.mu.RLock()
	hooks := append([]PostHook(nil), h.post...)
	h.mu.RUnlock()

	for _, p := range hooks {
		p.PostExecute(cmd, out)
	}
}
