package palette

import (
	"slices"

	"github.com/rs/zerolog"

	"github.com/dshills/blockpad/internal/dispatcher"
	"github.com/dshills/blockpad/internal/input/fuzzy"
)

// Result is one palette entry.
type Result struct {
	Command dispatcher.Command

	// Recent is set when the command was selected recently.
	Recent bool

	// Matches holds the label rune indices matched by the query.
	Matches []int
}

// Option configures a Palette.
type Option func(*Palette)

// WithRecents sets how many recent commands are remembered.
func WithRecents(n int) Option {
	return func(p *Palette) {
		p.recents = NewRecents(n)
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Palette) {
		p.log = l
	}
}

// Palette searches and runs registered commands.
type Palette struct {
	dispatcher *dispatcher.Dispatcher
	recents    *Recents
	log        zerolog.Logger
}

// New creates a palette over d's registry.
func New(d *dispatcher.Dispatcher, opts ...Option) *Palette {
	p := &Palette{
		dispatcher: d,
		recents:    NewRecents(DefaultRecents),
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Search returns the commands whose label fuzzy-matches query, in
// registration order. An empty query lists recent commands first, then the
// rest in registration order. A limit of zero or less returns everything.
func (p *Palette) Search(query string, limit int) []Result {
	reg := p.dispatcher.Registry()

	var results []Result
	if query == "" {
		seen := make(map[string]bool)
		for _, id := range p.recents.List(0) {
			if cmd, ok := reg.Get(id); ok {
				results = append(results, Result{Command: cmd, Recent: true})
				seen[id] = true
			}
		}
		for _, cmd := range reg.All() {
			if !seen[cmd.ID] {
				results = append(results, Result{Command: cmd})
			}
		}
	} else {
		for _, cmd := range reg.Match(query) {
			matches, _ := fuzzy.Positions(query, cmd.DisplayLabel())
			results = append(results, Result{
				Command: cmd,
				Recent:  p.recents.Position(cmd.ID) >= 0,
				Matches: matches,
			})
		}
	}

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Select removes the trigger text and runs the command with the given id
// against target as a single history entry. The command is remembered as
// recent when it runs without error.
func (p *Palette) Select(target dispatcher.Applier, t Trigger, id string) (bool, error) {
	changed, err := p.dispatcher.ExecuteAfter(target, id, t.Remove)
	if err != nil {
		p.log.Debug().Err(err).Str("command", id).Msg("palette selection failed")
		return changed, err
	}
	p.recents.Add(id)
	return changed, nil
}

// Recents returns the recent command list.
func (p *Palette) Recents() *Recents {
	return p.recents
}

// Categories returns the distinct command categories in registration order.
func (p *Palette) Categories() []string {
	var out []string
	for _, cmd := range p.dispatcher.Registry().All() {
		if cmd.Category != "" && !slices.Contains(out, cmd.Category) {
			out = append(out, cmd.Category)
		}
	}
	return out
}

// CommandsByCategory returns the commands in category, in registration order.
func (p *Palette) CommandsByCategory(category string) []dispatcher.Command {
	var out []dispatcher.Command
	for _, cmd := range p.dispatcher.Registry().All() {
		if cmd.Category == category {
			out = append(out, cmd)
		}
	}
	return out
}
