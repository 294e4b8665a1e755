package mention

import (
	"context"
	"strings"

	"github.com/dshills/blockpad/internal/engine/document"
	"github.com/dshills/blockpad/internal/input/fuzzy"
)

// TriggerRune opens a mention.
const TriggerRune = "@"

// Preview is optional display detail for a candidate.
type Preview struct {
	Title       string `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty" yaml:"image_url,omitempty" toml:"image_url,omitempty"`
}

// Candidate is something that can be mentioned.
type Candidate struct {
	ID      string   `json:"id" yaml:"id" toml:"id"`
	Type    string   `json:"type" yaml:"type" toml:"type"`
	Label   string   `json:"label" yaml:"label" toml:"label"`
	Preview *Preview `json:"preview,omitempty" yaml:"preview,omitempty" toml:"preview,omitempty"`
}

// Lookup finds candidates for a search term.
type Lookup interface {
	Search(ctx context.Context, term string) ([]Candidate, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(ctx context.Context, term string) ([]Candidate, error)

// Search implements Lookup.
func (f LookupFunc) Search(ctx context.Context, term string) ([]Candidate, error) {
	return f(ctx, term)
}

// StaticLookup fuzzy-filters a fixed candidate list by label.
type StaticLookup struct {
	matcher *fuzzy.Matcher
	limit   int
}

// NewStaticLookup creates a lookup over candidates. limit caps the number of
// results; zero means unlimited.
func NewStaticLookup(candidates []Candidate, limit int) *StaticLookup {
	m := fuzzy.NewMatcher(fuzzy.DefaultOptions())
	items := make([]fuzzy.Item, len(candidates))
	for i, c := range candidates {
		items[i] = fuzzy.Item{Text: c.Label, Data: c}
	}
	m.SetItems(items)
	return &StaticLookup{matcher: m, limit: limit}
}

// Search implements Lookup. Results keep the list order.
func (s *StaticLookup) Search(ctx context.Context, term string) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	results := s.matcher.Filter(term, s.limit)
	out := make([]Candidate, len(results))
	for i, r := range results {
		out[i] = r.Item.Data.(Candidate)
	}
	return out, nil
}

// Trigger is an open mention: the "@" at offset At of Block, with Term typed
// between it and Cursor.
type Trigger struct {
	Block  int
	At     int
	Cursor int
	Term   string
}

// Detect looks for the last "@" before pos in its block. The term runs from
// just after the "@" to pos.
func Detect(doc document.Document, pos document.Position) (Trigger, bool) {
	if !doc.Valid(pos.Block) {
		return Trigger{}, false
	}
	pos = doc.Clamp(pos)
	slots := doc.Slots(pos.Block)

	for at := pos.Offset - 1; at >= 0; at-- {
		if slots[at] == TriggerRune {
			return Trigger{
				Block:  pos.Block,
				At:     at,
				Cursor: pos.Offset,
				Term:   strings.Join(slots[at+1:pos.Offset], ""),
			}, true
		}
	}
	return Trigger{}, false
}

// Insert replaces the trigger text with "@label " and places the cursor
// after it.
func Insert(doc document.Document, t Trigger, c Candidate) document.Document {
	if !doc.Valid(t.Block) || t.At < 0 || t.At > t.Cursor || t.Cursor > doc.BlockLen(t.Block) {
		return doc
	}
	text := TriggerRune + c.Label + " "
	at := document.Position{Block: t.Block, Offset: t.At}
	nd := doc.DeleteRange(t.Block, t.At, t.Cursor).InsertText(at, text)
	inserted := nd.BlockLen(t.Block) - doc.BlockLen(t.Block) + (t.Cursor - t.At)
	return nd.WithSelection(document.Collapsed(document.Position{Block: t.Block, Offset: t.At + inserted}))
}

// Samples returns the demonstration candidates.
func Samples() []Candidate {
	return []Candidate{
		{
			ID:    "1",
			Type:  "user",
			Label: "John Doe",
			Preview: &Preview{
				Title:       "Software Engineer",
				Description: "Frontend Developer",
				ImageURL:    "https://via.placeholder.com/40",
			},
		},
		{
			ID:    "2",
			Type:  "user",
			Label: "Jane Smith",
			Preview: &Preview{
				Title:       "Product Manager",
				Description: "Product Strategy",
				ImageURL:    "https://via.placeholder.com/40",
			},
		},
	}
}
