package app

import (
	"context"

	"github.com/dshills/blockpad/internal/engine/document"
	"github.com/dshills/blockpad/internal/input/mention"
	"github.com/dshills/blockpad/internal/input/palette"
)

// detectLocked re-evaluates the triggers at a collapsed cursor. The slash
// palette wins over a mention in the same block.
func (e *Editor) detectLocked() {
	e.slash, e.at = nil, nil
	if e.composition != nil || e.dismissed {
		return
	}
	sel := e.doc.Selection()
	if !sel.IsCollapsed() {
		return
	}
	if t, ok := palette.Detect(e.doc, sel.End); ok {
		e.slash = &t
		return
	}
	if t, ok := mention.Detect(e.doc, sel.End); ok {
		e.at = &t
	}
}

// PaletteTrigger returns the open slash trigger.
func (e *Editor) PaletteTrigger() (palette.Trigger, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.slash == nil {
		return palette.Trigger{}, false
	}
	return *e.slash, true
}

// PaletteResults returns the commands matching the open slash query. It
// returns nil when the palette is closed.
func (e *Editor) PaletteResults(limit int) []palette.Result {
	t, ok := e.PaletteTrigger()
	if !ok {
		return nil
	}
	return e.palette.Search(t.Query, limit)
}

// ChooseCommand removes the slash trigger text and runs the command as one
// history entry.
func (e *Editor) ChooseCommand(id string) (bool, error) {
	t, ok := e.PaletteTrigger()
	if !ok {
		return false, ErrNoTrigger
	}
	return e.palette.Select(e, t, id)
}

// MentionTrigger returns the open mention trigger.
func (e *Editor) MentionTrigger() (mention.Trigger, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.at == nil {
		return mention.Trigger{}, false
	}
	return *e.at, true
}

// MentionCandidates searches the mention lookup with the open term.
func (e *Editor) MentionCandidates(ctx context.Context) ([]mention.Candidate, error) {
	e.mu.Lock()
	at, lookup := e.at, e.lookup
	e.mu.Unlock()
	if at == nil {
		return nil, ErrNoTrigger
	}
	cands, err := lookup.Search(ctx, at.Term)
	if err != nil {
		return nil, NewOperationError("mention search", at.Term, err)
	}
	return cands, nil
}

// ChooseMention replaces the mention trigger text with the candidate's
// label and closes the trigger. The trigger must still match the document.
func (e *Editor) ChooseMention(c mention.Candidate) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.at == nil {
		return false, ErrNoTrigger
	}
	t := *e.at
	changed := e.applyLocked("Mention "+c.Label, func(doc document.Document) document.Document {
		return mention.Insert(doc, t, c)
	})
	if changed {
		// The inserted label starts with the trigger character.
		e.slash, e.at = nil, nil
		e.dismissed = true
	}
	return changed, nil
}

// Dismiss closes any open trigger until the next content edit.
func (e *Editor) Dismiss() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	open := e.slash != nil || e.at != nil
	e.slash, e.at = nil, nil
	e.dismissed = true
	return open
}
