package app

import (
	"github.com/dshills/blockpad/internal/engine/component"
	"github.com/dshills/blockpad/internal/engine/document"
)

// CreateComponent turns the selected text into an inline component of type
// typ. The selection must be non-empty and within one block.
func (e *Editor) CreateComponent(typ string) (document.Component, error) {
	var (
		created document.Component
		ok      bool
	)
	e.Apply("Create "+typ, func(doc document.Document) document.Document {
		nd, c, done := e.components.Create(doc, doc.Selection(), typ)
		created, ok = c, done
		return nd
	})
	if !ok {
		return document.Component{}, ErrNothingSelected
	}
	return created, nil
}

// UpdateComponent applies patch to the component with the given id.
func (e *Editor) UpdateComponent(id string, patch component.Patch) bool {
	return e.Apply("Update component", func(doc document.Document) document.Document {
		return e.components.Update(doc, id, patch)
	})
}

// MoveComponent reorders the component with the given id by direction places.
func (e *Editor) MoveComponent(id string, direction int) bool {
	return e.Apply("Move component", func(doc document.Document) document.Document {
		return e.components.Move(doc, id, direction)
	})
}

// RemoveComponent deletes the component with the given id and its node.
func (e *Editor) RemoveComponent(id string) bool {
	return e.Apply("Remove component", func(doc document.Document) document.Document {
		return e.components.Remove(doc, id)
	})
}
