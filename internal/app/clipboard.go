package app

import (
	"github.com/dshills/blockpad/internal/clipboard"
	"github.com/dshills/blockpad/internal/engine/document"
)

// Copy writes the blocks spanned by the selection to the board.
func (e *Editor) Copy() error {
	doc := e.Document()
	p, ok := e.codec.CopySelection(doc)
	if !ok {
		return ErrNothingSelected
	}
	if err := e.board.Write(p); err != nil {
		return NewOperationError("copy", "", err)
	}
	return nil
}

// Cut removes the blocks spanned by the selection as one history entry and
// writes them to the board.
func (e *Editor) Cut() error {
	var (
		payload clipboard.Payload
		ok      bool
	)
	e.Apply("Cut", func(doc document.Document) document.Document {
		from, to := doc.Selection().BlockRange()
		nd, p, cut := e.codec.Cut(doc, from, to)
		payload, ok = p, cut
		return nd
	})
	if !ok {
		return ErrNothingSelected
	}
	if err := e.board.Write(payload); err != nil {
		return NewOperationError("cut", "", err)
	}
	return nil
}

// Paste replaces the block at the selection start with the board contents
// and returns the format used.
func (e *Editor) Paste() (string, error) {
	p, err := e.board.Read()
	if err != nil {
		return "", NewOperationError("paste", "", err)
	}
	var format string
	e.Apply("Paste", func(doc document.Document) document.Document {
		nd, f, perr := e.codec.Paste(doc, doc.Selection().Normalized().Start.Block, p)
		format, err = f, perr
		return nd
	})
	if err != nil {
		return "", NewOperationError("paste", "", err)
	}
	return format, nil
}
