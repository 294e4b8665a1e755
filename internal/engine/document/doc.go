// Package document provides the immutable block/inline document model used
// by the editor engine.
//
// A Document is an ordered, never-empty sequence of Blocks plus the current
// Selection and the collection of inline Components anchored in the text.
// Every edit returns a new Document value; previously returned documents are
// never mutated, so they can be retained as history snapshots.
//
// Basic usage:
//
//	doc := document.New()
//	doc = doc.InsertText(document.Position{Block: 0, Offset: 0}, "Hello")
//	doc = doc.SetKind(0, document.KindQuote)
//	doc = doc.SplitBlock(document.Position{Block: 0, Offset: 2})
//
// Blocks:
//
// A Block has a Kind (paragraph, quote, code, callout, list-item), an indent
// level and an ordered list of inline children. Children are runs: Text runs
// carry Formatting, Interactive nodes embed a component. Adjacent Text runs
// with identical formatting are always merged.
//
// Offsets:
//
// Offsets within a block count grapheme clusters of Text runs. Each
// Interactive node occupies exactly one offset slot. BlockText returns only the
// Text content, so it can be shorter than BlockLen.
//
// Native form:
//
// Blocks marshal to the editor's native JSON representation
// ({"type", "children", "indent"}) which is used for lossless clipboard
// interchange.
package document
