package dispatcher

import (
	"fmt"
	"strings"

	"github.com/dshills/blockpad/internal/engine/document"
)

// Command categories.
const (
	CategoryBlock  = "Blocks"
	CategoryFormat = "Format"
	CategoryIndent = "Indent"
	CategoryEdit   = "Edit"
)

// Builtins returns the built-in commands in display order. Every built-in
// operates on the block at selection.Start.Block.
func Builtins() []Command {
	cmds := make([]Command, 0, document.MaxHeading+12)
	for level := 1; level <= document.MaxHeading; level++ {
		cmds = append(cmds, headingCommand(level))
	}
	cmds = append(cmds,
		kindCommand("paragraph", "Paragraph", "", document.KindParagraph),
		kindCommand("quote", "Quote Block", "> ", document.KindQuote),
		kindCommand("code", "Code Block", "```", document.KindCode),
		kindCommand("callout", "Callout", "!! ", document.KindCallout),
		kindCommand("list-item", "List Item", "- ", document.KindListItem),
		toggleCommand("format.bold", "Bold", func(f *document.Formatting) *bool { return &f.Bold }),
		toggleCommand("format.italic", "Italic", func(f *document.Formatting) *bool { return &f.Italic }),
		toggleCommand("format.underline", "Underline", func(f *document.Formatting) *bool { return &f.Underline }),
		indentCommand("indent.increase", "Indent", 1),
		indentCommand("indent.decrease", "Outdent", -1),
		Command{
			ID:       "block.split",
			Label:    "Split Block",
			Category: CategoryEdit,
			Execute:  splitBlock,
		},
		Command{
			ID:       "block.merge",
			Label:    "Merge With Next Block",
			Category: CategoryEdit,
			Execute:  mergeBlock,
		},
	)
	for i := range cmds {
		cmds[i].Source = SourceBuiltin
	}
	return cmds
}

// RegisterBuiltins registers Builtins into r.
func RegisterBuiltins(r *Registry) error {
	return r.RegisterAll(Builtins()...)
}

// currentBlock returns the block the selection starts in.
func currentBlock(doc document.Document) (int, bool) {
	i := doc.Selection().Start.Block
	return i, doc.Valid(i)
}

func headingCommand(level int) Command {
	return Command{
		ID:       fmt.Sprintf("heading%d", level),
		Label:    fmt.Sprintf("Heading %d", level),
		Shortcut: strings.Repeat("#", level) + " ",
		Category: CategoryBlock,
		Execute: func(doc document.Document) document.Document {
			i, ok := currentBlock(doc)
			if !ok {
				return doc
			}
			return doc.MapFormatting(i, 0, 0, func(f document.Formatting) document.Formatting {
				f.Heading = level
				return f
			})
		},
	}
}

func kindCommand(id, label, shortcut string, kind document.Kind) Command {
	return Command{
		ID:       id,
		Label:    label,
		Shortcut: shortcut,
		Category: CategoryBlock,
		Execute: func(doc document.Document) document.Document {
			i, ok := currentBlock(doc)
			if !ok {
				return doc
			}
			doc = doc.SetKind(i, kind)
			if kind == document.KindParagraph {
				doc = doc.MapFormatting(i, 0, 0, func(f document.Formatting) document.Formatting {
					f.Heading = 0
					return f
				})
			}
			return doc
		},
	}
}

// formatRange returns the span a format toggle applies to: the selection
// when it is a non-empty range inside the current block, otherwise the whole
// block (0, 0).
func formatRange(doc document.Document, i int) (int, int) {
	sel := doc.Selection().Normalized()
	if sel.IsCollapsed() || !sel.SingleBlock() || sel.Start.Block != i {
		return 0, 0
	}
	return sel.Start.Offset, sel.End.Offset
}

func toggleCommand(id, label string, field func(*document.Formatting) *bool) Command {
	return Command{
		ID:       id,
		Label:    label,
		Category: CategoryFormat,
		Execute: func(doc document.Document) document.Document {
			i, ok := currentBlock(doc)
			if !ok {
				return doc
			}
			start, end := formatRange(doc, i)

			runs := doc.Runs(i, start, end)
			if len(runs) == 0 {
				return doc
			}
			all := true
			for _, r := range runs {
				if !*field(&r.Formatting) {
					all = false
					break
				}
			}
			return doc.MapFormatting(i, start, end, func(f document.Formatting) document.Formatting {
				*field(&f) = !all
				return f
			})
		},
	}
}

func indentCommand(id, label string, delta int) Command {
	return Command{
		ID:       id,
		Label:    label,
		Category: CategoryIndent,
		Execute: func(doc document.Document) document.Document {
			i, ok := currentBlock(doc)
			if !ok {
				return doc
			}
			b, _ := doc.Block(i)
			return doc.SetIndent(i, b.Indent+delta)
		},
	}
}

func splitBlock(doc document.Document) document.Document {
	sel := doc.Selection().Normalized()
	if !doc.Valid(sel.Start.Block) {
		return doc
	}
	at := doc.Clamp(sel.Start)
	if !sel.IsCollapsed() && sel.SingleBlock() {
		doc = doc.DeleteRange(at.Block, at.Offset, sel.End.Offset)
	}
	doc = doc.SplitBlock(at)
	return doc.WithSelection(document.Collapsed(document.Position{Block: at.Block + 1}))
}

func mergeBlock(doc document.Document) document.Document {
	i, ok := currentBlock(doc)
	if !ok || !doc.Valid(i+1) {
		return doc
	}
	join := doc.BlockLen(i)
	doc = doc.MergeWithNext(i)
	return doc.WithSelection(document.Collapsed(document.Position{Block: i, Offset: join}))
}
