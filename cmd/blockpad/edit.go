package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
	"github.com/spf13/cobra"

	"github.com/dshills/blockpad/internal/app"
	"github.com/dshills/blockpad/internal/clipboard"
	"github.com/dshills/blockpad/internal/engine/document"
	"github.com/dshills/blockpad/internal/input/key"
)

// listLimit caps the palette and mention entries shown on the status line.
const listLimit = 6

func newEditCmd(g *globals) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit a native JSON document in the terminal",
		Long: `Edit opens a document in a terminal editor. Ctrl+S saves, Ctrl+Q quits,
Tab inserts the first mention candidate and Enter runs the first palette
match. A missing file starts an empty document.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := firstArg(args)
			doc := document.New()
			if path != "" {
				data, err := os.ReadFile(path)
				switch {
				case errors.Is(err, os.ErrNotExist):
				case err != nil:
					return err
				default:
					blocks, err := document.UnmarshalBlocks(data)
					if err != nil {
						return fmt.Errorf("reading %s: %w", path, err)
					}
					doc = document.FromBlocks(blocks...)
				}
			}

			e, err := g.newEditor(app.WithDocument(doc))
			if err != nil {
				return err
			}
			defer e.Close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			if watch && g.configPath != "" {
				go func() {
					if err := e.WatchConfig(ctx, g.configPath); err != nil && !errors.Is(err, context.Canceled) {
						g.log.Warn().Err(err).Msg("config watcher stopped")
					}
				}()
			}

			s, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			v := &view{screen: s, editor: e, path: path, pretty: g.pretty}
			return v.run(ctx)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the configuration file when it changes")
	return cmd
}

// view draws an editor on a tcell screen.
type view struct {
	screen tcell.Screen
	editor *app.Editor
	path   string
	pretty bool
	top    int
	status string
}

func (v *view) run(ctx context.Context) error {
	if err := v.screen.Init(); err != nil {
		return err
	}
	defer v.screen.Fini()

	for {
		v.draw(ctx)
		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			quit, err := v.handle(ctx, ev)
			if err != nil {
				v.status = err.Error()
			}
			if quit {
				return nil
			}
		}
	}
}

// handle processes one key. It reports whether the editor should exit.
func (v *view) handle(ctx context.Context, ev *tcell.EventKey) (bool, error) {
	v.status = ""
	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return true, nil
	case tcell.KeyCtrlS:
		return false, v.save()
	case tcell.KeyTab:
		if _, ok := v.editor.MentionTrigger(); ok {
			cands, err := v.editor.MentionCandidates(ctx)
			if err != nil || len(cands) == 0 {
				return false, err
			}
			_, err = v.editor.ChooseMention(cands[0])
			return false, err
		}
	}

	k, ok := key.FromTcell(ev)
	if !ok {
		return false, nil
	}
	_, err := v.editor.HandleKey(k)
	return false, err
}

func (v *view) save() error {
	if v.path == "" {
		return errors.New("no file name; pass one to edit")
	}
	out, err := encodeBlocks(clipboard.NewCodec(), v.editor.Document().Blocks(), "native", v.pretty)
	if err != nil {
		return err
	}
	if err := os.WriteFile(v.path, out, 0o644); err != nil {
		return err
	}
	v.status = "saved " + v.path
	return nil
}

func (v *view) draw(ctx context.Context) {
	s := v.screen
	s.Clear()
	w, h := s.Size()
	rows := max(h-1, 1)

	doc := v.editor.Document()
	sel := doc.Selection()
	cur := sel.End.Block
	switch {
	case cur < v.top:
		v.top = cur
	case cur >= v.top+rows:
		v.top = cur - rows + 1
	}

	s.HideCursor()
	for y, i := 0, v.top; y < rows && i < doc.Len(); y, i = y+1, i+1 {
		cols := v.drawBlock(doc, i, y, w)
		if i == cur {
			s.ShowCursor(cols[min(sel.End.Offset, len(cols)-1)], y)
		}
	}
	v.drawStatus(ctx, h-1, w)
	s.Show()
}

// drawBlock renders block i on row y and returns the screen column of each
// offset slot, plus one past the end.
func (v *view) drawBlock(doc document.Document, i, y, width int) []int {
	b, _ := doc.Block(i)
	sel := doc.Selection().Normalized()
	x := v.puts(0, y, width, strings.Repeat("  ", b.Indent)+blockPrefix(b), tcell.StyleDefault.Dim(true))

	cols := make([]int, 0, b.Len()+1)
	slot := 0
	for _, n := range b.Children {
		switch n := n.(type) {
		case document.Text:
			g := uniseg.NewGraphemes(n.Text)
			for g.Next() {
				cols = append(cols, x)
				st := runStyle(n.Formatting)
				if selected(sel, i, slot) {
					st = st.Reverse(true)
				}
				runes := g.Runes()
				if x < width {
					v.screen.SetContent(x, y, runes[0], runes[1:], st)
				}
				x += max(uniseg.StringWidth(g.Str()), 1)
				slot++
			}
		case document.Interactive:
			cols = append(cols, x)
			st := tcell.StyleDefault.Foreground(tcell.ColorTeal).Underline(true)
			if selected(sel, i, slot) {
				st = st.Reverse(true)
			}
			x = v.puts(x, y, width, "["+n.ComponentType+"]", st)
			slot++
		}
	}
	return append(cols, x)
}

func (v *view) drawStatus(ctx context.Context, y, width int) {
	st := tcell.StyleDefault.Reverse(true)
	var line string
	switch {
	case v.status != "":
		line = v.status
	default:
		line = v.listing(ctx)
	}
	if line == "" {
		line = "Ctrl+S save | Ctrl+Q quit"
		if info, ok := v.editor.History().PeekUndo(); ok {
			line += " | undo: " + info.Description
		}
	}
	x := v.puts(0, y, width, " "+line, st)
	for ; x < width; x++ {
		v.screen.SetContent(x, y, ' ', nil, st)
	}
}

// listing describes the open palette or mention list.
func (v *view) listing(ctx context.Context) string {
	if _, ok := v.editor.PaletteTrigger(); ok {
		var labels []string
		for _, r := range v.editor.PaletteResults(listLimit) {
			labels = append(labels, r.Command.DisplayLabel())
		}
		if len(labels) == 0 {
			return "/ no matching command"
		}
		return "/ " + strings.Join(labels, "  ")
	}
	if _, ok := v.editor.MentionTrigger(); ok {
		cands, err := v.editor.MentionCandidates(ctx)
		if err != nil {
			return err.Error()
		}
		var labels []string
		for _, c := range cands[:min(len(cands), listLimit)] {
			labels = append(labels, c.Label)
		}
		return "@ " + strings.Join(labels, "  ")
	}
	return ""
}

// puts writes text from column x and returns the column after it.
func (v *view) puts(x, y, width int, text string, st tcell.Style) int {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		if x < width {
			v.screen.SetContent(x, y, runes[0], runes[1:], st)
		}
		x += max(uniseg.StringWidth(g.Str()), 1)
	}
	return x
}

func blockPrefix(b document.Block) string {
	switch b.Kind {
	case document.KindQuote:
		return "> "
	case document.KindCode:
		return "| "
	case document.KindCallout:
		return "! "
	case document.KindListItem:
		return "- "
	}
	return ""
}

func runStyle(f document.Formatting) tcell.Style {
	st := tcell.StyleDefault.Bold(f.Bold || f.Heading > 0).Italic(f.Italic).Underline(f.Underline)
	if f.Heading > 0 {
		st = st.Foreground(tcell.ColorYellow)
	}
	return st
}

func selected(sel document.Selection, block, slot int) bool {
	if sel.IsCollapsed() {
		return false
	}
	p := document.Position{Block: block, Offset: slot}
	return !p.Before(sel.Start) && p.Before(sel.End)
}
