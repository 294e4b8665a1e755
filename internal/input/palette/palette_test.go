package palette

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/dshills/blockpad/internal/dispatcher"
	"github.com/dshills/blockpad/internal/engine/document"
	"github.com/dshills/blockpad/internal/engine/history"
)

func newPalette(t *testing.T, opts ...Option) *Palette {
	t.Helper()
	reg := dispatcher.NewRegistry()
	if err := dispatcher.RegisterBuiltins(reg); err != nil {
		t.Fatal(err)
	}
	return New(dispatcher.New(reg), opts...)
}

func ids(results []Result) []string {
	var out []string
	for _, r := range results {
		out = append(out, r.Command.ID)
	}
	return out
}

func TestRecentsMRU(t *testing.T) {
	r := NewRecents(3)
	for _, id := range []string{"a", "b", "c", "a", "d"} {
		r.Add(id)
	}

	if got, want := r.List(0), []string{"d", "a", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("List = %v, want %v", got, want)
	}
	if got := r.List(1); !reflect.DeepEqual(got, []string{"d"}) {
		t.Errorf("List(1) = %v", got)
	}
	if r.Position("c") != 2 || r.Position("b") != -1 {
		t.Errorf("Position c=%d b=%d", r.Position("c"), r.Position("b"))
	}
	if !r.Remove("a") || r.Remove("a") {
		t.Error("Remove")
	}
	if r.Len() != 2 {
		t.Errorf("Len = %d", r.Len())
	}
	r.Clear()
	if r.Len() != 0 {
		t.Error("Clear")
	}
}

func TestRecentsDefaultSize(t *testing.T) {
	r := NewRecents(0)
	for i := 0; i < DefaultRecents+5; i++ {
		r.Add(string(rune('a' + i)))
	}
	if r.Len() != DefaultRecents {
		t.Errorf("Len = %d, want %d", r.Len(), DefaultRecents)
	}
}

func TestDetect(t *testing.T) {
	doc := document.FromBlocks(
		document.Paragraph("/head"),
		document.Paragraph("a/b"),
		document.Paragraph(""),
	)

	tests := []struct {
		name  string
		pos   document.Position
		query string
		ok    bool
	}{
		{"full query", document.Position{Block: 0, Offset: 5}, "head", true},
		{"partial", document.Position{Block: 0, Offset: 3}, "he", true},
		{"just slash", document.Position{Block: 0, Offset: 1}, "", true},
		{"before slash", document.Position{Block: 0, Offset: 0}, "", false},
		{"slash not first", document.Position{Block: 1, Offset: 3}, "", false},
		{"empty block", document.Position{Block: 2}, "", false},
		{"invalid block", document.Position{Block: 7, Offset: 1}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trig, ok := Detect(doc, tt.pos)
			if ok != tt.ok {
				t.Fatalf("Detect ok = %v, want %v", ok, tt.ok)
			}
			if ok && trig.Query != tt.query {
				t.Errorf("Query = %q, want %q", trig.Query, tt.query)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	p := newPalette(t)

	tests := []struct {
		query string
		limit int
		want  []string
	}{
		{"quote", 0, []string{"quote"}},
		{"block", 2, []string{"quote", "code"}},
		{"h1", 0, []string{"heading1"}},
		{"zzz", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := ids(p.Search(tt.query, tt.limit)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Search(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}

	res := p.Search("h1", 0)
	if !reflect.DeepEqual(res[0].Matches, []int{0, 8}) {
		t.Errorf("Matches = %v", res[0].Matches)
	}
}

func TestSearchEmptyQueryRecentsFirst(t *testing.T) {
	p := newPalette(t)
	p.Recents().Add("code")
	p.Recents().Add("missing")
	p.Recents().Add("quote")

	got := p.Search("", 0)
	if got[0].Command.ID != "quote" || got[1].Command.ID != "code" {
		t.Errorf("first = %v", ids(got[:3]))
	}
	if !got[0].Recent || got[2].Recent {
		t.Error("Recent flags")
	}
	if got[2].Command.ID != "heading1" {
		t.Errorf("after recents = %s, want heading1", got[2].Command.ID)
	}
	if n := len(got); n != p.dispatcher.Registry().Len() {
		t.Errorf("len = %d, want every command once", n)
	}
}

func TestSelectRemovesTriggerInOneEntry(t *testing.T) {
	p := newPalette(t)
	h := history.NewHistory(0)
	start := document.FromBlocks(document.Paragraph("intro"), document.Paragraph("/quo"))
	target := &dispatcher.Target{Doc: start, History: h}

	trig, ok := Detect(target.Doc, document.Position{Block: 1, Offset: 4})
	if !ok {
		t.Fatal("trigger not detected")
	}
	results := p.Search(trig.Query, 1)
	if len(results) != 1 || results[0].Command.ID != "quote" {
		t.Fatalf("results = %v", ids(results))
	}

	changed, err := p.Select(target, trig, results[0].Command.ID)
	if err != nil || !changed {
		t.Fatalf("Select = %v, %v", changed, err)
	}

	b, _ := target.Doc.Block(1)
	if b.Kind != document.KindQuote || target.Doc.BlockText(1) != "" {
		t.Errorf("block = %s %q", b.Kind, target.Doc.BlockText(1))
	}
	if h.UndoCount() != 1 {
		t.Errorf("UndoCount = %d, want 1", h.UndoCount())
	}
	prev, _ := h.Undo(target.Doc)
	if !prev.Equal(start) {
		t.Error("undo should restore the typed trigger")
	}
	if p.Recents().Position("quote") != 0 {
		t.Error("quote should be most recent")
	}
}

func TestSelectUnknown(t *testing.T) {
	p := newPalette(t)
	target := &dispatcher.Target{Doc: document.FromBlocks(document.Paragraph("/x"))}
	trig, _ := Detect(target.Doc, document.Position{Block: 0, Offset: 2})

	_, err := p.Select(target, trig, "nope")
	if !errors.Is(err, dispatcher.ErrUnknownCommand) {
		t.Errorf("err = %v", err)
	}
	if target.Doc.BlockText(0) != "/x" {
		t.Error("failed selection must not edit the document")
	}
	if p.Recents().Len() != 0 {
		t.Error("failed selection must not be remembered")
	}
}

func TestCategories(t *testing.T) {
	p := newPalette(t)
	want := []string{dispatcher.CategoryBlock, dispatcher.CategoryFormat, dispatcher.CategoryIndent, dispatcher.CategoryEdit}
	if got := p.Categories(); !reflect.DeepEqual(got, want) {
		t.Errorf("Categories = %v", got)
	}
	if n := len(p.CommandsByCategory(dispatcher.CategoryIndent)); n != 2 {
		t.Errorf("Indent commands = %d", n)
	}
}

func TestPaletteConcurrency(t *testing.T) {
	p := newPalette(t, WithRecents(5))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				p.Search("h", 3)
				p.Recents().Add("quote")
				p.Search("", 3)
			}
		}()
	}
	wg.Wait()
}
