package cursor

import (
	"testing"

	"github.com/dshills/blockpad/internal/engine/document"
)

func pos(block, offset int) document.Position {
	return document.Position{Block: block, Offset: offset}
}

func threeBlocks() document.Document {
	return document.FromBlocks(
		document.Paragraph("hello"),
		document.Paragraph("hi"),
		document.NewBlock(document.KindParagraph,
			document.Text{Text: "a"},
			document.Interactive{ComponentType: "mention"},
			document.Text{Text: "b"},
		),
	)
}

// Resolve Tests

func TestResolve(t *testing.T) {
	doc := threeBlocks()

	tests := []struct {
		name   string
		loc    Locator
		want   document.Position
		wantOK bool
	}{
		{"inside block", Fixed(0, 3), pos(0, 3), true},
		{"offset clamped high", Fixed(1, 99), pos(1, 2), true},
		{"offset clamped low", Fixed(1, -4), pos(1, 0), true},
		{"interactive slot counts", Fixed(2, 3), pos(2, 3), true},
		{"block past end", Fixed(3, 0), document.Position{}, false},
		{"negative block", Fixed(-1, 0), document.Position{}, false},
		{"nowhere", Nowhere, document.Position{}, false},
		{"nil locator", nil, document.Position{}, false},
		{"nil func", LocatorFunc(nil), document.Position{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(doc, tt.loc)
			if ok != tt.wantOK {
				t.Fatalf("Resolve ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Resolve = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveSelection(t *testing.T) {
	doc := threeBlocks()
	sel, ok := ResolveSelection(doc, Fixed(1, 1))
	if !ok {
		t.Fatal("expected resolution")
	}
	if !sel.IsCollapsed() || sel.Start != pos(1, 1) {
		t.Errorf("selection = %+v", sel)
	}
	if _, ok := ResolveSelection(doc, Nowhere); ok {
		t.Error("Nowhere should not resolve")
	}
}

func TestLocatorFuncIsLive(t *testing.T) {
	doc := threeBlocks()
	block := 0
	loc := LocatorFunc(func() (Location, bool) { return Location{Block: block, Offset: 1}, true })

	p, _ := Resolve(doc, loc)
	if p.Block != 0 {
		t.Fatalf("block = %d", p.Block)
	}
	block = 2
	p, _ = Resolve(doc, loc)
	if p.Block != 2 {
		t.Errorf("locator not re-read: block = %d", p.Block)
	}
}

// Navigation Tests

func TestVertical(t *testing.T) {
	doc := threeBlocks()

	tests := []struct {
		name   string
		from   document.Position
		dir    Direction
		want   document.Position
		wantOK bool
	}{
		{"down", pos(0, 1), Forward, pos(1, 1), true},
		{"down clamps offset", pos(0, 5), Forward, pos(1, 2), true},
		{"up", pos(2, 0), Backward, pos(1, 0), true},
		{"up at top", pos(0, 2), Backward, pos(0, 2), false},
		{"down at bottom", pos(2, 1), Forward, pos(2, 1), false},
		{"zero direction", pos(1, 1), 0, pos(1, 1), false},
		{"large direction is one step", pos(0, 0), 5, pos(1, 0), true},
		{"invalid block", pos(9, 0), Backward, pos(9, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Vertical(doc, tt.from, tt.dir)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Vertical(%v, %d) = %v, %v; want %v, %v", tt.from, tt.dir, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestHorizontal(t *testing.T) {
	doc := threeBlocks()

	tests := []struct {
		name   string
		from   document.Position
		dir    Direction
		want   document.Position
		wantOK bool
	}{
		{"right", pos(0, 0), Forward, pos(0, 1), true},
		{"right wraps", pos(0, 5), Forward, pos(1, 0), true},
		{"left", pos(1, 2), Backward, pos(1, 1), true},
		{"left wraps", pos(1, 0), Backward, pos(0, 5), true},
		{"right over interactive", pos(2, 1), Forward, pos(2, 2), true},
		{"document start", pos(0, 0), Backward, pos(0, 0), false},
		{"document end", pos(2, 3), Forward, pos(2, 3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Horizontal(doc, tt.from, tt.dir)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Horizontal(%v, %d) = %v, %v; want %v, %v", tt.from, tt.dir, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestBlockStartEnd(t *testing.T) {
	doc := threeBlocks()
	if got := BlockStart(pos(1, 2)); got != pos(1, 0) {
		t.Errorf("BlockStart = %v", got)
	}
	if got := BlockEnd(doc, pos(2, 0)); got != pos(2, 3) {
		t.Errorf("BlockEnd = %v", got)
	}
}

// Selection Tests

func TestExtendKeepsAnchor(t *testing.T) {
	sel := document.Collapsed(pos(1, 1))
	sel = Extend(sel, pos(0, 2))
	if sel.Start != pos(1, 1) || sel.End != pos(0, 2) {
		t.Errorf("Extend = %+v", sel)
	}
	if got := CollapseToStart(sel); got.Start != pos(0, 2) || !got.IsCollapsed() {
		t.Errorf("CollapseToStart = %+v", got)
	}
	if got := CollapseToEnd(sel); got.Start != pos(1, 1) || !got.IsCollapsed() {
		t.Errorf("CollapseToEnd = %+v", got)
	}
}

func TestSelectBlockAndAll(t *testing.T) {
	doc := threeBlocks()

	sel, ok := SelectBlock(doc, 0)
	if !ok || sel.Start != pos(0, 0) || sel.End != pos(0, 5) {
		t.Errorf("SelectBlock(0) = %+v, %v", sel, ok)
	}
	if _, ok := SelectBlock(doc, 3); ok {
		t.Error("SelectBlock(3) should fail")
	}

	all := SelectAll(doc)
	if all.Start != pos(0, 0) || all.End != pos(2, 3) {
		t.Errorf("SelectAll = %+v", all)
	}
	if empty := SelectAll(document.New()); !empty.IsCollapsed() {
		t.Errorf("SelectAll(empty) = %+v", empty)
	}
}

func TestMove(t *testing.T) {
	doc := threeBlocks()
	sel := document.Collapsed(pos(0, 4))

	sel = Move(doc, sel, Horizontal, Forward, true)
	if sel.Start != pos(0, 4) || sel.End != pos(0, 5) {
		t.Fatalf("extend right = %+v", sel)
	}
	sel = Move(doc, sel, Vertical, Forward, true)
	if sel.Start != pos(0, 4) || sel.End != pos(1, 2) {
		t.Fatalf("extend down = %+v", sel)
	}
	sel = Move(doc, sel, Vertical, Forward, false)
	if !sel.IsCollapsed() || sel.End != pos(2, 2) {
		t.Fatalf("move down = %+v", sel)
	}

	// Blocked moves keep the head.
	sel = Move(doc, sel, Vertical, Forward, false)
	if !sel.IsCollapsed() || sel.End != pos(2, 2) {
		t.Errorf("blocked move = %+v", sel)
	}
	ext := Extend(sel, pos(2, 3))
	if got := Move(doc, ext, Horizontal, Forward, true); got != ext {
		t.Errorf("blocked extend = %+v", got)
	}
}
