package lua

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/blockpad/internal/dispatcher"
	"github.com/dshills/blockpad/internal/engine/document"
)

const shoutScript = `
blockpad.command{
    id = "shout",
    label = "Shout",
    shortcut = "!!",
    run = function(doc)
        local b = doc:current()
        doc:set_text(b, string.upper(doc:text(b)))
    end,
}

blockpad.command{
    id = "quote-all",
    label = "Quote Everything",
    category = "Blocks",
    run = function(doc)
        for i = 0, doc:len() - 1 do
            doc:set_kind(i, "quote")
            doc:set_indent(i, doc:indent(i) + 1)
        end
    end,
}
`

func newTestState(t *testing.T, opts ...StateOption) *State {
	t.Helper()
	s := NewState(opts...)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoadStringCommands(t *testing.T) {
	s := newTestState(t)
	cmds, err := s.LoadString("lua:test", shoutScript)
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want 2", len(cmds))
	}

	shout := cmds[0]
	if shout.ID != "shout" || shout.Label != "Shout" || shout.Shortcut != "!!" {
		t.Errorf("shout = %+v", shout)
	}
	if shout.Category != "Lua" || shout.Source != "lua:test" {
		t.Errorf("defaults: category=%q source=%q", shout.Category, shout.Source)
	}
	if cmds[1].Category != "Blocks" {
		t.Errorf("category = %q", cmds[1].Category)
	}

	doc := document.FromBlocks(document.Paragraph("a"), document.Paragraph("hello"))
	doc = doc.WithSelection(document.Collapsed(document.Position{Block: 1, Offset: 2}))

	out := shout.Execute(doc)
	if out.BlockText(1) != "HELLO" || out.BlockText(0) != "a" {
		t.Errorf("shout result = %q / %q", out.BlockText(0), out.BlockText(1))
	}
	if doc.BlockText(1) != "hello" {
		t.Error("input snapshot mutated")
	}

	out = cmds[1].Execute(doc)
	for i := 0; i < out.Len(); i++ {
		b, _ := out.Block(i)
		if b.Kind != document.KindQuote || b.Indent != 1 {
			t.Errorf("block %d = %s/%d", i, b.Kind, b.Indent)
		}
	}
}

func TestLoadFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shout.lua")
	if err := os.WriteFile(path, []byte(shoutScript), 0o600); err != nil {
		t.Fatal(err)
	}

	s := newTestState(t)
	cmds, err := s.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cmds[0].Source != "lua:shout.lua" {
		t.Errorf("Source = %q", cmds[0].Source)
	}

	if _, err := s.LoadFile(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestCommandsRegisterWithDispatcher(t *testing.T) {
	s := newTestState(t)
	cmds, err := s.LoadString("lua:test", shoutScript)
	if err != nil {
		t.Fatal(err)
	}

	reg := dispatcher.NewRegistry()
	if err := reg.RegisterAll(cmds...); err != nil {
		t.Fatal(err)
	}
	d := dispatcher.New(reg)
	target := &dispatcher.Target{Doc: document.FromBlocks(document.Paragraph("hey"))}
	if _, _, err := d.ExecuteQuery(target, "shout"); err != nil {
		t.Fatal(err)
	}
	if target.Doc.BlockText(0) != "HEY" {
		t.Errorf("text = %q", target.Doc.BlockText(0))
	}
	if n := reg.UnregisterBySource("lua:test"); n != 2 {
		t.Errorf("UnregisterBySource = %d", n)
	}
}

func TestInvalidCommandDefinitions(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"missing id", `blockpad.command{ run = function(doc) end }`},
		{"missing run", `blockpad.command{ id = "x" }`},
		{"not a table", `blockpad.command("x")`},
		{"syntax error", `blockpad.command{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(t)
			cmds, err := s.LoadString("lua:bad", tt.code)
			if err == nil {
				t.Fatalf("expected error, got %d commands", len(cmds))
			}
		})
	}
}

func TestFailingCommandLeavesDocument(t *testing.T) {
	s := newTestState(t)
	cmds, err := s.LoadString("lua:test", `
blockpad.command{ id = "boom", run = function(doc) doc:set_text(99, "x") end }
blockpad.command{ id = "kind", run = function(doc) doc:set_kind(0, "table") end }
blockpad.command{ id = "partial", run = function(doc)
    doc:set_text(0, "changed")
    error("stop")
end }
`)
	if err != nil {
		t.Fatal(err)
	}

	doc := document.FromBlocks(document.Paragraph("same"))
	for _, cmd := range cmds {
		if out := cmd.Execute(doc); !out.Equal(doc) {
			t.Errorf("%s changed the document", cmd.ID)
		}
	}
}

func TestDocAPI(t *testing.T) {
	s := newTestState(t)
	cmds, err := s.LoadString("lua:api", `
blockpad.command{ id = "api", run = function(doc)
    local sb, so, eb, eo = doc:selection()
    assert(sb == 0 and so == 2 and eb == 0 and eo == 2)
    doc:insert("XY")
    doc:format(0, 0, 2, { bold = true })
    doc:split()
    doc:select(1, 0)
    doc:insert(">")
    assert(#blockpad.kinds() == 5)
end }
`)
	if err != nil {
		t.Fatal(err)
	}

	doc := document.FromBlocks(document.Paragraph("abcd"))
	doc = doc.WithSelection(document.Collapsed(document.Position{Block: 0, Offset: 2}))
	out := cmds[0].Execute(doc)

	if out.Len() != 2 || out.BlockText(0) != "abXY" || out.BlockText(1) != ">cd" {
		t.Fatalf("blocks = %q / %q", out.BlockText(0), out.BlockText(1))
	}
	runs := out.Runs(0, 0, 0)
	if !runs[0].Formatting.Bold || runs[0].Text != "ab" {
		t.Errorf("runs = %+v", runs)
	}
	if sel := out.Selection(); sel != document.Collapsed(document.Position{Block: 1, Offset: 1}) {
		t.Errorf("selection = %+v", sel)
	}
}

func TestSandbox(t *testing.T) {
	s := newTestState(t)
	for _, name := range []string{"dofile", "loadfile", "load", "require", "io", "os"} {
		code := `assert(` + name + ` == nil, "` + name + ` available")`
		if _, err := s.LoadString("lua:sandbox", code); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if _, err := s.LoadString("lua:print", `print("hello", 1)`); err != nil {
		t.Errorf("print: %v", err)
	}
}

func TestExecutionTimeout(t *testing.T) {
	s := newTestState(t, WithExecutionTimeout(50*time.Millisecond))
	start := time.Now()
	_, err := s.LoadString("lua:loop", `while true do end`)
	if err == nil {
		t.Fatal("infinite loop should time out")
	}
	if time.Since(start) > 5*time.Second {
		t.Error("timeout not enforced")
	}
}

func TestClosedState(t *testing.T) {
	s := NewState()
	cmds, err := s.LoadString("lua:test", shoutScript)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if !s.IsClosed() {
		t.Error("IsClosed = false")
	}
	if err := s.Close(); err != nil {
		t.Error("second Close should be a no-op")
	}

	if _, err := s.LoadString("x", ""); !errors.Is(err, ErrStateClosed) {
		t.Errorf("LoadString after Close = %v", err)
	}
	doc := document.FromBlocks(document.Paragraph("keep"))
	if out := cmds[0].Execute(doc); !strings.EqualFold(out.BlockText(0), "keep") || !out.Equal(doc) {
		t.Error("closed state must leave documents unchanged")
	}
}
