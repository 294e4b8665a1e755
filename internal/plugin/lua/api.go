package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/blockpad/internal/engine/document"
)

const docTypeName = "blockpad.doc"

// docRef is the snapshot a doc handle edits. Each method replaces doc.
type docRef struct {
	doc document.Document
}

var docMethods = map[string]lua.LGFunction{
	"len":        docLen,
	"current":    docCurrent,
	"selection":  docSelection,
	"select":     docSelect,
	"text":       docText,
	"kind":       docKind,
	"indent":     docIndent,
	"set_text":   docSetText,
	"set_kind":   docSetKind,
	"set_indent": docSetIndent,
	"insert":     docInsert,
	"format":     docFormat,
	"split":      docSplit,
	"components": docComponents,
}

func registerDocType(L *lua.LState) {
	mt := L.NewTypeMetatable(docTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), docMethods))
}

func newDocHandle(L *lua.LState, ref *docRef) *lua.LUserData {
	ud := L.NewUserData()
	ud.Value = ref
	L.SetMetatable(ud, L.GetTypeMetatable(docTypeName))
	return ud
}

func checkDoc(L *lua.LState) *docRef {
	ud := L.CheckUserData(1)
	if ref, ok := ud.Value.(*docRef); ok {
		return ref
	}
	L.ArgError(1, "doc expected")
	return nil
}

func checkBlock(L *lua.LState, ref *docRef, n int) int {
	i := L.CheckInt(n)
	if !ref.doc.Valid(i) {
		L.ArgError(n, "block index out of range")
	}
	return i
}

// doc:len() -> number of blocks
func docLen(L *lua.LState) int {
	L.Push(lua.LNumber(checkDoc(L).doc.Len()))
	return 1
}

// doc:current() -> block the selection starts in
func docCurrent(L *lua.LState) int {
	L.Push(lua.LNumber(checkDoc(L).doc.Selection().Start.Block))
	return 1
}

// doc:selection() -> start_block, start_offset, end_block, end_offset
func docSelection(L *lua.LState) int {
	sel := checkDoc(L).doc.Selection()
	L.Push(lua.LNumber(sel.Start.Block))
	L.Push(lua.LNumber(sel.Start.Offset))
	L.Push(lua.LNumber(sel.End.Block))
	L.Push(lua.LNumber(sel.End.Offset))
	return 4
}

// doc:select(block, offset [, end_block, end_offset])
func docSelect(L *lua.LState) int {
	ref := checkDoc(L)
	start := document.Position{Block: L.CheckInt(2), Offset: L.CheckInt(3)}
	end := document.Position{Block: L.OptInt(4, start.Block), Offset: L.OptInt(5, start.Offset)}
	ref.doc = ref.doc.WithSelection(document.Selection{Start: start, End: end})
	return 0
}

// doc:text(block) -> string
func docText(L *lua.LState) int {
	ref := checkDoc(L)
	L.Push(lua.LString(ref.doc.BlockText(checkBlock(L, ref, 2))))
	return 1
}

// doc:kind(block) -> string
func docKind(L *lua.LState) int {
	ref := checkDoc(L)
	b, _ := ref.doc.Block(checkBlock(L, ref, 2))
	L.Push(lua.LString(b.Kind))
	return 1
}

// doc:indent(block) -> number
func docIndent(L *lua.LState) int {
	ref := checkDoc(L)
	b, _ := ref.doc.Block(checkBlock(L, ref, 2))
	L.Push(lua.LNumber(b.Indent))
	return 1
}

// doc:set_text(block, text) keeps the formatting of the block's first run.
func docSetText(L *lua.LState) int {
	ref := checkDoc(L)
	i := checkBlock(L, ref, 2)
	text := L.CheckString(3)
	f := ref.doc.FormattingAt(document.Position{Block: i})
	ref.doc = ref.doc.ReplaceBlockText(i, text, f)
	return 0
}

// doc:set_kind(block, kind)
func docSetKind(L *lua.LState) int {
	ref := checkDoc(L)
	i := checkBlock(L, ref, 2)
	kind, ok := document.ParseKind(L.CheckString(3))
	if !ok {
		L.ArgError(3, "unknown block kind")
	}
	ref.doc = ref.doc.SetKind(i, kind)
	return 0
}

// doc:set_indent(block, n)
func docSetIndent(L *lua.LState) int {
	ref := checkDoc(L)
	i := checkBlock(L, ref, 2)
	ref.doc = ref.doc.SetIndent(i, L.CheckInt(3))
	return 0
}

// doc:insert(text) inserts at the selection start and moves the cursor
// after the inserted text.
func docInsert(L *lua.LState) int {
	ref := checkDoc(L)
	text := L.CheckString(2)
	at := ref.doc.Selection().Normalized().Start
	before := ref.doc.BlockLen(at.Block)
	ref.doc = ref.doc.InsertText(at, text)
	at.Offset += ref.doc.BlockLen(at.Block) - before
	ref.doc = ref.doc.WithSelection(document.Collapsed(at))
	return 0
}

// doc:format(block, start, end, {bold=, italic=, underline=, heading=})
// sets the given attributes over [start, end). start == end formats the
// whole block.
func docFormat(L *lua.LState) int {
	ref := checkDoc(L)
	i := checkBlock(L, ref, 2)
	start, end := L.CheckInt(3), L.CheckInt(4)
	patch := L.CheckTable(5)

	ref.doc = ref.doc.MapFormatting(i, start, end, func(f document.Formatting) document.Formatting {
		return applyFormatting(f, patch)
	})
	return 0
}

// doc:split() splits the block at the cursor.
func docSplit(L *lua.LState) int {
	ref := checkDoc(L)
	at := ref.doc.Selection().Start
	ref.doc = ref.doc.SplitBlock(at).WithSelection(document.Collapsed(document.Position{Block: at.Block + 1}))
	return 0
}

// doc:components() -> array of {id, type, content, block, offset}
func docComponents(L *lua.LState) int {
	ref := checkDoc(L)
	out := L.NewTable()
	for _, c := range ref.doc.Components() {
		t := L.NewTable()
		t.RawSetString("id", lua.LString(c.ID))
		t.RawSetString("type", lua.LString(c.Type))
		t.RawSetString("content", lua.LString(c.Content))
		t.RawSetString("block", lua.LNumber(c.BlockIndex))
		t.RawSetString("offset", lua.LNumber(c.Offset))
		out.Append(t)
	}
	L.Push(out)
	return 1
}

// applyFormatting overlays the fields present in patch onto f.
func applyFormatting(f document.Formatting, patch *lua.LTable) document.Formatting {
	if v := patch.RawGetString("bold"); v != lua.LNil {
		f.Bold = lua.LVAsBool(v)
	}
	if v := patch.RawGetString("italic"); v != lua.LNil {
		f.Italic = lua.LVAsBool(v)
	}
	if v := patch.RawGetString("underline"); v != lua.LNil {
		f.Underline = lua.LVAsBool(v)
	}
	if v, ok := patch.RawGetString("heading").(lua.LNumber); ok {
		f.Heading = max(0, min(int(v), document.MaxHeading))
	}
	return f
}
