package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/blockpad/internal/engine/document"
)

func TestEncodeHTML(t *testing.T) {
	heading := document.NewBlock(document.KindParagraph,
		document.Text{Text: "Title", Formatting: document.Formatting{Heading: 2}},
	)
	callout := document.NewBlock(document.KindCallout, document.Text{Text: "a<b", Formatting: document.Formatting{Italic: true, Underline: true}})
	callout.Indent = 1

	got := EncodeHTML([]document.Block{heading, callout})
	assert.Equal(t,
		`<h2><span style="font-weight:normal">Title</span></h2>`+
			`<div class="callout" data-indent="1"><span style="font-style:italic;text-decoration:underline">a&lt;b</span></div>`,
		got)
}

func TestDecodeHTMLKinds(t *testing.T) {
	markup := `<p>para</p><blockquote>quote</blockquote><pre>code</pre>` +
		`<div class="note callout">call</div><li>item</li><h3>head</h3><div data-indent="3">deep</div>`
	blocks, err := DecodeHTML(markup)
	require.NoError(t, err)
	require.Len(t, blocks, 7)

	kinds := []document.Kind{
		document.KindParagraph, document.KindQuote, document.KindCode,
		document.KindCallout, document.KindListItem, document.KindParagraph, document.KindParagraph,
	}
	for i, want := range kinds {
		assert.Equal(t, want, blocks[i].Kind, "block %d", i)
	}

	head := blocks[5].Children[0].(document.Text)
	assert.Equal(t, document.Formatting{Bold: true, Heading: 3}, head.Formatting)
	assert.Equal(t, 3, blocks[6].Indent)
}

func TestDecodeHTMLFormattingInheritance(t *testing.T) {
	markup := `<p style="font-style: italic">a<b>b<span style="font-weight: 400">c</span></b>` +
		`<u>d</u><em style="font-style:normal">e</em><span style="text-decoration: underline overline">f</span></p>`
	blocks, err := DecodeHTML(markup)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	want := []document.Text{
		{Text: "a", Formatting: document.Formatting{Italic: true}},
		{Text: "b", Formatting: document.Formatting{Italic: true, Bold: true}},
		{Text: "c", Formatting: document.Formatting{Italic: true}},
		{Text: "d", Formatting: document.Formatting{Italic: true, Underline: true}},
		{Text: "e"},
		{Text: "f", Formatting: document.Formatting{Italic: true, Underline: true}},
	}
	var got []document.Text
	for _, c := range blocks[0].Children {
		got = append(got, c.(document.Text))
	}
	assert.Equal(t, want, got)
}

func TestDecodeHTMLInteractive(t *testing.T) {
	markup := `<p>hi <span data-component-type="mention" data-props="{&quot;id&quot;:&quot;m1&quot;}"></span>` +
		`<span data-component-type="tag" data-props="not json"></span></p>`
	blocks, err := DecodeHTML(markup)
	require.NoError(t, err)
	require.Len(t, blocks[0].Children, 3)

	m := blocks[0].Children[1].(document.Interactive)
	assert.Equal(t, "mention", m.ComponentType)
	assert.Equal(t, "m1", m.ComponentID())

	tag := blocks[0].Children[2].(document.Interactive)
	assert.Empty(t, tag.Props)
}

func TestDecodeHTMLBrowserWrapper(t *testing.T) {
	markup := "<html><head><meta charset=\"utf-8\"></head><body>\n<!--StartFragment--><p>one</p>\n<p>two</p><!--EndFragment-->\n</body></html>"
	blocks, err := DecodeHTML(markup)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, "one", blocks[0].Text())
	assert.Equal(t, "two", blocks[1].Text())
}

func TestDecodeHTMLNoBlocks(t *testing.T) {
	for _, markup := range []string{"", "plain text only", "<!-- c -->", "<meta charset=utf-8>"} {
		_, err := DecodeHTML(markup)
		assert.ErrorIs(t, err, ErrNoBlocks, markup)
	}
}

func TestDecodeHTMLLooseText(t *testing.T) {
	blocks, err := DecodeHTML(`foo <b>bar</b><p>baz</p>tail`)
	require.NoError(t, err)
	require.Len(t, blocks, 3)
	for i, want := range []string{"foo bar", "baz", "tail"} {
		assert.Equal(t, document.KindParagraph, blocks[i].Kind, "block %d", i)
		assert.Equal(t, want, blocks[i].Text(), "block %d", i)
	}
	bar := blocks[0].Children[1].(document.Text)
	assert.True(t, bar.Formatting.Bold)

	// Whitespace between block elements is not a paragraph.
	blocks, err = DecodeHTML("<p>one</p>\n  <p>two</p>")
	require.NoError(t, err)
	assert.Len(t, blocks, 2)
}

func TestDecodeHTMLLists(t *testing.T) {
	markup := `<ul><li>a</li><li>b<ol><li>b1</li><li>b2</li></ol></li></ul><p>after</p>`
	blocks, err := DecodeHTML(markup)
	require.NoError(t, err)
	require.Len(t, blocks, 5)

	want := []struct {
		text   string
		kind   document.Kind
		indent int
	}{
		{"a", document.KindListItem, 0},
		{"b", document.KindListItem, 0},
		{"b1", document.KindListItem, 1},
		{"b2", document.KindListItem, 1},
		{"after", document.KindParagraph, 0},
	}
	for i, w := range want {
		assert.Equal(t, w.text, blocks[i].Text(), "block %d", i)
		assert.Equal(t, w.kind, blocks[i].Kind, "block %d", i)
		assert.Equal(t, w.indent, blocks[i].Indent, "block %d", i)
	}
}

func TestHTMLRoundTrip(t *testing.T) {
	blocks := fourBlocks().Blocks()
	blocks = append(blocks, document.NewBlock(document.KindParagraph,
		document.Text{Text: "Big ", Formatting: document.Formatting{Heading: 1}},
		document.Text{Text: "bold", Formatting: document.Formatting{Heading: 1, Bold: true}},
	))

	decoded, err := DecodeHTML(EncodeHTML(blocks))
	require.NoError(t, err)
	require.Len(t, decoded, len(blocks))
	for i := range blocks {
		assert.True(t, blocks[i].Equal(decoded[i]), "block %d: %+v != %+v", i, blocks[i], decoded[i])
	}
}

func TestPlain(t *testing.T) {
	blocks := DecodePlain("a\r\n\nb")
	require.Len(t, blocks, 3)
	assert.Equal(t, "", blocks[1].Text())
	assert.Equal(t, "a\n\nb", EncodePlain(blocks))
}
