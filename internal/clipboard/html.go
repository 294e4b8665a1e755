package clipboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dshills/blockpad/internal/engine/document"
)

// ErrNoBlocks is returned when markup holds no elements to decode.
var ErrNoBlocks = errors.New("clipboard: markup has no blocks")

// Markup attributes.
const (
	attrIndent        = "data-indent"
	attrHeading       = "data-heading"
	attrComponentType = "data-component-type"
	attrProps         = "data-props"
	classCallout      = "callout"
)

// EncodeHTML renders blocks as one top-level element per block.
func EncodeHTML(blocks []document.Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		encodeBlock(&sb, b)
	}
	return sb.String()
}

// uniformHeading returns the heading shared by every Text run of b, or 0.
func uniformHeading(b document.Block) int {
	level := -1
	for _, c := range b.Children {
		t, ok := c.(document.Text)
		if !ok {
			continue
		}
		switch {
		case level == -1:
			level = t.Formatting.Heading
		case level != t.Formatting.Heading:
			return 0
		}
	}
	return max(level, 0)
}

func encodeBlock(sb *strings.Builder, b document.Block) {
	heading := 0
	tag, class := "p", ""
	switch b.Kind {
	case document.KindQuote:
		tag = "blockquote"
	case document.KindCode:
		tag = "pre"
	case document.KindCallout:
		tag, class = "div", classCallout
	case document.KindListItem:
		tag = "li"
	default:
		if heading = uniformHeading(b); heading > 0 {
			tag = "h" + strconv.Itoa(heading)
		}
	}

	sb.WriteString("<" + tag)
	if class != "" {
		sb.WriteString(` class="` + class + `"`)
	}
	if b.Indent > 0 {
		sb.WriteString(` ` + attrIndent + `="` + strconv.Itoa(b.Indent) + `"`)
	}
	sb.WriteString(">")

	for _, c := range b.Children {
		switch n := c.(type) {
		case document.Text:
			encodeRun(sb, n, heading)
		case document.Interactive:
			encodeInteractive(sb, n)
		}
	}
	sb.WriteString("</" + tag + ">")
}

func encodeRun(sb *strings.Builder, t document.Text, blockHeading int) {
	var styles []string
	f := t.Formatting
	switch {
	case f.Bold:
		styles = append(styles, "font-weight:bold")
	case blockHeading > 0:
		// Heading tags are bold by default.
		styles = append(styles, "font-weight:normal")
	}
	if f.Italic {
		styles = append(styles, "font-style:italic")
	}
	if f.Underline {
		styles = append(styles, "text-decoration:underline")
	}

	text := html.EscapeString(t.Text)
	headingAttr := f.Heading > 0 && blockHeading == 0
	if len(styles) == 0 && !headingAttr {
		sb.WriteString(text)
		return
	}
	sb.WriteString("<span")
	if len(styles) > 0 {
		sb.WriteString(` style="` + strings.Join(styles, ";") + `"`)
	}
	if headingAttr {
		sb.WriteString(` ` + attrHeading + `="` + strconv.Itoa(f.Heading) + `"`)
	}
	sb.WriteString(">" + text + "</span>")
}

func encodeInteractive(sb *strings.Builder, n document.Interactive) {
	props := n.Props
	if props == nil {
		props = map[string]any{}
	}
	raw, err := json.Marshal(props)
	if err != nil {
		raw = []byte("{}")
	}
	sb.WriteString(`<span ` + attrComponentType + `="` + html.EscapeString(n.ComponentType) + `" ` +
		attrProps + `="` + html.EscapeString(string(raw)) + `"></span>`)
}

// DecodeHTML parses markup into blocks. Each top-level block element becomes
// one block; its kind comes from the tag or class and the formatting of every
// text node is resolved from the tags and inline styles of its ancestors.
// Items of ul and ol lists become list items indented by nesting depth. Loose
// text and inline elements between blocks become a paragraph. Markup holding
// no element at all yields ErrNoBlocks.
func DecodeHTML(markup string) ([]document.Block, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	d := &htmlDecoder{}
	d.visit(nodes, 0)
	if !d.structured || len(d.blocks) == 0 {
		return nil, ErrNoBlocks
	}
	return d.blocks, nil
}

type htmlDecoder struct {
	blocks     []document.Block
	structured bool
}

// visit decodes sibling nodes. depth is the list nesting level.
func (d *htmlDecoder) visit(nodes []*html.Node, depth int) {
	var loose []*html.Node
	flush := func() {
		if len(loose) > 0 {
			d.loose(loose)
			loose = nil
		}
	}

	for _, n := range nodes {
		switch {
		case n.Type == html.TextNode:
			loose = append(loose, n)
			continue
		case n.Type != html.ElementNode || skipElement(n):
			continue
		case n.DataAtom == atom.Html || n.DataAtom == atom.Body:
			// Documents copied from browsers arrive wrapped in html/body.
			flush()
			d.visit(children(n), depth)
			continue
		}

		d.structured = true
		if !isBlockElement(n) {
			loose = append(loose, n)
			continue
		}
		flush()
		switch n.DataAtom {
		case atom.Ul, atom.Ol:
			d.visit(children(n), depth+1)
		case atom.Li:
			d.blocks = append(d.blocks, decodeBlock(n, max(depth-1, 0)))
			d.visit(nestedLists(n), depth)
		default:
			d.blocks = append(d.blocks, decodeBlock(n, 0))
		}
	}
	flush()
}

// loose turns a run of text and inline elements outside any block element
// into a paragraph. Whitespace-only runs are dropped.
func (d *htmlDecoder) loose(nodes []*html.Node) {
	var inline []document.Inline
	collectNodes(nodes, document.Formatting{}, false, &inline)
	b := document.NewBlock(document.KindParagraph, inline...)
	if strings.TrimSpace(b.Text()) == "" && !hasInteractive(b) {
		return
	}
	d.blocks = append(d.blocks, b)
}

func hasInteractive(b document.Block) bool {
	for _, c := range b.Children {
		if _, ok := c.(document.Interactive); ok {
			return true
		}
	}
	return false
}

func isBlockElement(n *html.Node) bool {
	switch n.DataAtom {
	case atom.P, atom.Div, atom.Blockquote, atom.Pre,
		atom.Ul, atom.Ol, atom.Li,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

func isList(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.DataAtom == atom.Ul || n.DataAtom == atom.Ol)
}

// nestedLists returns the ul and ol children of a list item.
func nestedLists(li *html.Node) []*html.Node {
	var out []*html.Node
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if isList(c) {
			out = append(out, c)
		}
	}
	return out
}

func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

func skipElement(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Head, atom.Meta, atom.Style, atom.Script, atom.Title, atom.Link:
		return true
	}
	return false
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, _ := attr(n, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func headingLevel(n *html.Node) int {
	switch n.DataAtom {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 0
}

func decodeBlock(n *html.Node, indent int) document.Block {
	kind := document.KindParagraph
	switch {
	case n.DataAtom == atom.Blockquote:
		kind = document.KindQuote
	case n.DataAtom == atom.Pre:
		kind = document.KindCode
	case hasClass(n, classCallout):
		kind = document.KindCallout
	case n.DataAtom == atom.Li:
		kind = document.KindListItem
	}

	if v, ok := attr(n, attrIndent); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && i > 0 {
			indent = i
		}
	}

	var inline []document.Inline
	collectNodes(children(n), applyElement(document.Formatting{}, n), n.DataAtom == atom.Li, &inline)
	b := document.NewBlock(kind, inline...)
	b.Indent = indent
	return b
}

// collectNodes appends the inline content of nodes, with f the formatting
// resolved for their parent. Nested lists are left out when skipLists is set;
// they are decoded as blocks of their own.
func collectNodes(nodes []*html.Node, f document.Formatting, skipLists bool, out *[]document.Inline) {
	for _, c := range nodes {
		switch c.Type {
		case html.TextNode:
			*out = append(*out, document.Text{Text: c.Data, Formatting: f})
		case html.ElementNode:
			if skipElement(c) || (skipLists && isList(c)) {
				continue
			}
			if typ, ok := attr(c, attrComponentType); ok {
				*out = append(*out, decodeInteractive(c, typ))
				continue
			}
			if c.DataAtom == atom.Br {
				*out = append(*out, document.Text{Text: "\n", Formatting: f})
				continue
			}
			collectNodes(children(c), applyElement(f, c), false, out)
		}
	}
}

func decodeInteractive(n *html.Node, typ string) document.Interactive {
	props := map[string]any{}
	if raw, ok := attr(n, attrProps); ok && gjson.Valid(raw) && gjson.Parse(raw).IsObject() {
		_ = json.Unmarshal([]byte(raw), &props)
	}
	return document.Interactive{ComponentType: typ, Props: props}
}

// applyElement layers the tag defaults and inline style of n over the
// inherited formatting f.
func applyElement(f document.Formatting, n *html.Node) document.Formatting {
	switch n.DataAtom {
	case atom.B, atom.Strong:
		f.Bold = true
	case atom.I, atom.Em:
		f.Italic = true
	case atom.U, atom.Ins:
		f.Underline = true
	}
	if level := headingLevel(n); level > 0 {
		f.Bold = true
		f.Heading = level
	}
	if v, ok := attr(n, attrHeading); ok {
		if level, err := strconv.Atoi(v); err == nil && level >= 0 && level <= document.MaxHeading {
			f.Heading = level
		}
	}
	if style, ok := attr(n, "style"); ok {
		f = applyStyle(f, style)
	}
	return f
}

func applyStyle(f document.Formatting, style string) document.Formatting {
	for _, decl := range strings.Split(style, ";") {
		prop, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		value = strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "!important")))

		switch prop {
		case "font-weight":
			if bold, ok := parseWeight(value); ok {
				f.Bold = bold
			}
		case "font-style":
			switch value {
			case "italic", "oblique":
				f.Italic = true
			case "normal":
				f.Italic = false
			}
		case "text-decoration", "text-decoration-line":
			switch {
			case strings.Contains(value, "underline"):
				f.Underline = true
			case value == "none":
				f.Underline = false
			}
		}
	}
	return f
}

func parseWeight(v string) (bold, ok bool) {
	switch v {
	case "bold", "bolder":
		return true, true
	case "normal", "lighter":
		return false, true
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n >= 600, true
	}
	return false, false
}
