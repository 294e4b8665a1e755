package document

import (
	"strings"

	"github.com/rivo/uniseg"
)

// graphemeCount returns the number of grapheme clusters in s.
func graphemeCount(s string) int {
	if s == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(s)
}

// graphemeSplit splits s before the grapheme cluster at index at.
func graphemeSplit(s string, at int) (string, string) {
	if at <= 0 {
		return "", s
	}
	g := uniseg.NewGraphemes(s)
	idx := 0
	for g.Next() {
		if idx == at {
			from, _ := g.Positions()
			return s[:from], s[from:]
		}
		idx++
	}
	return s, ""
}

// graphemeSlice returns the clusters of s in [start, end).
func graphemeSlice(s string, start, end int) string {
	if s == "" || end <= start {
		return ""
	}
	var sb strings.Builder
	g := uniseg.NewGraphemes(s)
	idx := 0
	for g.Next() {
		if idx >= end {
			break
		}
		if idx >= start {
			sb.WriteString(g.Str())
		}
		idx++
	}
	return sb.String()
}

// ObjectReplacement stands in for an Interactive node in Slots.
const ObjectReplacement = "￼"

// Slots returns the content of block i one offset slot at a time: a grapheme
// cluster per Text slot and ObjectReplacement per Interactive node.
func (d Document) Slots(i int) []string {
	if !d.Valid(i) {
		return nil
	}
	b := d.all()[i]
	out := make([]string, 0, b.Len())
	for _, n := range b.Children {
		switch n := n.(type) {
		case Text:
			g := uniseg.NewGraphemes(n.Text)
			for g.Next() {
				out = append(out, g.Str())
			}
		case Interactive:
			out = append(out, ObjectReplacement)
		}
	}
	return out
}
