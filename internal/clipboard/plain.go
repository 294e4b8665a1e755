package clipboard

import (
	"strings"

	"github.com/dshills/blockpad/internal/engine/document"
)

// EncodePlain joins the text of blocks with newlines. Interactive nodes
// contribute nothing.
func EncodePlain(blocks []document.Block) string {
	lines := make([]string, len(blocks))
	for i, b := range blocks {
		lines[i] = b.Text()
	}
	return strings.Join(lines, "\n")
}

// DecodePlain returns one unformatted paragraph per line of text. A trailing
// carriage return on each line is dropped. It never fails.
func DecodePlain(text string) []document.Block {
	lines := strings.Split(text, "\n")
	blocks := make([]document.Block, len(lines))
	for i, line := range lines {
		blocks[i] = document.Paragraph(strings.TrimSuffix(line, "\r"))
	}
	return blocks
}
