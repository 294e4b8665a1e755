package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tidwall/pretty"

	"github.com/dshills/blockpad/internal/clipboard"
	"github.com/dshills/blockpad/internal/engine/document"
)

// formatMIME maps a --from/--to name to its clipboard format.
func formatMIME(name string) (string, error) {
	switch strings.ToLower(name) {
	case "native", "json", "blocks":
		return clipboard.MIMENative, nil
	case "html":
		return clipboard.MIMEHTML, nil
	case "plain", "text", "txt":
		return clipboard.MIMEPlain, nil
	default:
		return "", fmt.Errorf("unknown format %q (want native, html or plain)", name)
	}
}

// readInput reads path, or stdin when path is "" or "-".
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// decodeBlocks parses data in the named format.
func decodeBlocks(codec *clipboard.Codec, data []byte, format string) ([]document.Block, error) {
	mime, err := formatMIME(format)
	if err != nil {
		return nil, err
	}
	blocks, _, err := codec.Decode(clipboard.Payload{mime: string(data)})
	if err != nil {
		return nil, fmt.Errorf("decoding %s input: %w", format, err)
	}
	return blocks, nil
}

// encodeBlocks renders blocks in the named format. Native JSON is indented
// when indent is set.
func encodeBlocks(codec *clipboard.Codec, blocks []document.Block, format string, indent bool) ([]byte, error) {
	mime, err := formatMIME(format)
	if err != nil {
		return nil, err
	}
	out, _ := codec.Encode(blocks).Get(mime)
	data := []byte(out)
	switch {
	case mime == clipboard.MIMENative && indent:
		data = pretty.Pretty(data)
	case !strings.HasSuffix(out, "\n"):
		data = append(data, '\n')
	}
	return data, nil
}

// writeOutput writes data to path, or stdout when path is "" or "-".
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
