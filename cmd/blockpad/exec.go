package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/blockpad/internal/app"
	"github.com/dshills/blockpad/internal/clipboard"
	"github.com/dshills/blockpad/internal/dispatcher"
	"github.com/dshills/blockpad/internal/engine/cursor"
	"github.com/dshills/blockpad/internal/engine/document"
	"github.com/dshills/blockpad/internal/input/key"
)

func newExecCmd(g *globals) *cobra.Command {
	var (
		input, from, to, output string
		block, offset           int
		keys                    string
		trace                   bool
	)

	cmd := &cobra.Command{
		Use:   "exec [command-id...]",
		Short: "Run commands against a document",
		Long: `Exec loads a document, places the cursor, runs each command in order and
writes the result. --keys feeds comma-separated chords through the keymap
after the commands, for example --keys "Ctrl+B,Ctrl+Z".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			codec := clipboard.NewCodec()
			data, err := readInput(input)
			if err != nil {
				return err
			}
			blocks, err := decodeBlocks(codec, data, from)
			if err != nil {
				return err
			}

			e, err := g.newEditor(app.WithDocument(document.FromBlocks(blocks...)))
			if err != nil {
				return err
			}
			defer e.Close()

			if trace {
				stderr := cmd.ErrOrStderr()
				e.Hooks().Register(dispatcher.NewPostFunc("cli.trace", 0, func(c dispatcher.Command, out dispatcher.Outcome) {
					fmt.Fprintf(stderr, "%-20s %-9s %s\n", c.ID, out.Status, out.Took)
				}))
			}
			if !e.MoveTo(cursor.Fixed(block, offset)) {
				return fmt.Errorf("block %d is outside the document", block)
			}
			for _, id := range args {
				changed, err := e.Execute(id)
				if err != nil {
					return err
				}
				g.log.Debug().Str("command", id).Bool("changed", changed).Msg("executed")
			}
			if err := feedKeys(e, keys); err != nil {
				return err
			}

			out, err := encodeBlocks(codec, e.Document().Blocks(), to, g.pretty)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, out)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&input, "input", "i", "", "input file (stdin when empty)")
	flags.StringVarP(&from, "from", "f", "native", "input format: native, html or plain")
	flags.StringVarP(&to, "to", "t", "native", "output format: native, html or plain")
	flags.StringVarP(&output, "output", "o", "", "output file (stdout when empty)")
	flags.IntVar(&block, "block", 0, "cursor block index")
	flags.IntVar(&offset, "offset", 0, "cursor offset within the block")
	flags.StringVar(&keys, "keys", "", "comma-separated chords to press after the commands")
	flags.BoolVar(&trace, "trace", false, "print each command outcome to stderr")
	return cmd
}

// feedKeys parses each chord and routes it through the editor keymaps.
func feedKeys(e *app.Editor, chords string) error {
	for _, spec := range strings.Split(chords, ",") {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		ev, err := key.Parse(spec)
		if err != nil {
			return err
		}
		if _, err := e.HandleKey(ev); err != nil {
			return fmt.Errorf("key %s: %w", spec, err)
		}
	}
	return nil
}
