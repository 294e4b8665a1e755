package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/blockpad/internal/app"
	"github.com/dshills/blockpad/internal/clipboard"
)

func newConvertCmd(g *globals) *cobra.Command {
	var from, to, output string

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a document between native, HTML and plain text",
		Long: `Convert reads a document (stdin when no file is given) in the --from format
and writes it in the --to format. Unknown HTML elements are flattened to
paragraphs; plain text becomes one paragraph per line.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec := clipboard.NewCodec(clipboard.WithLogger(app.ComponentLogger(g.log, "clipboard")))

			data, err := readInput(firstArg(args))
			if err != nil {
				return err
			}
			blocks, err := decodeBlocks(codec, data, from)
			if err != nil {
				return err
			}
			out, err := encodeBlocks(codec, blocks, to, g.pretty)
			if err != nil {
				return err
			}
			g.log.Debug().Str("from", from).Str("to", to).Int("blocks", len(blocks)).Msg("converted")
			return writeOutput(cmd.OutOrStdout(), output, out)
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "native", "input format: native, html or plain")
	cmd.Flags().StringVarP(&to, "to", "t", "html", "output format: native, html or plain")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout when empty)")
	return cmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
