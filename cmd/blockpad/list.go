package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/dshills/blockpad/internal/config/loader"
)

// commandInfo is the JSON form of a listed command.
type commandInfo struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Category string   `json:"category,omitempty"`
	Shortcut string   `json:"shortcut,omitempty"`
	Source   string   `json:"source,omitempty"`
	Keys     []string `json:"keys,omitempty"`
}

func newCommandsCmd(g *globals) *cobra.Command {
	var asJSON bool
	var limit int

	cmd := &cobra.Command{
		Use:   "commands [query]",
		Short: "List commands, optionally filtered by a palette query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.newEditor()
			if err != nil {
				return err
			}
			defer e.Close()

			var infos []commandInfo
			for _, r := range e.Palette().Search(firstArg(args), limit) {
				c := r.Command
				infos = append(infos, commandInfo{
					ID:       c.ID,
					Label:    c.Label,
					Category: c.Category,
					Shortcut: c.Shortcut,
					Source:   c.Source,
					Keys:     e.Keymaps().KeysFor(c.ID),
				})
			}

			if asJSON {
				data, err := json.Marshal(infos)
				if err != nil {
					return err
				}
				if g.pretty {
					data = pretty.Pretty(data)
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLABEL\tCATEGORY\tSHORTCUT\tKEYS")
			for _, c := range infos {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Label, c.Category, c.Shortcut, strings.Join(c.Keys, " "))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum results (0 for all)")
	return cmd
}

func newKeysCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the effective key bindings",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.newEditor()
			if err != nil {
				return err
			}
			defer e.Close()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEYS\tACTION\tKEYMAP\tDESCRIPTION")
			for _, m := range e.Keymaps().AllBindings() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Event, m.Action, m.Keymap.Name, m.Description)
			}
			return tw.Flush()
		},
	}
}

func newConfigCmd(g *globals) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Config prints the configuration after merging defaults, the config file,
BLOCKPAD_* environment variables and flags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var f loader.Format
			switch strings.ToLower(format) {
			case "toml":
				f = loader.FormatTOML
			case "yaml", "yml":
				f = loader.FormatYAML
			default:
				return fmt.Errorf("unknown config format %q (want toml or yaml)", format)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "# %s\n", g.configPath)
			return g.cfg.Encode(cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().StringVar(&format, "format", "toml", "output format: toml or yaml")
	return cmd
}
