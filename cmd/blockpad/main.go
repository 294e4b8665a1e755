// Package main is the entry point for the blockpad command.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dshills/blockpad/internal/app"
	"github.com/dshills/blockpad/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// globals holds the state shared by every subcommand.
type globals struct {
	configPath string
	logLevel   string
	pretty     bool

	cfg       *config.Config
	log       zerolog.Logger
	logCloser io.Closer
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "blockpad",
		Short: "Block-structured rich text editing core",
		Long: `blockpad edits block-structured rich text documents. Documents are stored in
the native JSON block format; HTML and plain text convert in and out.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if g.logCloser != nil {
				_ = g.logCloser.Close()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&g.configPath, "config", "c", "", "path to configuration file (TOML or YAML)")
	flags.StringVar(&g.logLevel, "log-level", "", "log level: trace, debug, info, warn, error, off")
	flags.BoolVar(&g.pretty, "pretty", false, "indent JSON output")

	root.AddCommand(
		newConvertCmd(g),
		newExecCmd(g),
		newEditCmd(g),
		newCommandsCmd(g),
		newKeysCmd(g),
		newConfigCmd(g),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration and builds the logger.
func (g *globals) setup() error {
	path := g.configPath
	if path == "" {
		path = config.DefaultPath()
	}

	var opts []config.LoadOption
	if g.logLevel != "" {
		opts = append(opts, config.WithOverrides(map[string]any{
			"logging": map[string]any{"level": g.logLevel},
		}))
	}
	cfg, err := config.Load(path, opts...)
	if err != nil {
		return err
	}
	g.cfg = cfg
	if g.configPath == "" {
		g.configPath = path
	}

	l, closer, err := app.NewLogger(app.LoggerConfig{
		Level:   cfg.Logging.Level,
		Output:  os.Stderr,
		File:    cfg.Logging.File,
		Console: true,
	})
	if err != nil {
		return err
	}
	g.log, g.logCloser = l, closer
	return nil
}

// newEditor creates an editor from the loaded configuration and runs its
// Lua scripts. Script failures are logged and do not stop the command.
func (g *globals) newEditor(opts ...app.Option) (*app.Editor, error) {
	opts = append([]app.Option{app.WithConfig(g.cfg), app.WithLogger(g.log)}, opts...)
	e, err := app.New(opts...)
	if err != nil {
		return nil, err
	}
	if err := e.LoadScripts(g.cfg.Plugins.Scripts...); err != nil {
		g.log.Warn().Err(err).Msg("loading scripts")
	}
	return e, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "blockpad %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
