package app

import (
	"errors"
	"os"

	"github.com/dshills/blockpad/internal/plugin/lua"
)

// LoadScripts replaces the Lua command scripts. Commands from the previous
// scripts are unregistered and a fresh Lua state runs each path in order;
// $VAR references in paths are expanded. A script that fails to load is
// skipped and reported; the rest stay registered.
func (e *Editor) LoadScripts(paths ...string) error {
	e.scriptsMu.Lock()
	defer e.scriptsMu.Unlock()

	for _, src := range e.sources {
		e.commands.UnregisterBySource(src)
	}
	e.sources = nil
	if e.scripts != nil {
		if err := e.scripts.Close(); err != nil {
			e.log.Warn().Err(err).Msg("closing lua state")
		}
		e.scripts = nil
	}
	if len(paths) == 0 {
		return nil
	}

	cfg := e.Config()
	state := lua.NewState(
		lua.WithExecutionTimeout(cfg.PluginTimeout()),
		lua.WithLogger(ComponentLogger(e.log, "lua")),
	)
	e.scripts = state

	var errs []error
	for _, p := range paths {
		path := os.ExpandEnv(p)
		cmds, err := state.LoadFile(path)
		if err != nil {
			errs = append(errs, NewOperationError("load script", path, err))
			continue
		}
		if err := e.commands.RegisterAll(cmds...); err != nil {
			errs = append(errs, NewOperationError("register script", path, err))
		}
		// RegisterAll may have kept a prefix of cmds; track the source either way.
		if len(cmds) > 0 {
			e.sources = append(e.sources, cmds[0].Source)
		}
		e.log.Info().Str("script", path).Int("commands", len(cmds)).Msg("script loaded")
	}
	return errors.Join(errs...)
}
