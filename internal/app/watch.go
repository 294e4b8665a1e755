package app

import (
	"context"

	"github.com/dshills/blockpad/internal/config"
	"github.com/dshills/blockpad/internal/config/watcher"
)

// WatchConfig reloads the configuration file at path whenever it changes
// and applies it, until ctx is done. Invalid reloads are logged and the
// previous configuration stays active.
func (e *Editor) WatchConfig(ctx context.Context, path string, opts ...watcher.Option) error {
	log := ComponentLogger(e.log, "config")
	opts = append([]watcher.Option{
		watcher.WithLogger(log),
		watcher.WithErrorHandler(func(err error) {
			log.Warn().Err(err).Str("path", path).Msg("config reload failed")
		}),
	}, opts...)

	return watcher.New(path, opts...).Run(ctx, func(cfg *config.Config) {
		if err := e.ApplyConfig(cfg); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("config rejected")
		}
	})
}
