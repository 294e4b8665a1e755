package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/blockpad/internal/config/loader"
)

// DefaultFileName is the config file looked up in the user config dir.
const DefaultFileName = "config.toml"

// LoadOption configures Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	fs        loader.FileSystem
	env       loader.Loader
	skipEnv   bool
	overrides map[string]any
}

// WithFS reads config files through fsys.
func WithFS(fsys loader.FileSystem) LoadOption {
	return func(o *loadOptions) { o.fs = fsys }
}

// WithEnv replaces the environment loader.
func WithEnv(l loader.Loader) LoadOption {
	return func(o *loadOptions) { o.env = l }
}

// WithoutEnv skips environment variables.
func WithoutEnv() LoadOption {
	return func(o *loadOptions) { o.skipEnv = true }
}

// WithOverrides merges data above every other source.
func WithOverrides(data map[string]any) LoadOption {
	return func(o *loadOptions) { o.overrides = data }
}

// Load builds a validated Config from, lowest first: defaults, the file at
// path (TOML or YAML by extension, missing is fine), BLOCKPAD_ environment
// variables, then overrides. An empty path skips the file layer.
func Load(path string, opts ...LoadOption) (*Config, error) {
	o := loadOptions{
		fs:  loader.DefaultFS(),
		env: loader.NewEnvLoader(loader.DefaultEnvPrefix),
	}
	for _, opt := range opts {
		opt(&o)
	}

	merged := map[string]any{}

	if path != "" {
		fl, err := loader.ForPath(o.fs, path)
		if err != nil {
			return nil, err
		}
		data, err := fl.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, data)
	}

	if !o.skipEnv && o.env != nil {
		data, err := o.env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, data)
	}

	merged = loader.DeepMerge(merged, loader.Clone(o.overrides))

	cfg, err := FromMap(merged)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath returns the per-user config file path, or "" when the user
// config dir is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "blockpad", DefaultFileName)
}
