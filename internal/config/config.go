package config

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/dshills/blockpad/internal/config/loader"
	"github.com/dshills/blockpad/internal/engine/component"
	"github.com/dshills/blockpad/internal/engine/history"
	"github.com/dshills/blockpad/internal/input/key"
	"github.com/dshills/blockpad/internal/input/keymap"
	"github.com/dshills/blockpad/internal/input/mention"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// DefaultPluginTimeout bounds a single Lua command run.
const DefaultPluginTimeout = 2 * time.Second

// Config is the complete blockpad configuration.
type Config struct {
	History    HistoryConfig       `toml:"history" yaml:"history"`
	Logging    LoggingConfig       `toml:"logging" yaml:"logging"`
	Clipboard  ClipboardConfig     `toml:"clipboard" yaml:"clipboard"`
	Components ComponentsConfig    `toml:"components" yaml:"components"`
	Keymap     map[string]string   `toml:"keymap,omitempty" yaml:"keymap,omitempty"`
	Plugins    PluginsConfig       `toml:"plugins" yaml:"plugins"`
	Mentions   []mention.Candidate `toml:"mentions,omitempty" yaml:"mentions,omitempty"`
}

// HistoryConfig configures the undo log.
type HistoryConfig struct {
	MaxEntries int `toml:"max_entries" yaml:"max_entries"`
}

// LoggingConfig configures the zerolog logger.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file,omitempty" yaml:"file,omitempty"`
}

// ClipboardConfig configures clipboard boards.
type ClipboardConfig struct {
	// System mirrors plain text to the OS clipboard.
	System bool `toml:"system" yaml:"system"`
}

// ComponentsConfig configures inline components.
type ComponentsConfig struct {
	// IDSource is "uuid" or "counter".
	IDSource string `toml:"id_source" yaml:"id_source"`
}

// PluginsConfig configures Lua commands.
type PluginsConfig struct {
	Scripts []string `toml:"scripts,omitempty" yaml:"scripts,omitempty"`
	Timeout string   `toml:"timeout" yaml:"timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		History:    HistoryConfig{MaxEntries: history.DefaultMaxEntries},
		Logging:    LoggingConfig{Level: "info"},
		Clipboard:  ClipboardConfig{System: false},
		Components: ComponentsConfig{IDSource: "uuid"},
		Keymap:     map[string]string{},
		Plugins:    PluginsConfig{Timeout: DefaultPluginTimeout.String()},
	}
}

// Validate checks every setting and joins all failures.
func (c *Config) Validate() error {
	var errs []error

	if c.History.MaxEntries < 1 {
		errs = append(errs, fmt.Errorf("history.max_entries must be at least 1, got %d", c.History.MaxEntries))
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	if _, err := component.ParseIDSource(c.Components.IDSource); err != nil {
		errs = append(errs, fmt.Errorf("components.id_source: %w", err))
	}
	for chord, action := range c.Keymap {
		if _, err := key.Parse(chord); err != nil {
			errs = append(errs, fmt.Errorf("keymap %q: %w", chord, err))
		}
		if action == "" {
			errs = append(errs, fmt.Errorf("keymap %q: empty action", chord))
		}
	}
	if d, err := time.ParseDuration(c.Plugins.Timeout); err != nil || d <= 0 {
		errs = append(errs, fmt.Errorf("plugins.timeout: invalid duration %q", c.Plugins.Timeout))
	}
	for i, m := range c.Mentions {
		if m.ID == "" || m.Label == "" {
			errs = append(errs, fmt.Errorf("mentions[%d]: id and label are required", i))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// PluginTimeout returns the parsed Lua timeout, or the default when unset
// or invalid.
func (c *Config) PluginTimeout() time.Duration {
	d, err := time.ParseDuration(c.Plugins.Timeout)
	if err != nil || d <= 0 {
		return DefaultPluginTimeout
	}
	return d
}

// IDSource returns the configured component id source.
func (c *Config) IDSource() component.IDSource {
	src, err := component.ParseIDSource(c.Components.IDSource)
	if err != nil {
		return component.UUIDSource{}
	}
	return src
}

// UserKeymap returns the keymap overrides as a user-priority keymap.
func (c *Config) UserKeymap() *keymap.Keymap {
	return keymap.FromMap("user", c.Keymap).WithPriority(keymap.PriorityUser).WithSource("config")
}

// FromMap decodes a merged settings tree over the defaults.
func FromMap(data map[string]any) (*Config, error) {
	cfg := Default()
	if len(data) == 0 {
		return cfg, nil
	}
	raw, err := yaml.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Encode writes the configuration in the given format.
func (c *Config) Encode(w io.Writer, format loader.Format) error {
	switch format {
	case loader.FormatYAML:
		return loader.EncodeYAML(w, c)
	case loader.FormatTOML:
		return loader.EncodeTOML(w, c)
	default:
		return fmt.Errorf("unsupported config format %q", format)
	}
}
