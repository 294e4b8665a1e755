package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// LoggerConfig configures the logger.
type LoggerConfig struct {
	// Level is the minimum level: debug, info, warn, error or disabled.
	Level string
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
	// File, when set, receives logs instead of Output. It is opened for
	// appending.
	File string
	// Console writes human-readable lines instead of JSON.
	Console bool
}

// DefaultLoggerConfig returns the default logger configuration.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  "info",
		Output: os.Stderr,
	}
}

// ParseLogLevel parses a level name. Unknown names map to info.
func ParseLogLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off", "none":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger builds a timestamped zerolog logger. The returned closer releases
// the log file, if any; it is never nil.
func NewLogger(cfg LoggerConfig) (zerolog.Logger, io.Closer, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	closer := io.Closer(nopCloser{})

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("opening log file: %w", err)
		}
		out = zerolog.SyncWriter(f)
		closer = f
	}
	if cfg.Console {
		out = zerolog.ConsoleWriter{Out: out, NoColor: cfg.File != "", TimeFormat: "15:04:05.000"}
	}

	l := zerolog.New(out).Level(ParseLogLevel(cfg.Level)).With().Timestamp().Logger()
	return l, closer, nil
}

// ComponentLogger derives a sub-logger tagged with the component name.
func ComponentLogger(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
