// Package logger provides structured logging for osgi-index
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog with indexer specific functionality
type Logger struct {
	zlog zerolog.Logger
}

// Config holds logger configuration
type Config struct {
	Level  string // debug, info, warn, error
	Pretty bool   // human readable console output
	Output io.Writer
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	}
	return zerolog.InfoLevel
}

// NewLogger creates a new structured logger
func NewLogger(cfg Config) *Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	zlog := zerolog.New(output).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("service", "osgi-index").
		Logger()

	return &Logger{zlog: zlog}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

func (l *Logger) Info() *zerolog.Event {
	return l.zlog.Info()
}

func (l *Logger) Debug() *zerolog.Event {
	return l.zlog.Debug()
}

func (l *Logger) Warn() *zerolog.Event {
	return l.zlog.Warn()
}

func (l *Logger) Error() *zerolog.Event {
	return l.zlog.Error()
}

// Component returns a logger tagged with the given component name
func (l *Logger) Component(name string) *Logger {
	return &Logger{zlog: l.zlog.With().Str("component", name).Logger()}
}

// LogResourceIndexed logs a successfully analyzed resource
func (l *Logger) LogResourceIndexed(path, name, version string, duration time.Duration) {
	l.zlog.Debug().
		Str("event", "resource_indexed").
		Str("path", path).
		Str("symbolic_name", name).
		Str("version", version).
		Dur("duration_ms", duration).
		Msg("Resource indexed")
}

// LogResourceSkipped logs a file that was left out of the index
func (l *Logger) LogResourceSkipped(path string, err error) {
	l.zlog.Warn().
		Str("event", "resource_skipped").
		Str("path", path).
		Err(err).
		Msg("Resource skipped")
}

// LogIndexComplete logs completion of an index build
func (l *Logger) LogIndexComplete(name string, resources, skipped int, duration time.Duration) {
	l.zlog.Info().
		Str("event", "index_complete").
		Str("repository", name).
		Int("resources", resources).
		Int("skipped", skipped).
		Dur("duration_ms", duration).
		Msg("Index build completed")
}
