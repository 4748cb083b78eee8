package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ZeroLogger implements Logger on top of zerolog.
type ZeroLogger struct {
	zlog *zerolog.Logger
}

var _ Logger = (*ZeroLogger)(nil)

// New creates a ZeroLogger writing to stderr at the given level. An
// unparseable level falls back to info. If pretty is true, output is
// formatted for a human operator instead of JSON.
func New(level string, pretty bool) *ZeroLogger {
	return NewWithOutput(level, pretty, os.Stderr)
}

// NewWithOutput creates a ZeroLogger writing to the given sink. Tests use
// this to capture output.
func NewWithOutput(level string, pretty bool, out io.Writer) *ZeroLogger {
	if pretty {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	l := zerolog.New(out).With().Timestamp().Logger()

	zLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		zLevel = zerolog.InfoLevel
	}
	l = l.Level(zLevel)

	return &ZeroLogger{zlog: &l}
}

// WithFields returns a logger with additional fields attached to every
// entry.
func (l *ZeroLogger) WithFields(fields map[string]any) Logger {
	log := l.zlog.With().Fields(fields).Logger()
	return &ZeroLogger{zlog: &log}
}

// Debug creates a debug-level log event
func (l *ZeroLogger) Debug() LogEvent {
	return &eventAdapter{event: l.zlog.Debug()}
}

// Info creates an info-level log event
func (l *ZeroLogger) Info() LogEvent {
	return &eventAdapter{event: l.zlog.Info()}
}

// Warn creates a warning-level log event
func (l *ZeroLogger) Warn() LogEvent {
	return &eventAdapter{event: l.zlog.Warn()}
}

// Error creates an error-level log event
func (l *ZeroLogger) Error() LogEvent {
	return &eventAdapter{event: l.zlog.Error()}
}

// eventAdapter adapts zerolog events to the LogEvent interface
type eventAdapter struct {
	event *zerolog.Event
}

func (a *eventAdapter) Msg(msg string) {
	a.event.Msg(msg)
}

func (a *eventAdapter) Msgf(format string, args ...any) {
	a.event.Msgf(format, args...)
}

func (a *eventAdapter) Err(err error) LogEvent {
	return &eventAdapter{event: a.event.Err(err)}
}

func (a *eventAdapter) Str(key, value string) LogEvent {
	return &eventAdapter{event: a.event.Str(key, value)}
}

func (a *eventAdapter) Int(key string, value int) LogEvent {
	return &eventAdapter{event: a.event.Int(key, value)}
}

func (a *eventAdapter) Int64(key string, value int64) LogEvent {
	return &eventAdapter{event: a.event.Int64(key, value)}
}

func (a *eventAdapter) Dur(key string, d time.Duration) LogEvent {
	return &eventAdapter{event: a.event.Dur(key, d)}
}

func (a *eventAdapter) Interface(key string, i any) LogEvent {
	return &eventAdapter{event: a.event.Interface(key, i)}
}

func (a *eventAdapter) Bytes(key string, val []byte) LogEvent {
	return &eventAdapter{event: a.event.Bytes(key, val)}
}
