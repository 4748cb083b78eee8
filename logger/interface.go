// Package logger defines the structured logging contract used throughout
// the module, with a zerolog-backed implementation.
package logger

import "time"

// Logger is the contract for structured logging. It creates log events at
// the usual severity levels and derives loggers with extra fields.
type Logger interface {
	Debug() LogEvent
	Info() LogEvent
	Warn() LogEvent
	Error() LogEvent
	WithFields(fields map[string]any) Logger
}

// LogEvent is a structured log event built up with fields and finished
// with Msg or Msgf.
type LogEvent interface {
	Msg(msg string)
	Msgf(format string, args ...any)
	Err(err error) LogEvent
	Str(key, value string) LogEvent
	Int(key string, value int) LogEvent
	Int64(key string, value int64) LogEvent
	Dur(key string, d time.Duration) LogEvent
	Interface(key string, i any) LogEvent
	Bytes(key string, val []byte) LogEvent
}
