// Package logging provides structured logging for periodo-cli.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog for CLI use. Logs go to stderr so stdout stays
// reserved for command output.
type Logger struct {
	zlog   zerolog.Logger
	output io.Writer
}

// NewLogger creates a console logger writing to the given writer.
func NewLogger(out io.Writer) *Logger {
	writer := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "15:04:05",
	}

	logger := zerolog.New(writer).
		With().
		Timestamp().
		Logger()

	return &Logger{
		zlog:   logger,
		output: out,
	}
}

// NewDefaultLogger creates the default stderr logger.
func NewDefaultLogger() *Logger {
	return NewLogger(os.Stderr)
}

// Info returns an info level event.
func (l *Logger) Info() *zerolog.Event {
	return l.zlog.Info()
}

// Error returns an error level event.
func (l *Logger) Error() *zerolog.Event {
	return l.zlog.Error()
}

// Debug returns a debug level event.
func (l *Logger) Debug() *zerolog.Event {
	return l.zlog.Debug()
}

// Warn returns a warn level event.
func (l *Logger) Warn() *zerolog.Event {
	return l.zlog.Warn()
}

// Debugf logs a debug message with printf-style formatting.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.zlog.Debug().Msgf(format, args...)
}

// Infof logs an info message with printf-style formatting.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.zlog.Info().Msgf(format, args...)
}

// Errorf logs an error message with printf-style formatting.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.zlog.Error().Msgf(format, args...)
}

// Warnf logs a warning message with printf-style formatting.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.zlog.Warn().Msgf(format, args...)
}

// SetGlobalLevel sets the global log level.
func SetGlobalLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}
