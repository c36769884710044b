// Package logging configures the zerolog logger used for sysmon diagnostics.
// Diagnostics always go to stderr so the report on stdout stays clean.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the process-wide diagnostic logger.
var Logger zerolog.Logger

func init() {
	Logger = New(os.Stderr)
	log.Logger = Logger
}

// New builds a console logger writing to w at info level.
func New(w io.Writer) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
	}
	return zerolog.New(output).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Logger()
}

// Info logs an info message.
func Info() *zerolog.Event {
	return Logger.Info()
}

// Warn logs a warning message.
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Error logs an error message.
func Error() *zerolog.Event {
	return Logger.Error()
}

// Debug logs a debug message.
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// SetDebugMode switches the logger to debug level.
func SetDebugMode() {
	setLevel(zerolog.DebugLevel)
}

// SetLevel applies a level name such as "debug" or "warn". Unknown names leave
// the level unchanged and return false.
func SetLevel(name string) bool {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || lvl == zerolog.NoLevel {
		return false
	}
	setLevel(lvl)
	return true
}

// AtLeast raises the level to lvl unless it is already higher. The returned
// func puts the previous level back.
func AtLeast(lvl zerolog.Level) (restore func()) {
	prev := Logger.GetLevel()
	if prev >= lvl {
		return func() {}
	}
	setLevel(lvl)
	return func() { setLevel(prev) }
}

func setLevel(lvl zerolog.Level) {
	Logger = Logger.Level(lvl)
	log.Logger = Logger
}
