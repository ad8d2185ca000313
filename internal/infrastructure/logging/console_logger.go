// Package logging builds the diagnostic logger. Diagnostics go to stderr so
// that stdout only carries the messages a user or script cares about.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewConsoleLogger returns a human readable logger writing to w. Only
// warnings and errors are shown unless debug is set.
func NewConsoleLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    true,
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
