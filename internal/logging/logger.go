// Package logging provides the structured console logger.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const timeFormat = "15:04:05"

// Options configures New.
type Options struct {
	Verbose bool // debug records
	NoColor bool
}

// New creates a console logger writing to w.
func New(w io.Writer, opts Options) zerolog.Logger {
	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: timeFormat,
		NoColor:    opts.NoColor,
	}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// NewDefault logs to stderr, leaving stdout for result lines.
func NewDefault(opts Options) zerolog.Logger {
	return New(os.Stderr, opts)
}
