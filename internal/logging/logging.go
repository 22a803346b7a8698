// Package logging builds the zerolog loggers used by the CLI and the MCP
// server. Output goes to stderr by default: stdout carries protocol messages
// and converted text.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ironsheep/image-to-text/internal/config"
	"github.com/ironsheep/image-to-text/internal/ocr"
)

// New creates a logger with the given configuration. A nil w writes to
// stderr.
func New(cfg config.LogConfig, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	var zl zerolog.Logger
	if cfg.Format == "json" {
		zl = zerolog.New(w)
	} else {
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		})
	}

	return zl.Level(parseLevel(cfg.Level)).With().
		Timestamp().
		Str("service", "image-to-text").
		Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ProgressObserver returns an ocr.ProgressFunc that logs each progress event
// at debug level.
func ProgressObserver(logger zerolog.Logger) ocr.ProgressFunc {
	return func(p ocr.Progress) {
		logger.Debug().
			Str("status", p.Status).
			Float64("progress", p.Progress).
			Msg("ocr progress")
	}
}

// Chain returns a ProgressFunc calling each non-nil fn in order, or nil when
// there is none.
func Chain(fns ...ocr.ProgressFunc) ocr.ProgressFunc {
	var live []ocr.ProgressFunc
	for _, fn := range fns {
		if fn != nil {
			live = append(live, fn)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	}
	return func(p ocr.Progress) {
		for _, fn := range live {
			fn(p)
		}
	}
}
