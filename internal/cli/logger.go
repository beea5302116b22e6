package cli

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"grammarbot/internal/config"
)

// newLogger builds the process logger from the log_level and log_format
// settings. Unknown levels fall back to info.
func newLogger(cfg config.Config, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		lvl = zerolog.InfoLevel
	}
	out := w
	if cfg.LogFormat == "console" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Str("service", "grammarbot").Logger()
}
