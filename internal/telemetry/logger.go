package telemetry

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// NewLogger writes JSON to stdout, or human-readable lines in development.
// Unknown levels fall back to info.
func NewLogger(level string, dev bool) zerolog.Logger {
	var out io.Writer = os.Stdout
	if dev {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	return newLogger(out, level)
}

func newLogger(out io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Str("service", "cardiorisk").Logger()
}
