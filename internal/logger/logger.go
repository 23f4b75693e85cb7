package logger

import (
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// New logs to stderr so that stdout carries only the menu and the rendered results.
// The logger is built before config, so .env is loaded here as well. Variables
// already in the environment win.
func New() zerolog.Logger {
	_ = godotenv.Load()
	return SetLevel(os.Stderr, ParseLevel(os.Getenv("LOG_LEVEL")))
}

// ParseLevel falls back to warn for empty or unknown names.
func ParseLevel(raw string) zerolog.Level {
	level, err := zerolog.ParseLevel(raw)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return level
}

func SetLevel(w io.Writer, level zerolog.Level) zerolog.Logger {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.TimeOnly,
	}).
		With().
		Timestamp().
		Logger()

	return logger.Level(level)
}

var Module = fx.Provide(New)
