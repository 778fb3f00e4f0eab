package observability

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog Logger tagged with the service name.
// APP_ENV=dev (or development) uses a human-friendly console writer and debug level;
// LOG_LEVEL overrides the level in any environment.
func NewLogger(env string) zerolog.Logger {
	level := zerolog.InfoLevel
	l := zerolog.New(os.Stdout).With().Timestamp().Str("svc", "hotel_site").Logger()
	if env == "dev" || env == "development" {
		level = zerolog.DebugLevel
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if parsed, err := zerolog.ParseLevel(v); err == nil {
			level = parsed
		}
	}
	return l.Level(level)
}
