package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var Logger zerolog.Logger

// Init configures the global logger. format "json" is for production,
// anything else gets the console writer.
func Init(level, format string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if format == "json" {
		Logger = zerolog.New(os.Stdout).With().
			Timestamp().
			Str("service", "listing-service").
			Logger().
			Level(lvl)
	} else {
		Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}).With().
			Timestamp().
			Logger().
			Level(lvl)
	}

	log.Logger = Logger
}

// WithRequestID adds request ID to logger context
func WithRequestID(requestID string) zerolog.Logger {
	return log.Logger.With().Str("request_id", requestID).Logger()
}
