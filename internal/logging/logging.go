package logging

import (
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

var (
	once        sync.Once
	logger      zerolog.Logger
	initialized atomic.Bool
)

// Initialize sets up the process-wide structured logger. Safe to call from
// concurrent builds; only the first call configures anything.
func Initialize() {
	once.Do(func() {
		level := parseLevel(os.Getenv("ENGINED_LOG_LEVEL"))
		w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
		initialized.Store(true)
	})
}

// Logger returns the process logger. Callers that skipped Initialize get a
// disabled logger, keeping quiet builds quiet.
func Logger() zerolog.Logger {
	if !initialized.Load() {
		return zerolog.Nop()
	}
	return logger
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
