package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config controls how the global logger is initialized.
type Config struct {
	Level  string    // debug, info, warn, error (defaults to info)
	Pretty bool      // Human-readable console output instead of JSON
	Output io.Writer // Destination (defaults to os.Stdout)
}

var (
	log  zerolog.Logger
	once sync.Once
)

// Init initializes the global logger. It is safe to call from multiple
// goroutines; only the first call takes effect.
func Init(cfg Config) {
	once.Do(func() {
		out := cfg.Output
		if out == nil {
			out = os.Stdout
		}
		if cfg.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		log = zerolog.New(out).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
	})
}

// Get returns the global logger, initializing it with defaults if Init was
// never called.
func Get() *zerolog.Logger {
	Init(Config{})
	return &log
}

// With returns a child logger tagged with a component name.
func With(component string) zerolog.Logger {
	return Get().With().Str("component", component).Logger()
}

func parseLevel(s string) zerolog.Level {
	if s == "" {
		return zerolog.InfoLevel
	}
	if lvl, err := zerolog.ParseLevel(strings.ToLower(s)); err == nil {
		return lvl
	}
	return zerolog.InfoLevel
}
