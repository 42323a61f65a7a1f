package logging

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
)

type Options struct {
	Level string
	JSON  bool
}

var def atomic.Pointer[slog.Logger]

func init() {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	def.Store(slog.New(h))
}

// Configure replaces the process-wide logger. Safe to call at any time;
// loggers obtained earlier via L keep their old handler.
func Configure(opts Options) {
	cfg := &slog.HandlerOptions{Level: parseLevel(opts.Level)}
	var h slog.Handler
	if opts.JSON {
		h = slog.NewJSONHandler(os.Stderr, cfg)
	} else {
		h = slog.NewTextHandler(os.Stderr, cfg)
	}
	def.Store(slog.New(h))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func L() *slog.Logger {
	return def.Load()
}

// Component returns the process-wide logger tagged with a component name.
func Component(name string) *slog.Logger {
	return L().With("component", name)
}

// InitFromEnv configures logging from TABULAR_LOG_LEVEL and TABULAR_LOG_JSON.
func InitFromEnv() {
	jsonOut := false
	if b, err := strconv.ParseBool(strings.TrimSpace(os.Getenv("TABULAR_LOG_JSON"))); err == nil {
		jsonOut = b
	}
	Configure(Options{Level: os.Getenv("TABULAR_LOG_LEVEL"), JSON: jsonOut})
}
