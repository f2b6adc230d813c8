package logger

import (
	"io"
	"log/slog"
	"os"
)

// EnvLogAlloc enables allocator debug logging on stderr when set to a non-empty value.
const EnvLogAlloc = "SLABKIT_LOG_ALLOC"

// L is the global logger instance. It's initialized to discard all output by default.
// Call Init() to enable logging.
var L *slog.Logger = Discard()

// Options configures the logger initialization.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	Output  io.Writer  // Destination. Default: os.Stderr
	Level   slog.Level // Minimum log level. Default: LevelInfo when enabled
	JSON    bool       // Use the JSON handler instead of text
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// New builds a logger from opts without touching L.
func New(opts Options) *slog.Logger {
	if !opts.Enabled {
		return Discard()
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	level := opts.Level
	if level == 0 {
		level = slog.LevelInfo
	}
	hopts := &slog.HandlerOptions{Level: level}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(out, hopts))
	}
	return slog.New(slog.NewTextHandler(out, hopts))
}

// Init replaces L. Call from main() before any log calls.
func Init(opts Options) {
	L = New(opts)
}

// FromEnv returns a debug-level stderr logger when EnvLogAlloc is set, and L otherwise.
func FromEnv() *slog.Logger {
	if os.Getenv(EnvLogAlloc) != "" {
		return New(Options{Enabled: true, Level: slog.LevelDebug})
	}
	return L
}
