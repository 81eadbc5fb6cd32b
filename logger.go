package anagram

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with anagram-specific helpers so that every component logs
// with the same field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, nil))
}

// WithPhrase adds the phrase being searched to the logger.
func (l *Logger) WithPhrase(phrase string) *Logger {
	return &Logger{
		Logger: l.Logger.With("phrase", phrase),
	}
}

// LogDictionary logs the outcome of loading and filtering a dictionary.
func (l *Logger) LogDictionary(ctx context.Context, source string, loaded, kept int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dictionary load failed",
			"source", source,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "dictionary loaded",
		"source", source,
		"loaded", loaded,
		"kept", kept,
	)
}

// LogSearch logs the end of a search session.
func (l *Logger) LogSearch(ctx context.Context, stats Stats, elapsed time.Duration, err error) {
	if err != nil {
		l.WarnContext(ctx, "search stopped early",
			"matches", stats.Matches,
			"candidates", stats.Candidates,
			"elapsed", elapsed,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "search completed",
		"matches", stats.Matches,
		"candidates", stats.Candidates,
		"nodes", stats.NodesVisited,
		"elapsed", elapsed,
	)
}
