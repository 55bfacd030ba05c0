package core

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5/middleware"
)

// Logger provides enhanced logging capabilities for LearnHub
type Logger struct {
	*slog.Logger
	features *featureLoggers
}

type featureLoggers struct {
	mu      sync.Mutex
	loggers map[string]*slog.Logger
}

// NewLogger creates a new logger instance writing to stdout
func NewLogger(config LogConfig) *Logger {
	return NewLoggerWithWriter(os.Stdout, config)
}

// NewLoggerWithWriter creates a logger writing to w
func NewLoggerWithWriter(w io.Writer, config LogConfig) *Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(config.Level)}

	var handler slog.Handler
	if strings.EqualFold(config.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{
		Logger:   slog.New(handler),
		features: &featureLoggers{loggers: make(map[string]*slog.Logger)},
	}
}

// NewNopLogger returns a logger that discards everything. Used in tests.
func NewNopLogger() *Logger {
	return NewLoggerWithWriter(io.Discard, LogConfig{Level: "error"})
}

// ParseLevel maps a level name to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// ForFeature returns a logger specific to a feature
func (l *Logger) ForFeature(featureName string) *Logger {
	l.features.mu.Lock()
	defer l.features.mu.Unlock()

	featureLogger, exists := l.features.loggers[featureName]
	if !exists {
		// Create feature-specific logger with feature name in context
		featureLogger = l.Logger.With("feature", featureName)
		l.features.loggers[featureName] = featureLogger
	}

	return &Logger{
		Logger:   featureLogger,
		features: l.features,
	}
}

// With returns a logger carrying the given attributes
func (l *Logger) With(attrs ...any) *Logger {
	return &Logger{
		Logger:   l.Logger.With(attrs...),
		features: l.features,
	}
}

// WithContext returns a logger with request context
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	// Request ID is set by chi's RequestID middleware
	if requestID := middleware.GetReqID(ctx); requestID != "" {
		return l.With("request_id", requestID)
	}

	return l
}

// LogFeatureEvent logs a feature-specific event
func (l *Logger) LogFeatureEvent(featureName, event string, attrs ...any) {
	featureLogger := l.ForFeature(featureName)
	featureLogger.Info("Feature event", append([]any{"event", event}, attrs...)...)
}

// LogFeatureError logs a feature-specific error
func (l *Logger) LogFeatureError(featureName, message string, err error, attrs ...any) {
	featureLogger := l.ForFeature(featureName)
	allAttrs := append([]any{"error", err}, attrs...)
	featureLogger.Error(message, allAttrs...)
}
