package spectral

import (
	"log/slog"
	"os"

	"github.com/phasorlab/spectral/carrier"
)

// Logger wraps slog.Logger with codec-specific context.
// This provides structured logging with consistent field names.
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
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithSeed adds a seed field to the logger.
func (l *Logger) WithSeed(seed uint32) *Logger {
	return &Logger{
		Logger: l.Logger.With("seed", seed),
	}
}

// WithPlan adds a carrier plan field to the logger.
func (l *Logger) WithPlan(plan carrier.Plan) *Logger {
	return &Logger{
		Logger: l.Logger.With("plan", string(plan)),
	}
}

// LogEncode logs an encode operation.
func (l *Logger) LogEncode(dim int, plan carrier.Plan, payloadBytes int, err error) {
	if err != nil {
		l.Error("encode failed",
			"dimension", dim,
			"plan", string(plan),
			"payload_bytes", payloadBytes,
			"error", err,
		)
	} else {
		l.Debug("encode completed",
			"dimension", dim,
			"plan", string(plan),
			"payload_bytes", payloadBytes,
		)
	}
}

// LogDecode logs a decode operation.
func (l *Logger) LogDecode(dim int, plan carrier.Plan, payloadBytes int, err error) {
	if err != nil {
		l.Error("decode failed",
			"dimension", dim,
			"plan", string(plan),
			"error", err,
		)
	} else {
		l.Debug("decode completed",
			"dimension", dim,
			"plan", string(plan),
			"payload_bytes", payloadBytes,
		)
	}
}

// LogDetect logs a plan-detection decode.
func (l *Logger) LogDetect(dim int, plan carrier.Plan, err error) {
	if err != nil {
		l.Error("plan detection failed",
			"dimension", dim,
			"error", err,
		)
	} else {
		l.Debug("plan detected",
			"dimension", dim,
			"plan", string(plan),
		)
	}
}
