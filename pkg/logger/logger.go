package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	// Get log level from environment
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	// Create handler options
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Create handler based on environment
	var handler slog.Handler
	if strings.ToLower(os.Getenv("APP_ENV")) == "production" {
		// Use JSON handler for production (structured)
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		// Use text handler for development (more readable)
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// Discard returns a logger that drops everything, for tests
func Discard() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithAttempt adds the diagnostic attempt ID to logger context
func (l *Logger) WithAttempt(attemptID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("attempt_id", attemptID)),
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// WithFields adds multiple fields to logger context
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// Business logic logging methods

// LogBookingHeld logs when a booking hold is created or reused
func (l *Logger) LogBookingHeld(ctx context.Context, bookingID, sessionID string, reused bool) {
	l.Logger.InfoContext(ctx,
		"Booking Held",
		slog.String("booking_id", bookingID),
		slog.String("session_id", sessionID),
		slog.Bool("reused", reused),
	)
}

// LogPaymentCreated logs when a payment intent is created
func (l *Logger) LogPaymentCreated(ctx context.Context, paymentID, provider string, nextAction string) {
	l.Logger.InfoContext(ctx,
		"Payment Created",
		slog.String("payment_id", paymentID),
		slog.String("provider", provider),
		slog.String("next_action", nextAction),
	)
}

// LogPaymentResolved logs the terminal outcome of a payment
func (l *Logger) LogPaymentResolved(ctx context.Context, paymentID, outcome string, duration time.Duration) {
	l.Logger.InfoContext(ctx,
		"Payment Resolved",
		slog.String("payment_id", paymentID),
		slog.String("outcome", outcome),
		slog.Duration("duration", duration),
	)
}

// Helper methods for common patterns

// InfoWithContext logs an info message with context
func (l *Logger) InfoWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.InfoContext(ctx, msg, args...)
}

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}
