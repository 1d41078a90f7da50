// Package logging provides the logging abstraction used across the ledger.
// Engine components depend on the Logger interface only; the CLI wires a logrus-backed
// implementation and tests use MockLogger.
package logging

import "io"

// Logger defines the structured logging interface used throughout the application.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger

	// WithFields returns a new logger with multiple fields attached
	WithFields(fields ...Field) Logger

	// Fatal logs a fatal-level message and exits the program
	Fatal(msg string, fields ...Field)

	// Fatalf logs a fatal-level message with formatting and exits the program
	Fatalf(msg string, args ...interface{})
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// OrDiscard returns l, or a logger that drops everything when l is nil.
// Constructors use it so that a nil logger is always safe to pass.
func OrDiscard(l Logger) Logger {
	if l != nil {
		return l
	}
	adapter := NewLogrusAdapter("error", "text").(*LogrusAdapter)
	adapter.logger.SetOutput(io.Discard)
	return adapter
}
