package postgresengine

import (
	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
)

// Option defines a functional option for configuring Store.
type Option func(*Store) error

// WithJournalTableName sets the table name of the journal.
func WithJournalTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return ledger.ErrEmptyJournalTableName
		}

		s.journalTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: Row counts, durations, concurrency conflicts (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger ledger.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger. It takes precedence over WithLogger,
// so that log records carry the trace and span ids of the active span.
func WithContextualLogger(logger ledger.ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
// It receives statement durations, row counts, concurrency conflicts and database errors.
func WithMetrics(collector ledger.MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Store.
// Every statement and every transaction gets a span.
func WithTracing(collector ledger.TracingCollector) Option {
	return func(s *Store) error {
		s.tracingCollector = collector
		return nil
	}
}
