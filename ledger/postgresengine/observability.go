package postgresengine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
)

const (
	logMsgBuildQueryFailed    = "failed to build query"
	logMsgDBStatementFailed   = "database statement failed"
	logMsgCloseRowsFailed     = "failed to close database rows"
	logMsgBeginTxFailed       = "failed to begin transaction"
	logMsgCommitFailed        = "failed to commit transaction"
	logMsgRollbackFailed      = "failed to roll back transaction"
	logMsgConcurrencyConflict = "concurrency conflict detected"
	logMsgSQLExecuted         = "executed sql for: "
	logMsgOperation           = "store operation: "
	logMsgMigrationApplied    = "migration applied"
	logAttrError              = "error"
	logAttrQuery              = "query"
	logAttrOperation          = "operation"
	logAttrDurationMS         = "duration_ms"
	logAttrRowsAffected       = "rows_affected"
	logAttrErrorType          = "error_type"
	logAttrVersion            = "version"

	metricQueryDuration        = "ledger_query_duration_seconds"
	metricExecDuration         = "ledger_exec_duration_seconds"
	metricTransactionDuration  = "ledger_transaction_duration_seconds"
	metricRowsReturned         = "ledger_rows_returned"
	metricRowsAffected         = "ledger_rows_affected"
	metricDatabaseErrors       = "ledger_database_errors_total"
	metricConcurrencyConflicts = "ledger_concurrency_conflicts_total"

	spanNamePrefix       = "ledger."
	spanNameTransaction  = "ledger.transaction"
	spanAttrOperation    = "operation"
	spanAttrErrorType    = "error_type"
	spanAttrRowCount     = "row_count"
	spanAttrDurationMS   = "duration_ms"
	operationTransaction = "transaction"

	statusSuccess  = "success"
	statusError    = "error"
	statusConflict = "conflict"

	errorTypeConflict     = "concurrency_conflict"
	errorTypeInvalidInput = "invalid_input"
	errorTypeDatabase     = "database_error"
	errorTypeScan         = "row_scan_error"
	errorTypeRowsAffected = "rows_affected_error"
)

// logQueryWithDurationContext logs SQL statements with execution time at debug level.
func (s Store) logQueryWithDurationContext(ctx context.Context, sqlQuery string, operation string, duration time.Duration) {
	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+operation, args...)
	case s.logger != nil:
		s.logger.Debug(logMsgSQLExecuted+operation, args...)
	}
}

// logOperationContext logs operational information at info level.
func (s Store) logOperationContext(ctx context.Context, action string, args ...any) {
	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	case s.logger != nil:
		s.logger.Info(logMsgOperation+action, args...)
	}
}

// logWarnContext logs non-critical failures.
func (s Store) logWarnContext(ctx context.Context, message string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.WarnContext(ctx, message, allArgs...)
	case s.logger != nil:
		s.logger.Warn(message, allArgs...)
	}
}

// logErrorContext logs failures that abort an operation.
func (s Store) logErrorContext(ctx context.Context, message string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.ErrorContext(ctx, message, allArgs...)
	case s.logger != nil:
		s.logger.Error(message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func (s Store) recordDurationMetricsContext(ctx context.Context, metric string, duration time.Duration, operation, status string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, "status": status}

	if contextual, ok := s.metricsCollector.(ledger.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	s.metricsCollector.RecordDuration(metric, duration, labels)
}

func (s Store) recordValueMetricsContext(ctx context.Context, metric string, value float64, operation, status string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, "status": status}

	if contextual, ok := s.metricsCollector.(ledger.ContextualMetricsCollector); ok {
		contextual.RecordValueContext(ctx, metric, value, labels)
		return
	}

	s.metricsCollector.RecordValue(metric, value, labels)
}

func (s Store) recordErrorMetricsContext(ctx context.Context, operation, errorType string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, "status": statusError, spanAttrErrorType: errorType}

	if contextual, ok := s.metricsCollector.(ledger.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metricDatabaseErrors, labels)
		return
	}

	s.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
}

func (s Store) recordConcurrencyConflictMetricsContext(ctx context.Context, operation string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, "conflict_type": "concurrency"}

	if contextual, ok := s.metricsCollector.(ledger.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metricConcurrencyConflicts, labels)
		return
	}

	s.metricsCollector.IncrementCounter(metricConcurrencyConflicts, labels)
}

// startTraceSpan starts a tracing span if the tracing collector is configured.
func (s Store) startTraceSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, ledger.SpanContext) {
	if s.tracingCollector != nil {
		return s.tracingCollector.StartSpan(ctx, name, attrs)
	}

	return ctx, nil
}

// finishTraceSpan finishes a tracing span if the tracing collector is configured.
func (s Store) finishTraceSpan(span ledger.SpanContext, status string, attrs map[string]string) {
	if s.tracingCollector != nil && span != nil {
		s.tracingCollector.FinishSpan(span, status, attrs)
	}
}

func (s Store) finishSpanSuccess(span ledger.SpanContext, operation string, rowCount int, duration time.Duration) {
	if span == nil {
		return
	}

	span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", toMilliseconds(duration)))

	s.finishTraceSpan(span, statusSuccess, map[string]string{
		spanAttrOperation: operation,
		spanAttrRowCount:  fmt.Sprintf("%d", rowCount),
	})
}

// observeFailure logs, counts and traces a failed statement.
func (s Store) observeFailure(
	ctx context.Context,
	span ledger.SpanContext,
	operation string,
	errorType string,
	duration time.Duration,
	err error,
	sqlQuery string,
) {

	s.logErrorContext(ctx, logMsgDBStatementFailed, err, logAttrOperation, operation, logAttrErrorType, errorType, logAttrQuery, sqlQuery)
	s.recordDurationMetricsContext(ctx, metricQueryDuration, duration, operation, statusError)
	s.recordErrorMetricsContext(ctx, operation, errorType)
	s.finishTraceSpan(span, statusError, map[string]string{spanAttrErrorType: errorType})
}

// observeQueryError routes guard violations to observeConflict and everything else to observeFailure.
func (s Store) observeQueryError(
	ctx context.Context,
	span ledger.SpanContext,
	operation string,
	errorType string,
	duration time.Duration,
	err error,
	sqlQuery string,
) {

	if errorType == errorTypeConflict {
		s.observeConflict(ctx, span, operation, duration)
		return
	}

	s.observeFailure(ctx, span, operation, errorType, duration, err, sqlQuery)
}

// observeConflict logs, counts and traces a statement rejected by a uniqueness or serialization guard.
func (s Store) observeConflict(ctx context.Context, span ledger.SpanContext, operation string, duration time.Duration) {
	s.logOperationContext(ctx, logMsgConcurrencyConflict, logAttrOperation, operation, logAttrDurationMS, toMilliseconds(duration))
	s.recordConcurrencyConflictMetricsContext(ctx, operation)
	s.finishTraceSpan(span, statusConflict, map[string]string{spanAttrErrorType: errorTypeConflict})
}
