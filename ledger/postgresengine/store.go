package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/ledger/postgresengine/internal/adapters"
)

const (
	defaultJournalTableName = "ledger_events"
	dialectPostgres         = "postgres"
)

// Store persists the catalog, the loan ledger, reservations, fines, users, sessions, reports and the journal
// in PostgreSQL. Reads and writes join the transaction carried by the context, see WithinTx.
type Store struct {
	db               adapters.DBAdapter
	journalTableName string
	logger           ledger.Logger
	contextualLogger ledger.ContextualLogger
	metricsCollector ledger.MetricsCollector
	tracingCollector ledger.TracingCollector
}

type txKey struct{}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, ledger.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options...)
}

// NewStoreFromPGXPoolAndReplica creates a new Store that serves eventually consistent reads from replica.
func NewStoreFromPGXPoolAndReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, ledger.ErrNilDatabaseConnection
	}

	if replica == nil {
		return newStore(adapters.NewPGXAdapter(db), options...)
	}

	return newStore(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, ledger.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLDBAndReplica creates a new Store on sql.DB that serves eventually consistent reads from replica.
func NewStoreFromSQLDBAndReplica(db *sql.DB, replica *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, ledger.ErrNilDatabaseConnection
	}

	if replica == nil {
		return newStore(adapters.NewSQLAdapter(db), options...)
	}

	return newStore(adapters.NewSQLAdapterWithReplica(db, replica), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, ledger.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

// NewStoreFromSQLXAndReplica creates a new Store on sqlx.DB that serves eventually consistent reads from replica.
func NewStoreFromSQLXAndReplica(db *sqlx.DB, replica *sqlx.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, ledger.ErrNilDatabaseConnection
	}

	if replica == nil {
		return newStore(adapters.NewSQLXAdapter(db), options...)
	}

	return newStore(adapters.NewSQLXAdapterWithReplica(db, replica), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (Store, error) {
	s := Store{
		db:               db,
		journalTableName: defaultJournalTableName,
	}

	for _, option := range options {
		if err := option(&s); err != nil {
			return Store{}, err
		}
	}

	return s, nil
}

// Ping checks that the primary database is reachable.
func (s Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// WithinTx runs fn inside a database transaction. Every Store call made with the context passed to fn
// joins that transaction. Nested calls join the outer transaction.
//
// The transaction is committed when fn returns nil and rolled back otherwise.
// A serialization failure or deadlock during commit surfaces as ledger.ErrConcurrencyConflict.
func (s Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	ctx, span := s.startTraceSpan(ctx, spanNameTransaction, map[string]string{spanAttrOperation: operationTransaction})
	start := time.Now()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		mapped, errorType := classifyDBError(err, ledger.ErrTransactionFailed)
		s.logErrorContext(ctx, logMsgBeginTxFailed, err)
		s.recordErrorMetricsContext(ctx, operationTransaction, errorType)
		s.finishTraceSpan(span, statusError, map[string]string{spanAttrErrorType: errorType})

		return mapped
	}

	if fnErr := fn(context.WithValue(ctx, txKey{}, tx)); fnErr != nil {
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			s.logWarnContext(ctx, logMsgRollbackFailed, rbErr)
		}

		status := statusError
		if errors.Is(fnErr, ledger.ErrConcurrencyConflict) {
			status = statusConflict
		}

		s.recordDurationMetricsContext(ctx, metricTransactionDuration, time.Since(start), operationTransaction, status)
		s.finishTraceSpan(span, status, nil)

		return fnErr
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		mapped, errorType := classifyDBError(commitErr, ledger.ErrTransactionFailed)
		s.logErrorContext(ctx, logMsgCommitFailed, commitErr)
		s.recordErrorMetricsContext(ctx, operationTransaction, errorType)
		s.finishTraceSpan(span, statusError, map[string]string{spanAttrErrorType: errorType})

		return mapped
	}

	s.recordDurationMetricsContext(ctx, metricTransactionDuration, time.Since(start), operationTransaction, statusSuccess)
	s.finishTraceSpan(span, statusSuccess, nil)

	return nil
}

func txFromContext(ctx context.Context) (adapters.TxAdapter, bool) {
	tx, ok := ctx.Value(txKey{}).(adapters.TxAdapter)

	return tx, ok
}

// writer returns the transaction from the context or the primary.
func (s Store) writer(ctx context.Context) adapters.Executor {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}

	return s.db
}

// reader returns the transaction from the context, the replica for eventually consistent reads, or the primary.
func (s Store) reader(ctx context.Context) adapters.Executor {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}

	if ledger.GetConsistencyLevel(ctx) == ledger.EventualConsistency {
		return s.db.Replica()
	}

	return s.db
}

func (s Store) builder() goqu.DialectWrapper {
	return goqu.Dialect(dialectPostgres)
}

// toSQL renders a goqu dataset to a non-prepared statement.
func (s Store) toSQL(ctx context.Context, operation string, ds interface {
	ToSQL() (string, []any, error)
}) (string, error) {

	sqlQuery, _, err := ds.ToSQL()
	if err != nil {
		s.logErrorContext(ctx, logMsgBuildQueryFailed, err, logAttrOperation, operation)

		return "", errors.Join(ledger.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

// query runs a select and hands every row to scan.
func (s Store) query(
	ctx context.Context,
	operation string,
	sqlQuery string,
	scan func(rows adapters.DBRows) error,
) (int, error) {

	return s.runQuery(ctx, s.reader(ctx), operation, sqlQuery, scan)
}

// queryReturning runs a write with a RETURNING clause on the primary and hands every returned row to scan.
func (s Store) queryReturning(
	ctx context.Context,
	operation string,
	sqlQuery string,
	scan func(rows adapters.DBRows) error,
) (int, error) {

	return s.runQuery(ctx, s.writer(ctx), operation, sqlQuery, scan)
}

func (s Store) runQuery(
	ctx context.Context,
	executor adapters.Executor,
	operation string,
	sqlQuery string,
	scan func(rows adapters.DBRows) error,
) (int, error) {

	ctx, span := s.startTraceSpan(ctx, spanNamePrefix+operation, map[string]string{spanAttrOperation: operation})
	start := time.Now()

	rows, err := executor.Query(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDurationContext(ctx, sqlQuery, operation, duration)

	if err != nil {
		mapped, errorType := classifyDBError(err, ledger.ErrQueryingFailed)
		s.observeQueryError(ctx, span, operation, errorType, duration, err, sqlQuery)

		return 0, mapped
	}
	defer s.closeRows(ctx, rows)

	count := 0

	for rows.Next() {
		if scanErr := scan(rows); scanErr != nil {
			s.observeFailure(ctx, span, operation, errorTypeScan, duration, scanErr, sqlQuery)

			return 0, errors.Join(ledger.ErrScanningDBRowFailed, scanErr)
		}

		count++
	}

	if iterErr := rows.Err(); iterErr != nil {
		mapped, errorType := classifyDBError(iterErr, ledger.ErrQueryingFailed)
		s.observeQueryError(ctx, span, operation, errorType, duration, iterErr, sqlQuery)

		return 0, mapped
	}

	s.recordDurationMetricsContext(ctx, metricQueryDuration, duration, operation, statusSuccess)
	s.recordValueMetricsContext(ctx, metricRowsReturned, float64(count), operation, statusSuccess)
	s.finishSpanSuccess(span, operation, count, duration)

	return count, nil
}

// exec runs an insert, update or delete and returns the rows affected.
func (s Store) exec(ctx context.Context, operation string, sqlQuery string) (int64, error) {
	ctx, span := s.startTraceSpan(ctx, spanNamePrefix+operation, map[string]string{spanAttrOperation: operation})
	start := time.Now()

	result, err := s.writer(ctx).Exec(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDurationContext(ctx, sqlQuery, operation, duration)

	if err != nil {
		mapped, errorType := classifyDBError(err, ledger.ErrExecutingFailed)
		s.observeQueryError(ctx, span, operation, errorType, duration, err, sqlQuery)

		return 0, mapped
	}

	rowsAffected, rowsErr := result.RowsAffected()
	if rowsErr != nil {
		s.observeFailure(ctx, span, operation, errorTypeRowsAffected, duration, rowsErr, sqlQuery)

		return 0, errors.Join(ledger.ErrGettingRowsAffectedFailed, rowsErr)
	}

	s.recordDurationMetricsContext(ctx, metricExecDuration, duration, operation, statusSuccess)
	s.recordValueMetricsContext(ctx, metricRowsAffected, float64(rowsAffected), operation, statusSuccess)
	s.finishSpanSuccess(span, operation, int(rowsAffected), duration)

	return rowsAffected, nil
}

// execGuarded runs a guarded write that must affect exactly one row.
// Zero rows affected means the guard did not hold, which is reported as ledger.ErrConcurrencyConflict.
func (s Store) execGuarded(ctx context.Context, operation string, sqlQuery string) error {
	rowsAffected, err := s.exec(ctx, operation, sqlQuery)
	if err != nil {
		return err
	}

	if rowsAffected != 1 {
		s.logOperationContext(ctx, logMsgConcurrencyConflict, logAttrOperation, operation, logAttrRowsAffected, rowsAffected)
		s.recordConcurrencyConflictMetricsContext(ctx, operation)

		return ledger.ErrConcurrencyConflict
	}

	return nil
}

// closeRows safely closes database rows and logs any errors.
func (s Store) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		s.logWarnContext(ctx, logMsgCloseRowsFailed, closeErr)
	}
}
