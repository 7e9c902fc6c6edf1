package postgresengine

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgCheckViolation       = "23514"
	pgInvalidText          = "22P02"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// sqlState extracts the SQLSTATE from pgx and lib/pq errors.
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}

// classifyDBError maps database errors onto ledger and business sentinels.
// Unique and foreign key violations come from the guards in the schema (one active loan per book and user,
// one pending reservation, one fine per loan, rows deleted concurrently); the caller retries after reloading.
func classifyDBError(err error, fallback error) (error, string) {
	switch sqlState(err) {
	case pgUniqueViolation, pgForeignKeyViolation, pgSerializationFailure, pgDeadlockDetected:
		return errors.Join(ledger.ErrConcurrencyConflict, err), errorTypeConflict
	case pgCheckViolation, pgInvalidText:
		return errors.Join(core.ErrValidation, err), errorTypeInvalidInput
	default:
		return errors.Join(fallback, err), errorTypeDatabase
	}
}
