package ledger

import (
	"errors"
)

var (
	// ErrConcurrencyConflict is returned when a guarded write did not affect the expected rows,
	// a uniqueness guard fired, or the database aborted the transaction with a serialization failure.
	// Command handlers retry on this error after reloading state.
	ErrConcurrencyConflict = errors.New("concurrency conflict, the guarded write was not applied")

	// ErrNilDatabaseConnection is returned when a store is constructed without a connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyJournalTableName is returned when an empty journal table name is configured.
	ErrEmptyJournalTableName = errors.New("journal table name must not be empty")

	// ErrBuildingQueryFailed is returned when goqu fails to render a statement.
	ErrBuildingQueryFailed = errors.New("building query failed")

	// ErrQueryingFailed is returned when a select statement fails.
	ErrQueryingFailed = errors.New("querying failed")

	// ErrExecutingFailed is returned when an insert, update or delete statement fails.
	ErrExecutingFailed = errors.New("executing statement failed")

	// ErrScanningDBRowFailed is returned when a result row cannot be scanned.
	ErrScanningDBRowFailed = errors.New("scanning db row failed")

	// ErrGettingRowsAffectedFailed is returned when the rows affected count is not available.
	ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")

	// ErrTransactionFailed is returned when beginning or committing a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrInvalidPayloadJSON is returned when a journal payload is not valid JSON.
	ErrInvalidPayloadJSON = errors.New("payload json is not valid")

	// ErrInvalidMetadataJSON is returned when journal metadata is not valid JSON.
	ErrInvalidMetadataJSON = errors.New("metadata json is not valid")
)

// SequenceNumberUint is the position of a journal entry in the journal.
type SequenceNumberUint = uint
