package adapters

import (
	"context"
)

// Executor runs fully rendered SQL statements.
type Executor interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
}

// DBAdapter defines the interface for database operations needed by the store.
// Query and Exec always go to the primary.
type DBAdapter interface {
	Executor

	// Replica returns an Executor for the read replica, or the primary when none is configured.
	Replica() Executor

	// Begin starts a transaction on the primary.
	Begin(ctx context.Context) (TxAdapter, error)

	Ping(ctx context.Context) error
}

// TxAdapter is a running transaction.
type TxAdapter interface {
	Executor
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}
