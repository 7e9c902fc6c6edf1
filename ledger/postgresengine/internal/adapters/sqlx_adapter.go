package adapters

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// SQLXAdapter implements DBAdapter for sqlx.DB
type SQLXAdapter struct {
	stdExecutor
	db      *sqlx.DB
	replica *sqlx.DB
}

// NewSQLXAdapter creates a new SQLX adapter
func NewSQLXAdapter(db *sqlx.DB) *SQLXAdapter {
	return &SQLXAdapter{stdExecutor: stdExecutor{q: db}, db: db}
}

// NewSQLXAdapterWithReplica creates a new SQLX adapter that reads from replica where allowed
func NewSQLXAdapterWithReplica(db *sqlx.DB, replica *sqlx.DB) *SQLXAdapter {
	return &SQLXAdapter{stdExecutor: stdExecutor{q: db}, db: db, replica: replica}
}

// Replica returns the replica if configured, otherwise the primary.
func (s *SQLXAdapter) Replica() Executor {
	if s.replica == nil {
		return s
	}

	return stdExecutor{q: s.replica}
}

// Begin starts a transaction through sqlx.
func (s *SQLXAdapter) Begin(ctx context.Context) (TxAdapter, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return newStdTx(tx.Tx), nil
}

// Ping checks connectivity of the primary.
func (s *SQLXAdapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
