package adapters

import (
	"context"
	"database/sql"
)

// SQLAdapter implements DBAdapter for sql.DB
type SQLAdapter struct {
	stdExecutor
	db      *sql.DB
	replica *sql.DB
}

// NewSQLAdapter creates a new SQL adapter
func NewSQLAdapter(db *sql.DB) *SQLAdapter {
	return &SQLAdapter{stdExecutor: stdExecutor{q: db}, db: db}
}

// NewSQLAdapterWithReplica creates a new SQL adapter that reads from replica where allowed
func NewSQLAdapterWithReplica(db *sql.DB, replica *sql.DB) *SQLAdapter {
	return &SQLAdapter{stdExecutor: stdExecutor{q: db}, db: db, replica: replica}
}

func (s *SQLAdapter) Replica() Executor {
	if s.replica == nil {
		return s
	}

	return stdExecutor{q: s.replica}
}

func (s *SQLAdapter) Begin(ctx context.Context) (TxAdapter, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return newStdTx(tx), nil
}

func (s *SQLAdapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
