// Package postgresengine is the PostgreSQL implementation of the library's storage.
//
// A Store can be built on a pgxpool.Pool, a sql.DB (lib/pq) or a sqlx.DB, optionally with a read replica
// for reads that tolerate eventual consistency (see ledger.WithEventualConsistency).
// All SQL is rendered with goqu.
//
// Shared counters are only changed by guarded statements:
//
//	UPDATE books SET copies_available = copies_available - 1 ... WHERE book_id = $1 AND copies_available > 0
//
// A guarded statement that affects no row, a violation of one of the partial unique indexes
// (one Borrowed loan per book and user, one Pending reservation per book and user, one fine per loan),
// or a serialization failure is reported as ledger.ErrConcurrencyConflict.
//
// Usage:
//
//	store, err := postgresengine.NewStoreFromPGXPool(pool, postgresengine.WithLogger(logger))
//	err = store.WithinTx(ctx, func(ctx context.Context) error {
//		available, err := store.DecreaseAvailability(ctx, bookID)
//		...
//		return store.AppendToJournal(ctx, storableEvent)
//	})
//
// Migrate applies the embedded schema migrations under an advisory lock.
package postgresengine
