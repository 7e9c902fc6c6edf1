// Package ledger provides the persistence contracts of the library lifecycle service.
//
// It defines the types shared by every storage engine and by the command and query handlers:
//   - StorableEvent: a journal entry built on scalars, independent of the domain event types
//   - JournalFilter: criteria for reading journal entries back (event types, payload predicates)
//   - ConsistencyLevel: whether reads must hit the primary database or may use a replica
//   - Logger, ContextualLogger, MetricsCollector, TracingCollector: dependency-free observability hooks
//   - Sentinel errors, most importantly ErrConcurrencyConflict
//
// Every state change of the catalog, the loan ledger, the reservation queue and the fines is
// written together with one journal entry in the same database transaction.
//
// Common usage pattern:
//
//	filter := ledger.BuildJournalFilter().
//		AnyEventTypeOf(core.LoanCreatedEventType, core.LoanReturnedEventType).
//		WithPredicate("BookID", bookID.String()).
//		Finalize()
//
//	entries, err := store.QueryJournal(ctx, filter)
package ledger
