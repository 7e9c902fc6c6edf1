// Package memstore provides an in-memory store with the same method set and the same guards as the
// postgres store. Command, query and transport tests use it when they do not need a real database.
//
// Transactions are serialized and rolled back by restoring a snapshot. Guards that fail return
// ledger.ErrConcurrencyConflict just like the guarded SQL statements do, and FailNext injects
// errors into the next call of a store operation.
package memstore
