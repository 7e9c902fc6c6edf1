// Package spies provides test doubles for the observability hooks of the ledger:
// a slog handler spy, a contextual logger spy, a metrics collector spy and a tracing collector spy.
package spies
