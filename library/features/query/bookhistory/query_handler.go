package bookhistory

import (
	"context"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell"
)

// Store defines the persistence operations needed by the QueryHandler.
type Store interface {
	shell.QueriesJournal
}

// QueryHandler reads the journal of a book.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler with the provided Store dependency.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{
		store: store,
	}
}

// Handle returns the journal entries whose payload carries the book's ID.
// A book that never existed has an empty history.
func (h QueryHandler) Handle(ctx context.Context, query Query) (History, error) {
	filter := ledger.BuildJournalFilter().
		WithPredicate("BookID", query.BookID.String()).
		Limit(query.Limit).
		Finalize()

	storableEvents, err := h.store.QueryJournal(ledger.WithEventualConsistency(ctx), filter)
	if err != nil {
		return History{}, err
	}

	return Project(storableEvents)
}

// Project maps journal entries to history entries.
func Project(storableEvents ledger.StorableEvents) (History, error) {
	entries := make([]Entry, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		event, err := shell.DomainEventFrom(storableEvent)
		if err != nil {
			return History{}, err
		}

		entries = append(entries, Entry{
			SequenceNumber: storableEvent.SequenceNumber,
			EventType:      storableEvent.EventType,
			OccurredAt:     storableEvent.OccurredAt,
			Failed:         event.IsErrorEvent(),
			Event:          event,
		})
	}

	return History{Entries: entries, Count: len(entries)}, nil
}
