package getbook

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// Store defines the persistence operations needed by the QueryHandler.
type Store interface {
	FindBook(ctx context.Context, bookID uuid.UUID) (*core.Book, error)
}

// QueryHandler reads one book.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler with the provided Store dependency.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{
		store: store,
	}
}

// Handle returns the book or core.ErrNotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (core.Book, error) {
	book, err := h.store.FindBook(ledger.WithEventualConsistency(ctx), query.BookID)
	if err != nil {
		return core.Book{}, err
	}

	if book == nil {
		return core.Book{}, core.NotFound("book", query.BookID.String())
	}

	return *book, nil
}
