package listbooks

import (
	"context"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/ledger/postgresengine"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// MaxLimit caps the page size a client may ask for.
const MaxLimit = 100

// Store defines the persistence operations needed by the QueryHandler.
type Store interface {
	ListBooks(ctx context.Context, filter postgresengine.BookFilter) ([]core.Book, int, error)
}

// QueryHandler reads a page of the catalog.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler with the provided Store dependency.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{
		store: store,
	}
}

// Handle returns the requested page. Listings tolerate replica lag.
func (h QueryHandler) Handle(ctx context.Context, query Query) (BookPage, error) {
	ctx = ledger.WithEventualConsistency(ctx)

	filter := postgresengine.BookFilter{
		Search:   query.Search,
		Category: query.Category,
		Page:     max(query.Page, 1),
		Limit:    query.Limit,
	}

	if filter.Limit < 1 {
		filter.Limit = postgresengine.DefaultPageLimit
	}

	filter.Limit = min(filter.Limit, MaxLimit)

	books, total, err := h.store.ListBooks(ctx, filter)
	if err != nil {
		return BookPage{}, err
	}

	return BookPage{
		Books:      books,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: (total + filter.Limit - 1) / filter.Limit,
	}, nil
}
