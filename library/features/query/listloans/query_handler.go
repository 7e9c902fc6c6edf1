package listloans

import (
	"context"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/ledger/postgresengine"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell"
)

// Store defines the persistence operations needed by the QueryHandler.
type Store interface {
	ListLoans(ctx context.Context, filter postgresengine.LoanFilter) ([]core.LoanDetails, error)
}

// QueryHandler lists loans joined with book, borrower and fine.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler with the provided Store dependency.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{
		store: store,
	}
}

// Handle returns the loans visible to the actor.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Loans, error) {
	userID, err := shell.ScopeToUser(query.Actor, query.UserID)
	if err != nil {
		return Loans{}, err
	}

	filter := postgresengine.LoanFilter{UserID: userID, BookID: query.BookID}

	if query.Status != "" {
		status, parseErr := core.ParseLoanStatus(query.Status)
		if parseErr != nil {
			return Loans{}, parseErr
		}

		filter.Status = &status
	}

	loans, err := h.store.ListLoans(ledger.WithEventualConsistency(ctx), filter)
	if err != nil {
		return Loans{}, err
	}

	return Loans{Loans: loans, Count: len(loans)}, nil
}
