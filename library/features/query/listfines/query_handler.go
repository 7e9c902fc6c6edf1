package listfines

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/ledger/postgresengine"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell"
)

// Store defines the persistence operations needed by the QueryHandler.
type Store interface {
	ListFines(ctx context.Context, filter postgresengine.FineFilter) ([]core.FineDetails, error)
}

// QueryHandler lists fines joined with loan, book and borrower.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler with the provided Store dependency.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{
		store: store,
	}
}

// Handle returns the fines visible to the actor.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Fines, error) {
	userID, err := shell.ScopeToUser(query.Actor, query.UserID)
	if err != nil {
		return Fines{}, err
	}

	filter := postgresengine.FineFilter{UserID: userID}

	if query.PaymentStatus != "" {
		status, parseErr := core.ParsePaymentStatus(query.PaymentStatus)
		if parseErr != nil {
			return Fines{}, parseErr
		}

		filter.PaymentStatus = &status
	}

	fines, err := h.store.ListFines(ledger.WithEventualConsistency(ctx), filter)
	if err != nil {
		return Fines{}, err
	}

	return Project(fines), nil
}

// Project sums the outstanding amount of the listed fines.
func Project(fines []core.FineDetails) Fines {
	outstanding := decimal.Zero

	for _, fine := range fines {
		if fine.PaymentStatus == core.PaymentUnpaid {
			outstanding = outstanding.Add(fine.Amount)
		}
	}

	return Fines{Fines: fines, Count: len(fines), Outstanding: outstanding}
}
