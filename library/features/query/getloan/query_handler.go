package getloan

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// Store defines the persistence operations needed by the QueryHandler.
type Store interface {
	FindLoanDetails(ctx context.Context, loanID uuid.UUID) (*core.LoanDetails, error)
}

// QueryHandler reads one loan with its details.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler with the provided Store dependency.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{
		store: store,
	}
}

// Handle returns the loan. Members may only read their own loans.
func (h QueryHandler) Handle(ctx context.Context, query Query) (core.LoanDetails, error) {
	details, err := h.store.FindLoanDetails(ledger.WithEventualConsistency(ctx), query.LoanID)
	if err != nil {
		return core.LoanDetails{}, err
	}

	if details == nil {
		return core.LoanDetails{}, core.NotFound("loan", query.LoanID.String())
	}

	if !query.Actor.MayActFor(details.UserID) {
		return core.LoanDetails{}, fmt.Errorf("%w: loan %s belongs to another user", core.ErrForbidden, query.LoanID)
	}

	return *details, nil
}
