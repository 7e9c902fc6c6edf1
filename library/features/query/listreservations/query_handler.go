package listreservations

import (
	"context"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/ledger/postgresengine"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell"
)

// Store defines the persistence operations needed by the QueryHandler.
type Store interface {
	ListReservations(ctx context.Context, filter postgresengine.ReservationFilter) ([]core.ReservationDetails, error)
}

// QueryHandler lists reservations joined with book and user.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler with the provided Store dependency.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{
		store: store,
	}
}

// Handle returns the reservations visible to the actor.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Reservations, error) {
	userID, err := shell.ScopeToUser(query.Actor, query.UserID)
	if err != nil {
		return Reservations{}, err
	}

	filter := postgresengine.ReservationFilter{UserID: userID, BookID: query.BookID}

	if query.Status != "" {
		status, parseErr := core.ParseReservationStatus(query.Status)
		if parseErr != nil {
			return Reservations{}, parseErr
		}

		filter.Status = &status
	}

	reservations, err := h.store.ListReservations(ledger.WithEventualConsistency(ctx), filter)
	if err != nil {
		return Reservations{}, err
	}

	return Reservations{Reservations: reservations, Count: len(reservations)}, nil
}
