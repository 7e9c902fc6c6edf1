package listreservations_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/listreservations"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/testutil/memstore"
)

func Test_QueryHandler_Handle_ScopesAndFilters(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memstore.New()
	book := core.Book{BookID: uuid.New(), Title: "Building Microservices", Author: "Sam Newman",
		CopiesTotal: 1, CopiesAvailable: 0, AvailabilityStatus: core.AvailabilityBorrowed}
	require.NoError(t, store.InsertBook(ctx, book))
	ana := givenUser(t, store, "ana")
	ben := givenUser(t, store, "ben")
	givenReservation(t, store, book, ana, core.ReservationPending)
	givenReservation(t, store, book, ben, core.ReservationCollected)
	handler := listreservations.NewQueryHandler(store)

	// act
	own, ownErr := handler.Handle(ctx, listreservations.BuildQuery(core.Principal{UserID: ana.UserID, Role: core.RoleMember}, "", nil, nil))
	pending, pendingErr := handler.Handle(ctx, listreservations.BuildQuery(core.Principal{UserID: uuid.New(), Role: core.RoleAdmin}, "Pending", nil, nil))
	_, invalidErr := handler.Handle(ctx, listreservations.BuildQuery(core.Principal{UserID: uuid.New(), Role: core.RoleAdmin}, "Open", nil, nil))

	// assert
	require.NoError(t, ownErr)
	require.NoError(t, pendingErr)
	require.Equal(t, 1, own.Count, "member should see only own reservations")
	assert.Equal(t, "ana", own.Reservations[0].User.Name)
	require.Equal(t, 1, pending.Count, "status filter should apply")
	assert.Equal(t, ana.UserID, pending.Reservations[0].UserID)
	assert.ErrorIs(t, invalidErr, core.ErrValidation)
}

func givenUser(t *testing.T, store *memstore.Store, name string) core.User {
	t.Helper()
	user := core.User{UserID: uuid.New(), Name: name, Email: name + "@example.org", Role: core.RoleMember}
	require.NoError(t, store.InsertUser(context.Background(), user))

	return user
}

func givenReservation(t *testing.T, store *memstore.Store, book core.Book, user core.User, status core.ReservationStatus) {
	t.Helper()
	require.NoError(t, store.InsertReservation(context.Background(), core.Reservation{
		ReservationID:   uuid.New(),
		BookID:          book.BookID,
		UserID:          user.UserID,
		ReservationDate: core.ToCalendarDate(time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)),
		Status:          status,
	}))
}
