package cancelreservation_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/cancelreservation"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell"
	"github.com/AntonStoeckl/library-lifecycle-go/testutil/memstore"
)

func Test_CommandHandler_Handle_DeletesTheReservation(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memstore.New()
	reservation := givenStoredReservation(t, store)
	handler := cancelreservation.NewCommandHandler(store, cancelreservation.WithClock(shell.FixedClock{At: now}))
	owner := core.Principal{UserID: reservation.UserID, Role: core.RoleMember}

	// act
	_, err := handler.Handle(ctx, cancelreservation.Command{ReservationID: reservation.ReservationID, Actor: owner})
	_, secondErr := handler.Handle(ctx, cancelreservation.Command{ReservationID: reservation.ReservationID, Actor: owner})

	// assert
	require.NoError(t, err, "owner should cancel the reservation")
	assert.ErrorIs(t, secondErr, core.ErrNotFound, "the reservation row should be gone")

	stored, _ := store.FindReservation(ctx, reservation.ReservationID)
	assert.Nil(t, stored, "reservation should be deleted")

	journal := store.Journal()
	require.Len(t, journal, 2)
	assert.Equal(t, core.ReservationCancelledEventType, journal[0].EventType)
	assert.Equal(t, core.CancellingReservationFailedEventType, journal[1].EventType)
}

func givenStoredReservation(t *testing.T, store *memstore.Store) core.Reservation {
	t.Helper()
	ctx := context.Background()

	book := core.Book{BookID: uuid.New(), Title: "The Go Programming Language", Author: "Donovan, Kernighan",
		CopiesTotal: 2, CopiesAvailable: 2, AvailabilityStatus: core.AvailabilityAvailable}
	user := core.User{UserID: uuid.New(), Name: "Jo Member", Email: "jo@example.org", Role: core.RoleMember}
	require.NoError(t, store.InsertBook(ctx, book))
	require.NoError(t, store.InsertUser(ctx, user))

	reservation := givenReservation()
	reservation.BookID = book.BookID
	reservation.UserID = user.UserID
	require.NoError(t, store.InsertReservation(ctx, reservation))

	return reservation
}
