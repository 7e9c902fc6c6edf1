package createreservation_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/createreservation"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell"
	"github.com/AntonStoeckl/library-lifecycle-go/testutil/memstore"
)

func Test_CommandHandler_Handle_SecondPendingReservationFails(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memstore.New()
	book := givenBook(1)
	user := givenUser()
	require.NoError(t, store.InsertBook(ctx, book))
	require.NoError(t, store.InsertUser(ctx, user))
	handler := createreservation.NewCommandHandler(store, createreservation.WithClock(shell.FixedClock{At: now}))

	// act
	_, firstErr := handler.Handle(ctx, createreservation.Command{ReservationID: uuid.New(), BookID: book.BookID, UserID: user.UserID})
	_, secondErr := handler.Handle(ctx, createreservation.Command{ReservationID: uuid.New(), BookID: book.BookID, UserID: user.UserID})

	// assert
	require.NoError(t, firstErr, "first reservation should be created")
	assert.ErrorIs(t, secondErr, core.ErrDuplicateReservation, "second pending reservation should be rejected")

	pending, _ := store.FindPendingReservation(ctx, book.BookID, user.UserID)
	require.NotNil(t, pending, "the first reservation should be pending")
	assert.Equal(t, "2026-04-07", core.FormatDate(pending.ReservationDate), "reservation date should come from the clock")

	journal := store.Journal()
	require.Len(t, journal, 2)
	assert.Equal(t, core.ReservationCreatedEventType, journal[0].EventType)
	assert.Equal(t, core.CreatingReservationFailedEventType, journal[1].EventType)
}

func Test_CommandHandler_Handle_ReusedReservationID(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memstore.New()
	book := givenBook(1)
	otherBook := givenBook(1)
	user := givenUser()
	require.NoError(t, store.InsertBook(ctx, book))
	require.NoError(t, store.InsertBook(ctx, otherBook))
	require.NoError(t, store.InsertUser(ctx, user))
	handler := createreservation.NewCommandHandler(store, createreservation.WithClock(shell.FixedClock{At: now}))
	command := createreservation.Command{ReservationID: uuid.New(), BookID: book.BookID, UserID: user.UserID}

	_, err := handler.Handle(ctx, command)
	require.NoError(t, err, "first reservation should be created")
	require.NoError(t, store.UpdateReservationStatus(ctx, command.ReservationID, core.ReservationPending, core.ReservationCancelled),
		"error in arranging test data")

	// act
	repeated, repeatedErr := handler.Handle(ctx, command)
	_, reusedErr := handler.Handle(ctx,
		createreservation.Command{ReservationID: command.ReservationID, BookID: otherBook.BookID, UserID: user.UserID})

	// assert
	require.NoError(t, repeatedErr, "repeating the command should not fail")
	assert.True(t, repeated.Idempotent, "repeating the command should be idempotent")
	assert.ErrorIs(t, reusedErr, core.ErrValidation, "the id of another reservation should be rejected")

	journal := store.Journal()
	require.Len(t, journal, 2)
	assert.Equal(t, core.CreatingReservationFailedEventType, journal[1].EventType, "the rejection should be journaled")
}
