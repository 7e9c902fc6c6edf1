package setfinepaymentstatus_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/setfinepaymentstatus"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell"
	"github.com/AntonStoeckl/library-lifecycle-go/testutil/memstore"
)

func Test_CommandHandler_Handle_BorrowerPaysOnce(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memstore.New()
	fine, loan := givenStoredFine(t, store)
	handler := setfinepaymentstatus.NewCommandHandler(store, setfinepaymentstatus.WithClock(shell.FixedClock{At: now}))
	command := setfinepaymentstatus.Command{
		FineID:    fine.FineID,
		NewStatus: "Paid",
		Actor:     core.Principal{UserID: loan.UserID, Role: core.RoleStudent},
	}

	// act
	first, firstErr := handler.Handle(ctx, command)
	second, secondErr := handler.Handle(ctx, command)

	// assert
	require.NoError(t, firstErr, "borrower should pay")
	require.NoError(t, secondErr, "paying again should not fail")
	assert.False(t, first.Idempotent, "first payment changes state")
	assert.True(t, second.Idempotent, "second payment is idempotent")

	stored, _ := store.FindFine(ctx, fine.FineID)
	require.NotNil(t, stored)
	assert.Equal(t, core.PaymentPaid, stored.PaymentStatus, "fine should be paid")
	assert.Len(t, store.Journal(), 1, "only the change should be journaled")
}

func givenStoredFine(t *testing.T, store *memstore.Store) (core.Fine, core.Loan) {
	t.Helper()
	ctx := context.Background()
	fine, loan := givenFine(core.PaymentUnpaid)

	require.NoError(t, store.InsertBook(ctx, core.Book{BookID: loan.BookID, Title: "Working Effectively with Legacy Code",
		Author: "Michael Feathers", CopiesTotal: 1, CopiesAvailable: 0, AvailabilityStatus: core.AvailabilityBorrowed}))
	require.NoError(t, store.InsertUser(ctx, core.User{UserID: loan.UserID, Name: "Max Student",
		Email: "max@example.org", Role: core.RoleStudent}))
	require.NoError(t, store.InsertLoan(ctx, loan))
	require.NoError(t, store.InsertFine(ctx, fine))

	return fine, loan
}
