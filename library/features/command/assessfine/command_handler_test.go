package assessfine_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/assessfine"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell"
	"github.com/AntonStoeckl/library-lifecycle-go/testutil/memstore"
)

func Test_CommandHandler_Handle_OneFinePerLoan(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memstore.New()
	loan := givenStoredLoan(t, store, givenOverdueLoan(3))
	handler := assessfine.NewCommandHandler(store, assessfine.WithClock(shell.FixedClock{At: now}))

	// act
	_, firstErr := handler.Handle(ctx, assessfine.Command{FineID: uuid.New(), LoanID: loan.LoanID, Amount: decimal.NewFromInt(5)})
	_, secondErr := handler.Handle(ctx, assessfine.Command{FineID: uuid.New(), LoanID: loan.LoanID, Amount: decimal.NewFromInt(9)})

	// assert
	require.NoError(t, firstErr, "first fine should be assessed")
	assert.ErrorIs(t, secondErr, core.ErrValidation, "second fine should be rejected")

	fine, _ := store.FindFineByLoan(ctx, loan.LoanID)
	require.NotNil(t, fine, "fine should be stored")
	assert.True(t, decimal.NewFromInt(5).Equal(fine.Amount), "the first amount should win")
	assert.Equal(t, core.PaymentUnpaid, fine.PaymentStatus, "new fines are unpaid")

	journal := store.Journal()
	require.Len(t, journal, 2)
	assert.Equal(t, core.FineAssessedEventType, journal[0].EventType)
	assert.Equal(t, core.AssessingFineFailedEventType, journal[1].EventType)
}

func Test_CommandHandler_Handle_ReusedFineIDOnAnotherLoan(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memstore.New()
	first := givenStoredLoan(t, store, givenOverdueLoan(3))
	second := givenStoredLoan(t, store, givenOverdueLoan(5))
	handler := assessfine.NewCommandHandler(store, assessfine.WithClock(shell.FixedClock{At: now}))
	fineID := uuid.New()

	_, err := handler.Handle(ctx, assessfine.Command{FineID: fineID, LoanID: first.LoanID, Amount: decimal.NewFromInt(5)})
	require.NoError(t, err, "first fine should be assessed")

	// act
	result, err := handler.Handle(ctx, assessfine.Command{FineID: fineID, LoanID: second.LoanID, Amount: decimal.NewFromInt(9)})

	// assert
	assert.ErrorIs(t, err, core.ErrValidation, "the id of another loan's fine should be rejected")
	assert.Equal(t, 1, result.RetryAttempts, "the rejection should not be retried")

	fine, _ := store.FindFineByLoan(ctx, second.LoanID)
	assert.Nil(t, fine, "the second loan should stay without a fine")

	journal := store.Journal()
	require.Len(t, journal, 2)
	assert.Equal(t, core.AssessingFineFailedEventType, journal[1].EventType, "the rejection should be journaled")
}

func givenStoredLoan(t *testing.T, store *memstore.Store, loan core.Loan) core.Loan {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.InsertBook(ctx, core.Book{BookID: loan.BookID, Title: "Clean Code", Author: "Robert C. Martin",
		CopiesTotal: 1, CopiesAvailable: 0, AvailabilityStatus: core.AvailabilityBorrowed}))
	require.NoError(t, store.InsertUser(ctx, core.User{UserID: loan.UserID, Name: "Kim Student",
		Email: loan.UserID.String() + "@example.org", Role: core.RoleStudent}))
	require.NoError(t, store.InsertLoan(ctx, loan))

	return loan
}
