package returnloan_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/returnloan"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

var today = time.Date(2026, 3, 20, 14, 0, 0, 0, time.UTC)

func Test_Decide_Success_WhenLoanIsActive(t *testing.T) {
	// arrange
	book := givenBook(2, 0)
	loan := givenActiveLoan(book.BookID, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	command := returnloan.BuildCommand(loan.LoanID, time.Time{}, today)

	// act
	result := returnloan.Decide(returnloan.State{Loan: &loan, Book: &book}, command)

	// assert
	require.NoError(t, result.HasError(), "Decide should succeed")
	returned, ok := result.Event.(core.LoanReturnedEvent)
	require.True(t, ok, "event should be LoanReturned")
	assert.Equal(t, "2026-03-20", returned.ReturnDate, "return date should default to today")
	assert.Equal(t, 5, returned.DaysOverdue, "due 2026-03-15, returned 2026-03-20")
	assert.Equal(t, 1, returned.CopiesAvailable, "one copy should be back on the shelf")
}

func Test_Decide_Success_CapsAvailabilityAtTotal(t *testing.T) {
	// arrange
	book := givenBook(1, 1)
	loan := givenActiveLoan(book.BookID, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	command := returnloan.BuildCommand(loan.LoanID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), today)

	// act
	result := returnloan.Decide(returnloan.State{Loan: &loan, Book: &book}, command)

	// assert
	require.NoError(t, result.HasError(), "Decide should succeed")
	assert.Equal(t, 1, result.Event.(core.LoanReturnedEvent).CopiesAvailable, "availability should never exceed the total")
}

func Test_Decide_Idempotent_WhenLoanIsAlreadyReturned(t *testing.T) {
	// arrange
	book := givenBook(1, 1)
	loan := givenActiveLoan(book.BookID, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	returnedAt := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	loan.Status = core.LoanReturned
	loan.ReturnDate = &returnedAt

	// act
	result := returnloan.Decide(returnloan.State{Loan: &loan, Book: &book}, returnloan.BuildCommand(loan.LoanID, time.Time{}, today))

	// assert
	assert.True(t, result.IsIdempotent(), "returning twice should be idempotent")
}

func Test_Decide_Error_WhenLoanDoesNotExist(t *testing.T) {
	// act
	result := returnloan.Decide(returnloan.State{}, returnloan.BuildCommand(uuid.New(), time.Time{}, today))

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrNotFound, "unknown loans should be rejected")
	require.NotNil(t, result.Event, "rejection should carry a failure event")
	assert.Equal(t, core.ReturningLoanFailedEventType, result.Event.EventType(), "failure event type should match")
}

func Test_Decide_Error_WhenReturnDateLiesBeforeBorrowDate(t *testing.T) {
	// arrange
	book := givenBook(1, 0)
	loan := givenActiveLoan(book.BookID, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	command := returnloan.BuildCommand(loan.LoanID, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), today)

	// act
	result := returnloan.Decide(returnloan.State{Loan: &loan, Book: &book}, command)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrValidation, "a return before the borrow date should be rejected")
	failed := result.Event.(core.OperationFailed)
	assert.Equal(t, loan.BookID.String(), failed.BookID, "failure should reference the book")
}

func givenBook(total int, available int) core.Book {
	return core.Book{
		BookID:             uuid.New(),
		Title:              "Concurrency in Go",
		Author:             "Katherine Cox-Buday",
		CopiesTotal:        total,
		CopiesAvailable:    available,
		AvailabilityStatus: core.DeriveAvailabilityStatus(available),
	}
}

func givenActiveLoan(bookID uuid.UUID, borrowDate time.Time) core.Loan {
	return core.Loan{
		LoanID:     uuid.New(),
		BookID:     bookID,
		UserID:     uuid.New(),
		BorrowDate: borrowDate,
		DueDate:    core.DueDateFor(borrowDate, core.DefaultLoanPeriodDays),
		Status:     core.LoanBorrowed,
	}
}
