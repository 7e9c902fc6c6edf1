package createloan_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/createloan"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

var today = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func Test_Decide_Success_WhenACopyIsAvailable(t *testing.T) {
	// arrange
	book := givenBook(2, 2)
	user := givenUser()
	command := createloan.BuildCommand(uuid.New(), book.BookID, user.UserID, time.Time{}, time.Time{}, today)

	// act
	result := createloan.Decide(createloan.State{Book: &book, User: &user}, command, core.DefaultLoanPeriodDays)

	// assert
	require.NoError(t, result.HasError(), "Decide should succeed")
	created, ok := result.Event.(core.LoanCreated)
	require.True(t, ok, "event should be LoanCreated")
	assert.Equal(t, "2026-03-02", created.BorrowDate, "borrow date should default to today")
	assert.Equal(t, "2026-03-16", created.DueDate, "due date should default to borrow date plus 14 days")
	assert.Equal(t, 1, created.CopiesAvailable, "one copy should remain on the shelf")
}

func Test_Decide_Success_WithExplicitDates(t *testing.T) {
	// arrange
	book := givenBook(1, 1)
	user := givenUser()
	borrow := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)
	command := createloan.BuildCommand(uuid.New(), book.BookID, user.UserID, borrow, due, today)

	// act
	result := createloan.Decide(createloan.State{Book: &book, User: &user}, command, core.DefaultLoanPeriodDays)

	// assert
	require.NoError(t, result.HasError(), "Decide should succeed")
	created := result.Event.(core.LoanCreated)
	assert.Equal(t, "2026-02-01", created.BorrowDate, "explicit borrow date should be kept")
	assert.Equal(t, "2026-02-05", created.DueDate, "explicit due date should be kept")
	assert.Equal(t, 0, created.CopiesAvailable, "the last copy should be lent")
}

func Test_Decide_Error_WhenNoCopyIsAvailable(t *testing.T) {
	// arrange
	book := givenBook(2, 0)
	user := givenUser()
	command := createloan.BuildCommand(uuid.New(), book.BookID, user.UserID, time.Time{}, time.Time{}, today)

	// act
	result := createloan.Decide(createloan.State{Book: &book, User: &user}, command, core.DefaultLoanPeriodDays)

	// assert
	assertRejected(t, result, core.ErrUnavailable)
}

func Test_Decide_Error_WhenBookDoesNotExist(t *testing.T) {
	// arrange
	user := givenUser()
	command := createloan.BuildCommand(uuid.New(), uuid.New(), user.UserID, time.Time{}, time.Time{}, today)

	// act
	result := createloan.Decide(createloan.State{User: &user}, command, core.DefaultLoanPeriodDays)

	// assert
	assertRejected(t, result, core.ErrNotFound)
}

func Test_Decide_Error_WhenUserDoesNotExist(t *testing.T) {
	// arrange
	book := givenBook(1, 1)
	command := createloan.BuildCommand(uuid.New(), book.BookID, uuid.New(), time.Time{}, time.Time{}, today)

	// act
	result := createloan.Decide(createloan.State{Book: &book}, command, core.DefaultLoanPeriodDays)

	// assert
	assertRejected(t, result, core.ErrNotFound)
}

func Test_Decide_Error_WhenUserAlreadyHasAnActiveLoanForTheBook(t *testing.T) {
	// arrange
	book := givenBook(3, 2)
	user := givenUser()
	active := givenActiveLoan(book.BookID, user.UserID)
	command := createloan.BuildCommand(uuid.New(), book.BookID, user.UserID, time.Time{}, time.Time{}, today)

	// act
	result := createloan.Decide(createloan.State{Book: &book, User: &user, ActiveLoan: &active}, command, core.DefaultLoanPeriodDays)

	// assert
	assertRejected(t, result, core.ErrDuplicateLoan)
}

func Test_Decide_Error_WhenDueDateLiesBeforeBorrowDate(t *testing.T) {
	// arrange
	book := givenBook(1, 1)
	user := givenUser()
	command := createloan.BuildCommand(
		uuid.New(), book.BookID, user.UserID,
		time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		today,
	)

	// act
	result := createloan.Decide(createloan.State{Book: &book, User: &user}, command, core.DefaultLoanPeriodDays)

	// assert
	assertRejected(t, result, core.ErrValidation)
}

func Test_Decide_Idempotent_WhenTheSameLoanWasAlreadyCreated(t *testing.T) {
	// arrange
	book := givenBook(1, 0)
	user := givenUser()
	active := givenActiveLoan(book.BookID, user.UserID)
	command := createloan.BuildCommand(active.LoanID, book.BookID, user.UserID, time.Time{}, time.Time{}, today)

	// act
	result := createloan.Decide(
		createloan.State{Book: &book, User: &user, ActiveLoan: &active, ExistingLoan: &active},
		command,
		core.DefaultLoanPeriodDays,
	)

	// assert
	assert.True(t, result.IsIdempotent(), "repeating the same command should be idempotent")
	assert.Nil(t, result.Event, "idempotent decisions carry no event")
}

func Test_Decide_Idempotent_WhenTheSameLoanWasAlreadyReturned(t *testing.T) {
	// arrange
	book := givenBook(1, 1)
	user := givenUser()
	returned := givenActiveLoan(book.BookID, user.UserID)
	returnDate := core.ToCalendarDate(today)
	returned.Status = core.LoanReturned
	returned.ReturnDate = &returnDate
	command := createloan.BuildCommand(returned.LoanID, book.BookID, user.UserID, time.Time{}, time.Time{}, today)

	// act
	result := createloan.Decide(createloan.State{Book: &book, User: &user, ExistingLoan: &returned}, command, core.DefaultLoanPeriodDays)

	// assert
	assert.True(t, result.IsIdempotent(), "repeating a command whose loan was returned since should be idempotent")
	assert.Nil(t, result.Event, "idempotent decisions carry no event")
}

func Test_Decide_Error_WhenLoanIDBelongsToAnotherBook(t *testing.T) {
	// arrange
	book := givenBook(1, 1)
	user := givenUser()
	other := givenActiveLoan(uuid.New(), user.UserID)
	command := createloan.BuildCommand(other.LoanID, book.BookID, user.UserID, time.Time{}, time.Time{}, today)

	// act
	result := createloan.Decide(createloan.State{Book: &book, User: &user, ExistingLoan: &other}, command, core.DefaultLoanPeriodDays)

	// assert
	assertRejected(t, result, core.ErrValidation)
	assert.ErrorContains(t, result.HasError(), "is already used", "the reason should name the reused id")
}

func givenBook(total int, available int) core.Book {
	return core.Book{
		BookID:             uuid.New(),
		Title:              "The Go Programming Language",
		Author:             "Alan A. A. Donovan",
		CopiesTotal:        total,
		CopiesAvailable:    available,
		AvailabilityStatus: core.DeriveAvailabilityStatus(available),
	}
}

func givenUser() core.User {
	return core.User{UserID: uuid.New(), Name: "Jane Reader", Email: "jane@example.org", Role: core.RoleMember}
}

func givenActiveLoan(bookID uuid.UUID, userID uuid.UUID) core.Loan {
	return core.Loan{
		LoanID:     uuid.New(),
		BookID:     bookID,
		UserID:     userID,
		BorrowDate: core.ToCalendarDate(today.AddDate(0, 0, -3)),
		DueDate:    core.DueDateFor(today.AddDate(0, 0, -3), core.DefaultLoanPeriodDays),
		Status:     core.LoanBorrowed,
	}
}

func assertRejected(t *testing.T, result core.DecisionResult, expected error) {
	t.Helper()

	assert.ErrorIs(t, result.HasError(), expected, "Decide should reject with the expected business error")
	require.NotNil(t, result.Event, "rejections should carry a failure event")
	assert.Equal(t, core.CreatingLoanFailedEventType, result.Event.EventType(), "failure event type should match")
	assert.True(t, result.Event.IsErrorEvent(), "failure event should be an error event")
}
