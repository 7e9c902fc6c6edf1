package postgresengine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/ledger/postgresengine"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/testutil/postgreswrapper"
)

var errRollback = errors.New("roll back")

func Test_Migrate_IsIdempotent(t *testing.T) {
	// arrange
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)

	// act
	applied, err := wrapper.Store().Migrate(context.Background())

	// assert
	require.NoError(t, err, "second migrate should succeed")
	assert.Empty(t, applied, "nothing should be applied twice")
}

func Test_Books_InsertFindUpdateDelete(t *testing.T) {
	// arrange
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	postgreswrapper.CleanUp(t, wrapper)
	store := wrapper.Store()
	ctx := context.Background()
	book := givenBook(t, store, "Dune", "Frank Herbert", "9780441013593", 2)

	// act
	byISBN, err := store.FindBookByISBN(ctx, "9780441013593")
	require.NoError(t, err)

	updated := *byISBN
	updated.Title = "Dune Messiah"
	updateErr := store.UpdateBook(ctx, updated, *byISBN)

	stale := updated
	stale.Title = "Children of Dune"
	staleExpected := *byISBN
	staleExpected.CopiesAvailable = 1
	staleErr := store.UpdateBook(ctx, stale, staleExpected)

	reloaded, _ := store.FindBook(ctx, book.BookID)
	deleteErr := store.DeleteBook(ctx, book.BookID)
	deleted, _ := store.FindBook(ctx, book.BookID)

	// assert
	require.NotNil(t, byISBN, "book should be found by ISBN")
	assert.Equal(t, book.BookID, byISBN.BookID, "ISBN lookup should return the inserted book")
	assert.NoError(t, updateErr, "update with current counters should succeed")
	assert.ErrorIs(t, staleErr, ledger.ErrConcurrencyConflict, "update with stale counters should conflict")
	require.NotNil(t, reloaded)
	assert.Equal(t, "Dune Messiah", reloaded.Title, "only the first update should be applied")
	assert.NoError(t, deleteErr, "delete should succeed")
	assert.Nil(t, deleted, "deleted book should be gone")
}

func Test_Books_DuplicateISBN(t *testing.T) {
	// arrange
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	postgreswrapper.CleanUp(t, wrapper)
	store := wrapper.Store()
	givenBook(t, store, "Dune", "Frank Herbert", "9780441013593", 1)

	duplicate := newBook("Another Dune", "Someone", "9780441013593", 1)

	// act
	err := store.InsertBook(context.Background(), duplicate)

	// assert
	assert.ErrorIs(t, err, ledger.ErrConcurrencyConflict, "unique ISBN should be enforced")
}

func Test_ListBooks_SearchAndPaging(t *testing.T) {
	// arrange
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	postgreswrapper.CleanUp(t, wrapper)
	store := wrapper.Store()
	givenBook(t, store, "Dune", "Frank Herbert", "", 1)
	givenBook(t, store, "Hyperion", "Dan Simmons", "", 1)
	givenBook(t, store, "The Fall of Hyperion", "Dan Simmons", "", 1)

	// act
	found, total, err := store.ListBooks(context.Background(), postgresengine.BookFilter{Search: "hyperion", Limit: 1})

	// assert
	require.NoError(t, err, "listing should succeed")
	assert.Equal(t, 2, total, "total should count all matches")
	assert.Len(t, found, 1, "page should respect the limit")
}

func Test_Availability_NeverBelowZero(t *testing.T) {
	// arrange
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	postgreswrapper.CleanUp(t, wrapper)
	store := wrapper.Store()
	ctx := context.Background()
	book := givenBook(t, store, "Dune", "Frank Herbert", "", 1)

	// act
	available, firstErr := store.DecreaseAvailability(ctx, book.BookID)
	_, secondErr := store.DecreaseAvailability(ctx, book.BookID)
	restored, increaseErr := store.IncreaseAvailability(ctx, book.BookID)
	capped, cappedErr := store.IncreaseAvailability(ctx, book.BookID)

	// assert
	require.NoError(t, firstErr, "first decrease should succeed")
	assert.Zero(t, available, "last copy should be off the shelf")
	assert.ErrorIs(t, secondErr, ledger.ErrConcurrencyConflict, "no copy should be left to take")
	require.NoError(t, increaseErr)
	assert.Equal(t, 1, restored, "copy should be back")
	require.NoError(t, cappedErr)
	assert.Equal(t, 1, capped, "available copies should be capped at the total")
}

func Test_Loans_OneActiveLoanPerBookAndUser(t *testing.T) {
	// arrange
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	postgreswrapper.CleanUp(t, wrapper)
	store := wrapper.Store()
	ctx := context.Background()
	book := givenBook(t, store, "Dune", "Frank Herbert", "", 2)
	user := givenUser(t, store, core.RoleStudent)
	borrowDate := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	first := givenLoan(t, store, book.BookID, user.UserID, borrowDate)

	// act
	duplicateErr := store.InsertLoan(ctx, newLoan(book.BookID, user.UserID, borrowDate))
	returnErr := store.MarkLoanReturned(ctx, first.LoanID, borrowDate.AddDate(0, 0, 3))
	secondReturnErr := store.MarkLoanReturned(ctx, first.LoanID, borrowDate.AddDate(0, 0, 4))
	againErr := store.InsertLoan(ctx, newLoan(book.BookID, user.UserID, borrowDate.AddDate(0, 0, 5)))
	active, _ := store.FindActiveLoan(ctx, book.BookID, user.UserID)
	details, _ := store.FindLoanDetails(ctx, first.LoanID)

	// assert
	assert.ErrorIs(t, duplicateErr, ledger.ErrConcurrencyConflict, "second active loan should conflict")
	assert.NoError(t, returnErr, "return should succeed")
	assert.ErrorIs(t, secondReturnErr, ledger.ErrConcurrencyConflict, "returned loan should not be returned again")
	assert.NoError(t, againErr, "user should be able to borrow again after returning")
	require.NotNil(t, active)
	assert.NotEqual(t, first.LoanID, active.LoanID, "active loan should be the new one")
	require.NotNil(t, details)
	assert.Equal(t, core.LoanReturned, details.Loan.Status, "first loan should be returned")
	assert.Equal(t, "Dune", details.Book.Title, "details should carry the book")
}

func Test_WithinTx_RollsBackOnError(t *testing.T) {
	// arrange
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	postgreswrapper.CleanUp(t, wrapper)
	store := wrapper.Store()
	book := newBook("Dune", "Frank Herbert", "", 1)

	// act
	err := store.WithinTx(context.Background(), func(ctx context.Context) error {
		require.NoError(t, store.InsertBook(ctx, book))

		return errRollback
	})

	// assert
	assert.ErrorIs(t, err, errRollback, "fn error should be returned")
	assert.Zero(t, postgreswrapper.CountRows(t, wrapper, "books"), "insert should be rolled back")
}

func Test_Journal_AppendAndQuery(t *testing.T) {
	// arrange
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	postgreswrapper.CleanUp(t, wrapper)
	store := wrapper.Store()
	ctx := context.Background()
	bookID := uuid.NewString()
	occurredAt := time.Date(2026, 4, 20, 9, 30, 0, 0, time.UTC)

	added, err := ledger.BuildStorableEventWithEmptyMetadata("BookAddedToCatalog", occurredAt,
		[]byte(`{"BookID":"`+bookID+`","Title":"Dune"}`))
	require.NoError(t, err)
	updated, err := ledger.BuildStorableEventWithEmptyMetadata("BookUpdated", occurredAt.Add(time.Minute),
		[]byte(`{"BookID":"`+bookID+`","Title":"Dune Messiah"}`))
	require.NoError(t, err)
	other, err := ledger.BuildStorableEventWithEmptyMetadata("BookUpdated", occurredAt,
		[]byte(`{"BookID":"`+uuid.NewString()+`"}`))
	require.NoError(t, err)

	// act
	require.NoError(t, store.AppendToJournal(ctx, added, updated, other))

	history, queryErr := store.QueryJournal(ctx, ledger.BuildJournalFilter().
		AnyEventTypeOf("BookAddedToCatalog", "BookUpdated").
		WithPredicate("BookID", bookID).
		Finalize())

	// assert
	require.NoError(t, queryErr, "query should succeed")
	require.Len(t, history, 2, "only the book's entries should match")
	assert.Equal(t, "BookAddedToCatalog", history[0].EventType, "entries should be in sequence order")
	assert.Equal(t, "BookUpdated", history[1].EventType)
	assert.Less(t, history[0].SequenceNumber, history[1].SequenceNumber, "sequence numbers should ascend")
	assert.True(t, occurredAt.Equal(history[0].OccurredAt), "occurred at should round-trip")
}

func Test_Sessions_Expiry(t *testing.T) {
	// arrange
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	postgreswrapper.CleanUp(t, wrapper)
	store := wrapper.Store()
	ctx := context.Background()
	user := givenUser(t, store, core.RoleMember)
	now := time.Date(2026, 4, 20, 9, 30, 0, 0, time.UTC)

	live := core.Session{Token: uuid.New(), UserID: user.UserID, ExpiresAt: now.Add(time.Hour)}
	expired := core.Session{Token: uuid.New(), UserID: user.UserID, ExpiresAt: now.Add(-time.Minute)}
	require.NoError(t, store.InsertSession(ctx, live))
	require.NoError(t, store.InsertSession(ctx, expired))

	// act
	foundLive, liveErr := store.FindSession(ctx, live.Token, now)
	foundExpired, expiredErr := store.FindSession(ctx, expired.Token, now)
	purged, purgeErr := store.DeleteExpiredSessions(ctx, now)

	// assert
	require.NoError(t, liveErr)
	require.NotNil(t, foundLive, "live session should be found")
	assert.Equal(t, core.RoleMember, foundLive.Role, "session should carry the user's role")
	require.NoError(t, expiredErr)
	assert.Nil(t, foundExpired, "expired session should not be found")
	require.NoError(t, purgeErr)
	assert.EqualValues(t, 1, purged, "only the expired session should be purged")
}

func givenBook(t *testing.T, store postgresengine.Store, title string, author string, isbn string, copies int) core.Book {
	t.Helper()

	book := newBook(title, author, isbn, copies)
	require.NoError(t, store.InsertBook(context.Background(), book), "error in arranging test data")

	return book
}

func newBook(title string, author string, isbn string, copies int) core.Book {
	return core.Book{
		BookID:             uuid.New(),
		Title:              title,
		Author:             author,
		ISBN:               isbn,
		CopiesTotal:        copies,
		CopiesAvailable:    copies,
		AvailabilityStatus: core.DeriveAvailabilityStatus(copies),
	}
}

func givenUser(t *testing.T, store postgresengine.Store, role core.Role) core.User {
	t.Helper()

	userID := uuid.New()
	user := core.User{
		UserID:       userID,
		Name:         "User " + userID.String()[:8],
		Email:        userID.String() + "@example.org",
		PasswordHash: "not-a-real-hash",
		Role:         role,
	}
	require.NoError(t, store.InsertUser(context.Background(), user), "error in arranging test data")

	return user
}

func givenLoan(t *testing.T, store postgresengine.Store, bookID uuid.UUID, userID uuid.UUID, borrowDate time.Time) core.Loan {
	t.Helper()

	loan := newLoan(bookID, userID, borrowDate)
	require.NoError(t, store.InsertLoan(context.Background(), loan), "error in arranging test data")

	return loan
}

func newLoan(bookID uuid.UUID, userID uuid.UUID, borrowDate time.Time) core.Loan {
	return core.Loan{
		LoanID:     uuid.New(),
		BookID:     bookID,
		UserID:     userID,
		BorrowDate: borrowDate,
		DueDate:    core.DueDateFor(borrowDate, 14),
		Status:     core.LoanBorrowed,
	}
}
