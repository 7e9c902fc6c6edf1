package listloans_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/listloans"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/testutil/memstore"
)

var today = core.ToCalendarDate(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))

func Test_QueryHandler_Handle_MembersSeeOnlyTheirOwnLoans(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memstore.New()
	alice, bob := givenUser(t, store, "alice"), givenUser(t, store, "bob")
	book := givenBook(t, store)
	givenLoan(t, store, book, alice, core.LoanBorrowed)
	givenLoan(t, store, book, bob, core.LoanBorrowed)
	handler := listloans.NewQueryHandler(store)
	member := core.Principal{UserID: alice.UserID, Role: core.RoleMember}

	// act
	own, err := handler.Handle(ctx, listloans.BuildQuery(member, "", nil, nil))
	_, foreignErr := handler.Handle(ctx, listloans.BuildQuery(member, "", &bob.UserID, nil))

	// assert
	require.NoError(t, err)
	require.Equal(t, 1, own.Count, "member should see one loan")
	assert.Equal(t, alice.UserID, own.Loans[0].UserID)
	assert.Equal(t, book.Title, own.Loans[0].Book.Title, "loan should carry its book")
	assert.ErrorIs(t, foreignErr, core.ErrForbidden, "member must not list other users' loans")
}

func Test_QueryHandler_Handle_StaffFiltersByStatus(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memstore.New()
	alice, bob := givenUser(t, store, "alice"), givenUser(t, store, "bob")
	givenLoan(t, store, givenBook(t, store), alice, core.LoanBorrowed)
	givenLoan(t, store, givenBook(t, store), bob, core.LoanReturned)
	handler := listloans.NewQueryHandler(store)
	librarian := core.Principal{UserID: uuid.New(), Role: core.RoleLibrarian}

	// act
	all, allErr := handler.Handle(ctx, listloans.BuildQuery(librarian, "", nil, nil))
	returned, returnedErr := handler.Handle(ctx, listloans.BuildQuery(librarian, "Returned", nil, nil))
	_, invalidErr := handler.Handle(ctx, listloans.BuildQuery(librarian, "Lost", nil, nil))

	// assert
	require.NoError(t, allErr)
	require.NoError(t, returnedErr)
	assert.Equal(t, 2, all.Count, "staff should see all loans")
	require.Equal(t, 1, returned.Count)
	assert.Equal(t, bob.UserID, returned.Loans[0].UserID)
	assert.ErrorIs(t, invalidErr, core.ErrValidation, "unknown status should be rejected")
}

func givenUser(t *testing.T, store *memstore.Store, name string) core.User {
	t.Helper()
	user := core.User{UserID: uuid.New(), Name: name, Email: name + "@example.org", Role: core.RoleMember}
	require.NoError(t, store.InsertUser(context.Background(), user))

	return user
}

func givenBook(t *testing.T, store *memstore.Store) core.Book {
	t.Helper()
	book := core.Book{BookID: uuid.New(), Title: "The Pragmatic Programmer", Author: "Hunt, Thomas",
		CopiesTotal: 3, CopiesAvailable: 1, AvailabilityStatus: core.AvailabilityAvailable}
	require.NoError(t, store.InsertBook(context.Background(), book))

	return book
}

func givenLoan(t *testing.T, store *memstore.Store, book core.Book, user core.User, status core.LoanStatus) core.Loan {
	t.Helper()
	loan := core.Loan{
		LoanID:     uuid.New(),
		BookID:     book.BookID,
		UserID:     user.UserID,
		BorrowDate: today.AddDate(0, 0, -7),
		DueDate:    today.AddDate(0, 0, 7),
		Status:     status,
	}
	if status == core.LoanReturned {
		loan.ReturnDate = &today
	}
	require.NoError(t, store.InsertLoan(context.Background(), loan))

	return loan
}
