package bookhistory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/bookhistory"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell"
	"github.com/AntonStoeckl/library-lifecycle-go/testutil/memstore"
)

var occurredAt = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func Test_QueryHandler_Handle_ReturnsTheBooksEntries(t *testing.T) {
	// arrange
	store := memstore.New()
	book := core.Book{BookID: uuid.New(), Title: "Team Topologies", Author: "Matthew Skelton",
		CopiesTotal: 1, CopiesAvailable: 1, AvailabilityStatus: core.AvailabilityAvailable}
	otherBook := core.Book{BookID: uuid.New(), Title: "Accelerate", CopiesTotal: 1, CopiesAvailable: 1}
	loan := core.Loan{LoanID: uuid.New(), BookID: book.BookID, UserID: uuid.New(), BorrowDate: occurredAt,
		DueDate: core.DueDateFor(occurredAt, core.DefaultLoanPeriodDays), Status: core.LoanBorrowed}
	rejected := core.BuildOperationFailed(core.CreatingLoanFailedEventType, uuid.NewString(), "no copies left", occurredAt).
		ForBook(book.BookID.String())

	givenJournaled(t, store,
		core.BuildBookAddedToCatalog(book, occurredAt),
		core.BuildBookAddedToCatalog(otherBook, occurredAt),
		core.BuildLoanCreated(loan, 0, occurredAt),
		rejected,
	)
	handler := bookhistory.NewQueryHandler(store)

	// act
	history, err := handler.Handle(context.Background(), bookhistory.BuildQuery(book.BookID, 0))

	// assert
	require.NoError(t, err)
	require.Equal(t, 3, history.Count, "entries of other books should be excluded")
	assert.Equal(t, core.BookAddedToCatalogEventType, history.Entries[0].EventType)
	assert.Equal(t, core.LoanCreatedEventType, history.Entries[1].EventType)
	assert.Equal(t, core.CreatingLoanFailedEventType, history.Entries[2].EventType)
	assert.True(t, history.Entries[2].Failed, "rejections should be flagged")
	assert.Less(t, history.Entries[0].SequenceNumber, history.Entries[1].SequenceNumber, "entries should be in journal order")

	created, ok := history.Entries[1].Event.(core.LoanCreated)
	require.True(t, ok, "payload should map to the domain event")
	assert.Equal(t, loan.LoanID.String(), created.LoanID)
}

func Test_QueryHandler_Handle_AppliesTheLimit(t *testing.T) {
	// arrange
	store := memstore.New()
	book := core.Book{BookID: uuid.New(), Title: "Refactoring", CopiesTotal: 2, CopiesAvailable: 2}
	givenJournaled(t, store,
		core.BuildBookAddedToCatalog(book, occurredAt),
		core.BuildBookUpdated(book, occurredAt),
		core.BuildBookUpdated(book, occurredAt),
	)

	// act
	history, err := bookhistory.NewQueryHandler(store).Handle(context.Background(), bookhistory.BuildQuery(book.BookID, 2))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, history.Count)
}

func Test_QueryHandler_Handle_UnknownBookHasNoHistory(t *testing.T) {
	// act
	history, err := bookhistory.NewQueryHandler(memstore.New()).Handle(context.Background(), bookhistory.BuildQuery(uuid.New(), 0))

	// assert
	require.NoError(t, err)
	assert.Zero(t, history.Count)
}

func givenJournaled(t *testing.T, store *memstore.Store, events ...core.DomainEvent) {
	t.Helper()

	for _, event := range events {
		storableEvent, err := shell.StorableEventFrom(event, shell.BuildEventMetadata(uuid.New(), uuid.New(), uuid.New()))
		require.NoError(t, err)
		require.NoError(t, store.AppendToJournal(context.Background(), storableEvent))
	}
}
