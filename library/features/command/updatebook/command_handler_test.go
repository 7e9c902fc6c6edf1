package updatebook_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/updatebook"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell"
	"github.com/AntonStoeckl/library-lifecycle-go/testutil/memstore"
)

func Test_CommandHandler_Handle_PersistsEditedBook(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memstore.New()
	book := givenBook(2, 2)
	require.NoError(t, store.InsertBook(ctx, book))
	handler := updatebook.NewCommandHandler(store, updatebook.WithClock(shell.FixedClock{At: now}))

	// act
	_, err := handler.Handle(ctx, updatebook.Command{
		BookID:  book.BookID,
		Changes: updatebook.Changes{Category: ptr("Go"), CopiesTotal: ptr(5), CopiesAvailable: ptr(5)},
	})

	// assert
	require.NoError(t, err, "update should succeed")
	stored, _ := store.FindBook(ctx, book.BookID)
	require.NotNil(t, stored)
	assert.Equal(t, "Go", stored.Category)
	assert.Equal(t, 5, stored.CopiesTotal)
	assert.Equal(t, 5, stored.CopiesAvailable)
	assert.Equal(t, now, stored.UpdatedAt, "update time should come from the clock")
}

func Test_CommandHandler_Handle_RetriesWhenCountersMoved(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memstore.New()
	book := givenBook(2, 2)
	require.NoError(t, store.InsertBook(ctx, book))
	store.FailNext("UpdateBook", ledger.ErrConcurrencyConflict)
	handler := updatebook.NewCommandHandler(store,
		updatebook.WithClock(shell.FixedClock{At: now}),
		updatebook.WithRetryOptions(shell.WithBaseDelay(0)),
	)

	// act
	result, err := handler.Handle(ctx, updatebook.Command{BookID: book.BookID, Changes: updatebook.Changes{CopiesTotal: ptr(3)}})

	// assert
	require.NoError(t, err, "the retry should succeed")
	assert.Equal(t, 2, result.RetryAttempts, "one conflict should cost one retry")
	assert.Len(t, store.Journal(), 1, "only the successful attempt should be journaled")
}
