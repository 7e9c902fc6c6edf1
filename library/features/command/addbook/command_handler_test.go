package addbook_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell"
	"github.com/AntonStoeckl/library-lifecycle-go/testutil/memstore"
)

func Test_CommandHandler_Handle_AddsBookAndRejectsDuplicateISBN(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memstore.New()
	handler := addbook.NewCommandHandler(store, addbook.WithClock(shell.FixedClock{At: now}))
	first := addbook.Command{BookID: uuid.New(), Details: givenDetails("978-0134190440"), CopiesTotal: 2}
	second := addbook.Command{BookID: uuid.New(), Details: givenDetails("978-0134190440"), CopiesTotal: 1}

	// act
	_, firstErr := handler.Handle(ctx, first)
	_, secondErr := handler.Handle(ctx, second)

	// assert
	require.NoError(t, firstErr, "first book should be added")
	assert.ErrorIs(t, secondErr, core.ErrValidation, "duplicate isbn should be rejected")

	book, _ := store.FindBook(ctx, first.BookID)
	require.NotNil(t, book, "book should be stored")
	assert.Equal(t, 2, book.CopiesAvailable)
	assert.Equal(t, now, book.CreatedAt, "creation time should come from the clock")

	missing, _ := store.FindBook(ctx, second.BookID)
	assert.Nil(t, missing, "rejected book should not be stored")
}
