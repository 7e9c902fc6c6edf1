package getbook_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/getbook"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/testutil/memstore"
)

func Test_QueryHandler_Handle(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memstore.New()
	book := core.Book{BookID: uuid.New(), Title: "Mastering Go", Author: "Mihalis Tsoukalos", CopiesTotal: 2, CopiesAvailable: 2,
		AvailabilityStatus: core.AvailabilityAvailable}
	require.NoError(t, store.InsertBook(ctx, book))
	handler := getbook.NewQueryHandler(store)

	// act
	found, err := handler.Handle(ctx, getbook.BuildQuery(book.BookID))
	_, missingErr := handler.Handle(ctx, getbook.BuildQuery(uuid.New()))

	// assert
	require.NoError(t, err)
	assert.Equal(t, book.Title, found.Title)
	assert.ErrorIs(t, missingErr, core.ErrNotFound, "unknown book should be not found")
}
