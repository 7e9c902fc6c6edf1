package listusers_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/listusers"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/testutil/memstore"
)

func Test_QueryHandler_Handle_FiltersByRoleAndSearch(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memstore.New()
	givenUser(t, store, "Morgan Admin", "morgan@example.org", core.RoleAdmin)
	givenUser(t, store, "Casey Student", "casey@example.org", core.RoleStudent)
	givenUser(t, store, "Jordan Student", "jordan@example.org", core.RoleStudent)
	handler := listusers.NewQueryHandler(store)

	// act
	students, studentsErr := handler.Handle(ctx, listusers.BuildQuery("Student", ""))
	searched, searchedErr := handler.Handle(ctx, listusers.BuildQuery("", "MORGAN"))
	_, invalidErr := handler.Handle(ctx, listusers.BuildQuery("Guest", ""))

	// assert
	require.NoError(t, studentsErr)
	require.NoError(t, searchedErr)
	assert.Equal(t, 2, students.Count, "role filter should apply")
	require.Equal(t, 1, searched.Count, "search should be case-insensitive")
	assert.Equal(t, "Morgan Admin", searched.Users[0].Name)
	assert.ErrorIs(t, invalidErr, core.ErrValidation)
}

func givenUser(t *testing.T, store *memstore.Store, name string, email string, role core.Role) {
	t.Helper()
	require.NoError(t, store.InsertUser(context.Background(), core.User{
		UserID:       uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: "$2a$10$not-a-real-hash",
		Role:         role,
	}))
}
