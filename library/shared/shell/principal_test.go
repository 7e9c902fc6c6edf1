package shell_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell"
)

func Test_PrincipalFrom_RoundTripsThroughContext(t *testing.T) {
	// arrange
	principal := core.Principal{UserID: uuid.New(), Role: core.RoleLibrarian}

	// act
	got, err := shell.PrincipalFrom(shell.WithPrincipal(context.Background(), principal))
	_, missingErr := shell.PrincipalFrom(context.Background())

	// assert
	require.NoError(t, err)
	assert.Equal(t, principal, got, "principal should be carried by the context")
	assert.ErrorIs(t, missingErr, core.ErrUnauthorized, "no principal means unauthorized")
}

func Test_ScopeToUser(t *testing.T) {
	member := core.Principal{UserID: uuid.New(), Role: core.RoleMember}
	librarian := core.Principal{UserID: uuid.New(), Role: core.RoleLibrarian}
	other := uuid.New()

	t.Run("staff without filter sees everything", func(t *testing.T) {
		scoped, err := shell.ScopeToUser(librarian, nil)

		require.NoError(t, err)
		assert.Nil(t, scoped, "no user filter should be applied")
	})

	t.Run("staff may filter by any user", func(t *testing.T) {
		scoped, err := shell.ScopeToUser(librarian, &other)

		require.NoError(t, err)
		assert.Equal(t, other, *scoped)
	})

	t.Run("member is limited to own rows", func(t *testing.T) {
		scoped, err := shell.ScopeToUser(member, nil)

		require.NoError(t, err)
		assert.Equal(t, member.UserID, *scoped, "member should only see own rows")
	})

	t.Run("member asking for another user is forbidden", func(t *testing.T) {
		_, err := shell.ScopeToUser(member, &other)

		assert.ErrorIs(t, err, core.ErrForbidden)
	})
}
