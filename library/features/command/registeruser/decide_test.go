package registeruser_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/registeruser"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

var now = time.Date(2026, 1, 12, 8, 0, 0, 0, time.UTC)

func Test_Decide_Success_NormalizesEmail(t *testing.T) {
	// arrange
	command := registeruser.BuildCommand(uuid.New(), "Dana Librarian", "  Dana@Library.ORG ", "", "s3cret-pass", "Librarian", now)

	// act
	result := registeruser.Decide(registeruser.State{}, command)

	// assert
	require.NoError(t, result.HasError(), "valid user should be registered")
	registered, ok := result.Event.(core.UserRegistered)
	require.True(t, ok, "event should be UserRegistered")
	assert.Equal(t, "dana@library.org", registered.Email, "email should be normalized")
	assert.Equal(t, "Librarian", registered.Role)
}

func Test_Decide_Error_WhenInputIsInvalid(t *testing.T) {
	testCases := []struct {
		name    string
		command registeruser.Command
	}{
		{name: "no name", command: registeruser.BuildCommand(uuid.New(), " ", "a@b.org", "", "s3cret-pass", "Member", now)},
		{name: "bad email", command: registeruser.BuildCommand(uuid.New(), "A", "not-an-email", "", "s3cret-pass", "Member", now)},
		{name: "short password", command: registeruser.BuildCommand(uuid.New(), "A", "a@b.org", "", "short", "Member", now)},
		{name: "unknown role", command: registeruser.BuildCommand(uuid.New(), "A", "a@b.org", "", "s3cret-pass", "Janitor", now)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := registeruser.Decide(registeruser.State{}, tc.command)

			// assert
			assert.ErrorIs(t, result.HasError(), core.ErrValidation, "invalid input should be rejected")
			require.NotNil(t, result.Event)
			assert.Equal(t, core.RegisteringUserFailedEventType, result.Event.EventType())
		})
	}
}

func Test_Decide_Error_WhenEmailIsTaken(t *testing.T) {
	// arrange
	holder := core.User{UserID: uuid.New(), Email: "dana@library.org"}

	// act
	result := registeruser.Decide(
		registeruser.State{EmailHolder: &holder},
		registeruser.BuildCommand(uuid.New(), "Dana", "DANA@library.org", "", "s3cret-pass", "Member", now),
	)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrValidation, "taken email should be rejected")
}

func Test_Decide_Idempotent_WhenUserExists(t *testing.T) {
	// arrange
	command := registeruser.BuildCommand(uuid.New(), "Dana", "dana@library.org", "", "s3cret-pass", "Member", now)
	existing := registeruser.NewUser(command, core.RoleMember, "hash")

	// act
	result := registeruser.Decide(registeruser.State{Existing: &existing}, command)

	// assert
	assert.True(t, result.IsIdempotent(), "registering the same user twice should be idempotent")
}

func Test_Command_String_HidesPassword(t *testing.T) {
	// arrange
	command := registeruser.BuildCommand(uuid.New(), "Dana", "dana@library.org", "", "s3cret-pass", "Member", now)

	// act
	rendered := command.String()

	// assert
	assert.NotContains(t, rendered, "s3cret-pass", "the password must not be rendered")
}
