package createreservation_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/createreservation"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

var now = time.Date(2026, 4, 7, 11, 0, 0, 0, time.UTC)

func Test_Decide_Success_EvenWhenCopiesAreAvailable(t *testing.T) {
	// arrange
	book := givenBook(3)
	user := givenUser()
	command := createreservation.BuildCommand(uuid.New(), book.BookID, user.UserID, now)

	// act
	result := createreservation.Decide(createreservation.State{Book: &book, User: &user}, command)

	// assert
	require.NoError(t, result.HasError(), "reservations do not depend on availability")
	created, ok := result.Event.(core.ReservationCreated)
	require.True(t, ok, "event should be ReservationCreated")
	assert.Equal(t, "2026-04-07", created.ReservationDate, "reservation should be dated today")
}

func Test_Decide_Error_WhenAPendingReservationExists(t *testing.T) {
	// arrange
	book := givenBook(0)
	user := givenUser()
	pending := createreservation.NewReservation(createreservation.BuildCommand(uuid.New(), book.BookID, user.UserID, now.Add(-time.Hour)))
	command := createreservation.BuildCommand(uuid.New(), book.BookID, user.UserID, now)

	// act
	result := createreservation.Decide(createreservation.State{Book: &book, User: &user, Pending: &pending}, command)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrDuplicateReservation, "second pending reservation should be rejected")
	require.NotNil(t, result.Event)
	assert.Equal(t, core.CreatingReservationFailedEventType, result.Event.EventType(), "failure event type should match")
}

func Test_Decide_Error_WhenBookOrUserDoesNotExist(t *testing.T) {
	book := givenBook(1)
	user := givenUser()

	testCases := []struct {
		name  string
		state createreservation.State
	}{
		{name: "book missing", state: createreservation.State{User: &user}},
		{name: "user missing", state: createreservation.State{Book: &book}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := createreservation.Decide(tc.state, createreservation.BuildCommand(uuid.New(), book.BookID, user.UserID, now))

			// assert
			assert.ErrorIs(t, result.HasError(), core.ErrNotFound, "missing entities should be rejected")
		})
	}
}

func Test_Decide_Idempotent_WhenTheSameReservationExists(t *testing.T) {
	// arrange
	book := givenBook(1)
	user := givenUser()
	command := createreservation.BuildCommand(uuid.New(), book.BookID, user.UserID, now)
	pending := createreservation.NewReservation(command)

	// act
	result := createreservation.Decide(createreservation.State{Book: &book, User: &user, Pending: &pending, Existing: &pending}, command)

	// assert
	assert.True(t, result.IsIdempotent(), "repeating the command should be idempotent")
}

func Test_Decide_Idempotent_WhenTheSameReservationWasCollectedSince(t *testing.T) {
	// arrange
	book := givenBook(1)
	user := givenUser()
	command := createreservation.BuildCommand(uuid.New(), book.BookID, user.UserID, now)
	collected := createreservation.NewReservation(command)
	collected.Status = core.ReservationCollected

	// act
	result := createreservation.Decide(createreservation.State{Book: &book, User: &user, Existing: &collected}, command)

	// assert
	assert.True(t, result.IsIdempotent(), "repeating a command whose reservation moved on should be idempotent")
	assert.Nil(t, result.Event, "idempotent decisions carry no event")
}

func Test_Decide_Error_WhenReservationIDBelongsToAnotherBook(t *testing.T) {
	// arrange
	book := givenBook(1)
	user := givenUser()
	command := createreservation.BuildCommand(uuid.New(), book.BookID, user.UserID, now)
	other := createreservation.NewReservation(createreservation.BuildCommand(command.ReservationID, uuid.New(), user.UserID, now))

	// act
	result := createreservation.Decide(createreservation.State{Book: &book, User: &user, Existing: &other}, command)

	// assert
	require.ErrorIs(t, result.HasError(), core.ErrValidation, "a reused reservation id should be rejected")
	assert.Contains(t, result.HasError().Error(), "is already used")
	require.NotNil(t, result.Event)
	assert.Equal(t, core.CreatingReservationFailedEventType, result.Event.EventType())
}

func givenBook(available int) core.Book {
	return core.Book{
		BookID:             uuid.New(),
		Title:              "Designing Data-Intensive Applications",
		Author:             "Martin Kleppmann",
		CopiesTotal:        3,
		CopiesAvailable:    available,
		AvailabilityStatus: core.DeriveAvailabilityStatus(available),
	}
}

func givenUser() core.User {
	return core.User{UserID: uuid.New(), Name: "Riley Student", Email: "riley@example.org", Role: core.RoleStudent}
}
