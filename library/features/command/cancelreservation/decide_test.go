package cancelreservation_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/cancelreservation"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

var now = time.Date(2026, 6, 1, 8, 15, 0, 0, time.UTC)

func Test_Decide_OwnerOrStaffMayCancel(t *testing.T) {
	reservation := givenReservation()

	testCases := []struct {
		name  string
		actor core.Principal
	}{
		{name: "owner", actor: core.Principal{UserID: reservation.UserID, Role: core.RoleStudent}},
		{name: "librarian", actor: core.Principal{UserID: uuid.New(), Role: core.RoleLibrarian}},
		{name: "admin", actor: core.Principal{UserID: uuid.New(), Role: core.RoleAdmin}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := cancelreservation.Decide(&reservation, cancelreservation.BuildCommand(reservation.ReservationID, tc.actor, now))

			// assert
			require.NoError(t, result.HasError(), "%s should be allowed to cancel", tc.name)
			cancelled, ok := result.Event.(core.ReservationCancelledEvent)
			require.True(t, ok, "event should be ReservationCancelled")
			assert.Equal(t, tc.actor.UserID.String(), cancelled.CancelledBy)
		})
	}
}

func Test_Decide_Error_ForOtherMembers(t *testing.T) {
	// arrange
	reservation := givenReservation()
	stranger := core.Principal{UserID: uuid.New(), Role: core.RoleMember}

	// act
	result := cancelreservation.Decide(&reservation, cancelreservation.BuildCommand(reservation.ReservationID, stranger, now))

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrForbidden, "only owner or staff may cancel")
	require.NotNil(t, result.Event)
	assert.Equal(t, core.CancellingReservationFailedEventType, result.Event.EventType())
}

func Test_Decide_Error_WhenReservationDoesNotExist(t *testing.T) {
	// act
	result := cancelreservation.Decide(nil, cancelreservation.BuildCommand(uuid.New(), core.Principal{UserID: uuid.New(), Role: core.RoleAdmin}, now))

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrNotFound, "missing reservation should be rejected")
}

func givenReservation() core.Reservation {
	return core.Reservation{
		ReservationID:   uuid.New(),
		BookID:          uuid.New(),
		UserID:          uuid.New(),
		ReservationDate: core.ToCalendarDate(now),
		Status:          core.ReservationPending,
	}
}
