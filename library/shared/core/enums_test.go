package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

func Test_ParseReservationStatus(t *testing.T) {
	// act
	status, err := core.ParseReservationStatus("Collected")

	// assert
	require.NoError(t, err, "known status should parse")
	assert.Equal(t, core.ReservationCollected, status, "parsed status should match")

	_, err = core.ParseReservationStatus("collected")
	assert.ErrorIs(t, err, core.ErrValidation, "enum values are case sensitive")

	_, err = core.ParseReservationStatus("Lost")
	assert.ErrorIs(t, err, core.ErrValidation, "unknown status should be rejected")
}

func Test_ParseRole_And_IsStaff(t *testing.T) {
	for _, raw := range []string{"Admin", "Librarian", "Student", "Member"} {
		role, err := core.ParseRole(raw)
		require.NoError(t, err, "role %s should parse", raw)
		assert.Equal(t, raw == "Admin" || raw == "Librarian", role.IsStaff(), "staff flag for %s", raw)
	}

	_, err := core.ParseRole("Janitor")
	assert.ErrorIs(t, err, core.ErrValidation, "unknown role should be rejected")
}

func Test_ParsePaymentStatus_RejectsUnknown(t *testing.T) {
	_, err := core.ParsePaymentStatus("Refunded")

	assert.ErrorIs(t, err, core.ErrValidation, "unknown payment status should be rejected")
}

func Test_ParseAvailabilityStatus_AcceptsReserved(t *testing.T) {
	status, err := core.ParseAvailabilityStatus("Reserved")

	require.NoError(t, err, "Reserved is a valid member")
	assert.Equal(t, core.AvailabilityReserved, status, "parsed status should match")
}
