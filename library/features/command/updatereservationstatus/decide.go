package updatereservationstatus

import (
	"fmt"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// State is what Decide needs to know, loaded inside the command's transaction.
// OtherPending is another Pending reservation of the same user for the same book, if any.
type State struct {
	Reservation  *core.Reservation
	OtherPending *core.Reservation
}

// Decide implements the business logic of changing a reservation's status. This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A reservation with ReservationID
//	WHEN: UpdateReservationStatus command is received
//	THEN: ReservationStatusChanged event is generated
//	ERROR: core.ErrNotFound if the reservation does not exist
//	ERROR: core.ErrValidation if NewStatus is not a known reservation status
//	ERROR: core.ErrForbidden if a non-staff actor is not the owner or sets anything but Cancelled
//	ERROR: core.ErrDuplicateReservation if re-opening would create a second Pending reservation
//	IDEMPOTENCY: If the reservation already has NewStatus, no event is generated
func Decide(state State, command Command) core.DecisionResult {
	if state.Reservation == nil {
		return rejected(command, nil, core.NotFound("reservation", command.ReservationID.String()))
	}

	reservation := *state.Reservation

	to, err := core.ParseReservationStatus(command.NewStatus)
	if err != nil {
		return rejected(command, &reservation, err)
	}

	if !command.Actor.IsStaff() {
		if !command.Actor.Owns(reservation.UserID) || to != core.ReservationCancelled {
			return rejected(command, &reservation, fmt.Errorf("%w: only staff may set a reservation to %s", core.ErrForbidden, to))
		}
	}

	if reservation.Status == to {
		return core.IdempotentDecision()
	}

	if to == core.ReservationPending && state.OtherPending != nil {
		return rejected(command, &reservation, core.ErrDuplicateReservation)
	}

	return core.SuccessDecision(core.BuildReservationStatusChanged(reservation, to, command.Actor.UserID, command.OccurredAt))
}

func rejected(command Command, reservation *core.Reservation, err error) core.DecisionResult {
	event := core.BuildOperationFailed(
		core.ChangingReservationStatusFailedEventType,
		command.ReservationID.String(),
		err.Error(),
		command.OccurredAt,
	)

	if reservation != nil {
		event = event.ForBook(reservation.BookID.String()).ForUser(reservation.UserID.String())
	}

	return core.ErrorDecision(event, err)
}
