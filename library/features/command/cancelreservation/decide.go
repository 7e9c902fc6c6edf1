package cancelreservation

import (
	"fmt"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// Decide implements the business logic of cancelling a reservation. This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A reservation with ReservationID
//	WHEN: CancelReservation command is received
//	THEN: ReservationCancelled event is generated
//	ERROR: core.ErrNotFound if the reservation does not exist
//	ERROR: core.ErrForbidden unless the actor owns the reservation or is staff
func Decide(reservation *core.Reservation, command Command) core.DecisionResult {
	if reservation == nil {
		return rejected(command, nil, core.NotFound("reservation", command.ReservationID.String()))
	}

	if !command.Actor.MayActFor(reservation.UserID) {
		return rejected(command, reservation, fmt.Errorf("%w: only the owner or staff may cancel a reservation", core.ErrForbidden))
	}

	return core.SuccessDecision(core.BuildReservationCancelled(*reservation, command.Actor.UserID, command.OccurredAt))
}

func rejected(command Command, reservation *core.Reservation, err error) core.DecisionResult {
	event := core.BuildOperationFailed(
		core.CancellingReservationFailedEventType,
		command.ReservationID.String(),
		err.Error(),
		command.OccurredAt,
	)

	if reservation != nil {
		event = event.ForBook(reservation.BookID.String()).ForUser(reservation.UserID.String())
	}

	return core.ErrorDecision(event, err)
}
