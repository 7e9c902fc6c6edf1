package createreservation

import (
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// State is what Decide needs to know, loaded inside the command's transaction.
// Existing is the reservation already stored under the command's ReservationID, if any.
type State struct {
	Book     *core.Book
	User     *core.User
	Pending  *core.Reservation
	Existing *core.Reservation
}

// Decide implements the business logic of placing a hold. This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A book with BookID and a user with UserID
//	WHEN: CreateReservation command is received
//	THEN: ReservationCreated event is generated
//	ERROR: core.ErrValidation if ReservationID already belongs to a reservation of another book or user
//	ERROR: core.ErrNotFound if the book or the user does not exist
//	ERROR: core.ErrDuplicateReservation if the user already has a Pending reservation for the book
//	IDEMPOTENCY: If the reservation with ReservationID was already created for the same book and user,
//	no event is generated, whatever its status is by now
func Decide(state State, command Command) core.DecisionResult {
	if existing := state.Existing; existing != nil {
		if existing.BookID == command.BookID && existing.UserID == command.UserID {
			return core.IdempotentDecision()
		}

		return rejected(command, core.Invalid("reservation_id %s is already used", command.ReservationID))
	}

	if state.Book == nil {
		return rejected(command, core.NotFound("book", command.BookID.String()))
	}

	if state.User == nil {
		return rejected(command, core.NotFound("user", command.UserID.String()))
	}

	if state.Pending != nil {
		return rejected(command, core.ErrDuplicateReservation)
	}

	return core.SuccessDecision(core.BuildReservationCreated(NewReservation(command), command.OccurredAt))
}

func rejected(command Command, err error) core.DecisionResult {
	event := core.BuildOperationFailed(
		core.CreatingReservationFailedEventType,
		command.ReservationID.String(),
		err.Error(),
		command.OccurredAt,
	).ForBook(command.BookID.String()).ForUser(command.UserID.String())

	return core.ErrorDecision(event, err)
}
