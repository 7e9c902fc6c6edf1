package removebook

import (
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// State is what Decide needs to know, loaded inside the command's transaction.
type State struct {
	Book        *core.Book
	ActiveLoans int
}

// Decide implements the business logic of removing a book. This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A book with BookID and no active loans
//	WHEN: RemoveBook command is received
//	THEN: BookRemovedFromCatalog event is generated
//	ERROR: core.ErrNotFound if the book does not exist
//	ERROR: core.ErrValidation if copies of the book are still on loan
func Decide(state State, command Command) core.DecisionResult {
	if state.Book == nil {
		return rejected(command, core.NotFound("book", command.BookID.String()))
	}

	if state.ActiveLoans > 0 {
		return rejected(command, core.Invalid("book has %d active loans", state.ActiveLoans))
	}

	return core.SuccessDecision(core.BuildBookRemovedFromCatalog(command.BookID, command.OccurredAt))
}

func rejected(command Command, err error) core.DecisionResult {
	event := core.BuildOperationFailed(
		core.RemovingBookFailedEventType,
		command.BookID.String(),
		err.Error(),
		command.OccurredAt,
	).ForBook(command.BookID.String())

	return core.ErrorDecision(event, err)
}
