package updatebook

import (
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// State is what Decide needs to know, loaded inside the command's transaction.
// ISBNHolder is another book that already carries the requested ISBN, if any.
type State struct {
	Book       *core.Book
	ISBNHolder *core.Book
}

// Decide implements the business logic of editing a book. This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A book with BookID
//	WHEN: UpdateBook command is received
//	THEN: BookUpdated event is generated with the resulting counters
//	ERROR: core.ErrNotFound if the book does not exist
//	ERROR: core.ErrValidation if the result violates 1 <= total and 0 <= available <= total,
//	       has invalid details, or takes another book's ISBN
//	IDEMPOTENCY: If nothing changes, no event is generated
func Decide(state State, command Command) core.DecisionResult {
	if state.Book == nil {
		return rejected(command, core.NotFound("book", command.BookID.String()))
	}

	edited, err := Edit(*state.Book, command.Changes)
	if err != nil {
		return rejected(command, err)
	}

	if state.ISBNHolder != nil && state.ISBNHolder.BookID != edited.BookID {
		return rejected(command, core.Invalid("isbn %s is already in the catalog", edited.ISBN))
	}

	if unchanged(*state.Book, edited) {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(core.BuildBookUpdated(edited, command.OccurredAt))
}

func unchanged(before core.Book, after core.Book) bool {
	after.UpdatedAt = before.UpdatedAt

	return before == after
}

func rejected(command Command, err error) core.DecisionResult {
	event := core.BuildOperationFailed(
		core.UpdatingBookFailedEventType,
		command.BookID.String(),
		err.Error(),
		command.OccurredAt,
	).ForBook(command.BookID.String())

	return core.ErrorDecision(event, err)
}
