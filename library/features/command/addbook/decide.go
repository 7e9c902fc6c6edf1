package addbook

import (
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// State is what Decide needs to know, loaded inside the command's transaction.
type State struct {
	Existing   *core.Book
	ISBNHolder *core.Book
}

// Decide implements the business logic of adding a book. This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A BookID that is not yet in the catalog
//	WHEN: AddBook command is received
//	THEN: BookAddedToCatalog event is generated
//	ERROR: core.ErrValidation if details or copy counters are invalid, or the ISBN is taken
//	IDEMPOTENCY: If the book was already added, no event is generated
func Decide(state State, command Command) core.DecisionResult {
	if state.Existing != nil {
		return core.IdempotentDecision()
	}

	book := NewBook(command)

	if err := core.ValidateBookDetails(book.Title, book.Author, book.Pages, book.PublicationYear); err != nil {
		return rejected(command, err)
	}

	if err := core.ValidateCopies(book.CopiesTotal, book.CopiesAvailable); err != nil {
		return rejected(command, err)
	}

	if state.ISBNHolder != nil {
		return rejected(command, core.Invalid("isbn %s is already in the catalog", book.ISBN))
	}

	return core.SuccessDecision(core.BuildBookAddedToCatalog(book, command.OccurredAt))
}

func rejected(command Command, err error) core.DecisionResult {
	event := core.BuildOperationFailed(
		core.AddingBookFailedEventType,
		command.BookID.String(),
		err.Error(),
		command.OccurredAt,
	).ForBook(command.BookID.String())

	return core.ErrorDecision(event, err)
}
