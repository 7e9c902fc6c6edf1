package createloan

import (
	"fmt"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// State is what Decide needs to know, loaded inside the command's transaction.
// ExistingLoan is the loan already stored under the command's LoanID, if any.
type State struct {
	Book         *core.Book
	User         *core.User
	ActiveLoan   *core.Loan
	ExistingLoan *core.Loan
}

// Decide implements the business logic to determine whether a copy of the book may be lent to the user.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A book with BookID and a user with UserID
//	WHEN: CreateLoan command is received
//	THEN: LoanCreated event is generated, carrying the available copies after the decrement
//	ERROR: core.ErrValidation if LoanID already belongs to a loan of another book or user
//	ERROR: core.ErrNotFound if the book or the user does not exist
//	ERROR: core.ErrValidation if the due date lies before the borrow date
//	ERROR: core.ErrUnavailable if no copy is on the shelf
//	ERROR: core.ErrDuplicateLoan if the user already holds an active loan for the book
//	IDEMPOTENCY: If the loan with LoanID was already created for the same book and user, no event is generated,
//	even when it was returned since
func Decide(state State, command Command, loanPeriodDays int) core.DecisionResult {
	if existing := state.ExistingLoan; existing != nil {
		if existing.BookID == command.BookID && existing.UserID == command.UserID {
			return core.IdempotentDecision()
		}

		return rejected(command, core.Invalid("loan_id %s is already used", command.LoanID))
	}

	if state.Book == nil {
		return rejected(command, core.NotFound("book", command.BookID.String()))
	}

	if state.User == nil {
		return rejected(command, core.NotFound("user", command.UserID.String()))
	}

	loan := NewLoan(command, loanPeriodDays)

	if loan.DueDate.Before(loan.BorrowDate) {
		return rejected(command, core.Invalid(
			"due_date %s lies before borrow_date %s", core.FormatDate(loan.DueDate), core.FormatDate(loan.BorrowDate)))
	}

	book, err := core.DecreaseAvailability(*state.Book)
	if err != nil {
		return rejected(command, fmt.Errorf("%w: %q has no copy on the shelf", err, state.Book.Title))
	}

	if state.ActiveLoan != nil {
		return rejected(command, core.ErrDuplicateLoan)
	}

	return core.SuccessDecision(core.BuildLoanCreated(loan, book.CopiesAvailable, command.OccurredAt))
}

func rejected(command Command, err error) core.DecisionResult {
	event := core.BuildOperationFailed(
		core.CreatingLoanFailedEventType,
		command.LoanID.String(),
		err.Error(),
		command.OccurredAt,
	).ForBook(command.BookID.String()).ForUser(command.UserID.String())

	return core.ErrorDecision(event, err)
}
