package returnloan

import (
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// State is what Decide needs to know, loaded inside the command's transaction.
type State struct {
	Loan *core.Loan
	Book *core.Book
}

// Decide implements the business logic of returning a loan. This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A loan with LoanID
//	WHEN: ReturnLoan command is received
//	THEN: LoanReturned event is generated, carrying the available copies after the increment
//	ERROR: core.ErrNotFound if the loan does not exist
//	ERROR: core.ErrValidation if the return date lies before the borrow date
//	IDEMPOTENCY: If the loan is already returned, no event is generated
func Decide(state State, command Command) core.DecisionResult {
	if state.Loan == nil {
		return rejected(command, nil, core.NotFound("loan", command.LoanID.String()))
	}

	loan := *state.Loan

	if !loan.IsActive() {
		return core.IdempotentDecision()
	}

	returnDate := command.EffectiveReturnDate()

	if returnDate.Before(loan.BorrowDate) {
		return rejected(command, &loan, core.Invalid(
			"return_date %s lies before borrow_date %s", core.FormatDate(returnDate), core.FormatDate(loan.BorrowDate)))
	}

	copiesAvailable := 0
	if state.Book != nil {
		copiesAvailable = core.IncreaseAvailability(*state.Book).CopiesAvailable
	}

	return core.SuccessDecision(core.BuildLoanReturned(loan, returnDate, copiesAvailable, command.OccurredAt))
}

func rejected(command Command, loan *core.Loan, err error) core.DecisionResult {
	event := core.BuildOperationFailed(
		core.ReturningLoanFailedEventType,
		command.LoanID.String(),
		err.Error(),
		command.OccurredAt,
	)

	if loan != nil {
		event = event.ForBook(loan.BookID.String()).ForUser(loan.UserID.String())
	}

	return core.ErrorDecision(event, err)
}
