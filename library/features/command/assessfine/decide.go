package assessfine

import (
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// State is what Decide needs to know, loaded inside the command's transaction.
// ExistingFine is the fine of the loan, SameIDFine the fine already stored under the command's FineID.
type State struct {
	Loan         *core.Loan
	ExistingFine *core.Fine
	SameIDFine   *core.Fine
}

// Decide implements the business logic of a manual fine. This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A loan with LoanID
//	WHEN: AssessFine command is received
//	THEN: FineAssessed event is generated with the given amount
//	ERROR: core.ErrNotFound if the loan does not exist
//	ERROR: core.ErrValidation if FineID already belongs to the fine of another loan
//	ERROR: core.ErrValidation if the amount is negative or the loan already has a fine
//	IDEMPOTENCY: If the loan's fine is the one this command creates, no event is generated
func Decide(state State, command Command) core.DecisionResult {
	if state.Loan == nil {
		return rejected(command, nil, core.NotFound("loan", command.LoanID.String()))
	}

	loan := *state.Loan

	if state.SameIDFine != nil && state.SameIDFine.LoanID != loan.LoanID {
		return rejected(command, &loan, core.Invalid("fine_id %s is already used", command.FineID))
	}

	if state.ExistingFine != nil {
		if state.ExistingFine.FineID == command.FineID {
			return core.IdempotentDecision()
		}

		return rejected(command, &loan, core.Invalid("loan already has a fine"))
	}

	if err := core.ValidateAmount(command.Amount); err != nil {
		return rejected(command, &loan, err)
	}

	return core.SuccessDecision(core.BuildFineAssessed(NewFine(command, loan), loan, command.OccurredAt))
}

func rejected(command Command, loan *core.Loan, err error) core.DecisionResult {
	event := core.BuildOperationFailed(
		core.AssessingFineFailedEventType,
		command.FineID.String(),
		err.Error(),
		command.OccurredAt,
	)

	if loan != nil {
		event = event.ForBook(loan.BookID.String()).ForUser(loan.UserID.String())
	}

	return core.ErrorDecision(event, err)
}
