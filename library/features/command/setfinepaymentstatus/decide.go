package setfinepaymentstatus

import (
	"fmt"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// State is what Decide needs to know, loaded inside the command's transaction.
type State struct {
	Fine *core.Fine
	Loan *core.Loan
}

// Decide implements the business logic of paying or reopening a fine. This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A fine with FineID attached to a loan
//	WHEN: SetFinePaymentStatus command is received
//	THEN: FinePaymentStatusChanged event is generated
//	ERROR: core.ErrNotFound if the fine does not exist
//	ERROR: core.ErrValidation if NewStatus is not a known payment status
//	ERROR: core.ErrForbidden if a non-staff actor is not the borrower or sets anything but Paid
//	IDEMPOTENCY: If the fine already has NewStatus, no event is generated
func Decide(state State, command Command) core.DecisionResult {
	if state.Fine == nil || state.Loan == nil {
		return rejected(command, nil, core.NotFound("fine", command.FineID.String()))
	}

	fine, loan := *state.Fine, *state.Loan

	to, err := core.ParsePaymentStatus(command.NewStatus)
	if err != nil {
		return rejected(command, &loan, err)
	}

	if !command.Actor.IsStaff() {
		if !command.Actor.Owns(loan.UserID) || to != core.PaymentPaid {
			return rejected(command, &loan, fmt.Errorf("%w: only staff may set a fine to %s", core.ErrForbidden, to))
		}
	}

	if fine.PaymentStatus == to {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(core.BuildFinePaymentStatusChanged(fine, loan, to, command.OccurredAt))
}

func rejected(command Command, loan *core.Loan, err error) core.DecisionResult {
	event := core.BuildOperationFailed(
		core.ChangingFinePaymentStatusFailedEventType,
		command.FineID.String(),
		err.Error(),
		command.OccurredAt,
	)

	if loan != nil {
		event = event.ForBook(loan.BookID.String()).ForUser(loan.UserID.String())
	}

	return core.ErrorDecision(event, err)
}
