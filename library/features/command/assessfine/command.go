package assessfine

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

const (
	commandType = "AssessFine"
)

// Command represents the intent to fine a loan with a given amount.
type Command struct {
	FineID     uuid.UUID
	LoanID     uuid.UUID
	Amount     decimal.Decimal
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(fineID uuid.UUID, loanID uuid.UUID, amount decimal.Decimal, occurredAt time.Time) Command {
	return Command{
		FineID:     fineID,
		LoanID:     loanID,
		Amount:     amount,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// NewFine returns the Unpaid fine the command attaches to loan.
// DaysOverdue is recorded for information; the amount is the one given.
func NewFine(command Command, loan core.Loan) core.Fine {
	today := core.ToCalendarDate(command.OccurredAt)

	return core.Fine{
		FineID:        command.FineID,
		LoanID:        loan.LoanID,
		Amount:        command.Amount.Round(2),
		PaymentStatus: core.PaymentUnpaid,
		DaysOverdue:   core.DaysOverdue(loan.DueDate, loan.OverdueAsOf(today)),
		RatePerDay:    decimal.Zero,
		Assessment:    core.AssessmentManual,
	}
}
