package assessoverduefine

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

const (
	commandType = "AssessOverdueFine"
)

// Command represents the intent to fine an overdue loan by rate.
// A zero RatePerDay means the handler's configured rate.
type Command struct {
	FineID     uuid.UUID
	LoanID     uuid.UUID
	RatePerDay decimal.Decimal
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(fineID uuid.UUID, loanID uuid.UUID, ratePerDay decimal.Decimal, occurredAt time.Time) Command {
	return Command{
		FineID:     fineID,
		LoanID:     loanID,
		RatePerDay: ratePerDay,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// DaysOverdueOf counts the overdue days of loan as of the day the command occurred.
func DaysOverdueOf(command Command, loan core.Loan) int {
	today := core.ToCalendarDate(command.OccurredAt)

	return core.DaysOverdue(loan.DueDate, loan.OverdueAsOf(today))
}

// NewFine returns the Unpaid fine the command attaches to loan.
func NewFine(command Command, loan core.Loan) core.Fine {
	days := DaysOverdueOf(command, loan)

	return core.Fine{
		FineID:        command.FineID,
		LoanID:        loan.LoanID,
		Amount:        core.CalculateFine(days, command.RatePerDay),
		PaymentStatus: core.PaymentUnpaid,
		DaysOverdue:   days,
		RatePerDay:    command.RatePerDay,
		Assessment:    core.AssessmentAutomatic,
	}
}
