package returnloan

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

const (
	commandType = "ReturnLoan"
)

// Command represents the intent to take a borrowed copy back. A zero ReturnDate means the day the command occurred.
type Command struct {
	LoanID     uuid.UUID
	ReturnDate time.Time
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID uuid.UUID, returnDate time.Time, occurredAt time.Time) Command {
	return Command{
		LoanID:     loanID,
		ReturnDate: returnDate,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// EffectiveReturnDate is the return date with the default applied.
func (c Command) EffectiveReturnDate() time.Time {
	if c.ReturnDate.IsZero() {
		return core.ToCalendarDate(c.OccurredAt)
	}

	return core.ToCalendarDate(c.ReturnDate)
}
