package createloan

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

const (
	commandType = "CreateLoan"
)

// Command represents the intent to lend a copy of a book to a user.
// A zero BorrowDate means the day the command occurred, a zero DueDate means BorrowDate plus the loan period.
type Command struct {
	LoanID     uuid.UUID
	BookID     uuid.UUID
	UserID     uuid.UUID
	BorrowDate time.Time
	DueDate    time.Time
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	loanID uuid.UUID,
	bookID uuid.UUID,
	userID uuid.UUID,
	borrowDate time.Time,
	dueDate time.Time,
	occurredAt time.Time,
) Command {

	return Command{
		LoanID:     loanID,
		BookID:     bookID,
		UserID:     userID,
		BorrowDate: borrowDate,
		DueDate:    dueDate,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// NewLoan resolves the default dates and returns the loan the command would create.
func NewLoan(command Command, loanPeriodDays int) core.Loan {
	borrowDate := command.BorrowDate
	if borrowDate.IsZero() {
		borrowDate = command.OccurredAt
	}

	dueDate := core.ToCalendarDate(command.DueDate)
	if command.DueDate.IsZero() {
		dueDate = core.DueDateFor(borrowDate, loanPeriodDays)
	}

	return core.Loan{
		LoanID:     command.LoanID,
		BookID:     command.BookID,
		UserID:     command.UserID,
		BorrowDate: core.ToCalendarDate(borrowDate),
		DueDate:    dueDate,
		Status:     core.LoanBorrowed,
	}
}
