package core

import (
	"time"

	"github.com/google/uuid"
)

// DefaultLoanPeriodDays is added to the borrow date when no due date is given.
const DefaultLoanPeriodDays = 14

// Loan is one borrow record. ReturnDate is set iff Status is Returned.
type Loan struct {
	LoanID     uuid.UUID
	BookID     uuid.UUID
	UserID     uuid.UUID
	BorrowDate time.Time
	DueDate    time.Time
	ReturnDate *time.Time
	Status     LoanStatus
}

// IsActive is true while the book is still out.
func (l Loan) IsActive() bool {
	return l.Status == LoanBorrowed
}

// DueDateFor returns borrowDate plus the loan period in calendar days.
func DueDateFor(borrowDate time.Time, loanPeriodDays int) time.Time {
	return ToCalendarDate(borrowDate).AddDate(0, 0, loanPeriodDays)
}

// DaysOverdue is the number of whole calendar days today is past dueDate, never negative.
func DaysOverdue(dueDate time.Time, today time.Time) int {
	return max(0, DaysBetween(dueDate, today))
}

// OverdueAsOf is the date overdue days are counted up to: the return date for returned loans, else today.
func (l Loan) OverdueAsOf(today time.Time) time.Time {
	if l.Status == LoanReturned && l.ReturnDate != nil {
		return *l.ReturnDate
	}

	return today
}

// IsOverdue is true for an active loan whose due date lies before today.
func (l Loan) IsOverdue(today time.Time) bool {
	return l.IsActive() && DaysOverdue(l.DueDate, today) > 0
}
