package core

import (
	"time"
)

// LoanCreatedEventType is the event type identifier.
const LoanCreatedEventType = "LoanCreated"

// LoanCreated represents when a book copy is lent to a user.
type LoanCreated struct {
	LoanID          LoanIDString
	BookID          BookIDString
	UserID          UserIDString
	BorrowDate      string
	DueDate         string
	CopiesAvailable int
	OccurredAt      OccurredAtTS
}

// BuildLoanCreated creates a new LoanCreated event. copiesAvailable is the count after the decrement.
func BuildLoanCreated(loan Loan, copiesAvailable int, occurredAt time.Time) LoanCreated {
	return LoanCreated{
		LoanID:          loan.LoanID.String(),
		BookID:          loan.BookID.String(),
		UserID:          loan.UserID.String(),
		BorrowDate:      FormatDate(loan.BorrowDate),
		DueDate:         FormatDate(loan.DueDate),
		CopiesAvailable: copiesAvailable,
		OccurredAt:      ToOccurredAt(occurredAt),
	}
}

// WithCopiesAvailable returns a copy carrying the count the store reported after the decrement.
func (e LoanCreated) WithCopiesAvailable(copiesAvailable int) LoanCreated {
	e.CopiesAvailable = copiesAvailable

	return e
}

// EventType returns the event type identifier.
func (e LoanCreated) EventType() string { return LoanCreatedEventType }

// HasOccurredAt returns when this event occurred.
func (e LoanCreated) HasOccurredAt() time.Time { return e.OccurredAt }

// IsErrorEvent returns false since this event represents a successful operation.
func (e LoanCreated) IsErrorEvent() bool { return false }

// LoanReturnedEventType is the event type identifier.
const LoanReturnedEventType = "LoanReturned"

// LoanReturnedEvent represents when a borrowed copy comes back.
type LoanReturnedEvent struct {
	LoanID          LoanIDString
	BookID          BookIDString
	UserID          UserIDString
	ReturnDate      string
	DaysOverdue     int
	CopiesAvailable int
	OccurredAt      OccurredAtTS
}

// BuildLoanReturned creates a new LoanReturnedEvent. copiesAvailable is the count after the increment.
func BuildLoanReturned(loan Loan, returnDate time.Time, copiesAvailable int, occurredAt time.Time) LoanReturnedEvent {
	return LoanReturnedEvent{
		LoanID:          loan.LoanID.String(),
		BookID:          loan.BookID.String(),
		UserID:          loan.UserID.String(),
		ReturnDate:      FormatDate(returnDate),
		DaysOverdue:     DaysOverdue(loan.DueDate, returnDate),
		CopiesAvailable: copiesAvailable,
		OccurredAt:      ToOccurredAt(occurredAt),
	}
}

// WithCopiesAvailable returns a copy carrying the count the store reported after the increment.
func (e LoanReturnedEvent) WithCopiesAvailable(copiesAvailable int) LoanReturnedEvent {
	e.CopiesAvailable = copiesAvailable

	return e
}

// EventType returns the event type identifier.
func (e LoanReturnedEvent) EventType() string { return LoanReturnedEventType }

// HasOccurredAt returns when this event occurred.
func (e LoanReturnedEvent) HasOccurredAt() time.Time { return e.OccurredAt }

// IsErrorEvent returns false since this event represents a successful operation.
func (e LoanReturnedEvent) IsErrorEvent() bool { return false }
