package core

import (
	"time"
)

// Event type identifiers of fines.
const (
	FineAssessedEventType             = "FineAssessed"
	FinePaymentStatusChangedEventType = "FinePaymentStatusChanged"
)

// FineAssessed represents when a fine is attached to a loan.
type FineAssessed struct {
	FineID      FineIDString
	LoanID      LoanIDString
	BookID      BookIDString
	UserID      UserIDString
	Amount      string
	DaysOverdue int
	RatePerDay  string
	Assessment  string
	OccurredAt  OccurredAtTS
}

// BuildFineAssessed creates a new FineAssessed event.
func BuildFineAssessed(fine Fine, loan Loan, occurredAt time.Time) FineAssessed {
	return FineAssessed{
		FineID:      fine.FineID.String(),
		LoanID:      loan.LoanID.String(),
		BookID:      loan.BookID.String(),
		UserID:      loan.UserID.String(),
		Amount:      fine.Amount.StringFixed(2),
		DaysOverdue: fine.DaysOverdue,
		RatePerDay:  fine.RatePerDay.StringFixed(2),
		Assessment:  string(fine.Assessment),
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e FineAssessed) EventType() string { return FineAssessedEventType }

// HasOccurredAt returns when this event occurred.
func (e FineAssessed) HasOccurredAt() time.Time { return e.OccurredAt }

// IsErrorEvent returns false since this event represents a successful operation.
func (e FineAssessed) IsErrorEvent() bool { return false }

// FinePaymentStatusChanged represents when a fine is paid or reopened.
type FinePaymentStatusChanged struct {
	FineID     FineIDString
	LoanID     LoanIDString
	UserID     UserIDString
	FromStatus string
	ToStatus   string
	OccurredAt OccurredAtTS
}

// BuildFinePaymentStatusChanged creates a new FinePaymentStatusChanged event.
func BuildFinePaymentStatusChanged(fine Fine, loan Loan, to PaymentStatus, occurredAt time.Time) FinePaymentStatusChanged {
	return FinePaymentStatusChanged{
		FineID:     fine.FineID.String(),
		LoanID:     fine.LoanID.String(),
		UserID:     loan.UserID.String(),
		FromStatus: string(fine.PaymentStatus),
		ToStatus:   string(to),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e FinePaymentStatusChanged) EventType() string { return FinePaymentStatusChangedEventType }

// HasOccurredAt returns when this event occurred.
func (e FinePaymentStatusChanged) HasOccurredAt() time.Time { return e.OccurredAt }

// IsErrorEvent returns false since this event represents a successful operation.
func (e FinePaymentStatusChanged) IsErrorEvent() bool { return false }
