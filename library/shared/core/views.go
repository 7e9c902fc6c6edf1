package core

import (
	"time"

	"github.com/google/uuid"
)

// BookSummary is the part of a book shown next to loans, reservations and fines.
type BookSummary struct {
	BookID uuid.UUID `json:"book_id"`
	Title  string    `json:"title"`
	Author string    `json:"author"`
	ISBN   string    `json:"isbn,omitempty"`
}

// UserSummary is the part of a user shown next to loans, reservations and fines.
type UserSummary struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
}

// LoanDetails is a loan joined with its book, its borrower and its fine, if any.
type LoanDetails struct {
	Loan
	Book BookSummary
	User UserSummary
	Fine *Fine
}

// ReservationDetails is a reservation joined with its book and user.
type ReservationDetails struct {
	Reservation
	Book BookSummary
	User UserSummary
}

// FineDetails is a fine joined with its loan, the loan's book and the borrower.
type FineDetails struct {
	Fine
	Loan Loan
	Book BookSummary
	User UserSummary
}

// Session is an authenticated login. Token is the bearer token.
type Session struct {
	Token     uuid.UUID
	UserID    uuid.UUID
	Role      Role
	ExpiresAt time.Time
}

// Report is a generated, persisted report.
type Report struct {
	ReportID      uuid.UUID
	GeneratedBy   uuid.UUID
	ReportType    string
	DateGenerated time.Time
	ReportData    []byte
}
