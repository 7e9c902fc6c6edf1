package core

import (
	"slices"
)

// Role is the closed set of user roles.
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleLibrarian Role = "Librarian"
	RoleStudent   Role = "Student"
	RoleMember    Role = "Member"
)

var allRoles = []Role{RoleAdmin, RoleLibrarian, RoleStudent, RoleMember}

// ParseRole rejects anything that is not a known Role.
func ParseRole(s string) (Role, error) {
	return parseEnum("role", s, allRoles)
}

// IsStaff is true for roles that manage the library (Admin, Librarian).
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleLibrarian
}

// AvailabilityStatus of a book. Reserved is representable but no lifecycle rule assigns it.
type AvailabilityStatus string

const (
	AvailabilityAvailable AvailabilityStatus = "Available"
	AvailabilityBorrowed  AvailabilityStatus = "Borrowed"
	AvailabilityReserved  AvailabilityStatus = "Reserved"
)

var allAvailabilityStatuses = []AvailabilityStatus{AvailabilityAvailable, AvailabilityBorrowed, AvailabilityReserved}

// ParseAvailabilityStatus rejects anything that is not a known AvailabilityStatus.
func ParseAvailabilityStatus(s string) (AvailabilityStatus, error) {
	return parseEnum("availability status", s, allAvailabilityStatuses)
}

// LoanStatus of a loan. Returned is terminal.
type LoanStatus string

const (
	LoanBorrowed LoanStatus = "Borrowed"
	LoanReturned LoanStatus = "Returned"
)

var allLoanStatuses = []LoanStatus{LoanBorrowed, LoanReturned}

// ParseLoanStatus rejects anything that is not a known LoanStatus.
func ParseLoanStatus(s string) (LoanStatus, error) {
	return parseEnum("loan status", s, allLoanStatuses)
}

// PaymentStatus of a fine.
type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "Paid"
	PaymentUnpaid PaymentStatus = "Unpaid"
)

var allPaymentStatuses = []PaymentStatus{PaymentPaid, PaymentUnpaid}

// ParsePaymentStatus rejects anything that is not a known PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	return parseEnum("payment status", s, allPaymentStatuses)
}

// ReservationStatus of a reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "Pending"
	ReservationCollected ReservationStatus = "Collected"
	ReservationCancelled ReservationStatus = "Cancelled"
)

var allReservationStatuses = []ReservationStatus{ReservationPending, ReservationCollected, ReservationCancelled}

// ParseReservationStatus rejects anything that is not a known ReservationStatus.
func ParseReservationStatus(s string) (ReservationStatus, error) {
	return parseEnum("reservation status", s, allReservationStatuses)
}

// FineAssessment tells whether a fine was entered by staff or computed from an overdue loan.
type FineAssessment string

const (
	AssessmentManual    FineAssessment = "Manual"
	AssessmentAutomatic FineAssessment = "Automatic"
)

var allFineAssessments = []FineAssessment{AssessmentManual, AssessmentAutomatic}

// ParseFineAssessment rejects anything that is not a known FineAssessment.
func ParseFineAssessment(s string) (FineAssessment, error) {
	return parseEnum("fine assessment", s, allFineAssessments)
}

func parseEnum[T ~string](name string, s string, allowed []T) (T, error) {
	if slices.Contains(allowed, T(s)) {
		return T(s), nil
	}

	var zero T

	return zero, Invalid("unknown %s %q", name, s)
}
