package postgresengine

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// DefaultPageLimit is used when a BookFilter has no limit.
const DefaultPageLimit = 20

// BookFilter narrows the catalog listing. Search matches title, author and ISBN case-insensitively.
type BookFilter struct {
	Search   string
	Category string
	Page     int
	Limit    int
}

func (f BookFilter) normalized() BookFilter {
	if f.Page < 1 {
		f.Page = 1
	}

	if f.Limit < 1 {
		f.Limit = DefaultPageLimit
	}

	return f
}

func (f BookFilter) offset() uint {
	return uint((f.Page - 1) * f.Limit)
}

// LoanFilter narrows loan listings. Nil fields do not filter.
type LoanFilter struct {
	UserID *uuid.UUID
	BookID *uuid.UUID
	Status *core.LoanStatus
}

// ReservationFilter narrows reservation listings. Nil fields do not filter.
type ReservationFilter struct {
	UserID *uuid.UUID
	BookID *uuid.UUID
	Status *core.ReservationStatus
}

// FineFilter narrows fine listings. Nil fields do not filter.
type FineFilter struct {
	UserID        *uuid.UUID
	PaymentStatus *core.PaymentStatus
}

// UserFilter narrows user listings. Search matches name and email case-insensitively.
type UserFilter struct {
	Role   *core.Role
	Search string
}
