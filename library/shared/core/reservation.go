package core

import (
	"time"

	"github.com/google/uuid"
)

// Reservation is a hold a user places on a book.
type Reservation struct {
	ReservationID   uuid.UUID
	BookID          uuid.UUID
	UserID          uuid.UUID
	ReservationDate time.Time
	Status          ReservationStatus
}

// IsPending is true while the hold is open.
func (r Reservation) IsPending() bool {
	return r.Status == ReservationPending
}
