package core

import (
	"time"

	"github.com/google/uuid"
)

// Event type identifiers of the reservation queue.
const (
	ReservationCreatedEventType       = "ReservationCreated"
	ReservationStatusChangedEventType = "ReservationStatusChanged"
	ReservationCancelledEventType     = "ReservationCancelled"
)

// ReservationCreated represents when a user places a hold on a book.
type ReservationCreated struct {
	ReservationID   ReservationIDString
	BookID          BookIDString
	UserID          UserIDString
	ReservationDate string
	OccurredAt      OccurredAtTS
}

// BuildReservationCreated creates a new ReservationCreated event.
func BuildReservationCreated(reservation Reservation, occurredAt time.Time) ReservationCreated {
	return ReservationCreated{
		ReservationID:   reservation.ReservationID.String(),
		BookID:          reservation.BookID.String(),
		UserID:          reservation.UserID.String(),
		ReservationDate: FormatDate(reservation.ReservationDate),
		OccurredAt:      ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ReservationCreated) EventType() string { return ReservationCreatedEventType }

// HasOccurredAt returns when this event occurred.
func (e ReservationCreated) HasOccurredAt() time.Time { return e.OccurredAt }

// IsErrorEvent returns false since this event represents a successful operation.
func (e ReservationCreated) IsErrorEvent() bool { return false }

// ReservationStatusChanged represents a status change of a reservation.
type ReservationStatusChanged struct {
	ReservationID ReservationIDString
	BookID        BookIDString
	UserID        UserIDString
	FromStatus    string
	ToStatus      string
	ChangedBy     UserIDString
	OccurredAt    OccurredAtTS
}

// BuildReservationStatusChanged creates a new ReservationStatusChanged event.
func BuildReservationStatusChanged(
	reservation Reservation,
	to ReservationStatus,
	changedBy uuid.UUID,
	occurredAt time.Time,
) ReservationStatusChanged {

	return ReservationStatusChanged{
		ReservationID: reservation.ReservationID.String(),
		BookID:        reservation.BookID.String(),
		UserID:        reservation.UserID.String(),
		FromStatus:    string(reservation.Status),
		ToStatus:      string(to),
		ChangedBy:     changedBy.String(),
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ReservationStatusChanged) EventType() string { return ReservationStatusChangedEventType }

// HasOccurredAt returns when this event occurred.
func (e ReservationStatusChanged) HasOccurredAt() time.Time { return e.OccurredAt }

// IsErrorEvent returns false since this event represents a successful operation.
func (e ReservationStatusChanged) IsErrorEvent() bool { return false }

// ReservationCancelledEvent represents when a reservation is withdrawn and its row deleted.
type ReservationCancelledEvent struct {
	ReservationID ReservationIDString
	BookID        BookIDString
	UserID        UserIDString
	CancelledBy   UserIDString
	OccurredAt    OccurredAtTS
}

// BuildReservationCancelled creates a new ReservationCancelledEvent.
func BuildReservationCancelled(reservation Reservation, cancelledBy uuid.UUID, occurredAt time.Time) ReservationCancelledEvent {
	return ReservationCancelledEvent{
		ReservationID: reservation.ReservationID.String(),
		BookID:        reservation.BookID.String(),
		UserID:        reservation.UserID.String(),
		CancelledBy:   cancelledBy.String(),
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ReservationCancelledEvent) EventType() string { return ReservationCancelledEventType }

// HasOccurredAt returns when this event occurred.
func (e ReservationCancelledEvent) HasOccurredAt() time.Time { return e.OccurredAt }

// IsErrorEvent returns false since this event represents a successful operation.
func (e ReservationCancelledEvent) IsErrorEvent() bool { return false }
