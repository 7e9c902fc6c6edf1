package createreservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

const (
	commandType = "CreateReservation"
)

// Command represents the intent to place a hold on a book for a user.
type Command struct {
	ReservationID uuid.UUID
	BookID        uuid.UUID
	UserID        uuid.UUID
	OccurredAt    core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(reservationID uuid.UUID, bookID uuid.UUID, userID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		ReservationID: reservationID,
		BookID:        bookID,
		UserID:        userID,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}

// NewReservation returns the Pending reservation the command creates, dated the day it occurred.
func NewReservation(command Command) core.Reservation {
	return core.Reservation{
		ReservationID:   command.ReservationID,
		BookID:          command.BookID,
		UserID:          command.UserID,
		ReservationDate: core.ToCalendarDate(command.OccurredAt),
		Status:          core.ReservationPending,
	}
}
