package core

import (
	"time"
)

// UserRegisteredEventType is the event type identifier.
const UserRegisteredEventType = "UserRegistered"

// UserRegistered represents when a new user account is created.
type UserRegistered struct {
	UserID     UserIDString
	Email      string
	Role       string
	OccurredAt OccurredAtTS
}

// BuildUserRegistered creates a new UserRegistered event.
func BuildUserRegistered(user User, occurredAt time.Time) UserRegistered {
	return UserRegistered{
		UserID:     user.UserID.String(),
		Email:      user.Email,
		Role:       string(user.Role),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e UserRegistered) EventType() string { return UserRegisteredEventType }

// HasOccurredAt returns when this event occurred.
func (e UserRegistered) HasOccurredAt() time.Time { return e.OccurredAt }

// IsErrorEvent returns false since this event represents a successful operation.
func (e UserRegistered) IsErrorEvent() bool { return false }
