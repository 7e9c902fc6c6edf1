package core

import (
	"slices"
	"time"
)

// Failure event types, one per command.
const (
	AddingBookFailedEventType                = "AddingBookFailed"
	UpdatingBookFailedEventType              = "UpdatingBookFailed"
	RemovingBookFailedEventType              = "RemovingBookFailed"
	CreatingLoanFailedEventType              = "CreatingLoanFailed"
	ReturningLoanFailedEventType             = "ReturningLoanFailed"
	CreatingReservationFailedEventType       = "CreatingReservationFailed"
	ChangingReservationStatusFailedEventType = "ChangingReservationStatusFailed"
	CancellingReservationFailedEventType     = "CancellingReservationFailed"
	AssessingFineFailedEventType             = "AssessingFineFailed"
	ChangingFinePaymentStatusFailedEventType = "ChangingFinePaymentStatusFailed"
	RegisteringUserFailedEventType           = "RegisteringUserFailed"
)

var failureEventTypes = []string{
	AddingBookFailedEventType,
	UpdatingBookFailedEventType,
	RemovingBookFailedEventType,
	CreatingLoanFailedEventType,
	ReturningLoanFailedEventType,
	CreatingReservationFailedEventType,
	ChangingReservationStatusFailedEventType,
	CancellingReservationFailedEventType,
	AssessingFineFailedEventType,
	ChangingFinePaymentStatusFailedEventType,
	RegisteringUserFailedEventType,
}

// IsFailureEventType reports whether eventType names an OperationFailed event.
func IsFailureEventType(eventType string) bool {
	return slices.Contains(failureEventTypes, eventType)
}

// OperationFailed represents a command rejected by a business rule.
// BookID and UserID are set when the command names them, so the failure shows up in a book's history.
type OperationFailed struct {
	FailureType string
	EntityID    string
	BookID      BookIDString `json:",omitempty"`
	UserID      UserIDString `json:",omitempty"`
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildOperationFailed creates a new OperationFailed event of the given failure type.
func BuildOperationFailed(
	failureType string,
	entityID string,
	failureInfo string,
	occurredAt time.Time,
) OperationFailed {

	return OperationFailed{
		FailureType: failureType,
		EntityID:    entityID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// ForBook returns a copy that references the book.
func (e OperationFailed) ForBook(bookID string) OperationFailed {
	e.BookID = bookID

	return e
}

// ForUser returns a copy that references the user.
func (e OperationFailed) ForUser(userID string) OperationFailed {
	e.UserID = userID

	return e
}

// EventType returns the failure type.
func (e OperationFailed) EventType() string { return e.FailureType }

// HasOccurredAt returns when this event occurred.
func (e OperationFailed) HasOccurredAt() time.Time { return e.OccurredAt }

// IsErrorEvent returns true since this event represents a failed operation.
func (e OperationFailed) IsErrorEvent() bool { return true }
