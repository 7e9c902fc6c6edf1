package core

import (
	"time"

	"github.com/google/uuid"
)

// Event type identifiers of the catalog.
const (
	BookAddedToCatalogEventType     = "BookAddedToCatalog"
	BookUpdatedEventType            = "BookUpdated"
	BookRemovedFromCatalogEventType = "BookRemovedFromCatalog"
)

// BookAddedToCatalog represents when a new book enters the catalog.
type BookAddedToCatalog struct {
	BookID      BookIDString
	Title       string
	Author      string
	ISBN        string
	CopiesTotal int
	OccurredAt  OccurredAtTS
}

// BuildBookAddedToCatalog creates a new BookAddedToCatalog event.
func BuildBookAddedToCatalog(book Book, occurredAt time.Time) BookAddedToCatalog {
	return BookAddedToCatalog{
		BookID:      book.BookID.String(),
		Title:       book.Title,
		Author:      book.Author,
		ISBN:        book.ISBN,
		CopiesTotal: book.CopiesTotal,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookAddedToCatalog) EventType() string { return BookAddedToCatalogEventType }

// HasOccurredAt returns when this event occurred.
func (e BookAddedToCatalog) HasOccurredAt() time.Time { return e.OccurredAt }

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookAddedToCatalog) IsErrorEvent() bool { return false }

// BookUpdated represents when staff edits a book or overrides its copy counters.
type BookUpdated struct {
	BookID             BookIDString
	CopiesTotal        int
	CopiesAvailable    int
	AvailabilityStatus string
	OccurredAt         OccurredAtTS
}

// BuildBookUpdated creates a new BookUpdated event from the edited book.
func BuildBookUpdated(book Book, occurredAt time.Time) BookUpdated {
	return BookUpdated{
		BookID:             book.BookID.String(),
		CopiesTotal:        book.CopiesTotal,
		CopiesAvailable:    book.CopiesAvailable,
		AvailabilityStatus: string(book.AvailabilityStatus),
		OccurredAt:         ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookUpdated) EventType() string { return BookUpdatedEventType }

// HasOccurredAt returns when this event occurred.
func (e BookUpdated) HasOccurredAt() time.Time { return e.OccurredAt }

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookUpdated) IsErrorEvent() bool { return false }

// BookRemovedFromCatalog represents when a book is deleted from the catalog.
type BookRemovedFromCatalog struct {
	BookID     BookIDString
	OccurredAt OccurredAtTS
}

// BuildBookRemovedFromCatalog creates a new BookRemovedFromCatalog event.
func BuildBookRemovedFromCatalog(bookID uuid.UUID, occurredAt time.Time) BookRemovedFromCatalog {
	return BookRemovedFromCatalog{
		BookID:     bookID.String(),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookRemovedFromCatalog) EventType() string { return BookRemovedFromCatalogEventType }

// HasOccurredAt returns when this event occurred.
func (e BookRemovedFromCatalog) HasOccurredAt() time.Time { return e.OccurredAt }

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookRemovedFromCatalog) IsErrorEvent() bool { return false }
