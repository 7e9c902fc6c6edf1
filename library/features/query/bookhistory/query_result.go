package bookhistory

import (
	"time"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// Entry is one journal entry of a book.
type Entry struct {
	SequenceNumber ledger.SequenceNumberUint
	EventType      string
	OccurredAt     time.Time
	Failed         bool
	Event          core.DomainEvent
}

// History lists the entries of a book in journal order.
type History struct {
	Entries []Entry
	Count   int
}
