package ledger

import (
	"slices"
	"time"
)

// JournalPredicate matches a top-level key of the event payload with a string value.
type JournalPredicate struct {
	key string
	val string
}

// P is a short factory for JournalPredicate.
func P(key string, val string) JournalPredicate {
	return JournalPredicate{key: key, val: val}
}

// Key returns the payload key.
func (p JournalPredicate) Key() string {
	return p.key
}

// Val returns the expected payload value.
func (p JournalPredicate) Val() string {
	return p.val
}

// JournalFilter selects journal entries. Event types are ORed, predicates are ANDed,
// and both groups are ANDed when present. An empty filter selects everything.
type JournalFilter struct {
	eventTypes   []string
	predicates   []JournalPredicate
	occurredFrom time.Time
	limit        uint
}

// EventTypes returns the event types to match.
func (f JournalFilter) EventTypes() []string {
	return f.eventTypes
}

// Predicates returns the payload predicates to match.
func (f JournalFilter) Predicates() []JournalPredicate {
	return f.predicates
}

// OccurredFrom returns the lower time bound, zero when unbounded.
func (f JournalFilter) OccurredFrom() time.Time {
	return f.occurredFrom
}

// Limit returns the maximum number of entries, zero when unlimited.
func (f JournalFilter) Limit() uint {
	return f.limit
}

// JournalFilterBuilder assembles a JournalFilter.
type JournalFilterBuilder struct {
	filter JournalFilter
}

// BuildJournalFilter starts a new JournalFilter.
func BuildJournalFilter() *JournalFilterBuilder {
	return &JournalFilterBuilder{}
}

// AnyEventTypeOf adds event types, duplicates and empty strings are dropped.
func (b *JournalFilterBuilder) AnyEventTypeOf(eventTypes ...string) *JournalFilterBuilder {
	for _, eventType := range eventTypes {
		if eventType == "" || slices.Contains(b.filter.eventTypes, eventType) {
			continue
		}

		b.filter.eventTypes = append(b.filter.eventTypes, eventType)
	}

	return b
}

// WithPredicate adds a payload predicate. Predicates with an empty key are ignored.
func (b *JournalFilterBuilder) WithPredicate(key string, val string) *JournalFilterBuilder {
	if key == "" {
		return b
	}

	b.filter.predicates = append(b.filter.predicates, P(key, val))

	return b
}

// OccurredFrom restricts the filter to entries that occurred at or after t.
func (b *JournalFilterBuilder) OccurredFrom(t time.Time) *JournalFilterBuilder {
	b.filter.occurredFrom = t

	return b
}

// Limit caps the number of returned entries.
func (b *JournalFilterBuilder) Limit(limit uint) *JournalFilterBuilder {
	b.filter.limit = limit

	return b
}

// Finalize returns the assembled filter.
func (b *JournalFilterBuilder) Finalize() JournalFilter {
	return b.filter
}
