package memstore

import (
	"context"
	"slices"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// InsertReport stores a generated report.
func (s *Store) InsertReport(_ context.Context, report core.Report) error {
	defer s.mu.Unlock()
	if err := s.enter("InsertReport"); err != nil {
		return err
	}

	s.data.reports = append(s.data.reports, report)

	return nil
}

// Reports returns all stored reports in insertion order.
func (s *Store) Reports() []core.Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.data.reports)
}

// AppendToJournal appends the events and numbers them.
func (s *Store) AppendToJournal(_ context.Context, event ledger.StorableEvent, additionalEvents ...ledger.StorableEvent) error {
	defer s.mu.Unlock()
	if err := s.enter("AppendToJournal"); err != nil {
		return err
	}

	for _, e := range append([]ledger.StorableEvent{event}, additionalEvents...) {
		s.data.journal = append(s.data.journal, e.WithSequenceNumber(ledger.SequenceNumberUint(len(s.data.journal)+1)))
	}

	return nil
}

// Journal returns all journal entries in sequence order.
func (s *Store) Journal() ledger.StorableEvents {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.data.journal)
}

// QueryJournal applies the filter the way the SQL query does: event types ORed, predicates ANDed.
func (s *Store) QueryJournal(_ context.Context, filter ledger.JournalFilter) (ledger.StorableEvents, error) {
	defer s.mu.Unlock()
	if err := s.enter("QueryJournal"); err != nil {
		return nil, err
	}

	matching := make(ledger.StorableEvents, 0)

	for _, event := range s.data.journal {
		if len(filter.EventTypes()) > 0 && !slices.Contains(filter.EventTypes(), event.EventType) {
			continue
		}

		if !filter.OccurredFrom().IsZero() && event.OccurredAt.Before(filter.OccurredFrom()) {
			continue
		}

		if !matchesPredicates(event, filter.Predicates()) {
			continue
		}

		matching = append(matching, event)

		if filter.Limit() > 0 && uint(len(matching)) == filter.Limit() {
			break
		}
	}

	return matching, nil
}

func matchesPredicates(event ledger.StorableEvent, predicates []ledger.JournalPredicate) bool {
	if len(predicates) == 0 {
		return true
	}

	payload := make(map[string]any)
	if err := jsoniter.ConfigFastest.Unmarshal(event.PayloadJSON, &payload); err != nil {
		return false
	}

	for _, predicate := range predicates {
		value, ok := payload[predicate.Key()].(string)
		if !ok || value != predicate.Val() {
			return false
		}
	}

	return true
}
