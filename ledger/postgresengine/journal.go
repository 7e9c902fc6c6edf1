package postgresengine

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/ledger/postgresengine/internal/adapters"
)

const (
	colSequenceNumber = "sequence_number"
	colEventType      = "event_type"
	colOccurredAt     = "occurred_at"
	colPayload        = "payload"
	colMetadata       = "metadata"
	castJsonb         = "?::jsonb"

	opAppendToJournal = "append_to_journal"
	opQueryJournal    = "query_journal"

	logMsgJournalAppended = "journal entries appended"
	logAttrEventCount     = "event_count"
	logAttrEventType      = "event_type"
)

// AppendToJournal appends events to the journal. Called inside WithinTx, the entries are committed
// or rolled back together with the state change they describe.
func (s Store) AppendToJournal(ctx context.Context, event ledger.StorableEvent, additionalEvents ...ledger.StorableEvent) error {
	allEvents := append(ledger.StorableEvents{event}, additionalEvents...)
	rows := make([]any, 0, len(allEvents))

	for _, e := range allEvents {
		rows = append(rows, goqu.Record{
			colEventType:  e.EventType,
			colOccurredAt: e.OccurredAt.UTC(),
			colPayload:    goqu.L(castJsonb, string(e.PayloadJSON)),
			colMetadata:   goqu.L(castJsonb, string(e.MetadataJSON)),
		})
	}

	sqlQuery, err := s.toSQL(ctx, opAppendToJournal, s.builder().Insert(s.journalTableName).Rows(rows...))
	if err != nil {
		return err
	}

	rowsAffected, err := s.exec(ctx, opAppendToJournal, sqlQuery)
	if err != nil {
		return err
	}

	if rowsAffected != int64(len(allEvents)) {
		return errors.Join(ledger.ErrExecutingFailed, errors.New("journal append affected an unexpected number of rows"))
	}

	s.logOperationContext(ctx, logMsgJournalAppended, logAttrEventCount, len(allEvents), logAttrEventType, event.EventType)

	return nil
}

// QueryJournal returns journal entries matching the filter in sequence order.
// Event types are ORed, predicates are ANDed as jsonb containment on the payload.
func (s Store) QueryJournal(ctx context.Context, filter ledger.JournalFilter) (ledger.StorableEvents, error) {
	ds := s.builder().
		From(s.journalTableName).
		Select(colSequenceNumber, colEventType, colOccurredAt, colPayload, colMetadata).
		Order(goqu.C(colSequenceNumber).Asc())

	conditions, err := journalConditions(filter)
	if err != nil {
		return nil, errors.Join(ledger.ErrBuildingQueryFailed, err)
	}

	ds = ds.Where(conditions...)

	if filter.Limit() > 0 {
		ds = ds.Limit(filter.Limit())
	}

	sqlQuery, err := s.toSQL(ctx, opQueryJournal, ds)
	if err != nil {
		return nil, err
	}

	events := make(ledger.StorableEvents, 0)

	_, err = s.query(ctx, opQueryJournal, sqlQuery, func(rows adapters.DBRows) error {
		var (
			sequenceNumber int64
			eventType      string
			occurredAt     time.Time
			payload        []byte
			metadata       []byte
		)

		if scanErr := rows.Scan(&sequenceNumber, &eventType, &occurredAt, &payload, &metadata); scanErr != nil {
			return scanErr
		}

		event, buildErr := ledger.BuildStorableEvent(eventType, occurredAt, payload, metadata)
		if buildErr != nil {
			return buildErr
		}

		events = append(events, event.WithSequenceNumber(ledger.SequenceNumberUint(sequenceNumber)))

		return nil
	})
	if err != nil {
		return nil, err
	}

	return events, nil
}

func journalConditions(filter ledger.JournalFilter) ([]goqu.Expression, error) {
	conditions := make([]goqu.Expression, 0, 3)

	if len(filter.EventTypes()) > 0 {
		conditions = append(conditions, goqu.C(colEventType).In(filter.EventTypes()))
	}

	if len(filter.Predicates()) > 0 {
		containment := make(map[string]string, len(filter.Predicates()))
		for _, predicate := range filter.Predicates() {
			containment[predicate.Key()] = predicate.Val()
		}

		containmentJSON, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(containment)
		if err != nil {
			return nil, err
		}

		conditions = append(conditions, goqu.L("? @> ?::jsonb", goqu.C(colPayload), string(containmentJSON)))
	}

	if !filter.OccurredFrom().IsZero() {
		conditions = append(conditions, goqu.C(colOccurredAt).Gte(filter.OccurredFrom().UTC()))
	}

	return conditions, nil
}
