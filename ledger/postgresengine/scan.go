package postgresengine

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// Ids, enums and numerics are selected as text so that pgx and database/sql scan them the same way.

func parseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

func parseOptionalUUID(s *string) (uuid.UUID, bool, error) {
	if s == nil {
		return uuid.Nil, false, nil
	}

	id, err := uuid.Parse(*s)

	return id, err == nil, err
}

func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

func calendarDate(t time.Time) time.Time {
	return core.ToCalendarDate(t)
}

func optionalCalendarDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	d := core.ToCalendarDate(*t)

	return &d
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}

	return s
}

func nullIfZero(n int) any {
	if n == 0 {
		return nil
	}

	return n
}

func dateValue(t time.Time) string {
	return core.FormatDate(t)
}

func optionalDateValue(t *time.Time) any {
	if t == nil {
		return nil
	}

	return core.FormatDate(*t)
}
