package core

import (
	"time"
)

// BookIDString represents a book identifier inside event payloads.
type BookIDString = string

// UserIDString represents a user identifier inside event payloads.
type UserIDString = string

// LoanIDString represents a loan identifier inside event payloads.
type LoanIDString = string

// ReservationIDString represents a reservation identifier inside event payloads.
type ReservationIDString = string

// FineIDString represents a fine identifier inside event payloads.
type FineIDString = string

// OccurredAtTS represents when an event occurred.
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}

// ToCalendarDate drops the time of day and returns midnight UTC of the same calendar day.
// Borrow, due, return and reservation dates are calendar dates.
func ToCalendarDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from -> to, negative if to is earlier.
func DaysBetween(from time.Time, to time.Time) int {
	const secondsPerDay = 24 * 60 * 60

	return int((ToCalendarDate(to).Unix() - ToCalendarDate(from).Unix()) / secondsPerDay)
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// ParseDate parses YYYY-MM-DD (or an RFC 3339 timestamp) into a calendar date.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, Invalid("date %q must be formatted as YYYY-MM-DD", s)
	}

	return ToCalendarDate(t), nil
}
