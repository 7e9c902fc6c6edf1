package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

func Test_DaysOverdue(t *testing.T) {
	due := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		today time.Time
		want  int
	}{
		{name: "before due date", today: due.AddDate(0, 0, -3), want: 0},
		{name: "on due date", today: due, want: 0},
		{name: "one day late", today: due.AddDate(0, 0, 1), want: 1},
		{name: "late in the evening counts whole days", today: due.AddDate(0, 0, 5).Add(23 * time.Hour), want: 5},
		{name: "across a month boundary", today: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), want: 23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// act
			got := core.DaysOverdue(due, tt.today)

			// assert
			assert.Equal(t, tt.want, got, "days overdue should match")
		})
	}
}

func Test_DaysBetween(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{name: "same day ignores the time of day", from: time.Date(2024, 3, 10, 1, 0, 0, 0, time.UTC),
			to: time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC), want: 0},
		{name: "backwards across the epoch", from: time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC),
			to: time.Date(1969, 12, 30, 0, 0, 0, 0, time.UTC), want: -3},
		{name: "four centuries", from: time.Date(1700, 1, 1, 0, 0, 0, 0, time.UTC),
			to: time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC), want: 146097},
		{name: "the whole calendar range", from: time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC),
			to: time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC), want: 3652058},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// act
			got := core.DaysBetween(tt.from, tt.to)

			// assert
			assert.Equal(t, tt.want, got, "days between should match")
		})
	}
}

func Test_DaysOverdue_DueDateCenturiesAgo(t *testing.T) {
	// arrange
	due, err := core.ParseDate("1700-01-01")
	assert.NoError(t, err)

	// act
	got := core.DaysOverdue(due, time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC))

	// assert
	assert.Equal(t, 146097, got, "far-apart dates should not saturate")
}

func Test_DueDateFor_AddsLoanPeriod(t *testing.T) {
	// arrange
	borrow := time.Date(2024, 2, 20, 15, 30, 0, 0, time.UTC)

	// act
	due := core.DueDateFor(borrow, core.DefaultLoanPeriodDays)

	// assert
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), due, "due date should be borrow date + 14 days")
}

func Test_Loan_OverdueAsOf_UsesReturnDateForReturnedLoans(t *testing.T) {
	// arrange
	today := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	returned := time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)
	loan := core.Loan{Status: core.LoanReturned, ReturnDate: &returned}

	// act
	asOf := loan.OverdueAsOf(today)

	// assert
	assert.Equal(t, returned, asOf, "returned loans should be measured up to the return date")
}

func Test_Loan_IsOverdue_OnlyForActiveLoans(t *testing.T) {
	// arrange
	today := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	due := today.AddDate(0, 0, -2)
	active := core.Loan{Status: core.LoanBorrowed, DueDate: due}
	returned := core.Loan{Status: core.LoanReturned, DueDate: due, ReturnDate: &today}

	// act + assert
	assert.True(t, active.IsOverdue(today), "active loan past due should be overdue")
	assert.False(t, returned.IsOverdue(today), "returned loan should not be overdue")
}
