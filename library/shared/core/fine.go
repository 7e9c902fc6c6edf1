package core

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultRatePerDay is the fine charged per overdue day.
var DefaultRatePerDay = decimal.RequireFromString("1.00")

// Fine is a monetary penalty attached to a loan. A loan has at most one fine.
type Fine struct {
	FineID        uuid.UUID
	LoanID        uuid.UUID
	Amount        decimal.Decimal
	PaymentStatus PaymentStatus
	DaysOverdue   int
	RatePerDay    decimal.Decimal
	Assessment    FineAssessment
}

// CalculateFine is daysOverdue times ratePerDay, rounded to cents.
func CalculateFine(daysOverdue int, ratePerDay decimal.Decimal) decimal.Decimal {
	if daysOverdue <= 0 {
		return decimal.Zero
	}

	return ratePerDay.Mul(decimal.NewFromInt(int64(daysOverdue))).Round(2)
}

// ValidateAmount rejects negative amounts.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return Invalid("amount must not be negative, got %s", amount.String())
	}

	return nil
}

// ValidateRatePerDay rejects rates that are not strictly positive.
func ValidateRatePerDay(rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return Invalid("rate_per_day must be positive, got %s", rate.String())
	}

	return nil
}
