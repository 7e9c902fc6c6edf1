package core_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

func Test_CalculateFine(t *testing.T) {
	tests := []struct {
		name        string
		daysOverdue int
		rate        string
		want        string
	}{
		{name: "five days at default rate", daysOverdue: 5, rate: "1.00", want: "5.00"},
		{name: "not overdue", daysOverdue: 0, rate: "1.00", want: "0.00"},
		{name: "fractional rate", daysOverdue: 3, rate: "0.25", want: "0.75"},
		{name: "negative days are treated as zero", daysOverdue: -2, rate: "1.00", want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// act
			got := core.CalculateFine(tt.daysOverdue, decimal.RequireFromString(tt.rate))

			// assert
			assert.Equal(t, tt.want, got.StringFixed(2), "fine amount should match")
		})
	}
}

func Test_CalculateFine_UsesDefaultRateOfOne(t *testing.T) {
	// act
	got := core.CalculateFine(5, core.DefaultRatePerDay)

	// assert
	assert.True(t, got.Equal(decimal.NewFromInt(5)), "5 days at the default rate should cost 5")
}

func Test_ValidateAmount_RejectsNegative(t *testing.T) {
	// act
	err := core.ValidateAmount(decimal.RequireFromString("-0.01"))

	// assert
	assert.ErrorIs(t, err, core.ErrValidation, "negative amounts should be rejected")
	assert.NoError(t, core.ValidateAmount(decimal.Zero), "zero should be accepted")
}
