package setfinepaymentstatus_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/setfinepaymentstatus"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

var now = time.Date(2026, 7, 3, 13, 0, 0, 0, time.UTC)

func Test_Decide_BorrowerMayPay(t *testing.T) {
	// arrange
	fine, loan := givenFine(core.PaymentUnpaid)
	borrower := core.Principal{UserID: loan.UserID, Role: core.RoleStudent}

	// act
	result := setfinepaymentstatus.Decide(
		setfinepaymentstatus.State{Fine: &fine, Loan: &loan},
		setfinepaymentstatus.BuildCommand(fine.FineID, "Paid", borrower, now),
	)

	// assert
	require.NoError(t, result.HasError(), "the borrower should be allowed to pay")
	changed, ok := result.Event.(core.FinePaymentStatusChanged)
	require.True(t, ok, "event should be FinePaymentStatusChanged")
	assert.Equal(t, "Unpaid", changed.FromStatus)
	assert.Equal(t, "Paid", changed.ToStatus)
}

func Test_Decide_Error_WhenBorrowerReopensAFine(t *testing.T) {
	// arrange
	fine, loan := givenFine(core.PaymentPaid)
	borrower := core.Principal{UserID: loan.UserID, Role: core.RoleMember}

	// act
	result := setfinepaymentstatus.Decide(
		setfinepaymentstatus.State{Fine: &fine, Loan: &loan},
		setfinepaymentstatus.BuildCommand(fine.FineID, "Unpaid", borrower, now),
	)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrForbidden, "only staff may mark a fine unpaid")
}

func Test_Decide_Error_WhenSomebodyElsePays(t *testing.T) {
	// arrange
	fine, loan := givenFine(core.PaymentUnpaid)
	stranger := core.Principal{UserID: uuid.New(), Role: core.RoleMember}

	// act
	result := setfinepaymentstatus.Decide(
		setfinepaymentstatus.State{Fine: &fine, Loan: &loan},
		setfinepaymentstatus.BuildCommand(fine.FineID, "Paid", stranger, now),
	)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrForbidden, "members may only pay their own fines")
	require.NotNil(t, result.Event)
	assert.Equal(t, core.ChangingFinePaymentStatusFailedEventType, result.Event.EventType())
}

func Test_Decide_StaffMayReopen(t *testing.T) {
	// arrange
	fine, loan := givenFine(core.PaymentPaid)
	librarian := core.Principal{UserID: uuid.New(), Role: core.RoleLibrarian}

	// act
	result := setfinepaymentstatus.Decide(
		setfinepaymentstatus.State{Fine: &fine, Loan: &loan},
		setfinepaymentstatus.BuildCommand(fine.FineID, "Unpaid", librarian, now),
	)

	// assert
	assert.NoError(t, result.HasError(), "staff may set any payment status")
}

func Test_Decide_Error_WhenStatusIsUnknown(t *testing.T) {
	// arrange
	fine, loan := givenFine(core.PaymentUnpaid)
	admin := core.Principal{UserID: uuid.New(), Role: core.RoleAdmin}

	// act
	result := setfinepaymentstatus.Decide(
		setfinepaymentstatus.State{Fine: &fine, Loan: &loan},
		setfinepaymentstatus.BuildCommand(fine.FineID, "Waived", admin, now),
	)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrValidation, "unknown payment status should be rejected")
}

func Test_Decide_Error_WhenFineDoesNotExist(t *testing.T) {
	// act
	result := setfinepaymentstatus.Decide(
		setfinepaymentstatus.State{},
		setfinepaymentstatus.BuildCommand(uuid.New(), "Paid", core.Principal{UserID: uuid.New(), Role: core.RoleAdmin}, now),
	)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrNotFound, "missing fine should be rejected")
}

func Test_Decide_Idempotent_WhenAlreadyPaid(t *testing.T) {
	// arrange
	fine, loan := givenFine(core.PaymentPaid)
	borrower := core.Principal{UserID: loan.UserID, Role: core.RoleStudent}

	// act
	result := setfinepaymentstatus.Decide(
		setfinepaymentstatus.State{Fine: &fine, Loan: &loan},
		setfinepaymentstatus.BuildCommand(fine.FineID, "Paid", borrower, now),
	)

	// assert
	assert.True(t, result.IsIdempotent(), "paying twice should be idempotent")
}

func givenFine(status core.PaymentStatus) (core.Fine, core.Loan) {
	due := core.ToCalendarDate(now.AddDate(0, 0, -3))
	loan := core.Loan{
		LoanID:     uuid.New(),
		BookID:     uuid.New(),
		UserID:     uuid.New(),
		BorrowDate: due.AddDate(0, 0, -core.DefaultLoanPeriodDays),
		DueDate:    due,
		Status:     core.LoanBorrowed,
	}
	fine := core.Fine{
		FineID:        uuid.New(),
		LoanID:        loan.LoanID,
		Amount:        decimal.NewFromInt(3),
		PaymentStatus: status,
		DaysOverdue:   3,
		RatePerDay:    core.DefaultRatePerDay,
		Assessment:    core.AssessmentAutomatic,
	}

	return fine, loan
}
