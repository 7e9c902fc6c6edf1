package assessoverduefine_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/assessoverduefine"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

var now = time.Date(2026, 3, 20, 23, 59, 0, 0, time.UTC)

func Test_Decide_Success_ChargesRateTimesDaysOverdue(t *testing.T) {
	// arrange
	loan := givenLoanDue(now.AddDate(0, 0, -5))
	command := assessoverduefine.BuildCommand(uuid.New(), loan.LoanID, core.DefaultRatePerDay, now)

	// act
	result := assessoverduefine.Decide(assessoverduefine.State{Loan: &loan}, command)

	// assert
	require.NoError(t, result.HasError(), "overdue loan should be fined")
	assessed, ok := result.Event.(core.FineAssessed)
	require.True(t, ok, "event should be FineAssessed")
	assert.Equal(t, "5.00", assessed.Amount, "5 days at 1.00 should be 5.00")
	assert.Equal(t, 5, assessed.DaysOverdue)
	assert.Equal(t, "1.00", assessed.RatePerDay)
	assert.Equal(t, string(core.AssessmentAutomatic), assessed.Assessment)
}

func Test_Decide_Success_CountsUpToTheReturnDate(t *testing.T) {
	// arrange
	loan := givenLoanDue(now.AddDate(0, 0, -10))
	returnDate := core.ToCalendarDate(now.AddDate(0, 0, -7))
	loan.Status = core.LoanReturned
	loan.ReturnDate = &returnDate
	command := assessoverduefine.BuildCommand(uuid.New(), loan.LoanID, decimal.RequireFromString("0.25"), now)

	// act
	result := assessoverduefine.Decide(assessoverduefine.State{Loan: &loan}, command)

	// assert
	require.NoError(t, result.HasError(), "late return should be fined")
	assessed := result.Event.(core.FineAssessed)
	assert.Equal(t, 3, assessed.DaysOverdue, "days should stop at the return date")
	assert.Equal(t, "0.75", assessed.Amount)
}

func Test_Decide_Error_WhenLoanIsNotOverdue(t *testing.T) {
	// arrange
	loan := givenLoanDue(now)

	// act
	result := assessoverduefine.Decide(
		assessoverduefine.State{Loan: &loan},
		assessoverduefine.BuildCommand(uuid.New(), loan.LoanID, core.DefaultRatePerDay, now),
	)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrValidation, "a loan due today is not overdue")
	require.NotNil(t, result.Event)
	assert.Equal(t, core.AssessingFineFailedEventType, result.Event.EventType())
}

func Test_Decide_Error_WhenRateIsNotPositive(t *testing.T) {
	// arrange
	loan := givenLoanDue(now.AddDate(0, 0, -2))

	// act
	result := assessoverduefine.Decide(
		assessoverduefine.State{Loan: &loan},
		assessoverduefine.BuildCommand(uuid.New(), loan.LoanID, decimal.NewFromInt(-1), now),
	)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrValidation, "negative rate should be rejected")
}

func Test_Decide_Error_WhenLoanAlreadyHasAFine(t *testing.T) {
	// arrange
	loan := givenLoanDue(now.AddDate(0, 0, -2))
	existing := core.Fine{FineID: uuid.New(), LoanID: loan.LoanID}

	// act
	result := assessoverduefine.Decide(
		assessoverduefine.State{Loan: &loan, ExistingFine: &existing},
		assessoverduefine.BuildCommand(uuid.New(), loan.LoanID, core.DefaultRatePerDay, now),
	)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrValidation, "a loan carries at most one fine")
}

func Test_Decide_Error_WhenLoanDoesNotExist(t *testing.T) {
	// act
	result := assessoverduefine.Decide(
		assessoverduefine.State{},
		assessoverduefine.BuildCommand(uuid.New(), uuid.New(), core.DefaultRatePerDay, now),
	)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrNotFound, "missing loan should be rejected")
}

func Test_Decide_Error_WhenFineIDBelongsToAnotherLoan(t *testing.T) {
	// arrange
	loan := givenLoanDue(now.AddDate(0, 0, -3))
	command := assessoverduefine.BuildCommand(uuid.New(), loan.LoanID, core.DefaultRatePerDay, now)
	other := core.Fine{FineID: command.FineID, LoanID: uuid.New(), Amount: decimal.NewFromInt(1), PaymentStatus: core.PaymentUnpaid}

	// act
	result := assessoverduefine.Decide(assessoverduefine.State{Loan: &loan, SameIDFine: &other}, command)

	// assert
	require.ErrorIs(t, result.HasError(), core.ErrValidation, "a reused fine id should be rejected")
	assert.Contains(t, result.HasError().Error(), "is already used")
}

func givenLoanDue(due time.Time) core.Loan {
	dueDate := core.ToCalendarDate(due)

	return core.Loan{
		LoanID:     uuid.New(),
		BookID:     uuid.New(),
		UserID:     uuid.New(),
		BorrowDate: dueDate.AddDate(0, 0, -core.DefaultLoanPeriodDays),
		DueDate:    dueDate,
		Status:     core.LoanBorrowed,
	}
}
