package core_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

func Test_DecreaseAvailability_DecrementsAndKeepsAvailable_WhenCopiesRemain(t *testing.T) {
	// arrange
	book := givenBook(2, 2)

	// act
	book, err := core.DecreaseAvailability(book)

	// assert
	require.NoError(t, err, "decrease on a book with copies should succeed")
	assert.Equal(t, 1, book.CopiesAvailable, "one copy should remain")
	assert.Equal(t, core.AvailabilityAvailable, book.AvailabilityStatus, "status should stay Available")
}

func Test_DecreaseAvailability_SwitchesToBorrowed_WhenLastCopyTaken(t *testing.T) {
	// arrange
	book := givenBook(1, 1)

	// act
	book, err := core.DecreaseAvailability(book)

	// assert
	require.NoError(t, err, "decrease on the last copy should succeed")
	assert.Equal(t, 0, book.CopiesAvailable, "no copy should remain")
	assert.Equal(t, core.AvailabilityBorrowed, book.AvailabilityStatus, "status should be Borrowed")
}

func Test_DecreaseAvailability_FailsWithoutMutation_WhenNoCopyAvailable(t *testing.T) {
	// arrange
	book := givenBook(3, 0)

	// act
	after, err := core.DecreaseAvailability(book)

	// assert
	assert.ErrorIs(t, err, core.ErrUnavailable, "decrease at zero should fail with ErrUnavailable")
	assert.Equal(t, book, after, "book should be unchanged")
}

func Test_IncreaseAvailability_IsCappedAtCopiesTotal(t *testing.T) {
	// arrange
	book := givenBook(2, 2)

	// act
	book = core.IncreaseAvailability(book)

	// assert
	assert.Equal(t, 2, book.CopiesAvailable, "available must never exceed total")
	assert.Equal(t, core.AvailabilityAvailable, book.AvailabilityStatus, "status should be Available")
}

func Test_IncreaseAvailability_SwitchesBackToAvailable(t *testing.T) {
	// arrange
	book := givenBook(1, 0)
	book.AvailabilityStatus = core.AvailabilityBorrowed

	// act
	book = core.IncreaseAvailability(book)

	// assert
	assert.Equal(t, 1, book.CopiesAvailable, "the copy should be back")
	assert.Equal(t, core.AvailabilityAvailable, book.AvailabilityStatus, "status should be Available")
}

func Test_AvailabilityBounds_HoldForAnySequenceOfOperations(t *testing.T) {
	// arrange
	book := givenBook(3, 3)
	operations := []bool{true, true, false, true, true, true, false, false, false, false, true}

	for i, decrease := range operations {
		// act
		if decrease {
			book, _ = core.DecreaseAvailability(book)
		} else {
			book = core.IncreaseAvailability(book)
		}

		// assert
		assert.GreaterOrEqual(t, book.CopiesAvailable, 0, "step %d: available must not be negative", i)
		assert.LessOrEqual(t, book.CopiesAvailable, book.CopiesTotal, "step %d: available must not exceed total", i)
		assert.Equal(t, book.CopiesAvailable > 0, book.AvailabilityStatus == core.AvailabilityAvailable,
			"step %d: status must be Available iff copies are on the shelf", i)
	}
}

func Test_TwoCopies_ThreeBorrowers_OneReturn(t *testing.T) {
	// arrange
	book := givenBook(2, 2)
	var err error

	// act + assert: A borrows
	book, err = core.DecreaseAvailability(book)
	require.NoError(t, err, "A should get a copy")
	assert.Equal(t, 1, book.CopiesAvailable, "after A: 1 available")
	assert.Equal(t, core.AvailabilityAvailable, book.AvailabilityStatus, "after A: Available")

	// B borrows
	book, err = core.DecreaseAvailability(book)
	require.NoError(t, err, "B should get a copy")
	assert.Equal(t, 0, book.CopiesAvailable, "after B: 0 available")
	assert.Equal(t, core.AvailabilityBorrowed, book.AvailabilityStatus, "after B: Borrowed")

	// C is turned away
	_, err = core.DecreaseAvailability(book)
	assert.ErrorIs(t, err, core.ErrUnavailable, "C should be rejected")

	// A returns
	book = core.IncreaseAvailability(book)
	assert.Equal(t, 1, book.CopiesAvailable, "after A returns: 1 available")
	assert.Equal(t, core.AvailabilityAvailable, book.AvailabilityStatus, "after A returns: Available")
}

func Test_SetCopies(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		available int
		wantErr   bool
		wantState core.AvailabilityStatus
	}{
		{name: "all copies on shelf", total: 3, available: 3, wantState: core.AvailabilityAvailable},
		{name: "none on shelf", total: 3, available: 0, wantState: core.AvailabilityBorrowed},
		{name: "zero total", total: 0, available: 0, wantErr: true},
		{name: "negative available", total: 2, available: -1, wantErr: true},
		{name: "available above total", total: 2, available: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// arrange
			book := givenBook(1, 1)

			// act
			after, err := core.SetCopies(book, tt.total, tt.available)

			// assert
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrValidation, "invalid counters should be rejected")
				assert.Equal(t, book, after, "book should be unchanged")

				return
			}

			require.NoError(t, err, "valid counters should be accepted")
			assert.Equal(t, tt.total, after.CopiesTotal, "total should be set")
			assert.Equal(t, tt.available, after.CopiesAvailable, "available should be set")
			assert.Equal(t, tt.wantState, after.AvailabilityStatus, "status should be derived")
		})
	}
}

func givenBook(total int, available int) core.Book {
	return core.Book{
		BookID:             uuid.New(),
		Title:              "The Left Hand of Darkness",
		Author:             "Ursula K. Le Guin",
		CopiesTotal:        total,
		CopiesAvailable:    available,
		AvailabilityStatus: core.DeriveAvailabilityStatus(available),
	}
}
