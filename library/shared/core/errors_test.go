package core_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

func Test_StatusCode_MapsEveryBusinessError(t *testing.T) {
	tests := []struct {
		err  error
		want int
		code string
	}{
		{err: core.ErrUnauthorized, want: http.StatusUnauthorized, code: "unauthorized"},
		{err: core.ErrForbidden, want: http.StatusForbidden, code: "forbidden"},
		{err: core.ErrNotFound, want: http.StatusNotFound, code: "not_found"},
		{err: core.ErrValidation, want: http.StatusBadRequest, code: "validation"},
		{err: core.ErrUnavailable, want: http.StatusConflict, code: "unavailable"},
		{err: core.ErrDuplicateLoan, want: http.StatusConflict, code: "duplicate_loan"},
		{err: core.ErrDuplicateReservation, want: http.StatusConflict, code: "duplicate_reservation"},
		{err: errors.New("connection refused"), want: http.StatusInternalServerError, code: "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			// arrange
			wrapped := fmt.Errorf("CreatingLoanFailed: %w", tt.err)

			// act + assert
			assert.Equal(t, tt.want, core.StatusCode(wrapped), "status code should survive wrapping")
			assert.Equal(t, tt.code, core.ErrorCode(wrapped), "error code should survive wrapping")
		})
	}
}

func Test_Invalid_WrapsErrValidation(t *testing.T) {
	// act
	err := core.Invalid("copies_total must be at least %d", 1)

	// assert
	assert.ErrorIs(t, err, core.ErrValidation, "Invalid should wrap ErrValidation")
	assert.Contains(t, err.Error(), "copies_total must be at least 1", "reason should be in the message")
}
