package core

import (
	"errors"
	"fmt"
	"net/http"
)

// Business errors. Each one maps to exactly one HTTP status via StatusCode.
var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrNotFound             = errors.New("not found")
	ErrValidation           = errors.New("validation failed")
	ErrUnavailable          = errors.New("book is not available")
	ErrDuplicateLoan        = errors.New("user already has an active loan for this book")
	ErrDuplicateReservation = errors.New("user already has a pending reservation for this book")
)

// Invalid builds an ErrValidation wrapping error with a formatted reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound builds an ErrNotFound wrapping error naming the missing entity.
func NotFound(entity string, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, entity, id)
}

// StatusCode maps a business error to its HTTP status. Anything unknown is a 500.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnavailable),
		errors.Is(err, ErrDuplicateLoan),
		errors.Is(err, ErrDuplicateReservation):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode returns the machine readable code for a business error, "internal" for anything unknown.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	case errors.Is(err, ErrDuplicateLoan):
		return "duplicate_loan"
	case errors.Is(err, ErrDuplicateReservation):
		return "duplicate_reservation"
	default:
		return "internal"
	}
}

// IsBusinessError reports whether err is one of the business errors above.
func IsBusinessError(err error) bool {
	return err != nil && StatusCode(err) != http.StatusInternalServerError
}
