package shell

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// PasswordHasher hashes and verifies passwords with bcrypt.
// The zero value uses bcrypt.DefaultCost.
type PasswordHasher struct {
	Cost int
}

// Hash returns the bcrypt hash of password.
func (h PasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// Verify returns core.ErrUnauthorized if password does not match hash.
func (h PasswordHasher) Verify(hash string, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || errors.Is(err, bcrypt.ErrHashTooShort) {
		return core.ErrUnauthorized
	}

	return err
}
