package core

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User of the library. PasswordHash is a bcrypt hash and never leaves the server.
type User struct {
	UserID       uuid.UUID
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Principal is the authenticated actor of a request.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}

// IsStaff is true for Admin and Librarian principals.
func (p Principal) IsStaff() bool {
	return p.Role.IsStaff()
}

// IsAdmin is true for Admin principals.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Owns is true when the principal is the given user.
func (p Principal) Owns(userID uuid.UUID) bool {
	return p.UserID == userID
}

// MayActFor is true for staff or the user themself.
func (p Principal) MayActFor(userID uuid.UUID) bool {
	return p.IsStaff() || p.Owns(userID)
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateUserDetails checks name and email of a new user.
func ValidateUserDetails(name string, email string) error {
	if strings.TrimSpace(name) == "" {
		return Invalid("name is required")
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return Invalid("email %q is not a valid address", email)
	}

	return nil
}

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

// ValidatePassword rejects passwords shorter than MinPasswordLength or longer than bcrypt accepts.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return Invalid("password must have at least %d characters", MinPasswordLength)
	}

	if len(password) > 72 {
		return Invalid("password must not exceed 72 bytes")
	}

	return nil
}
