package listusers

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// UserInfo is a user without credentials.
type UserInfo struct {
	UserID    uuid.UUID
	Name      string
	Email     string
	Phone     string
	Role      core.Role
	CreatedAt time.Time
}

// Users is the listing result.
type Users struct {
	Users []UserInfo
	Count int
}
