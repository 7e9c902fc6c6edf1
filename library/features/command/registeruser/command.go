package registeruser

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

const (
	commandType = "RegisterUser"
)

// Command represents the intent to register a user. Role is raw input; Decide validates it.
type Command struct {
	UserID     uuid.UUID
	Name       string
	Email      string
	Phone      string
	Password   string
	Role       string
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	userID uuid.UUID,
	name string,
	email string,
	phone string,
	password string,
	role string,
	occurredAt time.Time,
) Command {

	return Command{
		UserID:     userID,
		Name:       name,
		Email:      email,
		Phone:      phone,
		Password:   password,
		Role:       role,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// String keeps the password out of logs.
func (c Command) String() string {
	return commandType + "{" + c.UserID.String() + " " + core.NormalizeEmail(c.Email) + " " + c.Role + "}"
}

// NewUser returns the user the command registers, carrying passwordHash.
func NewUser(command Command, role core.Role, passwordHash string) core.User {
	return core.User{
		UserID:       command.UserID,
		Name:         strings.TrimSpace(command.Name),
		Email:        core.NormalizeEmail(command.Email),
		Phone:        strings.TrimSpace(command.Phone),
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    command.OccurredAt,
	}
}
