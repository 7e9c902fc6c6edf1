package registeruser

import (
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// State is what Decide needs to know, loaded inside the command's transaction.
type State struct {
	Existing    *core.User
	EmailHolder *core.User
}

// Decide implements the business logic of registering a user. This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A UserID that is not registered yet
//	WHEN: RegisterUser command is received
//	THEN: UserRegistered event is generated
//	ERROR: core.ErrValidation if name, email, password or role is invalid, or the email is taken
//	IDEMPOTENCY: If the user was already registered by this command, no event is generated
func Decide(state State, command Command) core.DecisionResult {
	if state.Existing != nil {
		return core.IdempotentDecision()
	}

	email := core.NormalizeEmail(command.Email)

	if err := core.ValidateUserDetails(command.Name, email); err != nil {
		return rejected(command, err)
	}

	if err := core.ValidatePassword(command.Password); err != nil {
		return rejected(command, err)
	}

	role, err := core.ParseRole(command.Role)
	if err != nil {
		return rejected(command, err)
	}

	if state.EmailHolder != nil {
		return rejected(command, core.Invalid("email %s is already registered", email))
	}

	return core.SuccessDecision(core.BuildUserRegistered(NewUser(command, role, ""), command.OccurredAt))
}

func rejected(command Command, err error) core.DecisionResult {
	event := core.BuildOperationFailed(
		core.RegisteringUserFailedEventType,
		command.UserID.String(),
		err.Error(),
		command.OccurredAt,
	)

	return core.ErrorDecision(event, err)
}
