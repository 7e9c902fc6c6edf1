package registeruser

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell"
)

// Store defines the persistence operations needed by the CommandHandler.
type Store interface {
	shell.RunsTransactions
	shell.AppendsToJournal
	FindUser(ctx context.Context, userID uuid.UUID) (*core.User, error)
	FindUserByEmail(ctx context.Context, email string) (*core.User, error)
	InsertUser(ctx context.Context, user core.User) error
}

// PasswordHasher turns a plain password into the hash that is stored.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// CommandHandler orchestrates the command workflow: Load -> Decide -> Apply -> Journal in one transaction.
type CommandHandler struct {
	store        Store
	hasher       PasswordHasher
	clock        shell.Clock
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithClock sets the clock used when a command carries no OccurredAt.
func WithClock(clock shell.Clock) Option {
	return func(h *CommandHandler) {
		h.clock = clock
	}
}

// WithPasswordHasher replaces the default bcrypt hasher.
func WithPasswordHasher(hasher PasswordHasher) Option {
	return func(h *CommandHandler) {
		h.hasher = hasher
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store Store, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store:  store,
		hasher: shell.PasswordHasher{},
		clock:  shell.SystemClock{},
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command with retry on concurrency conflicts.
// The password is hashed once, on the first attempt that gets to apply.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	if command.OccurredAt.IsZero() {
		command.OccurredAt = core.ToOccurredAt(h.clock.Now())
	}

	var passwordHash string

	return shell.HandleWithRetry(ctx, func(ctx context.Context) (bool, error) {
		return shell.ExecuteDecision(ctx, h.store,
			func(ctx context.Context) (core.DecisionResult, error) {
				state, err := h.load(ctx, command)
				if err != nil {
					return core.DecisionResult{}, err
				}

				return Decide(state, command), nil
			},
			func(ctx context.Context, decision core.DecisionResult) error {
				event, err := shell.DecisionEvent[core.UserRegistered](decision)
				if err != nil {
					return err
				}

				if passwordHash == "" {
					if passwordHash, err = h.hasher.Hash(command.Password); err != nil {
						return err
					}
				}

				return h.store.InsertUser(ctx, NewUser(command, core.Role(event.Role), passwordHash))
			},
		)
	}, h.retryOptions...)
}

func (h CommandHandler) load(ctx context.Context, command Command) (State, error) {
	existing, err := h.store.FindUser(ctx, command.UserID)
	if err != nil {
		return State{}, err
	}

	holder, err := h.store.FindUserByEmail(ctx, core.NormalizeEmail(command.Email))
	if err != nil {
		return State{}, err
	}

	return State{Existing: existing, EmailHolder: holder}, nil
}
