package cancelreservation

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
	FindReservation(ctx context.Context, reservationID uuid.UUID) (*core.Reservation, error)
	DeleteReservation(ctx context.Context, reservationID uuid.UUID) error
}

// CommandHandler orchestrates the command workflow: Load -> Decide -> Apply -> Journal in one transaction.
type CommandHandler struct {
	store        Store
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

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store Store, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store: store,
		clock: shell.SystemClock{},
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command with retry on concurrency conflicts.
// A reservation deleted concurrently turns into a conflict, and the retry reports it as not found.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	if command.OccurredAt.IsZero() {
		command.OccurredAt = core.ToOccurredAt(h.clock.Now())
	}

	return shell.HandleWithRetry(ctx, func(ctx context.Context) (bool, error) {
		return shell.ExecuteDecision(ctx, h.store,
			func(ctx context.Context) (core.DecisionResult, error) {
				reservation, err := h.store.FindReservation(ctx, command.ReservationID)
				if err != nil {
					return core.DecisionResult{}, err
				}

				return Decide(reservation, command), nil
			},
			func(ctx context.Context, _ core.DecisionResult) error {
				return h.store.DeleteReservation(ctx, command.ReservationID)
			},
		)
	}, h.retryOptions...)
}
