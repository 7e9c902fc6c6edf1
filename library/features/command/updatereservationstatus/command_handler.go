package updatereservationstatus

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
	FindPendingReservation(ctx context.Context, bookID uuid.UUID, userID uuid.UUID) (*core.Reservation, error)
	UpdateReservationStatus(ctx context.Context, reservationID uuid.UUID, from core.ReservationStatus, to core.ReservationStatus) error
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
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	if command.OccurredAt.IsZero() {
		command.OccurredAt = core.ToOccurredAt(h.clock.Now())
	}

	return shell.HandleWithRetry(ctx, func(ctx context.Context) (bool, error) {
		var state State

		return shell.ExecuteDecision(ctx, h.store,
			func(ctx context.Context) (core.DecisionResult, error) {
				var err error
				if state, err = h.load(ctx, command); err != nil {
					return core.DecisionResult{}, err
				}

				return Decide(state, command), nil
			},
			func(ctx context.Context, decision core.DecisionResult) error {
				event, err := shell.DecisionEvent[core.ReservationStatusChanged](decision)
				if err != nil {
					return err
				}

				return h.store.UpdateReservationStatus(
					ctx,
					state.Reservation.ReservationID,
					core.ReservationStatus(event.FromStatus),
					core.ReservationStatus(event.ToStatus),
				)
			},
		)
	}, h.retryOptions...)
}

func (h CommandHandler) load(ctx context.Context, command Command) (State, error) {
	reservation, err := h.store.FindReservation(ctx, command.ReservationID)
	if err != nil || reservation == nil {
		return State{Reservation: reservation}, err
	}

	pending, err := h.store.FindPendingReservation(ctx, reservation.BookID, reservation.UserID)
	if err != nil {
		return State{}, err
	}

	if pending != nil && pending.ReservationID == reservation.ReservationID {
		pending = nil
	}

	return State{Reservation: reservation, OtherPending: pending}, nil
}
