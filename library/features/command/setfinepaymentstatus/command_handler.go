package setfinepaymentstatus

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
	FindFine(ctx context.Context, fineID uuid.UUID) (*core.Fine, error)
	FindLoan(ctx context.Context, loanID uuid.UUID) (*core.Loan, error)
	UpdateFinePaymentStatus(ctx context.Context, fineID uuid.UUID, from core.PaymentStatus, to core.PaymentStatus) error
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
		return shell.ExecuteDecision(ctx, h.store,
			func(ctx context.Context) (core.DecisionResult, error) {
				state, err := h.load(ctx, command)
				if err != nil {
					return core.DecisionResult{}, err
				}

				return Decide(state, command), nil
			},
			func(ctx context.Context, decision core.DecisionResult) error {
				event, err := shell.DecisionEvent[core.FinePaymentStatusChanged](decision)
				if err != nil {
					return err
				}

				return h.store.UpdateFinePaymentStatus(
					ctx,
					command.FineID,
					core.PaymentStatus(event.FromStatus),
					core.PaymentStatus(event.ToStatus),
				)
			},
		)
	}, h.retryOptions...)
}

func (h CommandHandler) load(ctx context.Context, command Command) (State, error) {
	fine, err := h.store.FindFine(ctx, command.FineID)
	if err != nil || fine == nil {
		return State{Fine: fine}, err
	}

	loan, err := h.store.FindLoan(ctx, fine.LoanID)
	if err != nil {
		return State{}, err
	}

	return State{Fine: fine, Loan: loan}, nil
}
