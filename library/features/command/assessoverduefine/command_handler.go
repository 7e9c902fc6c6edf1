package assessoverduefine

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell"
)

// Store defines the persistence operations needed by the CommandHandler.
type Store interface {
	shell.RunsTransactions
	shell.AppendsToJournal
	FindLoan(ctx context.Context, loanID uuid.UUID) (*core.Loan, error)
	FindFine(ctx context.Context, fineID uuid.UUID) (*core.Fine, error)
	FindFineByLoan(ctx context.Context, loanID uuid.UUID) (*core.Fine, error)
	InsertFine(ctx context.Context, fine core.Fine) error
}

// CommandHandler orchestrates the command workflow: Load -> Decide -> Apply -> Journal in one transaction.
type CommandHandler struct {
	store        Store
	clock        shell.Clock
	ratePerDay   decimal.Decimal
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

// WithClock sets the clock that defines today.
func WithClock(clock shell.Clock) Option {
	return func(h *CommandHandler) {
		h.clock = clock
	}
}

// WithRatePerDay sets the rate used when a command carries none.
func WithRatePerDay(rate decimal.Decimal) Option {
	return func(h *CommandHandler) {
		h.ratePerDay = rate
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store Store, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store:      store,
		clock:      shell.SystemClock{},
		ratePerDay: core.DefaultRatePerDay,
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

	if command.RatePerDay.IsZero() {
		command.RatePerDay = h.ratePerDay
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
			func(ctx context.Context, _ core.DecisionResult) error {
				return h.store.InsertFine(ctx, NewFine(command, *state.Loan))
			},
		)
	}, h.retryOptions...)
}

func (h CommandHandler) load(ctx context.Context, command Command) (State, error) {
	loan, err := h.store.FindLoan(ctx, command.LoanID)
	if err != nil || loan == nil {
		return State{Loan: loan}, err
	}

	fine, err := h.store.FindFineByLoan(ctx, loan.LoanID)
	if err != nil {
		return State{}, err
	}

	sameIDFine, err := h.store.FindFine(ctx, command.FineID)
	if err != nil {
		return State{}, err
	}

	return State{Loan: loan, ExistingFine: fine, SameIDFine: sameIDFine}, nil
}
