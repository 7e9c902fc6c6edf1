package createloan

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
	FindBook(ctx context.Context, bookID uuid.UUID) (*core.Book, error)
	FindUser(ctx context.Context, userID uuid.UUID) (*core.User, error)
	FindLoan(ctx context.Context, loanID uuid.UUID) (*core.Loan, error)
	FindActiveLoan(ctx context.Context, bookID uuid.UUID, userID uuid.UUID) (*core.Loan, error)
	DecreaseAvailability(ctx context.Context, bookID uuid.UUID) (int, error)
	InsertLoan(ctx context.Context, loan core.Loan) error
}

// CommandHandler orchestrates the command workflow with pure business logic and retry:
// Load -> Decide -> Apply -> Journal inside one transaction.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	store          Store
	clock          shell.Clock
	loanPeriodDays int
	retryOptions   []shell.RetryOption
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

// WithLoanPeriodDays sets the number of days added to the borrow date when no due date is given.
func WithLoanPeriodDays(days int) Option {
	return func(h *CommandHandler) {
		if days > 0 {
			h.loanPeriodDays = days
		}
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store Store, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store:          store,
		clock:          shell.SystemClock{},
		loanPeriodDays: core.DefaultLoanPeriodDays,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command with retry on concurrency conflicts.
// Returns HandlerResult containing business outcomes and execution metadata for observability.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	if command.OccurredAt.IsZero() {
		command.OccurredAt = core.ToOccurredAt(h.clock.Now())
	}

	return shell.HandleWithRetry(ctx, func(ctx context.Context) (bool, error) {
		return shell.ExecuteRefinedDecision(ctx, h.store,
			func(ctx context.Context) (core.DecisionResult, error) {
				state, err := h.load(ctx, command)
				if err != nil {
					return core.DecisionResult{}, err
				}

				return Decide(state, command, h.loanPeriodDays), nil
			},
			func(ctx context.Context, decision core.DecisionResult) (core.DecisionResult, error) {
				return h.apply(ctx, command, decision)
			},
		)
	}, h.retryOptions...)
}

func (h CommandHandler) load(ctx context.Context, command Command) (State, error) {
	existingLoan, err := h.store.FindLoan(ctx, command.LoanID)
	if err != nil {
		return State{}, err
	}

	book, err := h.store.FindBook(ctx, command.BookID)
	if err != nil {
		return State{}, err
	}

	user, err := h.store.FindUser(ctx, command.UserID)
	if err != nil {
		return State{}, err
	}

	activeLoan, err := h.store.FindActiveLoan(ctx, command.BookID, command.UserID)
	if err != nil {
		return State{}, err
	}

	return State{Book: book, User: user, ActiveLoan: activeLoan, ExistingLoan: existingLoan}, nil
}

// apply takes the copy off the shelf and records the loan. The guarded decrement fails with
// ledger.ErrConcurrencyConflict once the last copy is gone, so the retry's Decide reports ErrUnavailable.
// The journaled event carries the count the store reported.
func (h CommandHandler) apply(ctx context.Context, command Command, result core.DecisionResult) (core.DecisionResult, error) {
	created, err := shell.DecisionEvent[core.LoanCreated](result)
	if err != nil {
		return result, err
	}

	available, err := h.store.DecreaseAvailability(ctx, command.BookID)
	if err != nil {
		return result, err
	}

	if err = h.store.InsertLoan(ctx, NewLoan(command, h.loanPeriodDays)); err != nil {
		return result, err
	}

	return core.SuccessDecision(created.WithCopiesAvailable(available)), nil
}
