package returnloan

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell"
)

// Store defines the persistence operations needed by the CommandHandler.
type Store interface {
	shell.RunsTransactions
	shell.AppendsToJournal
	FindLoan(ctx context.Context, loanID uuid.UUID) (*core.Loan, error)
	FindBook(ctx context.Context, bookID uuid.UUID) (*core.Book, error)
	MarkLoanReturned(ctx context.Context, loanID uuid.UUID, returnDate time.Time) error
	IncreaseAvailability(ctx context.Context, bookID uuid.UUID) (int, error)
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

		return shell.ExecuteRefinedDecision(ctx, h.store,
			func(ctx context.Context) (core.DecisionResult, error) {
				var err error
				if state, err = h.load(ctx, command); err != nil {
					return core.DecisionResult{}, err
				}

				return Decide(state, command), nil
			},
			func(ctx context.Context, decision core.DecisionResult) (core.DecisionResult, error) {
				return h.apply(ctx, *state.Loan, command, decision)
			},
		)
	}, h.retryOptions...)
}

func (h CommandHandler) load(ctx context.Context, command Command) (State, error) {
	loan, err := h.store.FindLoan(ctx, command.LoanID)
	if err != nil || loan == nil {
		return State{Loan: loan}, err
	}

	book, err := h.store.FindBook(ctx, loan.BookID)
	if err != nil {
		return State{}, err
	}

	return State{Loan: loan, Book: book}, nil
}

// apply closes the loan and puts the copy back. A concurrent return of the same loan fails the status guard.
// The journaled event carries the count the store reported after the capped increment.
func (h CommandHandler) apply(ctx context.Context, loan core.Loan, command Command, result core.DecisionResult) (core.DecisionResult, error) {
	returned, err := shell.DecisionEvent[core.LoanReturnedEvent](result)
	if err != nil {
		return result, err
	}

	if err = h.store.MarkLoanReturned(ctx, loan.LoanID, command.EffectiveReturnDate()); err != nil {
		return result, err
	}

	available, err := h.store.IncreaseAvailability(ctx, loan.BookID)
	if err != nil {
		return result, err
	}

	return core.SuccessDecision(returned.WithCopiesAvailable(available)), nil
}
