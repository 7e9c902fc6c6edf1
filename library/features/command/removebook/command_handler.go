package removebook

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
	CountActiveLoansOfBook(ctx context.Context, bookID uuid.UUID) (int, error)
	DeleteBook(ctx context.Context, bookID uuid.UUID) error
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
				book, err := h.store.FindBook(ctx, command.BookID)
				if err != nil || book == nil {
					return Decide(State{Book: book}, command), err
				}

				active, err := h.store.CountActiveLoansOfBook(ctx, command.BookID)
				if err != nil {
					return core.DecisionResult{}, err
				}

				return Decide(State{Book: book, ActiveLoans: active}, command), nil
			},
			func(ctx context.Context, _ core.DecisionResult) error {
				return h.store.DeleteBook(ctx, command.BookID)
			},
		)
	}, h.retryOptions...)
}
