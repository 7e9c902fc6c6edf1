package updatebook

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell"
)

// Store defines the persistence operations needed by the CommandHandler.
type Store interface {
	shell.RunsTransactions
	shell.AppendsToJournal
	FindBook(ctx context.Context, bookID uuid.UUID) (*core.Book, error)
	FindBookByISBN(ctx context.Context, isbn string) (*core.Book, error)
	UpdateBook(ctx context.Context, book core.Book, expected core.Book) error
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
// The write is guarded by the counters that were loaded, so a loan or return in between forces a retry.
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
			func(ctx context.Context, _ core.DecisionResult) error {
				edited, err := Edit(*state.Book, command.Changes)
				if err != nil {
					return err
				}

				edited.UpdatedAt = command.OccurredAt

				return h.store.UpdateBook(ctx, edited, *state.Book)
			},
		)
	}, h.retryOptions...)
}

func (h CommandHandler) load(ctx context.Context, command Command) (State, error) {
	book, err := h.store.FindBook(ctx, command.BookID)
	if err != nil || book == nil {
		return State{Book: book}, err
	}

	var holder *core.Book

	if isbn := command.Changes.ISBN; isbn != nil && strings.TrimSpace(*isbn) != "" {
		if holder, err = h.store.FindBookByISBN(ctx, strings.TrimSpace(*isbn)); err != nil {
			return State{}, err
		}
	}

	return State{Book: book, ISBNHolder: holder}, nil
}
