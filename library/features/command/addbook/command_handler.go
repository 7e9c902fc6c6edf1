package addbook

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
	InsertBook(ctx context.Context, book core.Book) error
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
// Two concurrent adds with the same ISBN collide on the unique index; the retry reports the taken ISBN.
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
			func(ctx context.Context, _ core.DecisionResult) error {
				return h.store.InsertBook(ctx, NewBook(command))
			},
		)
	}, h.retryOptions...)
}

func (h CommandHandler) load(ctx context.Context, command Command) (State, error) {
	existing, err := h.store.FindBook(ctx, command.BookID)
	if err != nil {
		return State{}, err
	}

	var holder *core.Book

	if isbn := strings.TrimSpace(command.Details.ISBN); isbn != "" {
		if holder, err = h.store.FindBookByISBN(ctx, isbn); err != nil {
			return State{}, err
		}
	}

	return State{Existing: existing, ISBNHolder: holder}, nil
}
