package shell

import (
	"context"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
)

// RunsTransactions is implemented by stores that can run a function inside one database transaction.
// Store calls made with the context passed to fn join that transaction.
type RunsTransactions interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// AppendsToJournal is implemented by stores that persist journal entries.
type AppendsToJournal interface {
	AppendToJournal(ctx context.Context, event ledger.StorableEvent, additionalEvents ...ledger.StorableEvent) error
}

// QueriesJournal is implemented by stores that read journal entries back.
type QueriesJournal interface {
	QueryJournal(ctx context.Context, filter ledger.JournalFilter) (ledger.StorableEvents, error)
}

// Command represents the contract for all command types.
// Each command encapsulates the intent and parameters needed to execute a specific business operation.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// CoreCommandHandler defines the contract for components that process commands with business logic.
// Handlers orchestrate the complete command workflow: loading state, deciding, applying and journaling.
// The generic parameter C ensures type safety between commands and their corresponding handlers.
// This interface is designed to be wrapped with observability decorators, see package observable.
type CoreCommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}

// Query represents the contract for all query types.
// The QueryType method enables polymorphic handling and observability instrumentation.
type Query interface {
	QueryType() string
}

// CoreQueryHandler defines the contract for components that read state and project it into a result.
// The generic parameters Q and R ensure type safety between queries and their corresponding results.
type CoreQueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
