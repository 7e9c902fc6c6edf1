package shell

import (
	"context"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// TransactionalJournal is a store that runs transactions and journals inside them.
type TransactionalJournal interface {
	RunsTransactions
	AppendsToJournal
}

// DecideFunc loads state inside the transaction and returns the pure decision.
type DecideFunc func(ctx context.Context) (core.DecisionResult, error)

// ApplyFunc performs the guarded writes of a successful decision.
type ApplyFunc func(ctx context.Context, decision core.DecisionResult) error

// RefiningApplyFunc performs the guarded writes and returns the decision to journal,
// refined with values only the writes can tell, such as a counter after a conditional update.
type RefiningApplyFunc func(ctx context.Context, decision core.DecisionResult) (core.DecisionResult, error)

// HandleWithRetry runs one attempt after another with exponential backoff on concurrency conflicts
// and folds the outcome into a HandlerResult.
func HandleWithRetry(
	ctx context.Context,
	attempt func(ctx context.Context) (idempotent bool, err error),
	options ...RetryOption,
) (HandlerResult, error) {

	var isIdempotent bool

	retryMetrics, err := RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		idempotent, execErr := attempt(retryCtx)
		isIdempotent = idempotent

		return execErr
	}, options...)

	if isIdempotent {
		return NewIdempotentResult(retryMetrics), err
	}

	if err != nil {
		return NewErrorResult(retryMetrics), err
	}

	return NewSuccessResult(retryMetrics), nil
}

// ExecuteDecision runs Load -> Decide -> Apply -> Journal in one transaction with strong consistency.
//
// Idempotent decisions write nothing. Successful decisions are applied and journaled.
// Rejections are journaled without applying, the transaction commits, and the business error is returned.
func ExecuteDecision(ctx context.Context, store TransactionalJournal, decide DecideFunc, apply ApplyFunc) (bool, error) {
	return ExecuteRefinedDecision(ctx, store, decide,
		func(ctx context.Context, decision core.DecisionResult) (core.DecisionResult, error) {
			return decision, apply(ctx, decision)
		},
	)
}

// ExecuteRefinedDecision works like ExecuteDecision, but journals the decision returned by apply.
func ExecuteRefinedDecision(ctx context.Context, store TransactionalJournal, decide DecideFunc, apply RefiningApplyFunc) (bool, error) {
	var result core.DecisionResult

	ctx = ledger.WithStrongConsistency(ctx)

	txErr := store.WithinTx(ctx, func(ctx context.Context) error {
		decision, err := decide(ctx)
		if err != nil {
			return err
		}

		result = decision

		if result.IsIdempotent() {
			return nil
		}

		if result.HasError() == nil {
			refined, applyErr := apply(ctx, result)
			if applyErr != nil {
				return applyErr
			}

			result = refined
		}

		return AppendDecision(ctx, store, result)
	})
	if txErr != nil {
		return false, txErr
	}

	return result.IsIdempotent(), result.HasError()
}
