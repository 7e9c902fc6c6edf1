package observable_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell/observable"
	"github.com/AntonStoeckl/library-lifecycle-go/testutil/spies"
)

func Test_CommandWrapper_Handle_Success_NonIdempotent(t *testing.T) {
	// arrange
	expectedResult := shell.HandlerResult{RetryAttempts: 1, LastErrorType: shell.ErrorTypeNone}
	handler := newMockHandler(expectedResult, nil)
	metricsCollector := spies.NewMetricsCollectorSpy(true)
	tracingCollector := spies.NewTracingCollectorSpy(true)
	contextualLogger := spies.NewContextualLoggerSpy(true)

	wrapper, err := observable.NewCommandWrapper[mockCommand](
		handler,
		observable.WithCommandMetrics[mockCommand](metricsCollector),
		observable.WithCommandTracing[mockCommand](tracingCollector),
		observable.WithCommandContextualLogging[mockCommand](contextualLogger),
	)
	require.NoError(t, err, "Should create wrapper")

	// act
	result, err := wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.NoError(t, err, "Should handle command successfully")
	assert.Equal(t, expectedResult, result, "Should return handler result")
	assert.Len(t, handler.calls, 1, "Should call handler once")
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).
		WithLabel(shell.LogAttrCommandType, "TestCommand").
		WithStatus(shell.StatusSuccess).
		Assert(), "Should record success metric")
	assert.True(t, metricsCollector.HasDurationRecordForMetric(shell.CommandHandlerDurationMetric).
		WithStatus(shell.StatusSuccess).
		Assert(), "Should record duration metric")
	assert.True(t, tracingCollector.HasFinishedSpan(shell.SpanNameCommandHandle, shell.StatusSuccess), "Should finish span")
	assert.True(t, contextualLogger.HasInfoLog(shell.LogMsgCommandStarted), "Should log start")
	assert.True(t, contextualLogger.HasInfoLog(shell.LogMsgCommandCompleted), "Should log completion")
}

func Test_CommandWrapper_Handle_Success_Idempotent(t *testing.T) {
	// arrange
	handler := newMockHandler(shell.HandlerResult{Idempotent: true, RetryAttempts: 1}, nil)
	metricsCollector := spies.NewMetricsCollectorSpy(true)

	wrapper, err := observable.NewCommandWrapper[mockCommand](
		handler,
		observable.WithCommandMetrics[mockCommand](metricsCollector),
	)
	require.NoError(t, err, "Should create wrapper")

	// act
	_, err = wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.NoError(t, err, "Should handle command successfully")
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerIdempotentMetric).
		WithStatus(shell.StatusIdempotent).
		Assert(), "Should record idempotent metric")
}

func Test_CommandWrapper_Handle_BusinessRejection_IsLoggedAtInfo(t *testing.T) {
	// arrange
	handler := newMockHandler(shell.HandlerResult{RetryAttempts: 1}, core.ErrUnavailable)
	metricsCollector := spies.NewMetricsCollectorSpy(true)
	contextualLogger := spies.NewContextualLoggerSpy(true)

	wrapper, err := observable.NewCommandWrapper[mockCommand](
		handler,
		observable.WithCommandMetrics[mockCommand](metricsCollector),
		observable.WithCommandContextualLogging[mockCommand](contextualLogger),
	)
	require.NoError(t, err, "Should create wrapper")

	// act
	_, err = wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.ErrorIs(t, err, core.ErrUnavailable, "Should pass the business error through")
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerRejectedMetric).Assert(),
		"Should record rejection metric")
	assert.True(t, contextualLogger.HasInfoLog(shell.LogMsgCommandRejected), "Should log rejection at info")
	assert.False(t, contextualLogger.HasErrorLog(shell.LogMsgCommandFailed), "Should not log an error")
}

func Test_CommandWrapper_Handle_InfrastructureError_IsLoggedAtError(t *testing.T) {
	// arrange
	handler := newMockHandler(shell.HandlerResult{RetryAttempts: 1}, errors.Join(ledger.ErrQueryingFailed, errors.New("boom")))
	tracingCollector := spies.NewTracingCollectorSpy(true)
	contextualLogger := spies.NewContextualLoggerSpy(true)

	wrapper, err := observable.NewCommandWrapper[mockCommand](
		handler,
		observable.WithCommandTracing[mockCommand](tracingCollector),
		observable.WithCommandContextualLogging[mockCommand](contextualLogger),
	)
	require.NoError(t, err, "Should create wrapper")

	// act
	_, err = wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.ErrorIs(t, err, ledger.ErrQueryingFailed, "Should pass the error through")
	assert.True(t, contextualLogger.HasErrorLog(shell.LogMsgCommandFailed), "Should log the failure")
	assert.True(t, tracingCollector.HasFinishedSpan(shell.SpanNameCommandHandle, shell.StatusError), "Should finish span with error")
}

func Test_CommandWrapper_Handle_RecordsRetries(t *testing.T) {
	// arrange
	handler := newMockHandler(shell.HandlerResult{
		RetryAttempts:    6,
		TotalRetryDelay:  300 * time.Millisecond,
		LastErrorType:    shell.ErrorTypeConcurrencyConflict,
		RetriesExhausted: true,
	}, ledger.ErrConcurrencyConflict)
	metricsCollector := spies.NewMetricsCollectorSpy(true)

	wrapper, err := observable.NewCommandWrapper[mockCommand](
		handler,
		observable.WithCommandMetrics[mockCommand](metricsCollector),
	)
	require.NoError(t, err, "Should create wrapper")

	// act
	_, err = wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.ErrorIs(t, err, ledger.ErrConcurrencyConflict, "Should pass the conflict through")
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerRetriesMetric).
		WithLabel(shell.LogAttrAttemptNumber, "5").
		WithLabel(shell.LogAttrErrorType, shell.ErrorTypeConcurrencyConflict).
		Assert(), "Should record retries")
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerMaxRetriesReachedMetric).Assert(),
		"Should record retry exhaustion")
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerConcurrencyConflictMetric).Assert(),
		"Should record the conflict")
}

func Test_CommandWrapper_Handle_WithoutObservability(t *testing.T) {
	// arrange
	handler := newMockHandler(shell.HandlerResult{RetryAttempts: 1}, nil)

	wrapper, err := observable.NewCommandWrapper[mockCommand](handler)
	require.NoError(t, err, "Should create wrapper")

	// act
	_, err = wrapper.Handle(context.Background(), mockCommand{})

	// assert
	assert.NoError(t, err, "Should work without any collectors")
}

type mockCommand struct{}

func (c mockCommand) CommandType() string {
	return "TestCommand"
}

type mockCoreHandler struct {
	result shell.HandlerResult
	err    error
	calls  []mockCommand
}

func (h *mockCoreHandler) Handle(_ context.Context, command mockCommand) (shell.HandlerResult, error) {
	h.calls = append(h.calls, command)

	return h.result, h.err
}

func newMockHandler(result shell.HandlerResult, err error) *mockCoreHandler {
	return &mockCoreHandler{result: result, err: err}
}
