package reports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/ledger/postgresengine"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell"
)

// ErrEncodingReportFailed is returned when the report data cannot be encoded.
var ErrEncodingReportFailed = errors.New("encoding report failed")

// Store defines the persistence operations needed by the QueryHandler.
type Store interface {
	ListLoans(ctx context.Context, filter postgresengine.LoanFilter) ([]core.LoanDetails, error)
	ListFines(ctx context.Context, filter postgresengine.FineFilter) ([]core.FineDetails, error)
	InsertReport(ctx context.Context, report core.Report) error
}

// QueryHandler generates reports. Reading is eventually consistent, the generated report is persisted.
type QueryHandler struct {
	store Store
	clock shell.Clock
}

// Option configures a QueryHandler.
type Option func(*QueryHandler)

// WithClock sets the clock that decides "today" and the generation timestamp.
func WithClock(clock shell.Clock) Option {
	return func(h *QueryHandler) {
		h.clock = clock
	}
}

// NewQueryHandler creates a new QueryHandler with the provided Store dependency.
func NewQueryHandler(store Store, opts ...Option) QueryHandler {
	handler := QueryHandler{
		store: store,
		clock: shell.SystemClock{},
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle computes the requested report and stores it.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Generated, error) {
	if err := validType(query.ReportType); err != nil {
		return Generated{}, err
	}

	now := core.ToOccurredAt(h.clock.Now())

	data, err := h.project(ctx, query.ReportType, now)
	if err != nil {
		return Generated{}, err
	}

	reportData, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(data)
	if err != nil {
		return Generated{}, errors.Join(ErrEncodingReportFailed, err)
	}

	report := core.Report{
		ReportID:      uuid.New(),
		GeneratedBy:   query.Actor.UserID,
		ReportType:    query.ReportType,
		DateGenerated: now,
		ReportData:    reportData,
	}

	if err = h.store.InsertReport(ctx, report); err != nil {
		return Generated{}, err
	}

	return Generated{Report: report, Data: data}, nil
}

func (h QueryHandler) project(ctx context.Context, reportType string, now core.OccurredAtTS) (any, error) {
	readCtx := ledger.WithEventualConsistency(ctx)

	if reportType == TypeFinesCollected {
		fines, err := h.store.ListFines(readCtx, postgresengine.FineFilter{})
		if err != nil {
			return nil, err
		}

		return ProjectFinesCollected(fines), nil
	}

	loans, err := h.store.ListLoans(readCtx, postgresengine.LoanFilter{})
	if err != nil {
		return nil, err
	}

	switch reportType {
	case TypeBorrowingTrends:
		return ProjectBorrowingTrends(loans), nil
	case TypePopularBooks:
		return ProjectPopularBooks(loans), nil
	case TypeOverdue:
		return ProjectOverdue(loans, core.ToCalendarDate(now)), nil
	default:
		return ProjectActiveUsers(loans), nil
	}
}
