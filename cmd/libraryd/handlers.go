package main

import (
	"errors"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger/postgresengine"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/assessfine"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/assessoverduefine"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/cancelreservation"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/createloan"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/createreservation"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/registeruser"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/removebook"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/returnloan"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/setfinepaymentstatus"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/updatebook"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/updatereservationstatus"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/bookhistory"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/getbook"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/getloan"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/listbooks"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/listfines"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/listloans"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/listreservations"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/listusers"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/reports"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell/config"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell/observable"
	"github.com/AntonStoeckl/library-lifecycle-go/library/transport/httpapi"
)

// telemetry holds the observability adapters. Metrics and tracing are nil without an OTLP endpoint.
type telemetry struct {
	contextualLogger shell.ContextualLogger
	metrics          shell.MetricsCollector
	tracing          shell.TracingCollector
}

// wrapping collects the errors of all wrapper constructors, so buildHandlers can report them at once.
type wrapping struct {
	telemetry
	err error
}

func observeCommand[C shell.Command](w *wrapping, handler shell.CoreCommandHandler[C]) shell.CoreCommandHandler[C] {
	options := []observable.CommandOption[C]{observable.WithCommandContextualLogging[C](w.contextualLogger)}

	if w.metrics != nil {
		options = append(options, observable.WithCommandMetrics[C](w.metrics))
	}

	if w.tracing != nil {
		options = append(options, observable.WithCommandTracing[C](w.tracing))
	}

	wrapper, err := observable.NewCommandWrapper(handler, options...)
	if err != nil {
		w.err = errors.Join(w.err, err)

		return handler
	}

	return wrapper
}

func observeQuery[Q shell.Query, R any](w *wrapping, handler shell.CoreQueryHandler[Q, R]) shell.CoreQueryHandler[Q, R] {
	options := []observable.QueryOption[Q, R]{observable.WithQueryContextualLogging[Q, R](w.contextualLogger)}

	if w.metrics != nil {
		options = append(options, observable.WithQueryMetrics[Q, R](w.metrics))
	}

	if w.tracing != nil {
		options = append(options, observable.WithQueryTracing[Q, R](w.tracing))
	}

	wrapper, err := observable.NewQueryWrapper(handler, options...)
	if err != nil {
		w.err = errors.Join(w.err, err)

		return handler
	}

	return wrapper
}

// buildHandlers creates every command and query handler on store, wrapped for observability.
func buildHandlers(store postgresengine.Store, cfg config.Config, t telemetry) (httpapi.Handlers, error) {
	w := &wrapping{telemetry: t}

	handlers := httpapi.Handlers{
		AddBook:    observeCommand[addbook.Command](w, addbook.NewCommandHandler(store)),
		UpdateBook: observeCommand[updatebook.Command](w, updatebook.NewCommandHandler(store)),
		RemoveBook: observeCommand[removebook.Command](w, removebook.NewCommandHandler(store)),
		CreateLoan: observeCommand[createloan.Command](w, createloan.NewCommandHandler(store,
			createloan.WithLoanPeriodDays(cfg.LoanPeriodDays))),
		ReturnLoan:              observeCommand[returnloan.Command](w, returnloan.NewCommandHandler(store)),
		CreateReservation:       observeCommand[createreservation.Command](w, createreservation.NewCommandHandler(store)),
		UpdateReservationStatus: observeCommand[updatereservationstatus.Command](w, updatereservationstatus.NewCommandHandler(store)),
		CancelReservation:       observeCommand[cancelreservation.Command](w, cancelreservation.NewCommandHandler(store)),
		AssessFine:              observeCommand[assessfine.Command](w, assessfine.NewCommandHandler(store)),
		AssessOverdueFine: observeCommand[assessoverduefine.Command](w, assessoverduefine.NewCommandHandler(store,
			assessoverduefine.WithRatePerDay(cfg.FineRatePerDay))),
		SetFinePaymentStatus: observeCommand[setfinepaymentstatus.Command](w, setfinepaymentstatus.NewCommandHandler(store)),
		RegisterUser:         observeCommand[registeruser.Command](w, registeruser.NewCommandHandler(store)),

		ListBooks:        observeQuery[listbooks.Query, listbooks.BookPage](w, listbooks.NewQueryHandler(store)),
		GetBook:          observeQuery[getbook.Query, core.Book](w, getbook.NewQueryHandler(store)),
		BookHistory:      observeQuery[bookhistory.Query, bookhistory.History](w, bookhistory.NewQueryHandler(store)),
		ListLoans:        observeQuery[listloans.Query, listloans.Loans](w, listloans.NewQueryHandler(store)),
		GetLoan:          observeQuery[getloan.Query, core.LoanDetails](w, getloan.NewQueryHandler(store)),
		ListReservations: observeQuery[listreservations.Query, listreservations.Reservations](w, listreservations.NewQueryHandler(store)),
		ListFines:        observeQuery[listfines.Query, listfines.Fines](w, listfines.NewQueryHandler(store)),
		ListUsers:        observeQuery[listusers.Query, listusers.Users](w, listusers.NewQueryHandler(store)),
		GenerateReport:   observeQuery[reports.Query, reports.Generated](w, reports.NewQueryHandler(store)),
	}

	return handlers, w.err
}
