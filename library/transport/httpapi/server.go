package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

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
)

// Handlers are the command and query handlers behind the routes.
// They are usually the observable wrappers around the core handlers.
type Handlers struct {
	AddBook                 shell.CoreCommandHandler[addbook.Command]
	UpdateBook              shell.CoreCommandHandler[updatebook.Command]
	RemoveBook              shell.CoreCommandHandler[removebook.Command]
	CreateLoan              shell.CoreCommandHandler[createloan.Command]
	ReturnLoan              shell.CoreCommandHandler[returnloan.Command]
	CreateReservation       shell.CoreCommandHandler[createreservation.Command]
	UpdateReservationStatus shell.CoreCommandHandler[updatereservationstatus.Command]
	CancelReservation       shell.CoreCommandHandler[cancelreservation.Command]
	AssessFine              shell.CoreCommandHandler[assessfine.Command]
	AssessOverdueFine       shell.CoreCommandHandler[assessoverduefine.Command]
	SetFinePaymentStatus    shell.CoreCommandHandler[setfinepaymentstatus.Command]
	RegisterUser            shell.CoreCommandHandler[registeruser.Command]

	ListBooks        shell.CoreQueryHandler[listbooks.Query, listbooks.BookPage]
	GetBook          shell.CoreQueryHandler[getbook.Query, core.Book]
	BookHistory      shell.CoreQueryHandler[bookhistory.Query, bookhistory.History]
	ListLoans        shell.CoreQueryHandler[listloans.Query, listloans.Loans]
	GetLoan          shell.CoreQueryHandler[getloan.Query, core.LoanDetails]
	ListReservations shell.CoreQueryHandler[listreservations.Query, listreservations.Reservations]
	ListFines        shell.CoreQueryHandler[listfines.Query, listfines.Fines]
	ListUsers        shell.CoreQueryHandler[listusers.Query, listusers.Users]
	GenerateReport   shell.CoreQueryHandler[reports.Query, reports.Generated]
}

// Authenticator logs users in and resolves bearer tokens.
type Authenticator interface {
	Login(ctx context.Context, email string, password string) (core.Session, error)
	Logout(ctx context.Context, token uuid.UUID) error
	Authenticate(ctx context.Context, token string) (core.Principal, error)
}

// Pinger checks the database for /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server routes HTTP requests to the handlers.
type Server struct {
	handlers      Handlers
	authenticator Authenticator
	pinger        Pinger
	logger        *slog.Logger
	corsOrigins   []string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for requests and internal errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCORSOrigins allows cross-origin requests from the origins, "*" allows all.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

// NewServer creates a Server.
func NewServer(handlers Handlers, authenticator Authenticator, pinger Pinger, opts ...Option) *Server {
	server := &Server{
		handlers:      handlers,
		authenticator: authenticator,
		pinger:        pinger,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		opt(server)
	}

	return server
}

// Handler returns the routed handler wrapped with correlation, logging and CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	staff := []core.Role{core.RoleAdmin, core.RoleLibrarian}
	admin := []core.Role{core.RoleAdmin}

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.Handle("POST /auth/logout", s.authenticated(s.handleLogout))

	mux.Handle("GET /books", s.authenticated(s.handleListBooks))
	mux.Handle("POST /books", s.authenticated(s.handleAddBook, staff...))
	mux.Handle("GET /books/{id}", s.authenticated(s.handleGetBook))
	mux.Handle("PUT /books/{id}", s.authenticated(s.handleUpdateBook, staff...))
	mux.Handle("DELETE /books/{id}", s.authenticated(s.handleRemoveBook, staff...))
	mux.Handle("GET /books/{id}/history", s.authenticated(s.handleBookHistory, staff...))

	mux.Handle("GET /loans", s.authenticated(s.handleListLoans))
	mux.Handle("POST /loans", s.authenticated(s.handleCreateLoan, staff...))
	mux.Handle("GET /loans/{id}", s.authenticated(s.handleGetLoan))
	mux.Handle("PATCH /loans/{id}", s.authenticated(s.handlePatchLoan, staff...))

	mux.Handle("GET /reservations", s.authenticated(s.handleListReservations))
	mux.Handle("POST /reservations", s.authenticated(s.handleCreateReservation, staff...))
	mux.Handle("PATCH /reservations/{id}", s.authenticated(s.handlePatchReservation))
	mux.Handle("DELETE /reservations/{id}", s.authenticated(s.handleCancelReservation))

	mux.Handle("GET /fines", s.authenticated(s.handleListFines))
	mux.Handle("POST /fines", s.authenticated(s.handleAssessFine, staff...))
	mux.Handle("POST /fines/overdue", s.authenticated(s.handleAssessOverdueFine, staff...))
	mux.Handle("PATCH /fines/{id}", s.authenticated(s.handlePatchFine))

	mux.Handle("GET /reports", s.authenticated(s.handleGenerateReport, staff...))

	mux.Handle("GET /users", s.authenticated(s.handleListUsers, admin...))
	mux.Handle("POST /users", s.authenticated(s.handleRegisterUser, admin...))

	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeRouteNotFound, "not found")
	})

	return correlate(requestLogger(s.logger, cors(s.corsOrigins, mux)))
}
