package httpapi

import (
	"net/http"
	"time"

	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/registeruser"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/listusers"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/reports"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell"
)

type usersResponse struct {
	Users []userResponse `json:"users"`
	Count int            `json:"count"`
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	result, err := s.handlers.ListUsers.Handle(r.Context(), listusers.BuildQuery(params.Get("role"), params.Get("search")))
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	writeJSON(w, http.StatusOK, usersResponse{Users: mapSlice(result.Users, toUser), Count: result.Count})
}

type registerUserRequest struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	userID, err := optionalID("user_id", req.UserID)
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	result, err := s.handlers.RegisterUser.Handle(r.Context(),
		registeruser.BuildCommand(userID, req.Name, req.Email, req.Phone, req.Password, req.Role, time.Time{}))
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	writeJSON(w, createdOrOK(result.Idempotent), idResponse{ID: userID, Idempotent: result.Idempotent})
}

type reportResponse struct {
	ReportID      string    `json:"report_id"`
	GeneratedBy   string    `json:"generated_by"`
	ReportType    string    `json:"report_type"`
	DateGenerated time.Time `json:"date_generated"`
	Data          any       `json:"data"`
}

func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	principal, err := shell.PrincipalFrom(r.Context())
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	generated, err := s.handlers.GenerateReport.Handle(r.Context(), reports.BuildQuery(principal, r.URL.Query().Get("type")))
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	writeJSON(w, http.StatusOK, reportResponse{
		ReportID:      generated.Report.ReportID.String(),
		GeneratedBy:   generated.Report.GeneratedBy.String(),
		ReportType:    generated.Report.ReportType,
		DateGenerated: generated.Report.DateGenerated,
		Data:          generated.Data,
	})
}
