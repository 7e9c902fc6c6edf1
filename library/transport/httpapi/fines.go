package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/assessfine"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/assessoverduefine"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/setfinepaymentstatus"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/listfines"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell"
)

type finesResponse struct {
	Fines       []fineDetailsResponse `json:"fines"`
	Count       int                   `json:"count"`
	Outstanding string                `json:"outstanding"`
}

func (s *Server) handleListFines(w http.ResponseWriter, r *http.Request) {
	principal, err := shell.PrincipalFrom(r.Context())
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	userID, err := queryID(r, "user_id")
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	result, err := s.handlers.ListFines.Handle(r.Context(),
		listfines.BuildQuery(principal, r.URL.Query().Get("payment_status"), userID))
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	writeJSON(w, http.StatusOK, finesResponse{
		Fines:       mapSlice(result.Fines, toFineDetails),
		Count:       result.Count,
		Outstanding: result.Outstanding.StringFixed(2),
	})
}

type assessFineRequest struct {
	FineID string           `json:"fine_id"`
	LoanID string           `json:"loan_id"`
	Amount *decimal.Decimal `json:"amount"`
}

func (s *Server) handleAssessFine(w http.ResponseWriter, r *http.Request) {
	var req assessFineRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	fineID, loanID, err := fineAndLoanIDs(req.FineID, req.LoanID)
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	if req.Amount == nil {
		s.fail(r.Context(), w, core.Invalid("amount is required"))

		return
	}

	result, err := s.handlers.AssessFine.Handle(r.Context(), assessfine.BuildCommand(fineID, loanID, *req.Amount, time.Time{}))
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	s.writeLoan(w, r, loanID, createdOrOK(result.Idempotent))
}

type assessOverdueFineRequest struct {
	FineID     string           `json:"fine_id"`
	LoanID     string           `json:"loan_id"`
	RatePerDay *decimal.Decimal `json:"rate_per_day"`
}

func (s *Server) handleAssessOverdueFine(w http.ResponseWriter, r *http.Request) {
	var req assessOverdueFineRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	fineID, loanID, err := fineAndLoanIDs(req.FineID, req.LoanID)
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	rate := decimal.Zero
	if req.RatePerDay != nil {
		rate = *req.RatePerDay
	}

	result, err := s.handlers.AssessOverdueFine.Handle(r.Context(), assessoverduefine.BuildCommand(fineID, loanID, rate, time.Time{}))
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	s.writeLoan(w, r, loanID, createdOrOK(result.Idempotent))
}

type patchFineRequest struct {
	PaymentStatus string `json:"payment_status"`
}

func (s *Server) handlePatchFine(w http.ResponseWriter, r *http.Request) {
	principal, err := shell.PrincipalFrom(r.Context())
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	fineID, err := pathID(r, "id")
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	var req patchFineRequest
	if err = decode(w, r, &req); err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	result, err := s.handlers.SetFinePaymentStatus.Handle(r.Context(),
		setfinepaymentstatus.BuildCommand(fineID, req.PaymentStatus, principal, time.Time{}))
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	writeJSON(w, http.StatusOK, idResponse{ID: fineID, Idempotent: result.Idempotent})
}

func fineAndLoanIDs(fineID string, loanID string) (fine uuid.UUID, loan uuid.UUID, err error) {
	if fine, err = optionalID("fine_id", fineID); err != nil {
		return fine, loan, err
	}

	loan, err = requiredID("loan_id", loanID)

	return fine, loan, err
}
