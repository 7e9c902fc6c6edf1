package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/createloan"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/returnloan"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/getloan"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/listloans"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell"
)

const actionReturn = "return"

type loansResponse struct {
	Loans []loanResponse `json:"loans"`
	Count int            `json:"count"`
}

func (s *Server) handleListLoans(w http.ResponseWriter, r *http.Request) {
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

	bookID, err := queryID(r, "book_id")
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	result, err := s.handlers.ListLoans.Handle(r.Context(),
		listloans.BuildQuery(principal, r.URL.Query().Get("status"), userID, bookID))
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	writeJSON(w, http.StatusOK, loansResponse{Loans: mapSlice(result.Loans, toLoan), Count: result.Count})
}

func (s *Server) handleGetLoan(w http.ResponseWriter, r *http.Request) {
	principal, err := shell.PrincipalFrom(r.Context())
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	loanID, err := pathID(r, "id")
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	loan, err := s.handlers.GetLoan.Handle(r.Context(), getloan.BuildQuery(principal, loanID))
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	writeJSON(w, http.StatusOK, toLoan(loan))
}

type createLoanRequest struct {
	LoanID     string `json:"loan_id"`
	BookID     string `json:"book_id"`
	UserID     string `json:"user_id"`
	BorrowDate string `json:"borrow_date"`
	DueDate    string `json:"due_date"`
}

func (s *Server) handleCreateLoan(w http.ResponseWriter, r *http.Request) {
	var req createLoanRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	command, err := req.toCommand()
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	result, err := s.handlers.CreateLoan.Handle(r.Context(), command)
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	s.writeLoan(w, r, command.LoanID, createdOrOK(result.Idempotent))
}

func (req createLoanRequest) toCommand() (createloan.Command, error) {
	loanID, err := optionalID("loan_id", req.LoanID)
	if err != nil {
		return createloan.Command{}, err
	}

	bookID, err := requiredID("book_id", req.BookID)
	if err != nil {
		return createloan.Command{}, err
	}

	userID, err := requiredID("user_id", req.UserID)
	if err != nil {
		return createloan.Command{}, err
	}

	borrowDate, err := optionalDate("borrow_date", req.BorrowDate)
	if err != nil {
		return createloan.Command{}, err
	}

	dueDate, err := optionalDate("due_date", req.DueDate)
	if err != nil {
		return createloan.Command{}, err
	}

	return createloan.BuildCommand(loanID, bookID, userID, borrowDate, dueDate, time.Time{}), nil
}

type patchLoanRequest struct {
	Action     string `json:"action"`
	ReturnDate string `json:"return_date"`
}

func (s *Server) handlePatchLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "id")
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	var req patchLoanRequest
	if err = decode(w, r, &req); err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	if req.Action != actionReturn {
		s.fail(r.Context(), w, core.Invalid("action must be %q", actionReturn))

		return
	}

	returnDate, err := optionalDate("return_date", req.ReturnDate)
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	if _, err = s.handlers.ReturnLoan.Handle(r.Context(), returnloan.BuildCommand(loanID, returnDate, time.Time{})); err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	s.writeLoan(w, r, loanID, http.StatusOK)
}

// writeLoan answers a loan mutation with the loan as staff sees it.
func (s *Server) writeLoan(w http.ResponseWriter, r *http.Request, loanID uuid.UUID, status int) {
	principal, err := shell.PrincipalFrom(r.Context())
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	loan, err := s.handlers.GetLoan.Handle(r.Context(), getloan.BuildQuery(principal, loanID))
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	writeJSON(w, status, toLoan(loan))
}
