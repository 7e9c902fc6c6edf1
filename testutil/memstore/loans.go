package memstore

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/ledger/postgresengine"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// FindLoan returns the loan or nil.
func (s *Store) FindLoan(_ context.Context, loanID uuid.UUID) (*core.Loan, error) {
	defer s.mu.Unlock()
	if err := s.enter("FindLoan"); err != nil {
		return nil, err
	}

	loan, ok := s.data.loans[loanID]
	if !ok {
		return nil, nil
	}

	return &loan, nil
}

// FindActiveLoan returns the Borrowed loan of the user for the book or nil.
func (s *Store) FindActiveLoan(_ context.Context, bookID uuid.UUID, userID uuid.UUID) (*core.Loan, error) {
	defer s.mu.Unlock()
	if err := s.enter("FindActiveLoan"); err != nil {
		return nil, err
	}

	if loan, ok := s.activeLoan(bookID, userID); ok {
		return &loan, nil
	}

	return nil, nil
}

// CountActiveLoansOfBook counts the Borrowed loans of the book.
func (s *Store) CountActiveLoansOfBook(_ context.Context, bookID uuid.UUID) (int, error) {
	defer s.mu.Unlock()
	if err := s.enter("CountActiveLoansOfBook"); err != nil {
		return 0, err
	}

	count := 0

	for _, loan := range s.data.loans {
		if loan.BookID == bookID && loan.IsActive() {
			count++
		}
	}

	return count, nil
}

// InsertLoan records a loan. A second active loan for the same book and user, or a missing book or user,
// is a conflict.
func (s *Store) InsertLoan(_ context.Context, loan core.Loan) error {
	defer s.mu.Unlock()
	if err := s.enter("InsertLoan"); err != nil {
		return err
	}

	_, bookExists := s.data.books[loan.BookID]
	_, userExists := s.data.users[loan.UserID]
	_, loanExists := s.data.loans[loan.LoanID]

	if !bookExists || !userExists || loanExists {
		return ledger.ErrConcurrencyConflict
	}

	if _, active := s.activeLoan(loan.BookID, loan.UserID); active && loan.IsActive() {
		return ledger.ErrConcurrencyConflict
	}

	s.data.loans[loan.LoanID] = loan
	s.data.touch(loan.LoanID)

	return nil
}

// MarkLoanReturned moves a Borrowed loan to Returned.
func (s *Store) MarkLoanReturned(_ context.Context, loanID uuid.UUID, returnDate time.Time) error {
	defer s.mu.Unlock()
	if err := s.enter("MarkLoanReturned"); err != nil {
		return err
	}

	loan, ok := s.data.loans[loanID]
	if !ok || !loan.IsActive() {
		return ledger.ErrConcurrencyConflict
	}

	returned := core.ToCalendarDate(returnDate)
	loan.Status = core.LoanReturned
	loan.ReturnDate = &returned
	s.data.loans[loanID] = loan

	return nil
}

// FindLoanDetails returns the loan joined with book, user and fine, or nil.
func (s *Store) FindLoanDetails(_ context.Context, loanID uuid.UUID) (*core.LoanDetails, error) {
	defer s.mu.Unlock()
	if err := s.enter("FindLoanDetails"); err != nil {
		return nil, err
	}

	loan, ok := s.data.loans[loanID]
	if !ok {
		return nil, nil
	}

	details := s.loanDetails(loan)

	return &details, nil
}

// ListLoans returns loan details, newest borrow date first.
func (s *Store) ListLoans(_ context.Context, filter postgresengine.LoanFilter) ([]core.LoanDetails, error) {
	defer s.mu.Unlock()
	if err := s.enter("ListLoans"); err != nil {
		return nil, err
	}

	loans := make([]core.Loan, 0)

	for _, loan := range s.data.loans {
		if filter.UserID != nil && loan.UserID != *filter.UserID {
			continue
		}

		if filter.BookID != nil && loan.BookID != *filter.BookID {
			continue
		}

		if filter.Status != nil && loan.Status != *filter.Status {
			continue
		}

		loans = append(loans, loan)
	}

	slices.SortFunc(loans, func(a, b core.Loan) int {
		if c := b.BorrowDate.Compare(a.BorrowDate); c != 0 {
			return c
		}

		return s.data.order[b.LoanID] - s.data.order[a.LoanID]
	})

	details := make([]core.LoanDetails, 0, len(loans))
	for _, loan := range loans {
		details = append(details, s.loanDetails(loan))
	}

	return details, nil
}

func (s *Store) activeLoan(bookID uuid.UUID, userID uuid.UUID) (core.Loan, bool) {
	for _, loan := range s.data.loans {
		if loan.BookID == bookID && loan.UserID == userID && loan.IsActive() {
			return loan, true
		}
	}

	return core.Loan{}, false
}

func (s *Store) loanDetails(loan core.Loan) core.LoanDetails {
	details := core.LoanDetails{
		Loan: loan,
		Book: s.bookSummary(loan.BookID),
		User: s.userSummary(loan.UserID),
	}

	for _, fine := range s.data.fines {
		if fine.LoanID == loan.LoanID {
			details.Fine = &fine

			break
		}
	}

	return details
}

func (s *Store) bookSummary(bookID uuid.UUID) core.BookSummary {
	book := s.data.books[bookID]

	return core.BookSummary{BookID: bookID, Title: book.Title, Author: book.Author, ISBN: book.ISBN}
}

func (s *Store) userSummary(userID uuid.UUID) core.UserSummary {
	user := s.data.users[userID]

	return core.UserSummary{UserID: userID, Name: user.Name, Email: user.Email}
}
