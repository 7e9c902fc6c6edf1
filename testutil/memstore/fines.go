package memstore

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/ledger/postgresengine"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// FindFine returns the fine or nil.
func (s *Store) FindFine(_ context.Context, fineID uuid.UUID) (*core.Fine, error) {
	defer s.mu.Unlock()
	if err := s.enter("FindFine"); err != nil {
		return nil, err
	}

	fine, ok := s.data.fines[fineID]
	if !ok {
		return nil, nil
	}

	return &fine, nil
}

// FindFineByLoan returns the fine of the loan or nil.
func (s *Store) FindFineByLoan(_ context.Context, loanID uuid.UUID) (*core.Fine, error) {
	defer s.mu.Unlock()
	if err := s.enter("FindFineByLoan"); err != nil {
		return nil, err
	}

	for _, fine := range s.data.fines {
		if fine.LoanID == loanID {
			return &fine, nil
		}
	}

	return nil, nil
}

// InsertFine attaches a fine to a loan. A loan that already has a fine is a conflict.
func (s *Store) InsertFine(_ context.Context, fine core.Fine) error {
	defer s.mu.Unlock()
	if err := s.enter("InsertFine"); err != nil {
		return err
	}

	if _, ok := s.data.loans[fine.LoanID]; !ok {
		return ledger.ErrConcurrencyConflict
	}

	for _, other := range s.data.fines {
		if other.LoanID == fine.LoanID {
			return ledger.ErrConcurrencyConflict
		}
	}

	s.data.fines[fine.FineID] = fine
	s.data.touch(fine.FineID)

	return nil
}

// UpdateFinePaymentStatus changes the payment status, guarded by from.
func (s *Store) UpdateFinePaymentStatus(_ context.Context, fineID uuid.UUID, from core.PaymentStatus, to core.PaymentStatus) error {
	defer s.mu.Unlock()
	if err := s.enter("UpdateFinePaymentStatus"); err != nil {
		return err
	}

	fine, ok := s.data.fines[fineID]
	if !ok || fine.PaymentStatus != from {
		return ledger.ErrConcurrencyConflict
	}

	fine.PaymentStatus = to
	s.data.fines[fineID] = fine

	return nil
}

// ListFines returns fine details, newest first.
func (s *Store) ListFines(_ context.Context, filter postgresengine.FineFilter) ([]core.FineDetails, error) {
	defer s.mu.Unlock()
	if err := s.enter("ListFines"); err != nil {
		return nil, err
	}

	details := make([]core.FineDetails, 0)

	for _, fine := range s.data.fines {
		loan := s.data.loans[fine.LoanID]

		if filter.UserID != nil && loan.UserID != *filter.UserID {
			continue
		}

		if filter.PaymentStatus != nil && fine.PaymentStatus != *filter.PaymentStatus {
			continue
		}

		details = append(details, core.FineDetails{
			Fine: fine,
			Loan: loan,
			Book: s.bookSummary(loan.BookID),
			User: s.userSummary(loan.UserID),
		})
	}

	slices.SortFunc(details, func(a, b core.FineDetails) int {
		return s.data.order[b.FineID] - s.data.order[a.FineID]
	})

	return details, nil
}
