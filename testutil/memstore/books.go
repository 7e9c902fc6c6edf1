package memstore

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/ledger/postgresengine"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// FindBook returns the book or nil.
func (s *Store) FindBook(_ context.Context, bookID uuid.UUID) (*core.Book, error) {
	defer s.mu.Unlock()
	if err := s.enter("FindBook"); err != nil {
		return nil, err
	}

	book, ok := s.data.books[bookID]
	if !ok {
		return nil, nil
	}

	return &book, nil
}

// FindBookByISBN returns the book with the ISBN or nil.
func (s *Store) FindBookByISBN(_ context.Context, isbn string) (*core.Book, error) {
	defer s.mu.Unlock()
	if err := s.enter("FindBookByISBN"); err != nil {
		return nil, err
	}

	for _, book := range s.data.books {
		if isbn != "" && book.ISBN == isbn {
			return &book, nil
		}
	}

	return nil, nil
}

// ListBooks filters, orders newest first and paginates like the SQL listing.
func (s *Store) ListBooks(_ context.Context, filter postgresengine.BookFilter) ([]core.Book, int, error) {
	defer s.mu.Unlock()
	if err := s.enter("ListBooks"); err != nil {
		return nil, 0, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}

	if filter.Limit < 1 {
		filter.Limit = postgresengine.DefaultPageLimit
	}

	search := strings.ToLower(filter.Search)
	matching := make([]core.Book, 0)

	for _, book := range s.data.books {
		if search != "" &&
			!strings.Contains(strings.ToLower(book.Title), search) &&
			!strings.Contains(strings.ToLower(book.Author), search) &&
			!strings.Contains(strings.ToLower(book.ISBN), search) {
			continue
		}

		if filter.Category != "" && book.Category != filter.Category {
			continue
		}

		matching = append(matching, book)
	}

	slices.SortFunc(matching, func(a, b core.Book) int {
		return s.data.order[b.BookID] - s.data.order[a.BookID]
	})

	from := min((filter.Page-1)*filter.Limit, len(matching))
	to := min(from+filter.Limit, len(matching))

	return matching[from:to], len(matching), nil
}

// InsertBook adds a book. A duplicate id or ISBN is a conflict.
func (s *Store) InsertBook(_ context.Context, book core.Book) error {
	defer s.mu.Unlock()
	if err := s.enter("InsertBook"); err != nil {
		return err
	}

	if _, exists := s.data.books[book.BookID]; exists || s.isbnTaken(book.ISBN, book.BookID) {
		return ledger.ErrConcurrencyConflict
	}

	s.data.books[book.BookID] = book
	s.data.touch(book.BookID)

	return nil
}

// UpdateBook overwrites the book, guarded by the counters in expected.
func (s *Store) UpdateBook(_ context.Context, book core.Book, expected core.Book) error {
	defer s.mu.Unlock()
	if err := s.enter("UpdateBook"); err != nil {
		return err
	}

	current, ok := s.data.books[book.BookID]
	if !ok ||
		current.CopiesTotal != expected.CopiesTotal ||
		current.CopiesAvailable != expected.CopiesAvailable ||
		s.isbnTaken(book.ISBN, book.BookID) {
		return ledger.ErrConcurrencyConflict
	}

	if book.CopiesAvailable < 0 || book.CopiesAvailable > book.CopiesTotal {
		return core.Invalid("copies violate the books_copies_check constraint")
	}

	s.data.books[book.BookID] = book

	return nil
}

// DeleteBook removes the book with its loans, reservations and fines.
func (s *Store) DeleteBook(_ context.Context, bookID uuid.UUID) error {
	defer s.mu.Unlock()
	if err := s.enter("DeleteBook"); err != nil {
		return err
	}

	if _, ok := s.data.books[bookID]; !ok {
		return ledger.ErrConcurrencyConflict
	}

	delete(s.data.books, bookID)

	for loanID, loan := range s.data.loans {
		if loan.BookID != bookID {
			continue
		}

		for fineID, fine := range s.data.fines {
			if fine.LoanID == loanID {
				delete(s.data.fines, fineID)
			}
		}

		delete(s.data.loans, loanID)
	}

	for reservationID, reservation := range s.data.reservations {
		if reservation.BookID == bookID {
			delete(s.data.reservations, reservationID)
		}
	}

	return nil
}

// DecreaseAvailability takes a copy off the shelf while one is available.
func (s *Store) DecreaseAvailability(_ context.Context, bookID uuid.UUID) (int, error) {
	defer s.mu.Unlock()
	if err := s.enter("DecreaseAvailability"); err != nil {
		return 0, err
	}

	book, ok := s.data.books[bookID]
	if !ok {
		return 0, ledger.ErrConcurrencyConflict
	}

	book, err := core.DecreaseAvailability(book)
	if err != nil {
		return 0, ledger.ErrConcurrencyConflict
	}

	s.data.books[bookID] = book

	return book.CopiesAvailable, nil
}

// IncreaseAvailability puts a copy back, capped at the total.
func (s *Store) IncreaseAvailability(_ context.Context, bookID uuid.UUID) (int, error) {
	defer s.mu.Unlock()
	if err := s.enter("IncreaseAvailability"); err != nil {
		return 0, err
	}

	book, ok := s.data.books[bookID]
	if !ok {
		return 0, ledger.ErrConcurrencyConflict
	}

	book = core.IncreaseAvailability(book)
	s.data.books[bookID] = book

	return book.CopiesAvailable, nil
}

func (s *Store) isbnTaken(isbn string, except uuid.UUID) bool {
	if isbn == "" {
		return false
	}

	for id, other := range s.data.books {
		if id != except && other.ISBN == isbn {
			return true
		}
	}

	return false
}
