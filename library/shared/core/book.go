package core

import (
	"time"

	"github.com/google/uuid"
)

// Book is a catalog entry with its copy counters.
type Book struct {
	BookID             uuid.UUID
	Title              string
	Author             string
	ISBN               string
	Category           string
	Description        string
	Pages              int
	PublicationYear    int
	CopiesTotal        int
	CopiesAvailable    int
	AvailabilityStatus AvailabilityStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DeriveAvailabilityStatus is Available iff at least one copy is on the shelf.
func DeriveAvailabilityStatus(copiesAvailable int) AvailabilityStatus {
	if copiesAvailable > 0 {
		return AvailabilityAvailable
	}

	return AvailabilityBorrowed
}

// DecreaseAvailability takes one copy off the shelf.
func DecreaseAvailability(book Book) (Book, error) {
	if book.CopiesAvailable <= 0 {
		return book, ErrUnavailable
	}

	book.CopiesAvailable--
	book.AvailabilityStatus = DeriveAvailabilityStatus(book.CopiesAvailable)

	return book, nil
}

// IncreaseAvailability puts one copy back, capped at CopiesTotal.
func IncreaseAvailability(book Book) Book {
	book.CopiesAvailable = min(book.CopiesAvailable+1, book.CopiesTotal)
	book.AvailabilityStatus = DeriveAvailabilityStatus(book.CopiesAvailable)

	return book
}

// SetCopies overrides both counters after validating 1 <= total and 0 <= available <= total.
func SetCopies(book Book, total int, available int) (Book, error) {
	if err := ValidateCopies(total, available); err != nil {
		return book, err
	}

	book.CopiesTotal = total
	book.CopiesAvailable = available
	book.AvailabilityStatus = DeriveAvailabilityStatus(available)

	return book, nil
}

// ValidateCopies checks the copy counter invariant.
func ValidateCopies(total int, available int) error {
	if total < 1 {
		return Invalid("copies_total must be at least 1, got %d", total)
	}

	if available < 0 || available > total {
		return Invalid("copies_available must be between 0 and %d, got %d", total, available)
	}

	return nil
}

// ValidateBookDetails checks the bibliographic fields a book must carry. Zero pages or year means unknown.
func ValidateBookDetails(title string, author string, pages int, publicationYear int) error {
	if title == "" {
		return Invalid("title is required")
	}

	if author == "" {
		return Invalid("author is required")
	}

	if pages < 0 {
		return Invalid("pages must not be negative")
	}

	if publicationYear != 0 && (publicationYear < 1000 || publicationYear > 2100) {
		return Invalid("publication_year must be between 1000 and 2100, got %d", publicationYear)
	}

	return nil
}
