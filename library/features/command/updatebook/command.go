package updatebook

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

const (
	commandType = "UpdateBook"
)

// Changes lists the fields to set. Nil fields keep their current value.
type Changes struct {
	Title           *string
	Author          *string
	ISBN            *string
	Category        *string
	Description     *string
	Pages           *int
	PublicationYear *int
	CopiesTotal     *int
	CopiesAvailable *int
}

// Command represents the intent to edit a book.
type Command struct {
	BookID     uuid.UUID
	Changes    Changes
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, changes Changes, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		Changes:    changes,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// Edit returns book with the changes applied. Copy counters are validated together.
func Edit(book core.Book, changes Changes) (core.Book, error) {
	setString(&book.Title, changes.Title)
	setString(&book.Author, changes.Author)
	setString(&book.ISBN, changes.ISBN)
	setString(&book.Category, changes.Category)

	if changes.Description != nil {
		book.Description = *changes.Description
	}

	if changes.Pages != nil {
		book.Pages = *changes.Pages
	}

	if changes.PublicationYear != nil {
		book.PublicationYear = *changes.PublicationYear
	}

	if err := core.ValidateBookDetails(book.Title, book.Author, book.Pages, book.PublicationYear); err != nil {
		return book, err
	}

	total, available := book.CopiesTotal, book.CopiesAvailable

	if changes.CopiesTotal != nil {
		total = *changes.CopiesTotal
	}

	if changes.CopiesAvailable != nil {
		available = *changes.CopiesAvailable
	}

	return core.SetCopies(book, total, available)
}

func setString(field *string, value *string) {
	if value != nil {
		*field = strings.TrimSpace(*value)
	}
}
