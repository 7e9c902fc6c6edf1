package addbook

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

const (
	commandType = "AddBook"
)

// Details are the bibliographic fields of a book.
type Details struct {
	Title           string
	Author          string
	ISBN            string
	Category        string
	Description     string
	Pages           int
	PublicationYear int
}

// Command represents the intent to add a book to the catalog.
// A nil CopiesAvailable puts all copies on the shelf.
type Command struct {
	BookID          uuid.UUID
	Details         Details
	CopiesTotal     int
	CopiesAvailable *int
	OccurredAt      core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, details Details, copiesTotal int, copiesAvailable *int, occurredAt time.Time) Command {
	return Command{
		BookID:          bookID,
		Details:         details,
		CopiesTotal:     copiesTotal,
		CopiesAvailable: copiesAvailable,
		OccurredAt:      core.ToOccurredAt(occurredAt),
	}
}

// NewBook returns the book the command adds, before validation.
func NewBook(command Command) core.Book {
	available := command.CopiesTotal
	if command.CopiesAvailable != nil {
		available = *command.CopiesAvailable
	}

	return core.Book{
		BookID:             command.BookID,
		Title:              strings.TrimSpace(command.Details.Title),
		Author:             strings.TrimSpace(command.Details.Author),
		ISBN:               strings.TrimSpace(command.Details.ISBN),
		Category:           strings.TrimSpace(command.Details.Category),
		Description:        command.Details.Description,
		Pages:              command.Details.Pages,
		PublicationYear:    command.Details.PublicationYear,
		CopiesTotal:        command.CopiesTotal,
		CopiesAvailable:    available,
		AvailabilityStatus: core.DeriveAvailabilityStatus(available),
		CreatedAt:          command.OccurredAt,
		UpdatedAt:          command.OccurredAt,
	}
}
