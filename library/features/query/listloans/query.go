package listloans

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

const (
	queryType = "ListLoans"
)

// Query represents the intent to list loans. Status is raw input, empty means any status.
type Query struct {
	Actor  core.Principal
	Status string
	UserID *uuid.UUID
	BookID *uuid.UUID
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(actor core.Principal, status string, userID *uuid.UUID, bookID *uuid.UUID) Query {
	return Query{
		Actor:  actor,
		Status: status,
		UserID: userID,
		BookID: bookID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
