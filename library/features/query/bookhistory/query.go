package bookhistory

import (
	"github.com/google/uuid"
)

const (
	queryType = "BookHistory"
)

// Query represents the intent to read the history of a book. Limit zero means unlimited.
type Query struct {
	BookID uuid.UUID
	Limit  uint
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(bookID uuid.UUID, limit uint) Query {
	return Query{
		BookID: bookID,
		Limit:  limit,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
