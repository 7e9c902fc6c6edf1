package getloan

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

const (
	queryType = "GetLoan"
)

// Query represents the intent to read one loan.
type Query struct {
	Actor  core.Principal
	LoanID uuid.UUID
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(actor core.Principal, loanID uuid.UUID) Query {
	return Query{
		Actor:  actor,
		LoanID: loanID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
