package listfines

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

const (
	queryType = "ListFines"
)

// Query represents the intent to list fines. PaymentStatus is raw input, empty means any status.
type Query struct {
	Actor         core.Principal
	PaymentStatus string
	UserID        *uuid.UUID
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(actor core.Principal, paymentStatus string, userID *uuid.UUID) Query {
	return Query{
		Actor:         actor,
		PaymentStatus: paymentStatus,
		UserID:        userID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
