package reports

import (
	"slices"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

const (
	queryType = "GenerateReport"
)

// Report types.
const (
	TypeBorrowingTrends = "borrowing_trends"
	TypePopularBooks    = "popular_books"
	TypeOverdue         = "overdue"
	TypeFinesCollected  = "fines_collected"
	TypeActiveUsers     = "active_users"
)

// Types lists the supported report types.
var Types = []string{TypeBorrowingTrends, TypePopularBooks, TypeOverdue, TypeFinesCollected, TypeActiveUsers}

// Query represents the intent to generate a report of the given type.
type Query struct {
	Actor      core.Principal
	ReportType string
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(actor core.Principal, reportType string) Query {
	return Query{
		Actor:      actor,
		ReportType: reportType,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

func validType(reportType string) error {
	if !slices.Contains(Types, reportType) {
		return core.Invalid("report type %q is not one of %v", reportType, Types)
	}

	return nil
}
