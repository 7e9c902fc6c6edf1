package listbooks

const (
	queryType = "ListBooks"
)

// Query represents the intent to page through the catalog.
// Page and Limit below 1 fall back to the first page and the default page size.
type Query struct {
	Search   string
	Category string
	Page     int
	Limit    int
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(search string, category string, page int, limit int) Query {
	return Query{
		Search:   search,
		Category: category,
		Page:     page,
		Limit:    limit,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
