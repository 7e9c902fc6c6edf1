package listusers

const (
	queryType = "ListUsers"
)

// Query represents the intent to list users. Role is raw input, empty means any role.
type Query struct {
	Role   string
	Search string
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(role string, search string) Query {
	return Query{
		Role:   role,
		Search: search,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
