package listbooks

import (
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// BookPage is one page of the catalog. Total counts all matching books.
type BookPage struct {
	Books      []core.Book
	Total      int
	Page       int
	Limit      int
	TotalPages int
}
