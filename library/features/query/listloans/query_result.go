package listloans

import (
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// Loans is the listing result, newest loan first.
type Loans struct {
	Loans []core.LoanDetails
	Count int
}
