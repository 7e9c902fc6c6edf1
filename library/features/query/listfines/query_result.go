package listfines

import (
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// Fines is the listing result. Outstanding sums the Unpaid fines in the listing.
type Fines struct {
	Fines       []core.FineDetails
	Count       int
	Outstanding decimal.Decimal
}
