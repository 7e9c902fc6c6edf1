package listreservations

import (
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// Reservations is the listing result, newest reservation first.
type Reservations struct {
	Reservations []core.ReservationDetails
	Count        int
}
