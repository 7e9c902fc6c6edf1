// Package cancelreservation implements the Cancel Reservation use case: the reservation row is deleted.
package cancelreservation
