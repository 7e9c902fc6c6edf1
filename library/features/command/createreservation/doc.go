// Package createreservation implements the Create Reservation use case.
//
// Staff places a hold on a book for a user. Reservations do not check availability.
// A user holds at most one Pending reservation per book; the partial unique index behind InsertReservation
// guards that rule against concurrent requests.
package createreservation
