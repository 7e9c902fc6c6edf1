// Package updatereservationstatus implements the Update Reservation Status use case.
//
// Any status of the closed enum may be set; there is no transition check beyond that.
// Staff may set any status, the owner of the reservation may only cancel it.
package updatereservationstatus
