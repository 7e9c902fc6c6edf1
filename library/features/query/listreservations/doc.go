// Package listreservations implements the reservation listing. Members see only their own reservations.
package listreservations
