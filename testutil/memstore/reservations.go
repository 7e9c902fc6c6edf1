package memstore

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/ledger/postgresengine"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// FindReservation returns the reservation or nil.
func (s *Store) FindReservation(_ context.Context, reservationID uuid.UUID) (*core.Reservation, error) {
	defer s.mu.Unlock()
	if err := s.enter("FindReservation"); err != nil {
		return nil, err
	}

	reservation, ok := s.data.reservations[reservationID]
	if !ok {
		return nil, nil
	}

	return &reservation, nil
}

// FindPendingReservation returns the Pending reservation of the user for the book or nil.
func (s *Store) FindPendingReservation(_ context.Context, bookID uuid.UUID, userID uuid.UUID) (*core.Reservation, error) {
	defer s.mu.Unlock()
	if err := s.enter("FindPendingReservation"); err != nil {
		return nil, err
	}

	if reservation, ok := s.pendingReservation(bookID, userID); ok {
		return &reservation, nil
	}

	return nil, nil
}

// InsertReservation records a reservation. A second Pending one for the same book and user is a conflict.
func (s *Store) InsertReservation(_ context.Context, reservation core.Reservation) error {
	defer s.mu.Unlock()
	if err := s.enter("InsertReservation"); err != nil {
		return err
	}

	_, bookExists := s.data.books[reservation.BookID]
	_, userExists := s.data.users[reservation.UserID]
	_, exists := s.data.reservations[reservation.ReservationID]

	if !bookExists || !userExists || exists {
		return ledger.ErrConcurrencyConflict
	}

	if _, pending := s.pendingReservation(reservation.BookID, reservation.UserID); pending && reservation.IsPending() {
		return ledger.ErrConcurrencyConflict
	}

	s.data.reservations[reservation.ReservationID] = reservation
	s.data.touch(reservation.ReservationID)

	return nil
}

// UpdateReservationStatus changes the status, guarded by from.
func (s *Store) UpdateReservationStatus(
	_ context.Context,
	reservationID uuid.UUID,
	from core.ReservationStatus,
	to core.ReservationStatus,
) error {

	defer s.mu.Unlock()
	if err := s.enter("UpdateReservationStatus"); err != nil {
		return err
	}

	reservation, ok := s.data.reservations[reservationID]
	if !ok || reservation.Status != from {
		return ledger.ErrConcurrencyConflict
	}

	if to == core.ReservationPending {
		if other, pending := s.pendingReservation(reservation.BookID, reservation.UserID); pending && other.ReservationID != reservationID {
			return ledger.ErrConcurrencyConflict
		}
	}

	reservation.Status = to
	s.data.reservations[reservationID] = reservation

	return nil
}

// DeleteReservation removes the reservation.
func (s *Store) DeleteReservation(_ context.Context, reservationID uuid.UUID) error {
	defer s.mu.Unlock()
	if err := s.enter("DeleteReservation"); err != nil {
		return err
	}

	if _, ok := s.data.reservations[reservationID]; !ok {
		return ledger.ErrConcurrencyConflict
	}

	delete(s.data.reservations, reservationID)

	return nil
}

// ListReservations returns reservation details, newest first.
func (s *Store) ListReservations(_ context.Context, filter postgresengine.ReservationFilter) ([]core.ReservationDetails, error) {
	defer s.mu.Unlock()
	if err := s.enter("ListReservations"); err != nil {
		return nil, err
	}

	details := make([]core.ReservationDetails, 0)

	for _, reservation := range s.data.reservations {
		if filter.UserID != nil && reservation.UserID != *filter.UserID {
			continue
		}

		if filter.BookID != nil && reservation.BookID != *filter.BookID {
			continue
		}

		if filter.Status != nil && reservation.Status != *filter.Status {
			continue
		}

		details = append(details, core.ReservationDetails{
			Reservation: reservation,
			Book:        s.bookSummary(reservation.BookID),
			User:        s.userSummary(reservation.UserID),
		})
	}

	slices.SortFunc(details, func(a, b core.ReservationDetails) int {
		if c := b.ReservationDate.Compare(a.ReservationDate); c != 0 {
			return c
		}

		return s.data.order[b.ReservationID] - s.data.order[a.ReservationID]
	})

	return details, nil
}

func (s *Store) pendingReservation(bookID uuid.UUID, userID uuid.UUID) (core.Reservation, bool) {
	for _, reservation := range s.data.reservations {
		if reservation.BookID == bookID && reservation.UserID == userID && reservation.IsPending() {
			return reservation, true
		}
	}

	return core.Reservation{}, false
}
