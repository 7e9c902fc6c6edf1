package postgresengine

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger/postgresengine/internal/adapters"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

const (
	tableReservations = "reservations"

	opFindReservation         = "find_reservation"
	opFindPendingReservation  = "find_pending_reservation"
	opInsertReservation       = "insert_reservation"
	opUpdateReservationStatus = "update_reservation_status"
	opDeleteReservation       = "delete_reservation"
	opListReservations        = "list_reservations"
)

var reservationColumns = []any{
	goqu.L("r.reservation_id::text"),
	goqu.L("r.book_id::text"),
	goqu.L("r.user_id::text"),
	goqu.I("r.reservation_date"),
	goqu.L("r.status::text"),
}

type reservationRow struct {
	reservationID   string
	bookID          string
	userID          string
	reservationDate time.Time
	status          string
}

func (r *reservationRow) dest() []any {
	return []any{&r.reservationID, &r.bookID, &r.userID, &r.reservationDate, &r.status}
}

func (r *reservationRow) toReservation() (core.Reservation, error) {
	reservation := core.Reservation{
		ReservationDate: calendarDate(r.reservationDate),
		Status:          core.ReservationStatus(r.status),
	}

	var err error

	if reservation.ReservationID, err = parseUUID(r.reservationID); err != nil {
		return core.Reservation{}, err
	}

	if reservation.BookID, err = parseUUID(r.bookID); err != nil {
		return core.Reservation{}, err
	}

	if reservation.UserID, err = parseUUID(r.userID); err != nil {
		return core.Reservation{}, err
	}

	return reservation, nil
}

func (s Store) findOneReservation(ctx context.Context, operation string, conditions ...goqu.Expression) (*core.Reservation, error) {
	sqlQuery, err := s.toSQL(ctx, operation, s.builder().
		From(goqu.T(tableReservations).As("r")).
		Select(reservationColumns...).
		Where(conditions...).
		Limit(1))
	if err != nil {
		return nil, err
	}

	var found *core.Reservation

	_, err = s.query(ctx, operation, sqlQuery, func(rows adapters.DBRows) error {
		var r reservationRow
		if scanErr := rows.Scan(r.dest()...); scanErr != nil {
			return scanErr
		}

		reservation, convErr := r.toReservation()
		if convErr != nil {
			return convErr
		}

		found = &reservation

		return nil
	})

	return found, err
}

// FindReservation returns the reservation or nil when it does not exist.
func (s Store) FindReservation(ctx context.Context, reservationID uuid.UUID) (*core.Reservation, error) {
	return s.findOneReservation(ctx, opFindReservation, goqu.I("r.reservation_id").Eq(reservationID.String()))
}

// FindPendingReservation returns the Pending reservation of the user for the book, or nil.
func (s Store) FindPendingReservation(ctx context.Context, bookID uuid.UUID, userID uuid.UUID) (*core.Reservation, error) {
	return s.findOneReservation(ctx, opFindPendingReservation,
		goqu.I("r.book_id").Eq(bookID.String()),
		goqu.I("r.user_id").Eq(userID.String()),
		goqu.I("r.status").Eq(string(core.ReservationPending)),
	)
}

// InsertReservation records a new reservation. The partial unique index on (book_id, user_id) for Pending
// reservations turns a concurrent duplicate into ledger.ErrConcurrencyConflict.
func (s Store) InsertReservation(ctx context.Context, reservation core.Reservation) error {
	sqlQuery, err := s.toSQL(ctx, opInsertReservation, s.builder().Insert(tableReservations).Rows(goqu.Record{
		"reservation_id":   reservation.ReservationID.String(),
		"book_id":          reservation.BookID.String(),
		"user_id":          reservation.UserID.String(),
		"reservation_date": dateValue(reservation.ReservationDate),
		"status":           string(reservation.Status),
	}))
	if err != nil {
		return err
	}

	return s.execGuarded(ctx, opInsertReservation, sqlQuery)
}

// UpdateReservationStatus changes the status, guarded by the status that was loaded.
func (s Store) UpdateReservationStatus(
	ctx context.Context,
	reservationID uuid.UUID,
	from core.ReservationStatus,
	to core.ReservationStatus,
) error {

	sqlQuery, err := s.toSQL(ctx, opUpdateReservationStatus, s.builder().Update(tableReservations).
		Set(goqu.Record{
			"status":     string(to),
			"updated_at": goqu.L("now()"),
		}).
		Where(
			goqu.C("reservation_id").Eq(reservationID.String()),
			goqu.C("status").Eq(string(from)),
		))
	if err != nil {
		return err
	}

	return s.execGuarded(ctx, opUpdateReservationStatus, sqlQuery)
}

// DeleteReservation removes the reservation row.
func (s Store) DeleteReservation(ctx context.Context, reservationID uuid.UUID) error {
	sqlQuery, err := s.toSQL(ctx, opDeleteReservation, s.builder().Delete(tableReservations).
		Where(goqu.C("reservation_id").Eq(reservationID.String())))
	if err != nil {
		return err
	}

	return s.execGuarded(ctx, opDeleteReservation, sqlQuery)
}

// ListReservations returns reservations with book and user, newest first.
func (s Store) ListReservations(ctx context.Context, filter ReservationFilter) ([]core.ReservationDetails, error) {
	conditions := make([]goqu.Expression, 0, 3)

	if filter.UserID != nil {
		conditions = append(conditions, goqu.I("r.user_id").Eq(filter.UserID.String()))
	}

	if filter.BookID != nil {
		conditions = append(conditions, goqu.I("r.book_id").Eq(filter.BookID.String()))
	}

	if filter.Status != nil {
		conditions = append(conditions, goqu.I("r.status").Eq(string(*filter.Status)))
	}

	columns := append(append([]any{}, reservationColumns...),
		goqu.I("b.title"),
		goqu.I("b.author"),
		goqu.L("COALESCE(b.isbn, '')"),
		goqu.I("u.name"),
		goqu.I("u.email"),
	)

	sqlQuery, err := s.toSQL(ctx, opListReservations, s.builder().
		From(goqu.T(tableReservations).As("r")).
		Join(goqu.T(tableBooks).As("b"), goqu.On(goqu.I("b.book_id").Eq(goqu.I("r.book_id")))).
		Join(goqu.T(tableUsers).As("u"), goqu.On(goqu.I("u.user_id").Eq(goqu.I("r.user_id")))).
		Select(columns...).
		Where(conditions...).
		Order(goqu.I("r.reservation_date").Desc(), goqu.I("r.created_at").Desc()))
	if err != nil {
		return nil, err
	}

	reservations := make([]core.ReservationDetails, 0)

	_, err = s.query(ctx, opListReservations, sqlQuery, func(rows adapters.DBRows) error {
		var (
			r       reservationRow
			details core.ReservationDetails
		)

		dest := append(r.dest(),
			&details.Book.Title,
			&details.Book.Author,
			&details.Book.ISBN,
			&details.User.Name,
			&details.User.Email,
		)

		if scanErr := rows.Scan(dest...); scanErr != nil {
			return scanErr
		}

		reservation, convErr := r.toReservation()
		if convErr != nil {
			return convErr
		}

		details.Reservation = reservation
		details.Book.BookID = reservation.BookID
		details.User.UserID = reservation.UserID
		reservations = append(reservations, details)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return reservations, nil
}
