package postgresengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger/postgresengine/internal/adapters"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

const (
	tableFines = "fines"

	opFindFine                = "find_fine"
	opFindFineByLoan          = "find_fine_by_loan"
	opInsertFine              = "insert_fine"
	opUpdateFinePaymentStatus = "update_fine_payment_status"
	opListFines               = "list_fines"
)

var fineColumns = []any{
	goqu.L("f.fine_id::text"),
	goqu.L("f.loan_id::text"),
	goqu.L("f.amount::text"),
	goqu.L("f.payment_status::text"),
	goqu.I("f.days_overdue"),
	goqu.L("f.rate_per_day::text"),
	goqu.L("f.assessment::text"),
}

type fineRow struct {
	fineID        string
	loanID        string
	amount        string
	paymentStatus string
	daysOverdue   int
	ratePerDay    string
	assessment    string
}

func (r *fineRow) dest() []any {
	return []any{&r.fineID, &r.loanID, &r.amount, &r.paymentStatus, &r.daysOverdue, &r.ratePerDay, &r.assessment}
}

func (r *fineRow) toFine() (core.Fine, error) {
	fine := core.Fine{
		PaymentStatus: core.PaymentStatus(r.paymentStatus),
		DaysOverdue:   r.daysOverdue,
		Assessment:    core.FineAssessment(r.assessment),
	}

	var err error

	if fine.FineID, err = parseUUID(r.fineID); err != nil {
		return core.Fine{}, err
	}

	if fine.LoanID, err = parseUUID(r.loanID); err != nil {
		return core.Fine{}, err
	}

	if fine.Amount, err = parseDecimal(r.amount); err != nil {
		return core.Fine{}, err
	}

	if fine.RatePerDay, err = parseDecimal(r.ratePerDay); err != nil {
		return core.Fine{}, err
	}

	return fine, nil
}

func (s Store) findOneFine(ctx context.Context, operation string, condition goqu.Expression) (*core.Fine, error) {
	sqlQuery, err := s.toSQL(ctx, operation, s.builder().
		From(goqu.T(tableFines).As("f")).
		Select(fineColumns...).
		Where(condition).
		Limit(1))
	if err != nil {
		return nil, err
	}

	var found *core.Fine

	_, err = s.query(ctx, operation, sqlQuery, func(rows adapters.DBRows) error {
		var r fineRow
		if scanErr := rows.Scan(r.dest()...); scanErr != nil {
			return scanErr
		}

		fine, convErr := r.toFine()
		if convErr != nil {
			return convErr
		}

		found = &fine

		return nil
	})

	return found, err
}

// FindFine returns the fine or nil when it does not exist.
func (s Store) FindFine(ctx context.Context, fineID uuid.UUID) (*core.Fine, error) {
	return s.findOneFine(ctx, opFindFine, goqu.I("f.fine_id").Eq(fineID.String()))
}

// FindFineByLoan returns the fine of the loan or nil.
func (s Store) FindFineByLoan(ctx context.Context, loanID uuid.UUID) (*core.Fine, error) {
	return s.findOneFine(ctx, opFindFineByLoan, goqu.I("f.loan_id").Eq(loanID.String()))
}

// InsertFine attaches a fine to its loan. A loan has at most one fine: when another fine was attached
// concurrently, nothing is inserted and ledger.ErrConcurrencyConflict is returned.
func (s Store) InsertFine(ctx context.Context, fine core.Fine) error {
	sqlQuery, err := s.toSQL(ctx, opInsertFine, s.builder().Insert(tableFines).
		Rows(goqu.Record{
			"fine_id":        fine.FineID.String(),
			"loan_id":        fine.LoanID.String(),
			"amount":         fine.Amount.StringFixed(2),
			"payment_status": string(fine.PaymentStatus),
			"days_overdue":   fine.DaysOverdue,
			"rate_per_day":   fine.RatePerDay.StringFixed(2),
			"assessment":     string(fine.Assessment),
		}).
		OnConflict(goqu.DoNothing()))
	if err != nil {
		return err
	}

	return s.execGuarded(ctx, opInsertFine, sqlQuery)
}

// UpdateFinePaymentStatus changes the payment status, guarded by the status that was loaded.
func (s Store) UpdateFinePaymentStatus(ctx context.Context, fineID uuid.UUID, from core.PaymentStatus, to core.PaymentStatus) error {
	sqlQuery, err := s.toSQL(ctx, opUpdateFinePaymentStatus, s.builder().Update(tableFines).
		Set(goqu.Record{
			"payment_status": string(to),
			"updated_at":     goqu.L("now()"),
		}).
		Where(
			goqu.C("fine_id").Eq(fineID.String()),
			goqu.C("payment_status").Eq(string(from)),
		))
	if err != nil {
		return err
	}

	return s.execGuarded(ctx, opUpdateFinePaymentStatus, sqlQuery)
}

// ListFines returns fines with their loan, book and borrower, newest first.
func (s Store) ListFines(ctx context.Context, filter FineFilter) ([]core.FineDetails, error) {
	conditions := make([]goqu.Expression, 0, 2)

	if filter.UserID != nil {
		conditions = append(conditions, goqu.I("l.user_id").Eq(filter.UserID.String()))
	}

	if filter.PaymentStatus != nil {
		conditions = append(conditions, goqu.I("f.payment_status").Eq(string(*filter.PaymentStatus)))
	}

	columns := append(append(append([]any{}, fineColumns...), loanColumns...),
		goqu.I("b.title"),
		goqu.I("b.author"),
		goqu.L("COALESCE(b.isbn, '')"),
		goqu.I("u.name"),
		goqu.I("u.email"),
	)

	sqlQuery, err := s.toSQL(ctx, opListFines, s.builder().
		From(goqu.T(tableFines).As("f")).
		Join(goqu.T(tableLoans).As("l"), goqu.On(goqu.I("l.loan_id").Eq(goqu.I("f.loan_id")))).
		Join(goqu.T(tableBooks).As("b"), goqu.On(goqu.I("b.book_id").Eq(goqu.I("l.book_id")))).
		Join(goqu.T(tableUsers).As("u"), goqu.On(goqu.I("u.user_id").Eq(goqu.I("l.user_id")))).
		Select(columns...).
		Where(conditions...).
		Order(goqu.I("f.created_at").Desc()))
	if err != nil {
		return nil, err
	}

	fines := make([]core.FineDetails, 0)

	_, err = s.query(ctx, opListFines, sqlQuery, func(rows adapters.DBRows) error {
		var (
			fr      fineRow
			lr      loanRow
			details core.FineDetails
		)

		dest := append(fr.dest(), lr.dest()...)
		dest = append(dest,
			&details.Book.Title,
			&details.Book.Author,
			&details.Book.ISBN,
			&details.User.Name,
			&details.User.Email,
		)

		if scanErr := rows.Scan(dest...); scanErr != nil {
			return scanErr
		}

		fine, convErr := fr.toFine()
		if convErr != nil {
			return convErr
		}

		loan, convErr := lr.toLoan()
		if convErr != nil {
			return convErr
		}

		details.Fine = fine
		details.Loan = loan
		details.Book.BookID = loan.BookID
		details.User.UserID = loan.UserID
		fines = append(fines, details)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return fines, nil
}
