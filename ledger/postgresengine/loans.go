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
	tableLoans = "loans"

	opFindLoan               = "find_loan"
	opFindActiveLoan         = "find_active_loan"
	opCountActiveLoansOfBook = "count_active_loans_of_book"
	opInsertLoan             = "insert_loan"
	opMarkLoanReturned       = "mark_loan_returned"
	opListLoans              = "list_loans"
)

var loanColumns = []any{
	goqu.L("l.loan_id::text"),
	goqu.L("l.book_id::text"),
	goqu.L("l.user_id::text"),
	goqu.I("l.borrow_date"),
	goqu.I("l.due_date"),
	goqu.I("l.return_date"),
	goqu.L("l.status::text"),
}

// loanDetailsColumns appends book, user and the optional fine to loanColumns.
var loanDetailsColumns = append(append([]any{}, loanColumns...),
	goqu.I("b.title"),
	goqu.I("b.author"),
	goqu.L("COALESCE(b.isbn, '')"),
	goqu.I("u.name"),
	goqu.I("u.email"),
	goqu.L("f.fine_id::text"),
	goqu.L("f.amount::text"),
	goqu.L("f.payment_status::text"),
	goqu.I("f.days_overdue"),
	goqu.L("f.rate_per_day::text"),
	goqu.L("f.assessment::text"),
)

type loanRow struct {
	loanID     string
	bookID     string
	userID     string
	borrowDate time.Time
	dueDate    time.Time
	returnDate *time.Time
	status     string
}

func (r *loanRow) dest() []any {
	return []any{&r.loanID, &r.bookID, &r.userID, &r.borrowDate, &r.dueDate, &r.returnDate, &r.status}
}

func (r *loanRow) toLoan() (core.Loan, error) {
	loan := core.Loan{
		BorrowDate: calendarDate(r.borrowDate),
		DueDate:    calendarDate(r.dueDate),
		ReturnDate: optionalCalendarDate(r.returnDate),
		Status:     core.LoanStatus(r.status),
	}

	var err error

	if loan.LoanID, err = parseUUID(r.loanID); err != nil {
		return core.Loan{}, err
	}

	if loan.BookID, err = parseUUID(r.bookID); err != nil {
		return core.Loan{}, err
	}

	if loan.UserID, err = parseUUID(r.userID); err != nil {
		return core.Loan{}, err
	}

	return loan, nil
}

func scanLoan(rows adapters.DBRows) (core.Loan, error) {
	var r loanRow

	if err := rows.Scan(r.dest()...); err != nil {
		return core.Loan{}, err
	}

	return r.toLoan()
}

// optionalFineRow holds the left-joined fine columns, all nil when the loan has no fine.
type optionalFineRow struct {
	fineID        *string
	amount        *string
	paymentStatus *string
	daysOverdue   *int
	ratePerDay    *string
	assessment    *string
}

func (r *optionalFineRow) dest() []any {
	return []any{&r.fineID, &r.amount, &r.paymentStatus, &r.daysOverdue, &r.ratePerDay, &r.assessment}
}

func (r *optionalFineRow) toFine(loanID uuid.UUID) (*core.Fine, error) {
	fineID, present, err := parseOptionalUUID(r.fineID)
	if err != nil || !present {
		return nil, err
	}

	fine := core.Fine{
		FineID:        fineID,
		LoanID:        loanID,
		PaymentStatus: core.PaymentStatus(deref(r.paymentStatus)),
		Assessment:    core.FineAssessment(deref(r.assessment)),
	}

	if r.daysOverdue != nil {
		fine.DaysOverdue = *r.daysOverdue
	}

	if fine.Amount, err = parseDecimal(deref(r.amount)); err != nil {
		return nil, err
	}

	if fine.RatePerDay, err = parseDecimal(deref(r.ratePerDay)); err != nil {
		return nil, err
	}

	return &fine, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func scanLoanDetails(rows adapters.DBRows) (core.LoanDetails, error) {
	var (
		r       loanRow
		details core.LoanDetails
		fineRow optionalFineRow
	)

	dest := append(r.dest(),
		&details.Book.Title,
		&details.Book.Author,
		&details.Book.ISBN,
		&details.User.Name,
		&details.User.Email,
	)
	dest = append(dest, fineRow.dest()...)

	if err := rows.Scan(dest...); err != nil {
		return core.LoanDetails{}, err
	}

	loan, err := r.toLoan()
	if err != nil {
		return core.LoanDetails{}, err
	}

	details.Loan = loan
	details.Book.BookID = loan.BookID
	details.User.UserID = loan.UserID

	if details.Fine, err = fineRow.toFine(loan.LoanID); err != nil {
		return core.LoanDetails{}, err
	}

	return details, nil
}

func (s Store) selectLoans() *goqu.SelectDataset {
	return s.builder().From(goqu.T(tableLoans).As("l")).Select(loanColumns...)
}

func (s Store) selectLoanDetails() *goqu.SelectDataset {
	return s.builder().
		From(goqu.T(tableLoans).As("l")).
		Join(goqu.T(tableBooks).As("b"), goqu.On(goqu.I("b.book_id").Eq(goqu.I("l.book_id")))).
		Join(goqu.T(tableUsers).As("u"), goqu.On(goqu.I("u.user_id").Eq(goqu.I("l.user_id")))).
		LeftJoin(goqu.T(tableFines).As("f"), goqu.On(goqu.I("f.loan_id").Eq(goqu.I("l.loan_id")))).
		Select(loanDetailsColumns...)
}

func (s Store) findOneLoan(ctx context.Context, operation string, ds *goqu.SelectDataset) (*core.Loan, error) {
	sqlQuery, err := s.toSQL(ctx, operation, ds.Limit(1))
	if err != nil {
		return nil, err
	}

	var found *core.Loan

	_, err = s.query(ctx, operation, sqlQuery, func(rows adapters.DBRows) error {
		loan, scanErr := scanLoan(rows)
		if scanErr != nil {
			return scanErr
		}

		found = &loan

		return nil
	})

	return found, err
}

// FindLoan returns the loan or nil when it does not exist.
func (s Store) FindLoan(ctx context.Context, loanID uuid.UUID) (*core.Loan, error) {
	return s.findOneLoan(ctx, opFindLoan, s.selectLoans().Where(goqu.I("l.loan_id").Eq(loanID.String())))
}

// FindActiveLoan returns the Borrowed loan of the user for the book, or nil.
func (s Store) FindActiveLoan(ctx context.Context, bookID uuid.UUID, userID uuid.UUID) (*core.Loan, error) {
	return s.findOneLoan(ctx, opFindActiveLoan, s.selectLoans().Where(
		goqu.I("l.book_id").Eq(bookID.String()),
		goqu.I("l.user_id").Eq(userID.String()),
		goqu.I("l.status").Eq(string(core.LoanBorrowed)),
	))
}

// CountActiveLoansOfBook returns the number of copies of the book currently lent out.
func (s Store) CountActiveLoansOfBook(ctx context.Context, bookID uuid.UUID) (int, error) {
	sqlQuery, err := s.toSQL(ctx, opCountActiveLoansOfBook, s.builder().
		From(goqu.T(tableLoans).As("l")).
		Select(goqu.COUNT(goqu.Star())).
		Where(
			goqu.I("l.book_id").Eq(bookID.String()),
			goqu.I("l.status").Eq(string(core.LoanBorrowed)),
		))
	if err != nil {
		return 0, err
	}

	count := 0

	_, err = s.query(ctx, opCountActiveLoansOfBook, sqlQuery, func(rows adapters.DBRows) error {
		return rows.Scan(&count)
	})

	return count, err
}

// InsertLoan records a new loan. The partial unique index on (book_id, user_id) for Borrowed loans
// turns a concurrent duplicate into ledger.ErrConcurrencyConflict.
func (s Store) InsertLoan(ctx context.Context, loan core.Loan) error {
	sqlQuery, err := s.toSQL(ctx, opInsertLoan, s.builder().Insert(tableLoans).Rows(goqu.Record{
		"loan_id":     loan.LoanID.String(),
		"book_id":     loan.BookID.String(),
		"user_id":     loan.UserID.String(),
		"borrow_date": dateValue(loan.BorrowDate),
		"due_date":    dateValue(loan.DueDate),
		"return_date": optionalDateValue(loan.ReturnDate),
		"status":      string(loan.Status),
	}))
	if err != nil {
		return err
	}

	return s.execGuarded(ctx, opInsertLoan, sqlQuery)
}

// MarkLoanReturned moves a Borrowed loan to Returned. It only applies to loans that are still Borrowed.
func (s Store) MarkLoanReturned(ctx context.Context, loanID uuid.UUID, returnDate time.Time) error {
	sqlQuery, err := s.toSQL(ctx, opMarkLoanReturned, s.builder().Update(tableLoans).
		Set(goqu.Record{
			"status":      string(core.LoanReturned),
			"return_date": dateValue(returnDate),
			"updated_at":  goqu.L("now()"),
		}).
		Where(
			goqu.C("loan_id").Eq(loanID.String()),
			goqu.C("status").Eq(string(core.LoanBorrowed)),
		))
	if err != nil {
		return err
	}

	return s.execGuarded(ctx, opMarkLoanReturned, sqlQuery)
}

// FindLoanDetails returns the loan with its book, borrower and fine, or nil.
func (s Store) FindLoanDetails(ctx context.Context, loanID uuid.UUID) (*core.LoanDetails, error) {
	loans, err := s.listLoanDetails(ctx, s.selectLoanDetails().Where(goqu.I("l.loan_id").Eq(loanID.String())).Limit(1))
	if err != nil || len(loans) == 0 {
		return nil, err
	}

	return &loans[0], nil
}

// ListLoans returns loans with details, newest borrow date first.
func (s Store) ListLoans(ctx context.Context, filter LoanFilter) ([]core.LoanDetails, error) {
	conditions := make([]goqu.Expression, 0, 3)

	if filter.UserID != nil {
		conditions = append(conditions, goqu.I("l.user_id").Eq(filter.UserID.String()))
	}

	if filter.BookID != nil {
		conditions = append(conditions, goqu.I("l.book_id").Eq(filter.BookID.String()))
	}

	if filter.Status != nil {
		conditions = append(conditions, goqu.I("l.status").Eq(string(*filter.Status)))
	}

	return s.listLoanDetails(ctx, s.selectLoanDetails().
		Where(conditions...).
		Order(goqu.I("l.borrow_date").Desc(), goqu.I("l.created_at").Desc()))
}

func (s Store) listLoanDetails(ctx context.Context, ds *goqu.SelectDataset) ([]core.LoanDetails, error) {
	sqlQuery, err := s.toSQL(ctx, opListLoans, ds)
	if err != nil {
		return nil, err
	}

	loans := make([]core.LoanDetails, 0)

	_, err = s.query(ctx, opListLoans, sqlQuery, func(rows adapters.DBRows) error {
		details, scanErr := scanLoanDetails(rows)
		if scanErr != nil {
			return scanErr
		}

		loans = append(loans, details)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return loans, nil
}
