package postgresengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/ledger/postgresengine/internal/adapters"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

const (
	tableBooks = "books"

	opFindBook             = "find_book"
	opFindBookByISBN       = "find_book_by_isbn"
	opListBooks            = "list_books"
	opCountBooks           = "count_books"
	opInsertBook           = "insert_book"
	opUpdateBook           = "update_book"
	opDeleteBook           = "delete_book"
	opDecreaseAvailability = "decrease_availability"
	opIncreaseAvailability = "increase_availability"
)

var bookColumns = []any{
	goqu.L("b.book_id::text"),
	goqu.I("b.title"),
	goqu.I("b.author"),
	goqu.L("COALESCE(b.isbn, '')"),
	goqu.L("COALESCE(b.category, '')"),
	goqu.L("COALESCE(b.description, '')"),
	goqu.L("COALESCE(b.pages, 0)"),
	goqu.L("COALESCE(b.publication_year, 0)"),
	goqu.I("b.copies_total"),
	goqu.I("b.copies_available"),
	goqu.L("b.availability_status::text"),
	goqu.I("b.created_at"),
	goqu.I("b.updated_at"),
}

func scanBook(rows adapters.DBRows) (core.Book, error) {
	var (
		book   core.Book
		id     string
		status string
	)

	err := rows.Scan(
		&id,
		&book.Title,
		&book.Author,
		&book.ISBN,
		&book.Category,
		&book.Description,
		&book.Pages,
		&book.PublicationYear,
		&book.CopiesTotal,
		&book.CopiesAvailable,
		&status,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		return core.Book{}, err
	}

	if book.BookID, err = parseUUID(id); err != nil {
		return core.Book{}, err
	}

	book.AvailabilityStatus = core.AvailabilityStatus(status)

	return book, nil
}

func (s Store) selectBooks() *goqu.SelectDataset {
	return s.builder().From(goqu.T(tableBooks).As("b")).Select(bookColumns...)
}

func (s Store) findOneBook(ctx context.Context, operation string, ds *goqu.SelectDataset) (*core.Book, error) {
	sqlQuery, err := s.toSQL(ctx, operation, ds.Limit(1))
	if err != nil {
		return nil, err
	}

	var found *core.Book

	_, err = s.query(ctx, operation, sqlQuery, func(rows adapters.DBRows) error {
		book, scanErr := scanBook(rows)
		if scanErr != nil {
			return scanErr
		}

		found = &book

		return nil
	})

	return found, err
}

// FindBook returns the book or nil when it does not exist.
func (s Store) FindBook(ctx context.Context, bookID uuid.UUID) (*core.Book, error) {
	return s.findOneBook(ctx, opFindBook, s.selectBooks().Where(goqu.I("b.book_id").Eq(bookID.String())))
}

// FindBookByISBN returns the book with that ISBN or nil.
func (s Store) FindBookByISBN(ctx context.Context, isbn string) (*core.Book, error) {
	return s.findOneBook(ctx, opFindBookByISBN, s.selectBooks().Where(goqu.I("b.isbn").Eq(isbn)))
}

// ListBooks returns one page of the catalog, newest first, and the total number of matching books.
func (s Store) ListBooks(ctx context.Context, filter BookFilter) ([]core.Book, int, error) {
	filter = filter.normalized()
	conditions := bookConditions(filter)

	countSQL, err := s.toSQL(ctx, opCountBooks,
		s.builder().From(goqu.T(tableBooks).As("b")).Select(goqu.COUNT(goqu.Star())).Where(conditions...))
	if err != nil {
		return nil, 0, err
	}

	total := 0

	if _, err = s.query(ctx, opCountBooks, countSQL, func(rows adapters.DBRows) error {
		return rows.Scan(&total)
	}); err != nil {
		return nil, 0, err
	}

	listSQL, err := s.toSQL(ctx, opListBooks,
		s.selectBooks().
			Where(conditions...).
			Order(goqu.I("b.created_at").Desc(), goqu.I("b.book_id").Asc()).
			Limit(uint(filter.Limit)).
			Offset(filter.offset()))
	if err != nil {
		return nil, 0, err
	}

	books := make([]core.Book, 0, filter.Limit)

	_, err = s.query(ctx, opListBooks, listSQL, func(rows adapters.DBRows) error {
		book, scanErr := scanBook(rows)
		if scanErr != nil {
			return scanErr
		}

		books = append(books, book)

		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

func bookConditions(filter BookFilter) []goqu.Expression {
	conditions := make([]goqu.Expression, 0, 2)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conditions = append(conditions, goqu.Or(
			goqu.I("b.title").ILike(pattern),
			goqu.I("b.author").ILike(pattern),
			goqu.I("b.isbn").ILike(pattern),
		))
	}

	if filter.Category != "" {
		conditions = append(conditions, goqu.I("b.category").Eq(filter.Category))
	}

	return conditions
}

// InsertBook adds a book to the catalog.
func (s Store) InsertBook(ctx context.Context, book core.Book) error {
	sqlQuery, err := s.toSQL(ctx, opInsertBook, s.builder().Insert(tableBooks).Rows(goqu.Record{
		"book_id":             book.BookID.String(),
		"title":               book.Title,
		"author":              book.Author,
		"isbn":                nullIfEmpty(book.ISBN),
		"category":            nullIfEmpty(book.Category),
		"description":         nullIfEmpty(book.Description),
		"pages":               nullIfZero(book.Pages),
		"publication_year":    nullIfZero(book.PublicationYear),
		"copies_total":        book.CopiesTotal,
		"copies_available":    book.CopiesAvailable,
		"availability_status": string(book.AvailabilityStatus),
	}))
	if err != nil {
		return err
	}

	return s.execGuarded(ctx, opInsertBook, sqlQuery)
}

// UpdateBook writes all fields of book, guarded by the copy counters that were loaded in expected.
// If a loan or return changed the counters in the meantime, ledger.ErrConcurrencyConflict is returned.
func (s Store) UpdateBook(ctx context.Context, book core.Book, expected core.Book) error {
	sqlQuery, err := s.toSQL(ctx, opUpdateBook, s.builder().Update(tableBooks).
		Set(goqu.Record{
			"title":               book.Title,
			"author":              book.Author,
			"isbn":                nullIfEmpty(book.ISBN),
			"category":            nullIfEmpty(book.Category),
			"description":         nullIfEmpty(book.Description),
			"pages":               nullIfZero(book.Pages),
			"publication_year":    nullIfZero(book.PublicationYear),
			"copies_total":        book.CopiesTotal,
			"copies_available":    book.CopiesAvailable,
			"availability_status": string(book.AvailabilityStatus),
			"updated_at":          goqu.L("now()"),
		}).
		Where(
			goqu.C("book_id").Eq(book.BookID.String()),
			goqu.C("copies_total").Eq(expected.CopiesTotal),
			goqu.C("copies_available").Eq(expected.CopiesAvailable),
		))
	if err != nil {
		return err
	}

	return s.execGuarded(ctx, opUpdateBook, sqlQuery)
}

// DeleteBook removes a book. Its loans, reservations and fines are removed by the schema's cascades.
func (s Store) DeleteBook(ctx context.Context, bookID uuid.UUID) error {
	sqlQuery, err := s.toSQL(ctx, opDeleteBook,
		s.builder().Delete(tableBooks).Where(goqu.C("book_id").Eq(bookID.String())))
	if err != nil {
		return err
	}

	return s.execGuarded(ctx, opDeleteBook, sqlQuery)
}

// DecreaseAvailability takes one copy off the shelf and returns the new available count.
// The statement only applies while copies_available > 0, so concurrent borrowers can never
// push the counter below zero; the loser gets ledger.ErrConcurrencyConflict.
func (s Store) DecreaseAvailability(ctx context.Context, bookID uuid.UUID) (int, error) {
	return s.adjustAvailability(ctx, opDecreaseAvailability, s.builder().Update(tableBooks).
		Set(goqu.Record{
			"copies_available": goqu.L("copies_available - 1"),
			"availability_status": goqu.L(
				"(CASE WHEN copies_available - 1 > 0 THEN 'Available' ELSE 'Borrowed' END)::availability_status"),
			"updated_at": goqu.L("now()"),
		}).
		Where(
			goqu.C("book_id").Eq(bookID.String()),
			goqu.C("copies_available").Gt(0),
		).
		Returning(goqu.C("copies_available")))
}

// IncreaseAvailability puts one copy back, capped at copies_total, and returns the new available count.
func (s Store) IncreaseAvailability(ctx context.Context, bookID uuid.UUID) (int, error) {
	return s.adjustAvailability(ctx, opIncreaseAvailability, s.builder().Update(tableBooks).
		Set(goqu.Record{
			"copies_available": goqu.L("LEAST(copies_available + 1, copies_total)"),
			"availability_status": goqu.L(
				"(CASE WHEN LEAST(copies_available + 1, copies_total) > 0 THEN 'Available' ELSE 'Borrowed' END)::availability_status"),
			"updated_at": goqu.L("now()"),
		}).
		Where(goqu.C("book_id").Eq(bookID.String())).
		Returning(goqu.C("copies_available")))
}

func (s Store) adjustAvailability(ctx context.Context, operation string, ds *goqu.UpdateDataset) (int, error) {
	sqlQuery, err := s.toSQL(ctx, operation, ds)
	if err != nil {
		return 0, err
	}

	available := 0

	count, err := s.queryReturning(ctx, operation, sqlQuery, func(rows adapters.DBRows) error {
		return rows.Scan(&available)
	})
	if err != nil {
		return 0, err
	}

	if count != 1 {
		s.logOperationContext(ctx, logMsgConcurrencyConflict, logAttrOperation, operation, logAttrRowsAffected, count)
		s.recordConcurrencyConflictMetricsContext(ctx, operation)

		return 0, ledger.ErrConcurrencyConflict
	}

	return available, nil
}
