package reports

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

const popularBooksLimit = 10

// ProjectBorrowingTrends groups loans by borrow month.
func ProjectBorrowingTrends(loans []core.LoanDetails) BorrowingTrends {
	trends := make(map[string]MonthCounts)

	for _, loan := range loans {
		month := loan.BorrowDate.UTC().Format("2006-01")
		counts := trends[month]

		switch loan.Status {
		case core.LoanBorrowed:
			counts.Borrowed++
		case core.LoanReturned:
			counts.Returned++
		}

		trends[month] = counts
	}

	return BorrowingTrends{Trends: trends}
}

// ProjectPopularBooks counts active loans per book and keeps the top ten, ties ordered by title.
func ProjectPopularBooks(loans []core.LoanDetails) PopularBooks {
	counts := make(map[uuid.UUID]*BookCount)

	for _, loan := range loans {
		if !loan.IsActive() {
			continue
		}

		entry, ok := counts[loan.BookID]
		if !ok {
			entry = &BookCount{BookID: loan.BookID, Book: loan.Book}
			counts[loan.BookID] = entry
		}

		entry.Count++
	}

	books := make([]BookCount, 0, len(counts))
	for _, entry := range counts {
		books = append(books, *entry)
	}

	slices.SortFunc(books, func(a, b BookCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}

		return strings.Compare(a.Book.Title, b.Book.Title)
	})

	if len(books) > popularBooksLimit {
		books = books[:popularBooksLimit]
	}

	return PopularBooks{PopularBooks: books}
}

// ProjectOverdue lists active loans whose due date is before today.
func ProjectOverdue(loans []core.LoanDetails, today time.Time) Overdue {
	overdue := make([]OverdueLoan, 0)

	for _, loan := range loans {
		if !loan.IsOverdue(today) {
			continue
		}

		var fine *FineSummary
		if loan.Fine != nil {
			fine = &FineSummary{
				FineID:        loan.Fine.FineID,
				Amount:        loan.Fine.Amount.StringFixed(2),
				PaymentStatus: string(loan.Fine.PaymentStatus),
			}
		}

		overdue = append(overdue, OverdueLoan{
			LoanID:      loan.LoanID,
			BorrowDate:  core.FormatDate(loan.BorrowDate),
			DueDate:     core.FormatDate(loan.DueDate),
			DaysOverdue: core.DaysOverdue(loan.DueDate, today),
			Book:        loan.Book,
			User:        loan.User,
			Fine:        fine,
		})
	}

	slices.SortStableFunc(overdue, func(a, b OverdueLoan) int {
		return cmp.Compare(b.DaysOverdue, a.DaysOverdue)
	})

	return Overdue{OverdueLoans: overdue}
}

// ProjectFinesCollected sums paid and unpaid fines.
func ProjectFinesCollected(fines []core.FineDetails) FinesCollected {
	result := FinesCollected{TotalCollected: decimal.Zero, TotalUnpaid: decimal.Zero}

	for _, fine := range fines {
		switch fine.PaymentStatus {
		case core.PaymentPaid:
			result.TotalCollected = result.TotalCollected.Add(fine.Amount)
			result.PaidCount++
		case core.PaymentUnpaid:
			result.TotalUnpaid = result.TotalUnpaid.Add(fine.Amount)
			result.UnpaidCount++
		}
	}

	return result
}

// ProjectActiveUsers counts active loans per user, most loans first, ties ordered by name.
func ProjectActiveUsers(loans []core.LoanDetails) ActiveUsers {
	counts := make(map[uuid.UUID]*UserCount)

	for _, loan := range loans {
		if !loan.IsActive() {
			continue
		}

		entry, ok := counts[loan.UserID]
		if !ok {
			entry = &UserCount{UserID: loan.UserID, User: loan.User}
			counts[loan.UserID] = entry
		}

		entry.Count++
	}

	users := make([]UserCount, 0, len(counts))
	for _, entry := range counts {
		users = append(users, *entry)
	}

	slices.SortFunc(users, func(a, b UserCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}

		return strings.Compare(a.User.Name, b.User.Name)
	})

	return ActiveUsers{ActiveUsers: users}
}
