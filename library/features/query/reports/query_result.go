package reports

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

// Generated is a persisted report together with its decoded data.
type Generated struct {
	Report core.Report
	Data   any
}

// MonthCounts counts the loans borrowed in one month by their current status.
type MonthCounts struct {
	Borrowed int `json:"borrowed"`
	Returned int `json:"returned"`
}

// BorrowingTrends maps YYYY-MM to the loan counts of that month.
type BorrowingTrends struct {
	Trends map[string]MonthCounts `json:"trends"`
}

// BookCount is a book with its number of active loans.
type BookCount struct {
	BookID uuid.UUID        `json:"book_id"`
	Book   core.BookSummary `json:"book"`
	Count  int              `json:"count"`
}

// PopularBooks lists the most borrowed books.
type PopularBooks struct {
	PopularBooks []BookCount `json:"popularBooks"`
}

// OverdueLoan is an active loan past its due date.
type OverdueLoan struct {
	LoanID      uuid.UUID        `json:"loan_id"`
	BorrowDate  string           `json:"borrow_date"`
	DueDate     string           `json:"due_date"`
	DaysOverdue int              `json:"days_overdue"`
	Book        core.BookSummary `json:"book"`
	User        core.UserSummary `json:"user"`
	Fine        *FineSummary     `json:"fine"`
}

// FineSummary is the fine of an overdue loan.
type FineSummary struct {
	FineID        uuid.UUID `json:"fine_id"`
	Amount        string    `json:"amount"`
	PaymentStatus string    `json:"payment_status"`
}

// Overdue lists the overdue loans, most overdue first.
type Overdue struct {
	OverdueLoans []OverdueLoan `json:"overdueLoans"`
}

// FinesCollected totals the fines by payment status.
type FinesCollected struct {
	TotalCollected decimal.Decimal `json:"totalCollected"`
	TotalUnpaid    decimal.Decimal `json:"totalUnpaid"`
	PaidCount      int             `json:"paidCount"`
	UnpaidCount    int             `json:"unpaidCount"`
}

// UserCount is a user with their number of active loans.
type UserCount struct {
	UserID uuid.UUID        `json:"user_id"`
	User   core.UserSummary `json:"user"`
	Count  int              `json:"count"`
}

// ActiveUsers lists the users with active loans.
type ActiveUsers struct {
	ActiveUsers []UserCount `json:"activeUsers"`
}
