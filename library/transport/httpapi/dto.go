package httpapi

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/bookhistory"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/listusers"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

type bookResponse struct {
	BookID             uuid.UUID `json:"book_id"`
	Title              string    `json:"title"`
	Author             string    `json:"author"`
	ISBN               string    `json:"isbn,omitempty"`
	Category           string    `json:"category,omitempty"`
	Description        string    `json:"description,omitempty"`
	Pages              int       `json:"pages,omitempty"`
	PublicationYear    int       `json:"publication_year,omitempty"`
	CopiesTotal        int       `json:"copies_total"`
	CopiesAvailable    int       `json:"copies_available"`
	AvailabilityStatus string    `json:"availability_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func toBook(book core.Book) bookResponse {
	return bookResponse{
		BookID:             book.BookID,
		Title:              book.Title,
		Author:             book.Author,
		ISBN:               book.ISBN,
		Category:           book.Category,
		Description:        book.Description,
		Pages:              book.Pages,
		PublicationYear:    book.PublicationYear,
		CopiesTotal:        book.CopiesTotal,
		CopiesAvailable:    book.CopiesAvailable,
		AvailabilityStatus: string(book.AvailabilityStatus),
		CreatedAt:          book.CreatedAt,
		UpdatedAt:          book.UpdatedAt,
	}
}

type fineResponse struct {
	FineID        uuid.UUID `json:"fine_id"`
	LoanID        uuid.UUID `json:"loan_id"`
	Amount        string    `json:"amount"`
	PaymentStatus string    `json:"payment_status"`
	DaysOverdue   int       `json:"days_overdue"`
	RatePerDay    string    `json:"rate_per_day"`
	Assessment    string    `json:"assessment"`
}

func toFine(fine core.Fine) fineResponse {
	return fineResponse{
		FineID:        fine.FineID,
		LoanID:        fine.LoanID,
		Amount:        fine.Amount.StringFixed(2),
		PaymentStatus: string(fine.PaymentStatus),
		DaysOverdue:   fine.DaysOverdue,
		RatePerDay:    fine.RatePerDay.StringFixed(2),
		Assessment:    string(fine.Assessment),
	}
}

type loanResponse struct {
	LoanID     uuid.UUID        `json:"loan_id"`
	BookID     uuid.UUID        `json:"book_id"`
	UserID     uuid.UUID        `json:"user_id"`
	BorrowDate string           `json:"borrow_date"`
	DueDate    string           `json:"due_date"`
	ReturnDate *string          `json:"return_date"`
	Status     string           `json:"status"`
	Book       core.BookSummary `json:"book"`
	User       core.UserSummary `json:"user"`
	Fine       *fineResponse    `json:"fine"`
}

func toLoan(loan core.LoanDetails) loanResponse {
	response := loanResponse{
		LoanID:     loan.LoanID,
		BookID:     loan.BookID,
		UserID:     loan.UserID,
		BorrowDate: core.FormatDate(loan.BorrowDate),
		DueDate:    core.FormatDate(loan.DueDate),
		Status:     string(loan.Status),
		Book:       loan.Book,
		User:       loan.User,
	}

	if loan.ReturnDate != nil {
		returnDate := core.FormatDate(*loan.ReturnDate)
		response.ReturnDate = &returnDate
	}

	if loan.Fine != nil {
		fine := toFine(*loan.Fine)
		response.Fine = &fine
	}

	return response
}

type reservationResponse struct {
	ReservationID   uuid.UUID        `json:"reservation_id"`
	BookID          uuid.UUID        `json:"book_id"`
	UserID          uuid.UUID        `json:"user_id"`
	ReservationDate string           `json:"reservation_date"`
	Status          string           `json:"status"`
	Book            core.BookSummary `json:"book"`
	User            core.UserSummary `json:"user"`
}

func toReservation(reservation core.ReservationDetails) reservationResponse {
	return reservationResponse{
		ReservationID:   reservation.ReservationID,
		BookID:          reservation.BookID,
		UserID:          reservation.UserID,
		ReservationDate: core.FormatDate(reservation.ReservationDate),
		Status:          string(reservation.Status),
		Book:            reservation.Book,
		User:            reservation.User,
	}
}

type fineDetailsResponse struct {
	fineResponse
	DueDate    string           `json:"due_date"`
	ReturnDate *string          `json:"return_date"`
	Book       core.BookSummary `json:"book"`
	User       core.UserSummary `json:"user"`
}

func toFineDetails(fine core.FineDetails) fineDetailsResponse {
	response := fineDetailsResponse{
		fineResponse: toFine(fine.Fine),
		DueDate:      core.FormatDate(fine.Loan.DueDate),
		Book:         fine.Book,
		User:         fine.User,
	}

	if fine.Loan.ReturnDate != nil {
		returnDate := core.FormatDate(*fine.Loan.ReturnDate)
		response.ReturnDate = &returnDate
	}

	return response
}

type userResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toUser(user listusers.UserInfo) userResponse {
	return userResponse{
		UserID:    user.UserID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

type historyEntryResponse struct {
	SequenceNumber uint      `json:"sequence_number"`
	EventType      string    `json:"event_type"`
	OccurredAt     time.Time `json:"occurred_at"`
	Failed         bool      `json:"failed"`
	Event          any       `json:"event"`
}

func toHistoryEntry(entry bookhistory.Entry) historyEntryResponse {
	return historyEntryResponse{
		SequenceNumber: entry.SequenceNumber,
		EventType:      entry.EventType,
		OccurredAt:     entry.OccurredAt,
		Failed:         entry.Failed,
		Event:          entry.Event,
	}
}

type sessionResponse struct {
	Token     uuid.UUID `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

func mapSlice[T any, R any](items []T, fn func(T) R) []R {
	mapped := make([]R, 0, len(items))
	for _, item := range items {
		mapped = append(mapped, fn(item))
	}

	return mapped
}
