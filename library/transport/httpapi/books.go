package httpapi

import (
	"net/http"
	"time"

	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/removebook"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/updatebook"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/bookhistory"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/getbook"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/listbooks"
)

type bookPageResponse struct {
	Books      []bookResponse `json:"books"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	params := r.URL.Query()
	result, err := s.handlers.ListBooks.Handle(r.Context(), listbooks.BuildQuery(params.Get("search"), params.Get("category"), page, limit))
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	writeJSON(w, http.StatusOK, bookPageResponse{
		Books:      mapSlice(result.Books, toBook),
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := pathID(r, "id")
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	book, err := s.handlers.GetBook.Handle(r.Context(), getbook.BuildQuery(bookID))
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	writeJSON(w, http.StatusOK, toBook(book))
}

type addBookRequest struct {
	BookID          string `json:"book_id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	Category        string `json:"category"`
	Description     string `json:"description"`
	Pages           int    `json:"pages"`
	PublicationYear int    `json:"publication_year"`
	CopiesTotal     int    `json:"copies_total"`
	CopiesAvailable *int   `json:"copies_available"`
}

func (s *Server) handleAddBook(w http.ResponseWriter, r *http.Request) {
	var req addBookRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	bookID, err := optionalID("book_id", req.BookID)
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	details := addbook.Details{
		Title:           req.Title,
		Author:          req.Author,
		ISBN:            req.ISBN,
		Category:        req.Category,
		Description:     req.Description,
		Pages:           req.Pages,
		PublicationYear: req.PublicationYear,
	}

	result, err := s.handlers.AddBook.Handle(r.Context(),
		addbook.BuildCommand(bookID, details, req.CopiesTotal, req.CopiesAvailable, time.Time{}))
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	book, err := s.handlers.GetBook.Handle(r.Context(), getbook.BuildQuery(bookID))
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	writeJSON(w, createdOrOK(result.Idempotent), toBook(book))
}

type updateBookRequest struct {
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	ISBN            *string `json:"isbn"`
	Category        *string `json:"category"`
	Description     *string `json:"description"`
	Pages           *int    `json:"pages"`
	PublicationYear *int    `json:"publication_year"`
	CopiesTotal     *int    `json:"copies_total"`
	CopiesAvailable *int    `json:"copies_available"`
}

func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := pathID(r, "id")
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	var req updateBookRequest
	if err = decode(w, r, &req); err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	changes := updatebook.Changes{
		Title:           req.Title,
		Author:          req.Author,
		ISBN:            req.ISBN,
		Category:        req.Category,
		Description:     req.Description,
		Pages:           req.Pages,
		PublicationYear: req.PublicationYear,
		CopiesTotal:     req.CopiesTotal,
		CopiesAvailable: req.CopiesAvailable,
	}

	if _, err = s.handlers.UpdateBook.Handle(r.Context(), updatebook.BuildCommand(bookID, changes, time.Time{})); err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	book, err := s.handlers.GetBook.Handle(r.Context(), getbook.BuildQuery(bookID))
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	writeJSON(w, http.StatusOK, toBook(book))
}

func (s *Server) handleRemoveBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := pathID(r, "id")
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	if _, err = s.handlers.RemoveBook.Handle(r.Context(), removebook.BuildCommand(bookID, time.Time{})); err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type historyResponse struct {
	Entries []historyEntryResponse `json:"entries"`
	Count   int                    `json:"count"`
}

func (s *Server) handleBookHistory(w http.ResponseWriter, r *http.Request) {
	bookID, err := pathID(r, "id")
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	history, err := s.handlers.BookHistory.Handle(r.Context(), bookhistory.BuildQuery(bookID, uint(limit)))
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	writeJSON(w, http.StatusOK, historyResponse{Entries: mapSlice(history.Entries, toHistoryEntry), Count: history.Count})
}

func createdOrOK(idempotent bool) int {
	if idempotent {
		return http.StatusOK
	}

	return http.StatusCreated
}
