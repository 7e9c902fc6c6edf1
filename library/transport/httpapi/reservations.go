package httpapi

import (
	"net/http"
	"time"

	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/cancelreservation"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/createreservation"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/updatereservationstatus"
	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/listreservations"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell"
)

type reservationsResponse struct {
	Reservations []reservationResponse `json:"reservations"`
	Count        int                   `json:"count"`
}

func (s *Server) handleListReservations(w http.ResponseWriter, r *http.Request) {
	principal, err := shell.PrincipalFrom(r.Context())
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	userID, err := queryID(r, "user_id")
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	bookID, err := queryID(r, "book_id")
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	result, err := s.handlers.ListReservations.Handle(r.Context(),
		listreservations.BuildQuery(principal, r.URL.Query().Get("status"), userID, bookID))
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	writeJSON(w, http.StatusOK, reservationsResponse{
		Reservations: mapSlice(result.Reservations, toReservation),
		Count:        result.Count,
	})
}

type createReservationRequest struct {
	ReservationID string `json:"reservation_id"`
	BookID        string `json:"book_id"`
	UserID        string `json:"user_id"`
}

func (s *Server) handleCreateReservation(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	reservationID, err := optionalID("reservation_id", req.ReservationID)
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	bookID, err := requiredID("book_id", req.BookID)
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	userID, err := requiredID("user_id", req.UserID)
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	result, err := s.handlers.CreateReservation.Handle(r.Context(),
		createreservation.BuildCommand(reservationID, bookID, userID, time.Time{}))
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	writeJSON(w, createdOrOK(result.Idempotent), idResponse{ID: reservationID, Idempotent: result.Idempotent})
}

type patchReservationRequest struct {
	Status string `json:"status"`
}

func (s *Server) handlePatchReservation(w http.ResponseWriter, r *http.Request) {
	principal, err := shell.PrincipalFrom(r.Context())
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	reservationID, err := pathID(r, "id")
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	var req patchReservationRequest
	if err = decode(w, r, &req); err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	result, err := s.handlers.UpdateReservationStatus.Handle(r.Context(),
		updatereservationstatus.BuildCommand(reservationID, req.Status, principal, time.Time{}))
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	writeJSON(w, http.StatusOK, idResponse{ID: reservationID, Idempotent: result.Idempotent})
}

func (s *Server) handleCancelReservation(w http.ResponseWriter, r *http.Request) {
	principal, err := shell.PrincipalFrom(r.Context())
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	reservationID, err := pathID(r, "id")
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	if _, err = s.handlers.CancelReservation.Handle(r.Context(),
		cancelreservation.BuildCommand(reservationID, principal, time.Time{})); err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
