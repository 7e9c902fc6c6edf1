package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

const healthTimeout = 2 * time.Second

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := s.pinger.Ping(ctx); err != nil {
		s.logger.WarnContext(r.Context(), "health check failed", "error", err.Error())
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": "down"})

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "database": "up"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	session, err := s.authenticator.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		Token:     session.Token,
		UserID:    session.UserID,
		Role:      string(session.Role),
		ExpiresAt: session.ExpiresAt,
	})
}

// handleLogout revokes the session behind the bearer token, which authenticated already validated.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token, err := uuid.Parse(strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), bearerPrefix)))
	if err != nil {
		s.fail(r.Context(), w, core.ErrUnauthorized)

		return
	}

	if err = s.authenticator.Logout(r.Context(), token); err != nil {
		s.fail(r.Context(), w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
