package httpapi

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell"
)

const (
	headerCorrelationID = "X-Correlation-ID"
	bearerPrefix        = "Bearer "
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestLogger logs method, path, status and duration of every request.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		logger.InfoContext(r.Context(), "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", recorder.status),
			slog.Float64("duration_ms", shell.ToMilliseconds(time.Since(start))),
		)
	})
}

// correlate puts the request's correlation ID into the context, so journal metadata can carry it.
// A missing or malformed X-Correlation-ID header gets a fresh ID.
func correlate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID, err := uuid.Parse(r.Header.Get(headerCorrelationID))
		if err != nil {
			correlationID = uuid.New()
		}

		w.Header().Set(headerCorrelationID, correlationID.String())
		next.ServeHTTP(w, r.WithContext(shell.WithCorrelationID(r.Context(), correlationID)))
	})
}

// cors adds CORS headers for the allow-list and answers preflight requests.
func cors(allowedOrigins []string, next http.Handler) http.Handler {
	allowAll := slices.Contains(allowedOrigins, "*")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""

		if origin == "" {
			next.ServeHTTP(w, r)

			return
		}

		if !allowAll && !slices.Contains(allowedOrigins, origin) {
			if preflight {
				writeError(w, http.StatusForbidden, core.ErrorCode(core.ErrForbidden), "origin not allowed")

				return
			}

			next.ServeHTTP(w, r)

			return
		}

		if allowAll {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}

		if preflight {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, "+headerCorrelationID)
			w.WriteHeader(http.StatusNoContent)

			return
		}

		next.ServeHTTP(w, r)
	})
}

// authenticated resolves the bearer token into a principal and checks its role.
// No roles means any authenticated user.
func (s *Server) authenticated(next http.HandlerFunc, roles ...core.Role) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			writeError(w, http.StatusUnauthorized, core.ErrorCode(core.ErrUnauthorized), "missing bearer token")

			return
		}

		principal, err := s.authenticator.Authenticate(r.Context(), strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			s.fail(r.Context(), w, err)

			return
		}

		if len(roles) > 0 && !slices.Contains(roles, principal.Role) {
			writeError(w, http.StatusForbidden, core.ErrorCode(core.ErrForbidden), "role "+string(principal.Role)+" may not do this")

			return
		}

		next.ServeHTTP(w, r.WithContext(shell.WithPrincipal(r.Context(), principal)))
	})
}
