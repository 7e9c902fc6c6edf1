package httpapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

const (
	codeRouteNotFound      = "route_not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeInternal           = "internal"
	codeConflict           = "conflict"

	maxBodyBytes = 1 << 20
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type idResponse struct {
	ID         uuid.UUID `json:"id"`
	Idempotent bool      `json:"idempotent"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := codec.Marshal(payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternal, "internal error")

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, code string, msg string) {
	body, err := codec.Marshal(errorResponse{Error: msg, Code: code})
	if err != nil {
		body = []byte(`{"error":"internal error","code":"internal"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// fail writes err with the status of its business error.
// Anything else is logged and answered with a generic 500 so that infrastructure details stay internal.
// A concurrency conflict that survived all retries is answered with 409, the request may be repeated.
func (s *Server) fail(ctx context.Context, w http.ResponseWriter, err error) {
	status := core.StatusCode(err)

	if status == http.StatusInternalServerError && errors.Is(err, ledger.ErrConcurrencyConflict) {
		s.logger.WarnContext(ctx, "request gave up on a concurrency conflict", slog.String("error", err.Error()))
		writeError(w, http.StatusConflict, codeConflict, "the resource was changed concurrently, please retry")

		return
	}

	if status == http.StatusInternalServerError {
		if errors.Is(err, context.Canceled) {
			return
		}

		s.logger.ErrorContext(ctx, "request failed", slog.String("error", err.Error()))
		writeError(w, status, codeInternal, "internal error")

		return
	}

	writeError(w, status, core.ErrorCode(err), err.Error())
}

// decode reads a JSON body into dst. Unknown fields and trailing data are rejected.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := codec.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return core.Invalid("request body is required")
		}

		return core.Invalid("invalid request body: %v", err)
	}

	if decoder.More() {
		return core.Invalid("request body must contain a single JSON object")
	}

	return nil
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, core.Invalid("%s must be a UUID", name)
	}

	return id, nil
}

// optionalID parses s, generating a new ID when s is empty.
func optionalID(name string, s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.New(), nil
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, core.Invalid("%s must be a UUID", name)
	}

	return id, nil
}

func requiredID(name string, s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, core.Invalid("%s is required", name)
	}

	return optionalID(name, s)
}

func queryID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, core.Invalid("%s must be a UUID", name)
	}

	return &id, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, core.Invalid("%s must be a non-negative integer", name)
	}

	return n, nil
}

// optionalDate parses a YYYY-MM-DD date, the zero time when s is empty.
func optionalDate(name string, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	t, err := core.ParseDate(s)
	if err != nil {
		return time.Time{}, core.Invalid("%s must be formatted as YYYY-MM-DD", name)
	}

	return t, nil
}
