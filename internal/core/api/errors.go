package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/godshot/godshot/internal/types"
)

var errMalformedBody = errors.New("malformed JSON body")

// errorResponse is the uniform error body.
type errorResponse struct {
	Detail string `json:"detail"`
}

// respondJSON writes v with the given status. Encoding failures are logged
// and dropped; headers are already sent at that point.
func (s *Service) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("response encoding failed")
	}
}

// respondError maps domain errors to HTTP statuses:
// not-found -> 404, validation -> 400, everything else -> 500 (logged).
func (s *Service) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, types.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		s.respondJSON(w, http.StatusNotFound, errorResponse{Detail: "not found"})
	case errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidRoastLevel),
		errors.Is(err, types.ErrMissingField),
		errors.Is(err, types.ErrInvalidTimezone),
		errors.Is(err, errMalformedBody):
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
	default:
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		s.respondJSON(w, http.StatusInternalServerError, errorResponse{Detail: "internal error"})
	}
}

// decode reads the request body into dst, reporting malformed JSON as a
// validation error.
func decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	return nil
}
