package api

import (
	"fmt"
	"net/http"

	"github.com/godshot/godshot/internal/types"
)

// Admin handlers for the naming service. All routes here sit behind the
// HMAC authenticator; the actor recorded in overrides is the key's
// secret id, not a free-form string.

func (s *Service) getNamingMetrics(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.naming.Metrics())
}

func (s *Service) getNamingHealth(w http.ResponseWriter, r *http.Request) {
	report := s.naming.Health()
	status := http.StatusOK
	if report.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	s.respondJSON(w, status, report)
}

func (s *Service) exportNamingLogs(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	data, err := s.naming.ExportLogs(format)
	if err != nil {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
		return
	}

	contentType := "application/json"
	if format == "csv" {
		contentType = "text/csv"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.log.Error().Err(err).Msg("log export write failed")
	}
}

type overrideRequest struct {
	EntityKind string `json:"entity_kind"`
	EntityID   string `json:"entity_id"`
	OldName    string `json:"old_name"`
	NewName    string `json:"new_name"`
	Reason     string `json:"reason"`
}

func (r overrideRequest) validate() error {
	if r.EntityKind != "bag" && r.EntityKind != "brew" {
		return fmt.Errorf("%w: entity_kind must be bag or brew", types.ErrMissingField)
	}
	if _, err := types.ParseID(r.EntityID); err != nil {
		return fmt.Errorf("%w: entity_id: %v", types.ErrInvalidID, err)
	}
	if r.NewName == "" {
		return fmt.Errorf("%w: new_name", types.ErrMissingField)
	}
	return nil
}

// recordNameOverride writes an override entry to the audit trail without
// touching the row itself. Renames done through PUT are audited inline;
// this endpoint covers out-of-band corrections.
func (s *Service) recordNameOverride(w http.ResponseWriter, r *http.Request) {
	var req overrideRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.naming.LogAdminOverride(req.EntityKind, req.EntityID,
		req.OldName, req.NewName, s.actor(r), req.Reason)
	w.WriteHeader(http.StatusNoContent)
}
