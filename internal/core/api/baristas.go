package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/godshot/godshot/internal/types"
)

type baristaRequest struct {
	DisplayName string `json:"display_name"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Timezone    string `json:"timezone"`
}

func (r baristaRequest) validate() error {
	if r.FirstName == "" {
		return fmt.Errorf("%w: first_name", types.ErrMissingField)
	}
	if r.Email == "" {
		return fmt.Errorf("%w: email", types.ErrMissingField)
	}
	if r.Timezone != "" {
		if _, err := time.LoadLocation(r.Timezone); err != nil {
			return fmt.Errorf("%w: %q", types.ErrInvalidTimezone, r.Timezone)
		}
	}
	return nil
}

func (s *Service) listBaristas(w http.ResponseWriter, r *http.Request) {
	rows := []types.Barista{}
	if err := s.q.SelectContext(r.Context(), "list-baristas", &rows); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, rows)
}

func (s *Service) getBarista(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var row types.Barista
	if err := s.q.GetContext(r.Context(), "get-barista", &row, id); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, row)
}

func (s *Service) createBarista(w http.ResponseWriter, r *http.Request) {
	var req baristaRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		s.respondError(w, r, err)
		return
	}

	row := types.Barista{
		ID:          types.NewBaristaID(),
		DisplayName: req.DisplayName,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Timezone:    req.Timezone,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := s.q.ExecContext(r.Context(), "insert-barista",
		row.ID, row.DisplayName, row.FirstName, row.LastName,
		row.Email, row.Timezone, row.CreatedAt)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, row)
}

func (s *Service) updateBarista(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req baristaRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		s.respondError(w, r, err)
		return
	}

	var current types.Barista
	if err := s.q.GetContext(r.Context(), "get-barista", &current, id); err != nil {
		s.respondError(w, r, err)
		return
	}

	res, err := s.q.ExecContext(r.Context(), "update-barista",
		req.DisplayName, req.FirstName, req.LastName, req.Email, req.Timezone, id)
	if err == nil {
		err = rowsAffected(res)
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	// Identity or timezone changes must not be served stale to the namer.
	s.naming.InvalidateBarista(types.BaristaID(id))

	current.DisplayName = req.DisplayName
	current.FirstName = req.FirstName
	current.LastName = req.LastName
	current.Email = req.Email
	current.Timezone = req.Timezone
	s.respondJSON(w, http.StatusOK, current)
}

func (s *Service) deleteBarista(w http.ResponseWriter, r *http.Request) {
	if id, err := pathID(r); err == nil {
		s.naming.InvalidateBarista(types.BaristaID(id))
	}
	s.deleteByID(w, r, "delete-barista")
}
