package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/godshot/godshot/internal/naming"
	"github.com/godshot/godshot/internal/types"
)

type brewRequest struct {
	Name         string     `json:"name"`
	MachineID    string     `json:"machine_id"`
	BagID        string     `json:"bag_id"`
	GrinderID    string     `json:"grinder_id"`
	BaristaID    string     `json:"barista_id"`
	BrewTime     *float64   `json:"brew_time"`
	Timestamp    *time.Time `json:"timestamp"`
	Dose         *float64   `json:"dose"`
	Yield        *float64   `json:"yield"`
	Rating       *int       `json:"rating"`
	TastingNotes *string    `json:"tasting_notes"`
	Reflections  *string    `json:"reflections"`

	// Timezone is a per-request IANA zone hint for name bucketing. It is
	// not persisted; the barista's stored preference is the fallback.
	Timezone string `json:"timezone"`
}

func (r brewRequest) validate() error {
	for field, id := range map[string]string{
		"machine_id": r.MachineID,
		"bag_id":     r.BagID,
		"grinder_id": r.GrinderID,
		"barista_id": r.BaristaID,
	} {
		if _, err := types.ParseID(id); err != nil {
			return fmt.Errorf("%w: %s: %v", types.ErrInvalidID, field, err)
		}
	}
	return nil
}

func (s *Service) listBrews(w http.ResponseWriter, r *http.Request) {
	s.listBrewsQuery(w, r, "list-brews")
}

func (s *Service) listBrewsByBarista(w http.ResponseWriter, r *http.Request) {
	s.listBrewsFiltered(w, r, "list-brews-by-barista")
}

func (s *Service) listBrewsByBag(w http.ResponseWriter, r *http.Request) {
	s.listBrewsFiltered(w, r, "list-brews-by-bag")
}

func (s *Service) listBrewsByBean(w http.ResponseWriter, r *http.Request) {
	s.listBrewsFiltered(w, r, "list-brews-by-bean")
}

func (s *Service) listBrewsQuery(w http.ResponseWriter, r *http.Request, query string) {
	rows := []types.Brew{}
	if err := s.q.SelectContext(r.Context(), query, &rows); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, rows)
}

func (s *Service) listBrewsFiltered(w http.ResponseWriter, r *http.Request, query string) {
	id, err := types.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %v", types.ErrInvalidID, err))
		return
	}
	rows := []types.Brew{}
	if err := s.q.SelectContext(r.Context(), query, &rows, id); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, rows)
}

func (s *Service) getBrew(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var row types.Brew
	if err := s.q.GetContext(r.Context(), "get-brew", &row, id); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, row)
}

func (s *Service) createBrew(w http.ResponseWriter, r *http.Request) {
	var req brewRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		s.respondError(w, r, err)
		return
	}

	at := time.Now().UTC()
	if req.Timestamp != nil {
		at = req.Timestamp.UTC()
	}

	name := req.Name
	if name == "" {
		hints := naming.TimezoneHints{Request: req.Timezone}
		var barista types.Barista
		if err := s.q.GetContext(r.Context(), "get-barista", &barista, req.BaristaID); err == nil {
			hints.Stored = barista.Timezone
		}
		name = s.naming.GenerateBrewName(r.Context(),
			types.BaristaID(req.BaristaID), types.BagID(req.BagID), at, hints)
	}

	row := types.Brew{
		ID:           types.NewBrewID(),
		Name:         name,
		MachineID:    types.MachineID(req.MachineID),
		BagID:        types.BagID(req.BagID),
		GrinderID:    types.GrinderID(req.GrinderID),
		BaristaID:    types.BaristaID(req.BaristaID),
		BrewTime:     req.BrewTime,
		Timestamp:    at,
		Dose:         req.Dose,
		Yield:        req.Yield,
		Rating:       req.Rating,
		TastingNotes: req.TastingNotes,
		Reflections:  req.Reflections,
	}
	_, err := s.q.ExecContext(r.Context(), "insert-brew",
		row.ID, row.Name, row.MachineID, row.BagID, row.GrinderID, row.BaristaID,
		row.BrewTime, row.Timestamp, row.Dose, row.Yield, row.Rating,
		row.TastingNotes, row.Reflections)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, row)
}

func (s *Service) updateBrew(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req brewRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		s.respondError(w, r, err)
		return
	}
	if req.Name == "" {
		s.respondError(w, r, fmt.Errorf("%w: name", types.ErrMissingField))
		return
	}

	var current types.Brew
	if err := s.q.GetContext(r.Context(), "get-brew", &current, id); err != nil {
		s.respondError(w, r, err)
		return
	}

	at := current.Timestamp
	if req.Timestamp != nil {
		at = req.Timestamp.UTC()
	}

	res, err := s.q.ExecContext(r.Context(), "update-brew",
		req.Name, req.MachineID, req.BagID, req.GrinderID, req.BrewTime, at,
		req.Dose, req.Yield, req.Rating, req.TastingNotes, req.Reflections, id)
	if err == nil {
		err = rowsAffected(res)
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if req.Name != current.Name {
		s.naming.LogAdminOverride("brew", id, current.Name, req.Name,
			s.actor(r), "rename via api")
	}

	current.Name = req.Name
	current.MachineID = types.MachineID(req.MachineID)
	current.BagID = types.BagID(req.BagID)
	current.GrinderID = types.GrinderID(req.GrinderID)
	current.BrewTime = req.BrewTime
	current.Timestamp = at
	current.Dose = req.Dose
	current.Yield = req.Yield
	current.Rating = req.Rating
	current.TastingNotes = req.TastingNotes
	current.Reflections = req.Reflections
	s.respondJSON(w, http.StatusOK, current)
}

func (s *Service) deleteBrew(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, "delete-brew")
}
