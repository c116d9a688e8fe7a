package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/godshot/godshot/internal/types"
)

// pathID extracts and validates the {id} route parameter.
func pathID(r *http.Request) (string, error) {
	id, err := types.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrInvalidID, err)
	}
	return id, nil
}

// rowsAffected converts a zero-row mutation into a not-found error.
func rowsAffected(res interface{ RowsAffected() (int64, error) }) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// --- roasters ---

type roasterRequest struct {
	Name string `json:"name"`
}

func (s *Service) listRoasters(w http.ResponseWriter, r *http.Request) {
	rows := []types.Roaster{}
	if err := s.q.SelectContext(r.Context(), "list-roasters", &rows); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, rows)
}

func (s *Service) getRoaster(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var row types.Roaster
	if err := s.q.GetContext(r.Context(), "get-roaster", &row, id); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, row)
}

func (s *Service) createRoaster(w http.ResponseWriter, r *http.Request) {
	var req roasterRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if req.Name == "" {
		s.respondError(w, r, fmt.Errorf("%w: name", types.ErrMissingField))
		return
	}

	row := types.Roaster{ID: types.NewRoasterID(), Name: req.Name}
	if _, err := s.q.ExecContext(r.Context(), "insert-roaster", row.ID, row.Name); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, row)
}

func (s *Service) updateRoaster(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req roasterRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	res, err := s.q.ExecContext(r.Context(), "update-roaster", req.Name, id)
	if err == nil {
		err = rowsAffected(res)
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, types.Roaster{ID: types.RoasterID(id), Name: req.Name})
}

func (s *Service) deleteRoaster(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, "delete-roaster")
}

// deleteByID runs a delete-* named query against the {id} parameter.
func (s *Service) deleteByID(w http.ResponseWriter, r *http.Request, query string) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	res, err := s.q.ExecContext(r.Context(), query, id)
	if err == nil {
		err = rowsAffected(res)
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- beans ---

type beanRequest struct {
	Name            string           `json:"name"`
	RoasterID       string           `json:"roaster_id"`
	RoastLevel      types.RoastLevel `json:"roast_level"`
	CountryOfOrigin *string          `json:"country_of_origin"`
	TastingNotes    *string          `json:"tasting_notes"`
	Rating          *int             `json:"rating"`
}

func (r beanRequest) validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: name", types.ErrMissingField)
	}
	if _, err := types.ParseID(r.RoasterID); err != nil {
		return fmt.Errorf("%w: roaster_id: %v", types.ErrInvalidID, err)
	}
	if !r.RoastLevel.Valid() {
		return fmt.Errorf("%w: %q", types.ErrInvalidRoastLevel, r.RoastLevel)
	}
	return nil
}

func (s *Service) listBeans(w http.ResponseWriter, r *http.Request) {
	rows := []types.Bean{}
	if err := s.q.SelectContext(r.Context(), "list-beans", &rows); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, rows)
}

func (s *Service) getBean(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var row types.Bean
	if err := s.q.GetContext(r.Context(), "get-bean", &row, id); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, row)
}

func (s *Service) createBean(w http.ResponseWriter, r *http.Request) {
	var req beanRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		s.respondError(w, r, err)
		return
	}

	row := types.Bean{
		ID:              types.NewBeanID(),
		Name:            req.Name,
		RoasterID:       types.RoasterID(req.RoasterID),
		RoastLevel:      req.RoastLevel,
		CountryOfOrigin: req.CountryOfOrigin,
		TastingNotes:    req.TastingNotes,
		Rating:          req.Rating,
	}
	_, err := s.q.ExecContext(r.Context(), "insert-bean",
		row.ID, row.Name, row.RoasterID, row.RoastLevel,
		row.CountryOfOrigin, row.TastingNotes, row.Rating)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, row)
}

func (s *Service) updateBean(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req beanRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		s.respondError(w, r, err)
		return
	}

	res, err := s.q.ExecContext(r.Context(), "update-bean",
		req.Name, req.RoasterID, req.RoastLevel,
		req.CountryOfOrigin, req.TastingNotes, req.Rating, id)
	if err == nil {
		err = rowsAffected(res)
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	// A renamed bean must not be served stale by the naming caches.
	s.naming.InvalidateBean(types.BeanID(id))

	row := types.Bean{
		ID:              types.BeanID(id),
		Name:            req.Name,
		RoasterID:       types.RoasterID(req.RoasterID),
		RoastLevel:      req.RoastLevel,
		CountryOfOrigin: req.CountryOfOrigin,
		TastingNotes:    req.TastingNotes,
		Rating:          req.Rating,
	}
	s.respondJSON(w, http.StatusOK, row)
}

func (s *Service) deleteBean(w http.ResponseWriter, r *http.Request) {
	if id, err := pathID(r); err == nil {
		s.naming.InvalidateBean(types.BeanID(id))
	}
	s.deleteByID(w, r, "delete-bean")
}

// --- machines ---

type machineRequest struct {
	Name           string  `json:"name"`
	Manufacturer   *string `json:"manufacturer"`
	UserManualLink *string `json:"user_manual_link"`
	Image          *string `json:"image"`
}

func (s *Service) listMachines(w http.ResponseWriter, r *http.Request) {
	rows := []types.Machine{}
	if err := s.q.SelectContext(r.Context(), "list-machines", &rows); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, rows)
}

func (s *Service) getMachine(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var row types.Machine
	if err := s.q.GetContext(r.Context(), "get-machine", &row, id); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, row)
}

func (s *Service) createMachine(w http.ResponseWriter, r *http.Request) {
	var req machineRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if req.Name == "" {
		s.respondError(w, r, fmt.Errorf("%w: name", types.ErrMissingField))
		return
	}

	row := types.Machine{
		ID:             types.NewMachineID(),
		Name:           req.Name,
		Manufacturer:   req.Manufacturer,
		UserManualLink: req.UserManualLink,
		Image:          req.Image,
	}
	_, err := s.q.ExecContext(r.Context(), "insert-machine",
		row.ID, row.Name, row.Manufacturer, row.UserManualLink, row.Image)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, row)
}

func (s *Service) updateMachine(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req machineRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	res, err := s.q.ExecContext(r.Context(), "update-machine",
		req.Name, req.Manufacturer, req.UserManualLink, req.Image, id)
	if err == nil {
		err = rowsAffected(res)
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, types.Machine{
		ID:             types.MachineID(id),
		Name:           req.Name,
		Manufacturer:   req.Manufacturer,
		UserManualLink: req.UserManualLink,
		Image:          req.Image,
	})
}

func (s *Service) deleteMachine(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, "delete-machine")
}

// --- grinders ---

type grinderRequest struct {
	Name              string  `json:"name"`
	UserManualLink    *string `json:"user_manual_link"`
	Image             *string `json:"image"`
	SettingGuideChart *string `json:"setting_guide_chart"`
}

func (s *Service) listGrinders(w http.ResponseWriter, r *http.Request) {
	rows := []types.Grinder{}
	if err := s.q.SelectContext(r.Context(), "list-grinders", &rows); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, rows)
}

func (s *Service) getGrinder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var row types.Grinder
	if err := s.q.GetContext(r.Context(), "get-grinder", &row, id); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, row)
}

func (s *Service) createGrinder(w http.ResponseWriter, r *http.Request) {
	var req grinderRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if req.Name == "" {
		s.respondError(w, r, fmt.Errorf("%w: name", types.ErrMissingField))
		return
	}

	row := types.Grinder{
		ID:                types.NewGrinderID(),
		Name:              req.Name,
		UserManualLink:    req.UserManualLink,
		Image:             req.Image,
		SettingGuideChart: req.SettingGuideChart,
	}
	_, err := s.q.ExecContext(r.Context(), "insert-grinder",
		row.ID, row.Name, row.UserManualLink, row.Image, row.SettingGuideChart)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, row)
}

func (s *Service) updateGrinder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req grinderRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	res, err := s.q.ExecContext(r.Context(), "update-grinder",
		req.Name, req.UserManualLink, req.Image, req.SettingGuideChart, id)
	if err == nil {
		err = rowsAffected(res)
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, types.Grinder{
		ID:                types.GrinderID(id),
		Name:              req.Name,
		UserManualLink:    req.UserManualLink,
		Image:             req.Image,
		SettingGuideChart: req.SettingGuideChart,
	})
}

func (s *Service) deleteGrinder(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, "delete-grinder")
}
