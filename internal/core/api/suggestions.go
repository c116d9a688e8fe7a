package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/godshot/godshot/internal/types"
)

type suggestionRequest struct {
	GrinderID          string   `json:"grinder_id"`
	BagID              string   `json:"bag_id"`
	BeanID             string   `json:"bean_id"`
	Suggestion         *float64 `json:"suggestion"`
	FriendlySuggestion *string  `json:"friendly_suggestion"`
	SuggestionMethod   *string  `json:"suggestion_method"`
}

func (r suggestionRequest) validate(target string) error {
	if _, err := types.ParseID(r.GrinderID); err != nil {
		return fmt.Errorf("%w: grinder_id: %v", types.ErrInvalidID, err)
	}
	var targetID string
	switch target {
	case "bag":
		targetID = r.BagID
	case "bean":
		targetID = r.BeanID
	}
	if _, err := types.ParseID(targetID); err != nil {
		return fmt.Errorf("%w: %s_id: %v", types.ErrInvalidID, target, err)
	}
	return nil
}

func (s *Service) listBagSuggestions(w http.ResponseWriter, r *http.Request) {
	s.listSuggestions(w, r, "list-bag-suggestions")
}

func (s *Service) listBeanSuggestions(w http.ResponseWriter, r *http.Request) {
	s.listSuggestions(w, r, "list-bean-suggestions")
}

func (s *Service) listSuggestions(w http.ResponseWriter, r *http.Request, query string) {
	rows := []types.GrinderSuggestion{}
	if err := s.q.SelectContext(r.Context(), query, &rows); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, rows)
}

func (s *Service) listBagSuggestionsByBag(w http.ResponseWriter, r *http.Request) {
	s.listSuggestionsFiltered(w, r, "list-bag-suggestions-by-bag")
}

func (s *Service) listBagSuggestionsByGrinder(w http.ResponseWriter, r *http.Request) {
	s.listSuggestionsFiltered(w, r, "list-bag-suggestions-by-grinder")
}

func (s *Service) listBeanSuggestionsByBean(w http.ResponseWriter, r *http.Request) {
	s.listSuggestionsFiltered(w, r, "list-bean-suggestions-by-bean")
}

func (s *Service) listBeanSuggestionsByGrinder(w http.ResponseWriter, r *http.Request) {
	s.listSuggestionsFiltered(w, r, "list-bean-suggestions-by-grinder")
}

func (s *Service) listSuggestionsFiltered(w http.ResponseWriter, r *http.Request, query string) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	rows := []types.GrinderSuggestion{}
	if err := s.q.SelectContext(r.Context(), query, &rows, id); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, rows)
}

func (s *Service) getBagSuggestion(w http.ResponseWriter, r *http.Request) {
	s.getSuggestion(w, r, "get-bag-suggestion")
}

func (s *Service) getBeanSuggestion(w http.ResponseWriter, r *http.Request) {
	s.getSuggestion(w, r, "get-bean-suggestion")
}

func (s *Service) getSuggestion(w http.ResponseWriter, r *http.Request, query string) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var row types.GrinderSuggestion
	if err := s.q.GetContext(r.Context(), query, &row, id); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, row)
}

func (s *Service) createBagSuggestion(w http.ResponseWriter, r *http.Request) {
	var req suggestionRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := req.validate("bag"); err != nil {
		s.respondError(w, r, err)
		return
	}

	now := time.Now().UTC()
	bagID := types.BagID(req.BagID)
	row := types.GrinderSuggestion{
		ID:                  types.NewSuggestionID(),
		GrinderID:           types.GrinderID(req.GrinderID),
		BagID:               &bagID,
		Suggestion:          req.Suggestion,
		FriendlySuggestion:  req.FriendlySuggestion,
		SuggestionMethod:    req.SuggestionMethod,
		GenerationTimestamp: &now,
	}
	_, err := s.q.ExecContext(r.Context(), "insert-bag-suggestion",
		row.ID, row.GrinderID, row.BagID, row.Suggestion,
		row.FriendlySuggestion, row.SuggestionMethod, row.GenerationTimestamp)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, row)
}

func (s *Service) createBeanSuggestion(w http.ResponseWriter, r *http.Request) {
	var req suggestionRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := req.validate("bean"); err != nil {
		s.respondError(w, r, err)
		return
	}

	now := time.Now().UTC()
	beanID := types.BeanID(req.BeanID)
	row := types.GrinderSuggestion{
		ID:                  types.NewSuggestionID(),
		GrinderID:           types.GrinderID(req.GrinderID),
		BeanID:              &beanID,
		Suggestion:          req.Suggestion,
		FriendlySuggestion:  req.FriendlySuggestion,
		SuggestionMethod:    req.SuggestionMethod,
		GenerationTimestamp: &now,
	}
	_, err := s.q.ExecContext(r.Context(), "insert-bean-suggestion",
		row.ID, row.GrinderID, row.BeanID, row.Suggestion,
		row.FriendlySuggestion, row.SuggestionMethod, row.GenerationTimestamp)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, row)
}

func (s *Service) updateBagSuggestion(w http.ResponseWriter, r *http.Request) {
	s.updateSuggestion(w, r, "bag")
}

func (s *Service) updateBeanSuggestion(w http.ResponseWriter, r *http.Request) {
	s.updateSuggestion(w, r, "bean")
}

// updateSuggestion rewrites every caller-settable column and echoes the
// stored row back, preserving the original generation timestamp.
func (s *Service) updateSuggestion(w http.ResponseWriter, r *http.Request, target string) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req suggestionRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := req.validate(target); err != nil {
		s.respondError(w, r, err)
		return
	}

	targetID := req.BagID
	if target == "bean" {
		targetID = req.BeanID
	}
	res, err := s.q.ExecContext(r.Context(), "update-"+target+"-suggestion",
		req.GrinderID, targetID, req.Suggestion,
		req.FriendlySuggestion, req.SuggestionMethod, id)
	if err == nil {
		err = rowsAffected(res)
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var row types.GrinderSuggestion
	if err := s.q.GetContext(r.Context(), "get-"+target+"-suggestion", &row, id); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, row)
}

func (s *Service) deleteBagSuggestion(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, "delete-bag-suggestion")
}

func (s *Service) deleteBeanSuggestion(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, "delete-bean-suggestion")
}
