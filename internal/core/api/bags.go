package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/godshot/godshot/internal/types"
)

// bagDateLayout renders a roast date into the synthesized bag name.
const bagDateLayout = "01/02/06"

type bagRequest struct {
	Name             string     `json:"name"`
	BeanID           string     `json:"bean_id"`
	BaristaID        string     `json:"barista_id"`
	RoastDate        *time.Time `json:"roast_date"`
	Weight           *float64   `json:"weight"`
	Price            *float64   `json:"price"`
	PurchaseLocation *string    `json:"purchase_location"`
	Rating           *int       `json:"rating"`
}

func (r bagRequest) validate() error {
	if _, err := types.ParseID(r.BeanID); err != nil {
		return fmt.Errorf("%w: bean_id: %v", types.ErrInvalidID, err)
	}
	if _, err := types.ParseID(r.BaristaID); err != nil {
		return fmt.Errorf("%w: barista_id: %v", types.ErrInvalidID, err)
	}
	return nil
}

func (s *Service) listBags(w http.ResponseWriter, r *http.Request) {
	rows := []types.Bag{}
	if err := s.q.SelectContext(r.Context(), "list-bags", &rows); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, rows)
}

func (s *Service) listBagsByBarista(w http.ResponseWriter, r *http.Request) {
	id, err := types.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %v", types.ErrInvalidID, err))
		return
	}
	rows := []types.Bag{}
	if err := s.q.SelectContext(r.Context(), "list-bags-by-barista", &rows, id); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, rows)
}

func (s *Service) getBag(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var row types.Bag
	if err := s.q.GetContext(r.Context(), "get-bag", &row, id); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, row)
}

func (s *Service) createBag(w http.ResponseWriter, r *http.Request) {
	var req bagRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		s.respondError(w, r, err)
		return
	}

	name := req.Name
	if name == "" {
		var dateLabel string
		if req.RoastDate != nil {
			dateLabel = req.RoastDate.Format(bagDateLayout)
		}
		name = s.naming.GenerateBagName(r.Context(),
			types.BaristaID(req.BaristaID), types.BeanID(req.BeanID), dateLabel)
	}

	row := types.Bag{
		ID:               types.NewBagID(),
		Name:             name,
		BeanID:           types.BeanID(req.BeanID),
		BaristaID:        types.BaristaID(req.BaristaID),
		RoastDate:        req.RoastDate,
		Weight:           req.Weight,
		Price:            req.Price,
		PurchaseLocation: req.PurchaseLocation,
		Rating:           req.Rating,
	}
	_, err := s.q.ExecContext(r.Context(), "insert-bag",
		row.ID, row.Name, row.BeanID, row.BaristaID, row.RoastDate,
		row.Weight, row.Price, row.PurchaseLocation, row.Rating)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, row)
}

func (s *Service) updateBag(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req bagRequest
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

	var current types.Bag
	if err := s.q.GetContext(r.Context(), "get-bag", &current, id); err != nil {
		s.respondError(w, r, err)
		return
	}

	res, err := s.q.ExecContext(r.Context(), "update-bag",
		req.Name, req.BeanID, req.RoastDate, req.Weight, req.Price,
		req.PurchaseLocation, req.Rating, id)
	if err == nil {
		err = rowsAffected(res)
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if req.Name != current.Name {
		s.naming.LogAdminOverride("bag", id, current.Name, req.Name,
			s.actor(r), "rename via api")
	}
	s.naming.InvalidateBag(types.BagID(id))

	current.Name = req.Name
	current.BeanID = types.BeanID(req.BeanID)
	current.RoastDate = req.RoastDate
	current.Weight = req.Weight
	current.Price = req.Price
	current.PurchaseLocation = req.PurchaseLocation
	current.Rating = req.Rating
	s.respondJSON(w, http.StatusOK, current)
}

func (s *Service) deleteBag(w http.ResponseWriter, r *http.Request) {
	if id, err := pathID(r); err == nil {
		s.naming.InvalidateBag(types.BagID(id))
	}
	s.deleteByID(w, r, "delete-bag")
}
