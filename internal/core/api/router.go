package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/godshot/godshot/internal/core/auth"
)

// Routes mounts all REST endpoints on a chi router. The admin group is
// wrapped with the HMAC authenticator when one is configured; without
// secrets the admin surface is left unmounted rather than open.
func (s *Service) Routes(authenticator *auth.Authenticator) chi.Router {
	r := chi.NewRouter()

	r.Route("/roasters", func(r chi.Router) {
		r.Get("/", s.listRoasters)
		r.Post("/", s.createRoaster)
		r.Get("/{id}", s.getRoaster)
		r.Put("/{id}", s.updateRoaster)
		r.Delete("/{id}", s.deleteRoaster)
	})

	r.Route("/beans", func(r chi.Router) {
		r.Get("/", s.listBeans)
		r.Post("/", s.createBean)
		r.Get("/{id}", s.getBean)
		r.Put("/{id}", s.updateBean)
		r.Delete("/{id}", s.deleteBean)
	})

	r.Route("/machines", func(r chi.Router) {
		r.Get("/", s.listMachines)
		r.Post("/", s.createMachine)
		r.Get("/{id}", s.getMachine)
		r.Put("/{id}", s.updateMachine)
		r.Delete("/{id}", s.deleteMachine)
	})

	r.Route("/grinders", func(r chi.Router) {
		r.Get("/", s.listGrinders)
		r.Post("/", s.createGrinder)
		r.Get("/{id}", s.getGrinder)
		r.Put("/{id}", s.updateGrinder)
		r.Delete("/{id}", s.deleteGrinder)
	})

	r.Route("/baristas", func(r chi.Router) {
		r.Get("/", s.listBaristas)
		r.Post("/", s.createBarista)
		r.Get("/{id}", s.getBarista)
		r.Put("/{id}", s.updateBarista)
		r.Delete("/{id}", s.deleteBarista)
	})

	r.Route("/bags", func(r chi.Router) {
		r.Get("/", s.listBags)
		r.Post("/", s.createBag)
		r.Get("/barista/{id}", s.listBagsByBarista)
		r.Get("/{id}", s.getBag)
		r.Put("/{id}", s.updateBag)
		r.Delete("/{id}", s.deleteBag)
	})

	r.Route("/brews", func(r chi.Router) {
		r.Get("/", s.listBrews)
		r.Post("/", s.createBrew)
		r.Get("/barista/{id}", s.listBrewsByBarista)
		r.Get("/bag/{id}", s.listBrewsByBag)
		r.Get("/bean/{id}", s.listBrewsByBean)
		r.Get("/{id}", s.getBrew)
		r.Put("/{id}", s.updateBrew)
		r.Delete("/{id}", s.deleteBrew)
	})

	r.Route("/bag-grinder-suggestions", func(r chi.Router) {
		r.Get("/", s.listBagSuggestions)
		r.Post("/", s.createBagSuggestion)
		r.Get("/bag/{id}", s.listBagSuggestionsByBag)
		r.Get("/grinder/{id}", s.listBagSuggestionsByGrinder)
		r.Get("/{id}", s.getBagSuggestion)
		r.Put("/{id}", s.updateBagSuggestion)
		r.Delete("/{id}", s.deleteBagSuggestion)
	})

	r.Route("/bean-grinder-suggestions", func(r chi.Router) {
		r.Get("/", s.listBeanSuggestions)
		r.Post("/", s.createBeanSuggestion)
		r.Get("/bean/{id}", s.listBeanSuggestionsByBean)
		r.Get("/grinder/{id}", s.listBeanSuggestionsByGrinder)
		r.Get("/{id}", s.getBeanSuggestion)
		r.Put("/{id}", s.updateBeanSuggestion)
		r.Delete("/{id}", s.deleteBeanSuggestion)
	})

	if authenticator != nil {
		r.Route("/admin/naming", func(r chi.Router) {
			r.Use(authenticator.Middleware)
			r.Get("/metrics", s.getNamingMetrics)
			r.Get("/health", s.getNamingHealth)
			r.Get("/logs", s.exportNamingLogs)
			r.Post("/override", s.recordNameOverride)
		})
	}

	return r
}
