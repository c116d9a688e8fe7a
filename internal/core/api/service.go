// Package api provides the REST handlers for the godshot journal.
// Handlers are thin pass-throughs: decode, validate, run a named query,
// respond. The one integration of substance is the naming service, which
// synthesizes display names on create when the caller omits one.
package api

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/godshot/godshot/internal/core/auth"
	"github.com/godshot/godshot/internal/core/db"
	"github.com/godshot/godshot/internal/naming"
)

// Service bundles the handler dependencies.
type Service struct {
	q      *db.Queries
	naming *naming.Service
	log    zerolog.Logger
}

// NewService creates the handler service.
func NewService(q *db.Queries, namer *naming.Service, log zerolog.Logger) (*Service, error) {
	if q == nil {
		return nil, fmt.Errorf("queries cannot be nil")
	}
	if namer == nil {
		return nil, fmt.Errorf("naming service cannot be nil")
	}
	return &Service{q: q, naming: namer, log: log}, nil
}

// actor identifies the caller for audit entries. Unauthenticated routes
// record the generic "api" actor.
func (s *Service) actor(r *http.Request) string {
	if actor := auth.ActorFromContext(r.Context()); actor != "" {
		return actor
	}
	return "api"
}
