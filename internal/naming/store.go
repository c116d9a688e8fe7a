package naming

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/godshot/godshot/internal/core/db"
	"github.com/godshot/godshot/internal/metrics"
	"github.com/godshot/godshot/internal/types"
)

// OwnerIdentity is the projection of a barista row the naming service reads.
type OwnerIdentity struct {
	DisplayName string `db:"display_name"`
	FirstName   string `db:"first_name"`
}

// Store is the read/count surface the naming service consumes. The rest of
// the application owns writes; this interface is deliberately narrow so
// tests can fake the store without a database.
type Store interface {
	// OwnerIdentity returns the barista's display and first name.
	// Returns errNotFound (wrapped) when the row is absent.
	OwnerIdentity(ctx context.Context, id types.BaristaID) (OwnerIdentity, error)

	// BeanName returns the catalog bean's name.
	BeanName(ctx context.Context, id types.BeanID) (string, error)

	// BagBeanName returns the name of the bean referenced by a bag (one join).
	BagBeanName(ctx context.Context, id types.BagID) (string, error)

	// CountBrewsInRange counts the barista's brews with a timestamp in
	// [start, end).
	CountBrewsInRange(ctx context.Context, id types.BaristaID, start, end time.Time) (int, error)
}

// SQLStore implements Store over dotsql named queries, with every call
// routed through a circuit breaker. A clean miss (sql.ErrNoRows) counts as
// a breaker success; only real store failures trip it.
type SQLStore struct {
	q       *db.Queries
	breaker *gobreaker.CircuitBreaker[any]
}

// Breaker thresholds: five consecutive failures open the circuit, probes
// resume after 30 seconds.
const (
	breakerFailureThreshold = 5
	breakerOpenTimeout      = 30 * time.Second
)

// NewSQLStore creates a breaker-guarded store over the loaded named queries.
func NewSQLStore(q *db.Queries) *SQLStore {
	settings := gobreaker.Settings{
		Name:    "naming-store",
		Timeout: breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errNotFound)
		},
	}
	return &SQLStore{q: q, breaker: gobreaker.NewCircuitBreaker[any](settings)}
}

// Reachable reports whether the breaker currently admits store calls.
func (s *SQLStore) Reachable() bool {
	return s.breaker.State() != gobreaker.StateOpen
}

// execute wraps a named-query call with the breaker and error taxonomy.
func (s *SQLStore) execute(query string, fn func() (any, error)) (any, error) {
	v, err := s.breaker.Execute(fn)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, err
		}
		metrics.DBQueryErrors.WithLabelValues(query).Inc()
		return nil, fmt.Errorf("%w: %s: %v", ErrDatabase, query, err)
	}
	return v, nil
}

func (s *SQLStore) OwnerIdentity(ctx context.Context, id types.BaristaID) (OwnerIdentity, error) {
	v, err := s.execute("naming-owner-identity", func() (any, error) {
		var row OwnerIdentity
		if err := s.q.GetContext(ctx, "naming-owner-identity", &row, string(id)); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("%w: barista %s", errNotFound, id)
			}
			return nil, err
		}
		return row, nil
	})
	if err != nil {
		return OwnerIdentity{}, err
	}
	return v.(OwnerIdentity), nil
}

func (s *SQLStore) BeanName(ctx context.Context, id types.BeanID) (string, error) {
	return s.name(ctx, "naming-bean-name", string(id))
}

func (s *SQLStore) BagBeanName(ctx context.Context, id types.BagID) (string, error) {
	return s.name(ctx, "naming-bag-bean-name", string(id))
}

func (s *SQLStore) name(ctx context.Context, query, id string) (string, error) {
	v, err := s.execute(query, func() (any, error) {
		var name string
		if err := s.q.GetContext(ctx, query, &name, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("%w: %s %s", errNotFound, query, id)
			}
			return nil, err
		}
		return name, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *SQLStore) CountBrewsInRange(ctx context.Context, id types.BaristaID, start, end time.Time) (int, error) {
	v, err := s.execute("naming-count-brews-in-range", func() (any, error) {
		var count int
		err := s.q.GetContext(ctx, "naming-count-brews-in-range", &count,
			string(id), start.UTC(), end.UTC())
		if err != nil {
			return nil, err
		}
		return count, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}
