package naming

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/godshot/godshot/internal/metrics"
	"github.com/godshot/godshot/internal/types"
)

// contextBuilder resolves owner and item names from the store with a
// prioritized fallback chain, reading through the TTL caches. Fallback tier
// transitions are logged, not raised; only genuine store failures surface
// as errors.
type contextBuilder struct {
	store  Store
	owners *ttlCache[string]
	beans  *ttlCache[string]
	bags   *ttlCache[string]
	log    zerolog.Logger
}

func newContextBuilder(store Store, owners, beans, bags *ttlCache[string], log zerolog.Logger) *contextBuilder {
	return &contextBuilder{store: store, owners: owners, beans: beans, bags: bags, log: log}
}

// ownerName resolves a barista's display name. Priority: non-empty trimmed
// display name, then first name, then FallbackOwner. fellBack reports
// whether any tier below the first was used.
func (b *contextBuilder) ownerName(ctx context.Context, id types.BaristaID) (name string, fellBack bool, err error) {
	key := string(id)
	if cached, ok := b.owners.get(key); ok {
		return cached, false, nil
	}

	identity, err := b.store.OwnerIdentity(ctx, id)
	if err != nil {
		if errors.Is(err, errNotFound) {
			b.fallback("owner", key, "barista row missing")
			return FallbackOwner, true, nil
		}
		return "", false, err
	}

	if n := strings.TrimSpace(identity.DisplayName); n != "" {
		b.owners.set(key, n)
		return n, false, nil
	}
	if n := strings.TrimSpace(identity.FirstName); n != "" {
		b.fallback("owner", key, "display name empty, using first name")
		b.owners.set(key, n)
		return n, true, nil
	}
	b.fallback("owner", key, "display and first name empty")
	return FallbackOwner, true, nil
}

// beanName resolves a catalog bean's name, falling back to FallbackItem
// when the row is absent or the name empty.
func (b *contextBuilder) beanName(ctx context.Context, id types.BeanID) (name string, fellBack bool, err error) {
	return b.itemName(b.beans, "bean", string(id), func() (string, error) {
		return b.store.BeanName(ctx, id)
	})
}

// bagBeanName resolves the name of the bean a bag references (one join).
func (b *contextBuilder) bagBeanName(ctx context.Context, id types.BagID) (name string, fellBack bool, err error) {
	return b.itemName(b.bags, "bag", string(id), func() (string, error) {
		return b.store.BagBeanName(ctx, id)
	})
}

func (b *contextBuilder) itemName(cache *ttlCache[string], field, key string, lookup func() (string, error)) (string, bool, error) {
	if cached, ok := cache.get(key); ok {
		return cached, false, nil
	}

	name, err := lookup()
	if err != nil {
		if errors.Is(err, errNotFound) {
			b.fallback(field, key, "row missing")
			return FallbackItem, true, nil
		}
		return "", false, err
	}

	if n := strings.TrimSpace(name); n != "" {
		cache.set(key, n)
		return n, false, nil
	}
	b.fallback(field, key, "name empty")
	return FallbackItem, true, nil
}

func (b *contextBuilder) fallback(field, key, reason string) {
	metrics.NamingFallbacks.WithLabelValues(field).Inc()
	b.log.Debug().
		Str("field", field).
		Str("key", key).
		Str("reason", reason).
		Msg("naming fallback")
}
