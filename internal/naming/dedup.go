package naming

import (
	"sync"

	"github.com/godshot/godshot/internal/metrics"
)

// call is one in-flight name computation. done closes exactly once, after
// name and err are set; every waiter observes the identical result.
type call struct {
	done     chan struct{}
	name     string
	fellBack bool
	err      error
}

// pendingMap coalesces concurrent identical generation requests: at most
// one computation runs per identity key at any instant. This is not a
// cache; an entry exists only while its computation is outstanding and is
// removed unconditionally when it settles, so the next call with the same
// key starts fresh.
type pendingMap struct {
	mu    sync.Mutex
	calls map[string]*call
}

func newPendingMap() *pendingMap {
	return &pendingMap{calls: make(map[string]*call)}
}

// join returns the in-flight call for key, creating one if absent.
// created reports whether this caller owns the computation and must settle
// it. Insert-if-absent is atomic under the map's lock.
func (p *pendingMap) join(key string) (c *call, created bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if existing, ok := p.calls[key]; ok {
		return existing, false
	}
	c = &call{done: make(chan struct{})}
	p.calls[key] = c
	metrics.NamingPending.Set(float64(len(p.calls)))
	return c, true
}

// settle publishes the result, wakes all waiters, and removes the key.
// Runs on success and failure alike.
func (p *pendingMap) settle(key string, c *call, name string, fellBack bool, err error) {
	c.name = name
	c.fellBack = fellBack
	c.err = err
	close(c.done)

	p.mu.Lock()
	delete(p.calls, key)
	metrics.NamingPending.Set(float64(len(p.calls)))
	p.mu.Unlock()
}

// size returns the number of outstanding computations.
func (p *pendingMap) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}
