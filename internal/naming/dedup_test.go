package naming

import (
	"errors"
	"sync"
	"testing"
)

func TestPendingMap_JoinCreatesOnce(t *testing.T) {
	p := newPendingMap()

	c1, created := p.join("k")
	if !created {
		t.Fatal("first join() reported created = false")
	}
	c2, created := p.join("k")
	if created {
		t.Error("second join() reported created = true")
	}
	if c1 != c2 {
		t.Error("joiners received different call handles")
	}
	if p.size() != 1 {
		t.Errorf("size() = %d, want 1", p.size())
	}
}

func TestPendingMap_SettleWakesAllWaiters(t *testing.T) {
	p := newPendingMap()
	c, _ := p.join("k")

	const waiters = 10
	results := make([]string, waiters)
	var wg sync.WaitGroup
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w, created := p.join("k")
			if created {
				t.Error("waiter unexpectedly created the computation")
			}
			<-w.done
			results[i] = w.name
		}(i)
	}

	p.settle("k", c, "the name", false, nil)
	wg.Wait()

	for i, got := range results {
		if got != "the name" {
			t.Errorf("waiter %d saw %q, want %q", i, got, "the name")
		}
	}
	if p.size() != 0 {
		t.Errorf("size() after settle = %d, want 0", p.size())
	}
}

func TestPendingMap_SettleRemovesKeyOnError(t *testing.T) {
	p := newPendingMap()
	c, _ := p.join("k")

	p.settle("k", c, "", false, errors.New("boom"))

	if c.err == nil {
		t.Error("settled call lost its error")
	}
	// The next call with the same key starts a fresh computation.
	if _, created := p.join("k"); !created {
		t.Error("join() after failed settle did not create a fresh call")
	}
}

func TestPendingMap_DistinctKeysDoNotCoalesce(t *testing.T) {
	p := newPendingMap()

	_, created1 := p.join("a")
	_, created2 := p.join("b")
	if !created1 || !created2 {
		t.Error("distinct keys shared a computation")
	}
	if p.size() != 2 {
		t.Errorf("size() = %d, want 2", p.size())
	}
}
