package resilience

import (
	"fmt"
	"sync"
)

// SingleFlight collapses concurrent calls for one key into a single run whose
// result every waiting caller receives. The zero value is ready to use.
type SingleFlight[V any] struct {
	mu       sync.Mutex
	inflight map[string]*flight[V]
}

type flight[V any] struct {
	done chan struct{}
	val  V
	err  error
}

// Do runs fn unless a run for key is already in progress, in which case it
// waits for that run. shared is true for the waiters. A panic in fn is turned
// into an error for every caller.
func (g *SingleFlight[V]) Do(key string, fn func() (V, error)) (val V, err error, shared bool) {
	g.mu.Lock()
	if f, ok := g.inflight[key]; ok {
		g.mu.Unlock()
		<-f.done
		return f.val, f.err, true
	}
	if g.inflight == nil {
		g.inflight = make(map[string]*flight[V])
	}
	f := &flight[V]{done: make(chan struct{})}
	g.inflight[key] = f
	g.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			f.err = fmt.Errorf("singleflight %q: panic: %v", key, r)
		}
		g.mu.Lock()
		delete(g.inflight, key)
		g.mu.Unlock()
		close(f.done)
		val, err = f.val, f.err
	}()

	f.val, f.err = fn()
	return f.val, f.err, false
}
