package poller

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Poller repeatedly fetches a snapshot of one backend resource and
// publishes it. Each tick is independent: a failed tick goes to the
// error callback and neither stops the schedule nor blocks the next
// tick. Overlapping ticks are dropped: while a fetch is still in
// flight, the next interval fires no new one.
//
// Parameters are fixed at construction. To poll with different
// parameters (a new page, a new filter), Stop the poller and Start a
// new one; mutating parameters under a running schedule would race an
// in-flight fetch for the old parameters against a fresh one.
type Poller[T any] struct {
	name       string
	interval   time.Duration
	fetch      func(ctx context.Context) (T, error)
	onSnapshot func(T)
	onError    func(error)

	mu       sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
	inFlight atomic.Bool
	ticks    sync.WaitGroup
}

// New creates a poller. onSnapshot receives every successfully fetched
// snapshot; onError receives every failed tick and may be nil.
func New[T any](name string, interval time.Duration, fetch func(ctx context.Context) (T, error), onSnapshot func(T), onError func(error)) *Poller[T] {
	return &Poller[T]{
		name:       name,
		interval:   interval,
		fetch:      fetch,
		onSnapshot: onSnapshot,
		onError:    onError,
	}
}

// Name returns the poller name used in error reporting
func (p *Poller[T]) Name() string {
	return p.name
}

// Start issues one immediate fetch and then repeats every interval
// until Stop is called or ctx is cancelled. Starting a running poller
// is a no-op.
func (p *Poller[T]) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.run(ctx, p.done)
}

// Stop cancels the schedule and waits for any in-flight tick to drain.
// After Stop returns no further snapshot is published. Stopping a
// stopped poller is a no-op.
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	done := p.done
	p.cancel = nil
	p.done = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
	p.ticks.Wait()
}

func (p *Poller[T]) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	p.tick(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

// tick runs one fetch on its own goroutine so a slow backend never
// delays the schedule. The CAS is the overlap guard.
func (p *Poller[T]) tick(ctx context.Context) {
	if !p.inFlight.CompareAndSwap(false, true) {
		return
	}

	p.ticks.Add(1)
	go func() {
		defer p.ticks.Done()
		defer p.inFlight.Store(false)

		snapshot, err := p.fetch(ctx)
		if err != nil {
			if ctx.Err() == nil && p.onError != nil {
				p.onError(err)
			}
			return
		}

		// A stop may have raced the fetch; drop the stale snapshot
		// rather than publish after Stop.
		if ctx.Err() != nil {
			return
		}
		p.onSnapshot(snapshot)
	}()
}
