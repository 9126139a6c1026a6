package watch

import (
	"context"
	"sync"
	"time"
)

// DefaultPollInterval approximates live status for observers of server-side
// task state; the service offers no push channel.
const DefaultPollInterval = 5 * time.Second

// Poller is a Fetcher re-dispatched on a fixed interval. It stops
// deterministically on Close: the ticker goroutine exits and any late
// completion is discarded by the Fetcher's generation guard.
type Poller[T any] struct {
	*Fetcher[T]
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewPoller wraps fetch with an interval; interval <= 0 uses
// DefaultPollInterval. Nothing runs until Start.
func NewPoller[T any](fetch FetchFunc[T], interval time.Duration) *Poller[T] {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller[T]{
		Fetcher:  NewFetcher(fetch),
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start issues an immediate fetch, then re-issues on every tick until Close
// or ctx cancellation.
func (p *Poller[T]) Start(ctx context.Context) {
	p.Refetch(ctx)
	go func() {
		tick := time.NewTicker(p.interval)
		defer tick.Stop()
		for {
			select {
			case <-p.stop:
				return
			case <-ctx.Done():
				return
			case <-tick.C:
				p.Refetch(ctx)
			}
		}
	}()
}

// Close stops the polling loop and the underlying Fetcher.
func (p *Poller[T]) Close() {
	p.stopOnce.Do(func() { close(p.stop) })
	p.Fetcher.Close()
}
