// Package watch bridges imperative API calls into renderable state: every
// fetch resolves to a {Data, Loading, Err} snapshot. Responses may complete
// out of dispatch order; each dispatch carries a generation number and a
// completion older than the last-applied one is silently discarded, so stale
// results never clobber newer state. The same guard drops completions that
// arrive after Close.
package watch

import (
	"context"
	"sync"
)

// State is the three-field contract every watcher resolves to.
type State[T any] struct {
	Data    T
	Loading bool
	Err     error
}

// FetchFunc produces one fresh value from the remote service.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Fetcher tracks the state of repeated fetches of one value.
type Fetcher[T any] struct {
	mu         sync.Mutex
	fetch      FetchFunc[T]
	state      State[T]
	dispatched uint64
	applied    uint64
	closed     bool
	onChange   func(State[T])

	inflight sync.WaitGroup
}

// NewFetcher wraps fetch. No request is issued until Refetch.
func NewFetcher[T any](fetch FetchFunc[T]) *Fetcher[T] {
	return &Fetcher[T]{fetch: fetch}
}

// OnChange registers a callback invoked after every state change: the loading
// transition at dispatch and each applied completion. Set it before the first
// Refetch.
func (f *Fetcher[T]) OnChange(fn func(State[T])) {
	f.mu.Lock()
	f.onChange = fn
	f.mu.Unlock()
}

// Refetch dispatches a fetch asynchronously. On success the held value is
// replaced wholesale and Err cleared; on failure the previous value is kept
// and Err set to the failure. A completion superseded by a later dispatch is
// discarded.
func (f *Fetcher[T]) Refetch(ctx context.Context) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.dispatched++
	gen := f.dispatched
	f.state.Loading = true
	notify := f.onChange
	snap := f.state
	f.mu.Unlock()

	if notify != nil {
		notify(snap)
	}

	f.inflight.Add(1)
	go func() {
		defer f.inflight.Done()
		data, err := f.fetch(ctx)
		f.commit(gen, data, err)
	}()
}

func (f *Fetcher[T]) commit(gen uint64, data T, err error) {
	f.mu.Lock()
	if f.closed || gen < f.applied {
		f.mu.Unlock()
		return
	}
	f.applied = gen
	if err != nil {
		f.state.Err = err
	} else {
		f.state.Data = data
		f.state.Err = nil
	}
	f.state.Loading = f.applied < f.dispatched
	notify := f.onChange
	snap := f.state
	f.mu.Unlock()

	if notify != nil {
		notify(snap)
	}
}

// Snapshot returns the current state.
func (f *Fetcher[T]) Snapshot() State[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Close stops the fetcher: in-flight completions are dropped and no further
// notifications fire. Refetch after Close is a no-op.
func (f *Fetcher[T]) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

// drain waits for all dispatched fetches to finish. Test hook.
func (f *Fetcher[T]) drain() {
	f.inflight.Wait()
}
