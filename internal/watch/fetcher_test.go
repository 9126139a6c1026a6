package watch

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"
	"time"
)

func TestFetcherSuccessReplacesData(t *testing.T) {
	t.Parallel()

	f := NewFetcher(func(ctx context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	})
	f.Refetch(context.Background())
	f.drain()

	got := f.Snapshot()
	if got.Loading {
		t.Error("still loading after completion")
	}
	if got.Err != nil {
		t.Errorf("unexpected error: %v", got.Err)
	}
	if !reflect.DeepEqual(got.Data, []string{"a", "b"}) {
		t.Errorf("data = %v", got.Data)
	}
}

func TestFetcherFailureKeepsPreviousData(t *testing.T) {
	t.Parallel()

	fetchErr := errors.New("boom")
	fail := false
	f := NewFetcher(func(ctx context.Context) ([]string, error) {
		if fail {
			return nil, fetchErr
		}
		return []string{"a"}, nil
	})

	f.Refetch(context.Background())
	f.drain()

	fail = true
	f.Refetch(context.Background())
	f.drain()

	got := f.Snapshot()
	if !errors.Is(got.Err, fetchErr) {
		t.Errorf("err = %v, want %v", got.Err, fetchErr)
	}
	if !reflect.DeepEqual(got.Data, []string{"a"}) {
		t.Errorf("previous data not kept: %v", got.Data)
	}

	// A later success clears the error again.
	fail = false
	f.Refetch(context.Background())
	f.drain()
	if got := f.Snapshot(); got.Err != nil {
		t.Errorf("err not cleared: %v", got.Err)
	}
}

// Dispatch A then B; B resolves first, A resolves second. Final state must be
// B's result: a completion older than the last-applied one is discarded.
func TestFetcherDiscardsOutOfOrderCompletion(t *testing.T) {
	t.Parallel()

	entered := make(chan int, 2)
	replies := []chan string{make(chan string), make(chan string)}
	var calls atomic.Int32
	f := NewFetcher(func(ctx context.Context) (string, error) {
		me := int(calls.Add(1)) - 1
		entered <- me
		return <-replies[me], nil
	})

	f.Refetch(context.Background()) // A
	<-entered                       // A is in flight before B dispatches
	f.Refetch(context.Background()) // B
	<-entered

	replies[1] <- "result B" // second dispatch completes first
	waitForData(t, f, "result B")
	replies[0] <- "result A"
	f.drain()

	got := f.Snapshot()
	if got.Data != "result B" {
		t.Errorf("data = %q, want %q (stale result A must be dropped)", got.Data, "result B")
	}
	if got.Loading {
		t.Error("loading should be false once the latest dispatch has applied")
	}
}

// waitForData spins until the fetcher's state holds want.
func waitForData(t *testing.T, f *Fetcher[string], want string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for f.Snapshot().Data != want {
		if time.Now().After(deadline) {
			t.Fatalf("state never reached %q", want)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestFetcherDropsCompletionAfterClose(t *testing.T) {
	t.Parallel()

	release := make(chan string)
	f := NewFetcher(func(ctx context.Context) (string, error) {
		return <-release, nil
	})

	var notified int
	f.OnChange(func(State[string]) { notified++ })

	f.Refetch(context.Background())
	f.Close()
	release <- "late"
	f.drain()

	if got := f.Snapshot(); got.Data != "" {
		t.Errorf("late completion applied after Close: %q", got.Data)
	}
	if notified != 1 { // only the loading transition before Close
		t.Errorf("notifications = %d, want 1", notified)
	}
}

func TestFetcherRefetchAfterCloseIsNoop(t *testing.T) {
	t.Parallel()

	calls := 0
	f := NewFetcher(func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	})
	f.Close()
	f.Refetch(context.Background())
	f.drain()

	if calls != 0 {
		t.Errorf("fetch ran %d times after Close", calls)
	}
}

func TestFetcherLoadingDuringFetch(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	f := NewFetcher(func(ctx context.Context) (int, error) {
		<-release
		return 1, nil
	})
	f.Refetch(context.Background())

	if got := f.Snapshot(); !got.Loading {
		t.Error("not loading while a fetch is in flight")
	}
	close(release)
	f.drain()
	if got := f.Snapshot(); got.Loading {
		t.Error("still loading after the fetch applied")
	}
}

func TestPollerStopsOnClose(t *testing.T) {
	t.Parallel()

	fetched := make(chan struct{}, 64)
	p := NewPoller(func(ctx context.Context) (int, error) {
		fetched <- struct{}{}
		return 1, nil
	}, 10*time.Millisecond)

	p.Start(context.Background())

	// Immediate fetch plus at least one tick.
	<-fetched
	select {
	case <-fetched:
	case <-time.After(time.Second):
		t.Fatal("poller never re-fetched on its interval")
	}

	p.Close()
	p.drain()
	drainCount := len(fetched)
	for range drainCount {
		<-fetched
	}

	select {
	case <-fetched:
		t.Error("poller fetched after Close")
	case <-time.After(50 * time.Millisecond):
	}
}
