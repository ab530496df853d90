package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiresWithInjectedClock(t *testing.T) {
	t.Parallel()

	current := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	now := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return current
	}
	advance := func(d time.Duration) {
		mu.Lock()
		current = current.Add(d)
		mu.Unlock()
	}

	store := NewStoreWithClock(5*time.Minute, now)
	store.Set(context.Background(), "pool", []string{"A", "B"})

	if _, ok := store.Get(context.Background(), "pool"); !ok {
		t.Fatal("expected value before TTL elapsed")
	}

	advance(4 * time.Minute)
	if _, ok := store.Get(context.Background(), "pool"); !ok {
		t.Fatal("expected value at 4m, TTL is 5m")
	}

	advance(time.Minute + time.Second)
	if _, ok := store.Get(context.Background(), "pool"); ok {
		t.Fatal("expected value to expire after TTL")
	}
}

func TestStore_GetOrLoad_ReloadsAfterExpiry(t *testing.T) {
	t.Parallel()

	current := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	store := NewStoreWithClock(5*time.Minute, func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return current
	})

	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "checkpoints", nil
	}

	for i := 0; i < 3; i++ {
		if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
			t.Fatalf("GetOrLoad error: %v", err)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times before expiry, want 1", got)
	}

	mu.Lock()
	current = current.Add(6 * time.Minute)
	mu.Unlock()

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("GetOrLoad after expiry error: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("loader called %d times after expiry, want 2", got)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
