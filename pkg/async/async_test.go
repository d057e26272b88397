package async_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrymomot/premiumkit/pkg/async"
)

func TestAsync_ReturnsResult(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	future := async.Async(ctx, 3, func(ctx context.Context, attempts int) ([]string, error) {
		time.Sleep(20 * time.Millisecond)
		out := make([]string, 0, attempts)
		for range attempts {
			out = append(out, "placement")
		}
		return out, nil
	})

	res, err := future.Await()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(res) != 3 {
		t.Errorf("Expected 3 results, got %d", len(res))
	}
}

func TestAsync_PreCancelledContextSkipsWork(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var called atomic.Bool
	future := async.Async(ctx, 1, func(ctx context.Context, n int) (int, error) {
		called.Store(true)
		return n, nil
	})

	_, err := future.Await()
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}
	if called.Load() {
		t.Error("Expected function not to be called with a cancelled context")
	}
}

func TestAsync_ErrorPropagation(t *testing.T) {
	t.Parallel()

	expectedErr := errors.New("provider unavailable")
	future := async.Async(context.Background(), 42, func(ctx context.Context, num int) (int, error) {
		return 0, expectedErr
	})

	result, err := future.Await()
	if !errors.Is(err, expectedErr) {
		t.Errorf("Expected error '%v', got: %v", expectedErr, err)
	}
	if result != 0 {
		t.Errorf("Expected result 0 due to error, got: %d", result)
	}
}

func TestGo(t *testing.T) {
	t.Parallel()

	future := async.Go(context.Background(), func(ctx context.Context) (bool, error) {
		return true, nil
	})

	ok, err := future.Await()
	if err != nil || !ok {
		t.Errorf("Expected true, got %v, error: %v", ok, err)
	}
}

func TestResolved(t *testing.T) {
	t.Parallel()

	future := async.Resolved("done", nil)
	if !future.IsComplete() {
		t.Fatal("Expected resolved future to be complete")
	}

	res, err := future.Await()
	if err != nil || res != "done" {
		t.Errorf("Expected 'done', got '%s', error: %v", res, err)
	}

	select {
	case <-future.Done():
	default:
		t.Error("Expected Done channel to be closed")
	}
}

func TestIsComplete(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	future := async.Go(context.Background(), func(ctx context.Context) (bool, error) {
		<-release
		return true, nil
	})

	if future.IsComplete() {
		t.Error("Expected future to not be complete before release")
	}

	close(release)
	if _, err := future.Await(); err != nil {
		t.Errorf("Unexpected error waiting for future: %v", err)
	}

	if !future.IsComplete() {
		t.Error("Expected future to be complete after Await")
	}
}

func TestAwaitWithTimeout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fast := async.Async(ctx, 10, func(ctx context.Context, ms int) (string, error) {
		time.Sleep(time.Duration(ms) * time.Millisecond)
		return "success", nil
	})

	result, err := fast.AwaitWithTimeout(time.Second)
	if err != nil {
		t.Errorf("Expected no error for fast future, got: %v", err)
	}
	if result != "success" {
		t.Errorf("Expected 'success', got: %s", result)
	}

	release := make(chan struct{})
	defer close(release)
	slow := async.Go(ctx, func(ctx context.Context) (string, error) {
		<-release
		return "too late", nil
	})

	result, err = slow.AwaitWithTimeout(20 * time.Millisecond)
	if !errors.Is(err, async.ErrTimeout) {
		t.Errorf("Expected ErrTimeout for slow future, got: %v", err)
	}
	if result != "" {
		t.Errorf("Expected empty result for timeout, got: %s", result)
	}
}

func TestAwaitContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	future := async.Go(context.Background(), func(ctx context.Context) (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := future.AwaitContext(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got: %v", err)
	}

	// The computation is not cancelled by abandoning the wait.
	close(release)
	res, err := future.AwaitContext(context.Background())
	if err != nil || res != 1 {
		t.Errorf("Expected 1, got %d, error: %v", res, err)
	}
}

func TestWaitAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f1 := async.Async(ctx, 1, func(ctx context.Context, n int) (int, error) { return n, nil })
	f2 := async.Async(ctx, 2, func(ctx context.Context, n int) (int, error) { return n, nil })
	f3 := async.Async(ctx, 3, func(ctx context.Context, n int) (int, error) { return n, nil })

	results, err := async.WaitAll(f1, f2, f3)
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	expected := []int{1, 2, 3}
	for i, result := range results {
		if result != expected[i] {
			t.Errorf("Expected result[%d] to be %d, got %d", i, expected[i], result)
		}
	}

	boom := errors.New("boom")
	failing := async.Resolved(0, boom)
	_, err = async.WaitAll(f1, failing, f3)
	if !errors.Is(err, boom) {
		t.Errorf("Expected boom error, got: %v", err)
	}
}
