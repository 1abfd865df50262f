package resilience_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vanixstudio/vanix-bff/internal/domain"
	"github.com/vanixstudio/vanix-bff/internal/infra/resilience"

	"github.com/sony/gobreaker"
)

func TestRetryWithBackoff_Success(t *testing.T) {
	cfg := resilience.Config{
		MaxRetries:     3,
		InitialBackoff: 10 * time.Millisecond,
	}

	callCount := 0
	err := resilience.RetryWithBackoff(context.Background(), cfg, func() error {
		callCount++
		return nil
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}
}

func TestRetryWithBackoff_RetriesOnFailure(t *testing.T) {
	cfg := resilience.Config{
		MaxRetries:     3,
		InitialBackoff: 10 * time.Millisecond,
	}

	callCount := 0
	err := resilience.RetryWithBackoff(context.Background(), cfg, func() error {
		callCount++
		if callCount < 3 {
			return errors.New("temporary error")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if callCount != 3 {
		t.Errorf("expected 3 calls, got %d", callCount)
	}
}

func TestRetryWithBackoff_ExhaustsRetries(t *testing.T) {
	cfg := resilience.Config{
		MaxRetries:     2,
		InitialBackoff: 10 * time.Millisecond,
	}

	callCount := 0
	err := resilience.RetryWithBackoff(context.Background(), cfg, func() error {
		callCount++
		return errors.New("persistent error")
	})

	if err == nil {
		t.Fatal("expected error after retries exhausted")
	}
	if callCount != 3 {
		t.Errorf("expected 3 calls, got %d", callCount)
	}
}

func TestRetryWithBackoff_StopsOnDomainError(t *testing.T) {
	cfg := resilience.Config{MaxRetries: 5, InitialBackoff: 10 * time.Millisecond}

	callCount := 0
	err := resilience.RetryWithBackoff(context.Background(), cfg, func() error {
		callCount++
		return &domain.ErrNotFound{Resource: "user", ID: "u1"}
	})

	var nf *domain.ErrNotFound
	if !errors.As(err, &nf) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}
}

func TestRetryWithBackoff_PermanentIsUnwrapped(t *testing.T) {
	cause := errors.New("bad request")
	cfg := resilience.Config{MaxRetries: 3, InitialBackoff: 10 * time.Millisecond}

	err := resilience.RetryWithBackoff(context.Background(), cfg, func() error {
		return resilience.Permanent(cause)
	})

	if err != cause {
		t.Fatalf("expected cause back, got %v", err)
	}
}

func TestRetryWithBackoff_RespectsContext(t *testing.T) {
	cfg := resilience.Config{
		MaxRetries:     5,
		InitialBackoff: 1 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := resilience.RetryWithBackoff(ctx, cfg, func() error {
		return errors.New("error")
	})

	if err == nil {
		t.Fatal("expected context error")
	}
}

func TestExecute_OpenBreakerMapsToCircuitOpen(t *testing.T) {
	cb := resilience.NewCircuitBreaker("test")
	cfg := resilience.Config{MaxRetries: 0, InitialBackoff: time.Millisecond}

	for i := 0; i < 5; i++ {
		_ = resilience.Execute(context.Background(), cb, cfg, "supabase", func() error {
			return errors.New("boom")
		})
	}

	var calls int32
	err := resilience.Execute(context.Background(), cb, cfg, "supabase", func() error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	var open *domain.ErrCircuitOpen
	if !errors.As(err, &open) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if open.Service != "supabase" {
		t.Errorf("expected service supabase, got %s", open.Service)
	}
	if calls != 0 {
		t.Errorf("expected no call through an open breaker, got %d", calls)
	}
}

func TestExecute_NotFoundDoesNotTrip(t *testing.T) {
	cb := resilience.NewCircuitBreaker("test")
	cfg := resilience.Config{MaxRetries: 0, InitialBackoff: time.Millisecond}

	for i := 0; i < 10; i++ {
		_ = resilience.Execute(context.Background(), cb, cfg, "supabase", func() error {
			return &domain.ErrNotFound{Resource: "order", ID: "x"}
		})
	}

	err := resilience.Execute(context.Background(), cb, cfg, "supabase", func() error { return nil })
	if err != nil {
		t.Fatalf("expected breaker closed, got %v", err)
	}
}

func TestExecute_PermanentDoesNotTrip(t *testing.T) {
	cb := resilience.NewCircuitBreaker("test")
	cfg := resilience.Config{MaxRetries: 2, InitialBackoff: time.Millisecond}
	cause := errors.New("400 bad request")

	var calls int32
	for i := 0; i < 10; i++ {
		err := resilience.Execute(context.Background(), cb, cfg, "supabase", func() error {
			atomic.AddInt32(&calls, 1)
			return resilience.Permanent(cause)
		})
		if err != cause {
			t.Fatalf("call %d: expected the bare cause, got %v", i, err)
		}
	}

	if calls != 10 {
		t.Errorf("expected one attempt per call, got %d", calls)
	}
	if cb.State() != gobreaker.StateClosed {
		t.Fatalf("expected breaker closed, got %s", cb.State())
	}
	if counts := cb.Counts(); counts.TotalFailures != 0 {
		t.Errorf("expected no recorded failures, got %d", counts.TotalFailures)
	}
}

func TestIsTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	if !resilience.IsTimeout(ctx.Err()) {
		t.Error("expected deadline exceeded to be a timeout")
	}
	if !resilience.IsTimeout(fmt.Errorf("query: %w", context.DeadlineExceeded)) {
		t.Error("expected wrapped deadline to be a timeout")
	}
	if resilience.IsTimeout(context.Canceled) {
		t.Error("expected cancellation not to be a timeout")
	}
	if resilience.IsTimeout(errors.New("boom")) || resilience.IsTimeout(nil) {
		t.Error("expected plain errors not to be timeouts")
	}
}

func TestBulkhead_AcquireRelease(t *testing.T) {
	bh := resilience.NewBulkhead(2)

	if err := bh.Acquire(context.Background()); err != nil {
		t.Fatalf("expected acquire, got %v", err)
	}
	if err := bh.Acquire(context.Background()); err != nil {
		t.Fatalf("expected acquire, got %v", err)
	}

	// Third acquire should block; use a timeout context.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := bh.Acquire(ctx)
	if err == nil {
		t.Fatal("expected timeout on third acquire")
	}

	bh.Release()

	if err := bh.Acquire(context.Background()); err != nil {
		t.Fatalf("expected acquire after release, got %v", err)
	}
}

func TestBulkhead_Do(t *testing.T) {
	bh := resilience.NewBulkhead(0)

	ran := false
	if err := bh.Do(context.Background(), func() error { ran = true; return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ran {
		t.Fatal("expected fn to run")
	}
}
