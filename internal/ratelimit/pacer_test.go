package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestPacer_FirstCallImmediate(t *testing.T) {
	p := NewPacer(time.Hour, time.Hour)

	start := time.Now()
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Since(start) > 100*time.Millisecond {
		t.Error("expected first call to return immediately")
	}
}

func TestPacer_EnforcesDelay(t *testing.T) {
	p := NewPacer(50*time.Millisecond, time.Second)

	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	start := time.Now()
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("expected second call to block ~50ms, returned after %v", elapsed)
	}
}

func TestPacer_ElapsedGapSkipsSleep(t *testing.T) {
	p := NewPacer(10*time.Millisecond, time.Second)

	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	start := time.Now()
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Since(start) > 5*time.Millisecond {
		t.Error("expected no sleep when the gap already elapsed")
	}
}

func TestPacer_CancelledContext(t *testing.T) {
	p := NewPacer(time.Hour, time.Hour)

	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Wait(ctx); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestPacer_BackoffUsesFailureDelay(t *testing.T) {
	p := NewPacer(time.Millisecond, 50*time.Millisecond)

	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	start := time.Now()
	if err := p.Backoff(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("expected backoff to block ~50ms, returned after %v", elapsed)
	}
}
