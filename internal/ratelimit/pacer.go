// Package ratelimit paces sequential oracle requests with a fixed
// inter-request delay rather than a token bucket, matching the oracle's
// free-tier limits.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Pacer enforces a minimum gap between consecutive requests, with a longer
// courtesy gap after a failed request.
type Pacer struct {
	delay        time.Duration
	failureDelay time.Duration
	lastCall     time.Time
}

// NewPacer creates a pacer with the given delays. The pipeline is purely
// sequential, so no locking discipline is required.
func NewPacer(delay, failureDelay time.Duration) *Pacer {
	return &Pacer{delay: delay, failureDelay: failureDelay}
}

// Wait blocks until the normal delay has elapsed since the last request.
// Returns an error only if the context is cancelled while waiting.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.wait(ctx, p.delay)
}

// Backoff blocks for the longer failure delay. Called after a dropped
// posting so the next request is not fired immediately.
func (p *Pacer) Backoff(ctx context.Context) error {
	return p.wait(ctx, p.failureDelay)
}

func (p *Pacer) wait(ctx context.Context, d time.Duration) error {
	now := time.Now()

	if p.lastCall.IsZero() {
		p.lastCall = now
		return nil
	}

	elapsed := now.Sub(p.lastCall)
	if elapsed >= d {
		p.lastCall = now
		return nil
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("pacer wait: %w", ctx.Err())
	case <-time.After(d - elapsed):
	}

	p.lastCall = time.Now()
	return nil
}
