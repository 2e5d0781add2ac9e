package httputil

import (
	"context"
	"sync/atomic"
)

// Limiter bounds in-flight outbound model calls. The ensemble fans out to
// every configured model on each analysis, so concurrent analyses can stack
// sockets against the same endpoints without a shared cap.
type Limiter struct {
	slots    chan struct{}
	rejected atomic.Int64
}

// NewLimiter creates a limiter with the given capacity.
// Non-positive capacities fall back to 64.
func NewLimiter(capacity int) *Limiter {
	if capacity <= 0 {
		capacity = 64
	}
	return &Limiter{
		slots: make(chan struct{}, capacity),
	}
}

// TryAcquire takes a slot without blocking.
// Returns false when saturated. Callers treat a refusal as a skipped model
// vote, not an error.
func (l *Limiter) TryAcquire() bool {
	select {
	case l.slots <- struct{}{}:
		return true
	default:
		l.rejected.Add(1)
		return false
	}
}

// Acquire blocks until a slot is available or the context is done.
// Use this when the call must eventually go out.
func (l *Limiter) Acquire(ctx context.Context) error {
	select {
	case l.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a slot to the limiter.
// Must be called after a successful TryAcquire() or Acquire().
func (l *Limiter) Release() {
	select {
	case <-l.slots:
	default:
		// Release without a matching acquire
	}
}

// Rejected returns the number of acquisitions refused at capacity.
// Useful for spotting backpressure against slow endpoints.
func (l *Limiter) Rejected() int64 {
	return l.rejected.Load()
}

// InFlight returns the number of slots currently held.
func (l *Limiter) InFlight() int {
	return len(l.slots)
}

// Idle returns the number of free slots.
func (l *Limiter) Idle() int {
	return cap(l.slots) - len(l.slots)
}

// Stats returns a point-in-time view of limiter occupancy.
func (l *Limiter) Stats() LimiterStats {
	return LimiterStats{
		Capacity: cap(l.slots),
		InFlight: len(l.slots),
		Idle:     cap(l.slots) - len(l.slots),
		Rejected: l.rejected.Load(),
	}
}

// LimiterStats provides limiter metrics for logging and telemetry.
type LimiterStats struct {
	Capacity int   `json:"capacity"`
	InFlight int   `json:"in_flight"`
	Idle     int   `json:"idle"`
	Rejected int64 `json:"rejected"`
}
