package resource

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Throttle rate-limits invocations. Unlike authentication and permissions,
// throttling has no bypass toggle; it always runs.
type Throttle interface {
	// Allow returns nil to admit the request or a *ThrottleError to deny it.
	Allow(ctx context.Context, req *Request) error
}

// ThrottleError is the typed denial produced by throttles. RetryAfter is
// machine-readable detail carried through to the tool-level error payload.
type ThrottleError struct {
	RetryAfter time.Duration
}

func (e *ThrottleError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("Request was throttled. Expected available in %d seconds.", int(e.RetryAfter.Seconds()))
	}
	return "Request was throttled."
}

// RateThrottle admits at most Rate requests per Window, keyed by the
// caller's identity subject (anonymous callers share one bucket). A fixed
// window is enough for the synchronous request-per-call model here.
type RateThrottle struct {
	Rate   int
	Window time.Duration

	mu      sync.Mutex
	buckets map[string]*window
	now     func() time.Time
}

type window struct {
	start time.Time
	count int
}

// NewRateThrottle creates a throttle admitting rate requests per window.
func NewRateThrottle(rate int, windowLen time.Duration) *RateThrottle {
	return &RateThrottle{
		Rate:    rate,
		Window:  windowLen,
		buckets: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow implements Throttle.
func (t *RateThrottle) Allow(ctx context.Context, req *Request) error {
	key := "anonymous"
	if req.Identity != nil {
		key = req.Identity.Subject()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	b, ok := t.buckets[key]
	if !ok || now.Sub(b.start) >= t.Window {
		t.buckets[key] = &window{start: now, count: 1}
		return nil
	}
	if b.count >= t.Rate {
		return &ThrottleError{RetryAfter: t.Window - now.Sub(b.start)}
	}
	b.count++
	return nil
}

var _ Throttle = (*RateThrottle)(nil)
