package realtime

import (
	"math/rand/v2"
	"time"
)

const (
	// DefaultReconnectDelay is the fixed wait before each reconnect attempt.
	DefaultReconnectDelay = 3 * time.Second
	// DefaultMaxAttempts bounds consecutive reconnect attempts.
	DefaultMaxAttempts = 5
)

// ReconnectPolicy controls how the client redials after an unexpected close.
// The zero value never reconnects.
type ReconnectPolicy struct {
	Delay       time.Duration
	MaxAttempts int
	// Exponential doubles Delay per attempt, capped at MaxDelay.
	Exponential bool
	MaxDelay    time.Duration
	// Jitter is the +/- fraction applied to each delay, 0..1.
	Jitter float64
}

// DefaultPolicy is a fixed 3s delay with 5 attempts.
func DefaultPolicy() ReconnectPolicy {
	return ReconnectPolicy{Delay: DefaultReconnectDelay, MaxAttempts: DefaultMaxAttempts}
}

// NextDelay returns the wait before attempt (1-indexed).
func (p ReconnectPolicy) NextDelay(attempt int) time.Duration {
	base := p.Delay
	if base <= 0 {
		base = DefaultReconnectDelay
	}
	if p.Exponential && attempt > 1 {
		limit := p.MaxDelay
		if limit < base {
			limit = base
		}
		for i := 1; i < attempt && base < limit; i++ {
			base *= 2
		}
		if base > limit {
			base = limit
		}
	}
	if p.Jitter <= 0 {
		return base
	}
	jitter := min(p.Jitter, 1)
	spread := float64(base) * jitter
	return time.Duration(float64(base) + (rand.Float64()*2-1)*spread)
}

// Exhausted reports whether attempts has used up the budget.
func (p ReconnectPolicy) Exhausted(attempts int) bool {
	return attempts >= p.MaxAttempts
}
