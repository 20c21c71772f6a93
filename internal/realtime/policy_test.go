package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, 3*time.Second, p.NextDelay(1))
	assert.Equal(t, 3*time.Second, p.NextDelay(5), "fixed delay by default")
	assert.False(t, p.Exhausted(4))
	assert.True(t, p.Exhausted(5))
}

func TestNextDelay_Exponential(t *testing.T) {
	p := ReconnectPolicy{Delay: time.Second, Exponential: true, MaxDelay: 5 * time.Second}
	assert.Equal(t, time.Second, p.NextDelay(1))
	assert.Equal(t, 2*time.Second, p.NextDelay(2))
	assert.Equal(t, 4*time.Second, p.NextDelay(3))
	assert.Equal(t, 5*time.Second, p.NextDelay(4))
	assert.Equal(t, 5*time.Second, p.NextDelay(40))
}

func TestNextDelay_Jitter(t *testing.T) {
	p := ReconnectPolicy{Delay: time.Second, Jitter: 0.2}
	for range 100 {
		d := p.NextDelay(1)
		assert.GreaterOrEqual(t, d, 800*time.Millisecond)
		assert.LessOrEqual(t, d, 1200*time.Millisecond)
	}
}

func TestNextDelay_ZeroDelayFallsBack(t *testing.T) {
	assert.Equal(t, DefaultReconnectDelay, ReconnectPolicy{}.NextDelay(1))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "reconnecting", StateReconnecting.String())
	assert.Equal(t, "unknown", State(99).String())
}
