package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterBurst(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "request %d should be within the burst", i+1)
	}
	assert.False(t, rl.Allow("10.0.0.1"), "request beyond the burst should be denied")
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 6; i++ {
		rl.Allow("10.0.0.1")
	}
	assert.True(t, rl.Allow("10.0.0.2"), "a fresh key has its own budget")
}
