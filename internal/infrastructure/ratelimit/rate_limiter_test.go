package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterExhausts(t *testing.T) {
	limiter := NewLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("u1:send_message"), "request %d", i)
	}
	assert.False(t, limiter.Allow("u1:send_message"))

	// Other keys have their own bucket.
	assert.True(t, limiter.Allow("u2:send_message"))
	assert.True(t, limiter.Allow("u1:setup_chat"))
}

func TestLimiterRefills(t *testing.T) {
	limiter := NewLimiter(1, 10*time.Millisecond)

	assert.True(t, limiter.Allow("u1:send_message"))
	assert.False(t, limiter.Allow("u1:send_message"))

	time.Sleep(15 * time.Millisecond)
	assert.True(t, limiter.Allow("u1:send_message"))
}
