package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowUpToLimitThenBlocks(t *testing.T) {
	l := NewRateLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("10.0.0.1"))
	}
	assert.False(t, l.Allow("10.0.0.1"))
}

func TestKeysAreIndependent(t *testing.T) {
	l := NewRateLimiter(1, time.Hour)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"))
}

func TestWindowResets(t *testing.T) {
	l := NewRateLimiter(1, 10*time.Millisecond)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	time.Sleep(15 * time.Millisecond)
	assert.True(t, l.Allow("10.0.0.1"))
}
