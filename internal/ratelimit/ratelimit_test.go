package ratelimit

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_GeneralBucket_CapacityThree(t *testing.T) {
	t.Parallel()

	l := New()
	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("10.0.0.1"), "attempt %d should pass", i+1)
	}
	assert.False(t, l.Allow("10.0.0.1"), "4th attempt must be rejected")

	assert.True(t, l.Allow("10.0.0.2"), "a different key has its own bucket")
}

func TestLimiter_LoginBucket_CapacityFive(t *testing.T) {
	t.Parallel()

	l := New()
	for i := 0; i < 5; i++ {
		assert.True(t, l.AllowLogin("10.0.0.1"), "attempt %d should pass", i+1)
	}
	assert.False(t, l.AllowLogin("10.0.0.1"), "6th attempt must be rejected")
}

func TestLimiter_LoginAndGeneralAreNamespaced(t *testing.T) {
	t.Parallel()

	l := New()
	for i := 0; i < 5; i++ {
		assert.True(t, l.AllowLogin("10.0.0.9"))
	}
	assert.False(t, l.AllowLogin("10.0.0.9"))

	// Draining the login bucket leaves the contact budget untouched.
	assert.True(t, l.Allow("10.0.0.9"))
}

func TestLimiter_ConcurrentConsume_NoOverspend(t *testing.T) {
	t.Parallel()

	l := New()
	const workers = 50

	var wg sync.WaitGroup
	granted := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.AllowLogin("race") {
				granted <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(granted)

	assert.Equal(t, 5, len(granted), "exactly capacity units may be consumed under contention")
}
