package limiter

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(maxRequests int, window time.Duration) (*MemoryRateLimiter, *time.Time) {
	rl := NewMemoryRateLimiter(maxRequests, window)
	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return current }
	return rl, &current
}

func TestAllowUnderLimit(t *testing.T) {
	t.Parallel()

	rl, _ := newTestLimiter(5, time.Minute)
	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("client-a"), "request %d should be admitted", i+1)
	}
}

func TestDenyOverLimit(t *testing.T) {
	t.Parallel()

	rl, _ := newTestLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("client-a"))
	}
	assert.False(t, rl.Allow("client-a"))
	assert.False(t, rl.Allow("client-a"))
}

func TestWindowExpiryReadmits(t *testing.T) {
	t.Parallel()

	rl, now := newTestLimiter(2, time.Minute)
	assert.True(t, rl.Allow("client-a"))
	assert.True(t, rl.Allow("client-a"))
	assert.False(t, rl.Allow("client-a"))

	*now = now.Add(61 * time.Second)
	assert.True(t, rl.Allow("client-a"))
}

func TestWindowSlides(t *testing.T) {
	t.Parallel()

	rl, now := newTestLimiter(2, 10*time.Second)
	assert.True(t, rl.Allow("client-a")) // t=0
	*now = now.Add(6 * time.Second)
	assert.True(t, rl.Allow("client-a")) // t=6
	*now = now.Add(2 * time.Second)
	assert.False(t, rl.Allow("client-a")) // t=8, both still in window

	// t=11: the t=0 stamp has aged out, the t=6 one has not.
	*now = now.Add(3 * time.Second)
	assert.True(t, rl.Allow("client-a"))
	assert.False(t, rl.Allow("client-a"))
}

func TestDeniedRequestsAreNotRecorded(t *testing.T) {
	t.Parallel()

	rl, now := newTestLimiter(1, time.Minute)
	assert.True(t, rl.Allow("client-a"))

	// Hammering after rejection must not extend the lockout.
	for i := 0; i < 10; i++ {
		assert.False(t, rl.Allow("client-a"))
	}

	*now = now.Add(61 * time.Second)
	assert.True(t, rl.Allow("client-a"))
}

func TestClientsAreIndependent(t *testing.T) {
	t.Parallel()

	rl, _ := newTestLimiter(1, time.Minute)
	assert.True(t, rl.Allow("client-a"))
	assert.False(t, rl.Allow("client-a"))
	assert.True(t, rl.Allow("client-b"))
}

func TestDefaultsApplied(t *testing.T) {
	t.Parallel()

	rl := NewMemoryRateLimiter(0, 0)
	assert.Equal(t, DefaultMaxRequests, rl.maxRequests)
	assert.Equal(t, DefaultWindow, rl.Window())
}

func TestConcurrentClientsAdmitExactlyLimit(t *testing.T) {
	t.Parallel()

	rl := NewMemoryRateLimiter(10, time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Allow("client-a") {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, admitted)
}
