package limiter

import (
	"sync"
	"time"
)

const (
	DefaultMaxRequests = 100
	DefaultWindow      = time.Hour
)

// MemoryRateLimiter admits up to maxRequests per client within a sliding
// window. Timestamps are kept per client and evicted lazily on access, so a
// client that stops sending requests costs nothing after its next check.
type MemoryRateLimiter struct {
	maxRequests int
	window      time.Duration

	mu       sync.Mutex
	requests map[string][]time.Time

	now func() time.Time
}

func NewMemoryRateLimiter(maxRequests int, window time.Duration) *MemoryRateLimiter {
	if maxRequests <= 0 {
		maxRequests = DefaultMaxRequests
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &MemoryRateLimiter{
		maxRequests: maxRequests,
		window:      window,
		requests:    make(map[string][]time.Time),
		now:         time.Now,
	}
}

// Allow reports whether clientID may make a request now. An admitted request
// is recorded against the window; a rejected one is not, so hammering a full
// window does not extend the lockout.
func (rl *MemoryRateLimiter) Allow(clientID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-rl.window)

	stamps := rl.requests[clientID]
	for len(stamps) > 0 && stamps[0].Before(cutoff) {
		stamps = stamps[1:]
	}

	if len(stamps) >= rl.maxRequests {
		rl.requests[clientID] = stamps
		return false
	}

	rl.requests[clientID] = append(stamps, now)
	return true
}

// Window is the span a client's admitted requests are counted over. The
// HTTP layer surfaces it as the Retry-After hint on rejections.
func (rl *MemoryRateLimiter) Window() time.Duration {
	return rl.window
}
