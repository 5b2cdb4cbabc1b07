package shared

import "time"

// interfaces
type RateLimiter interface {
	// Allow reports whether the client may make a request now, recording
	// the attempt when it says yes.
	Allow(clientID string) bool

	// Window is the span requests are counted over; rejections surface it
	// as the Retry-After hint.
	Window() time.Duration
}
