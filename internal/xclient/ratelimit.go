package xclient

import (
	"golang.org/x/time/rate"
)

// newLimiter builds a limiter with safe fallbacks for zero config values.
func newLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
