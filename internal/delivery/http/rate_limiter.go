package http

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// exportCost is the number of tokens an export request consumes.
const exportCost = 5

var timeNow = time.Now

// RateLimiter is a process-wide token bucket. Exports cost more than other requests.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a limiter refilling rps tokens per second up to burst.
// A non-positive rps disables limiting.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst < exportCost {
		burst = exportCost
	}
	return &RateLimiter{limiter: rate.NewLimiter(limit, burst)}
}

// Allow reports whether r may proceed, consuming its tokens when it does.
func (rl *RateLimiter) Allow(r *http.Request) bool {
	return rl.limiter.AllowN(timeNow(), costOf(r))
}

func costOf(r *http.Request) int {
	if r.Method == http.MethodGet && r.URL.Path == "/api/v1/products/export" {
		return exportCost
	}
	return 1
}
