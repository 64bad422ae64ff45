package parser

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DomainRateLimiter throttles outbound fetches per registrable domain so a
// burst of parse requests for one job board does not get the scraper
// blocked. A zero requests-per-minute limit disables throttling.
type DomainRateLimiter struct {
	perMinute int
	burst     int

	mu       sync.Mutex
	limiters map[string]*domainLimiter
}

type domainLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewDomainRateLimiter creates a per-domain token-bucket limiter.
func NewDomainRateLimiter(perMinute, burst int) *DomainRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &DomainRateLimiter{
		perMinute: perMinute,
		burst:     burst,
		limiters:  make(map[string]*domainLimiter),
	}
}

// Allow reports whether a request to the given domain may proceed now.
func (rl *DomainRateLimiter) Allow(domain string) bool {
	if rl == nil || rl.perMinute <= 0 {
		return true
	}

	domain = strings.ToLower(domain)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	dl, ok := rl.limiters[domain]
	if !ok {
		dl = &domainLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(rl.perMinute)/60.0), rl.burst),
		}
		rl.limiters[domain] = dl
	}
	dl.lastSeen = time.Now()

	rl.cleanupLocked()

	return dl.limiter.Allow()
}

// cleanupLocked drops limiters for domains idle longer than ten minutes.
func (rl *DomainRateLimiter) cleanupLocked() {
	cutoff := time.Now().Add(-10 * time.Minute)
	for domain, dl := range rl.limiters {
		if dl.lastSeen.Before(cutoff) {
			delete(rl.limiters, domain)
		}
	}
}
