package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type cooldownEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// cooldown throttles repeat code requests per email: one request allowed
// immediately, then one per interval. Entries for quiet addresses are
// dropped by a background cleanup.
type cooldown struct {
	mu       sync.Mutex
	entries  map[string]*cooldownEntry
	interval time.Duration
}

func newCooldown(interval time.Duration) *cooldown {
	c := &cooldown{
		entries:  make(map[string]*cooldownEntry),
		interval: interval,
	}
	go c.cleanup()
	return c
}

func (c *cooldown) allow(email string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[email]
	if !ok {
		e = &cooldownEntry{limiter: rate.NewLimiter(rate.Every(c.interval), 1)}
		c.entries[email] = e
	}
	e.lastSeen = time.Now()
	return e.limiter.Allow()
}

// cleanup removes entries idle for more than ten intervals.
func (c *cooldown) cleanup() {
	for {
		time.Sleep(5 * time.Minute)
		c.mu.Lock()
		for email, e := range c.entries {
			if time.Since(e.lastSeen) > 10*c.interval {
				delete(c.entries, email)
			}
		}
		c.mu.Unlock()
	}
}
