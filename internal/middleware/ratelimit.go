package middleware

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultMaxClients = 10000
	clientIdleTTL     = 10 * time.Minute
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client key. It tracks at most
// maxClients keys: idle keys go first, then the least recently seen.
type RateLimiter struct {
	mu         sync.Mutex
	clients    map[string]*client
	limit      rate.Limit
	burst      int
	maxClients int
	now        func() time.Time
}

func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		clients:    make(map[string]*client),
		limit:      rate.Limit(perSecond),
		burst:      burst,
		maxClients: defaultMaxClients,
		now:        time.Now,
	}
}

// Allow reports whether key may proceed. A non-positive rate disables
// limiting.
func (l *RateLimiter) Allow(key string) bool {
	if l.limit <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	c, ok := l.clients[key]
	if !ok {
		if len(l.clients) >= l.maxClients {
			l.evictLocked(now)
		}
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func (l *RateLimiter) evictLocked(now time.Time) {
	for key, c := range l.clients {
		if now.Sub(c.lastSeen) > clientIdleTTL {
			delete(l.clients, key)
		}
	}
	if len(l.clients) < l.maxClients {
		return
	}

	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for key, c := range l.clients {
		if !found || c.lastSeen.Before(oldest) {
			oldestKey, oldest, found = key, c.lastSeen, true
		}
	}
	delete(l.clients, oldestKey)
}
