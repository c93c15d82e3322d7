// Package ratelimit provides per-client rate limiting using a token
// bucket per client and endpoint. Oracle-backed endpoints get stricter
// limits than plain reads.
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// tokenBucket refills at a steady rate up to a burst capacity.
type tokenBucket struct {
	mu         sync.Mutex
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
}

func newTokenBucket(capacity int, refillRate float64) *tokenBucket {
	return &tokenBucket{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// take refills the bucket for elapsed time, then consumes one token if
// available. It reports whether the request is allowed, the tokens left,
// and when the bucket will be full again.
func (tb *tokenBucket) take() (allowed bool, remaining int, resetTime time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	tb.tokens += now.Sub(tb.lastRefill).Seconds() * tb.refillRate
	if tb.tokens > tb.capacity {
		tb.tokens = tb.capacity
	}
	tb.lastRefill = now

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		allowed = true
	}

	remaining = int(tb.tokens)
	resetTime = now
	if tb.tokens < tb.capacity {
		secondsUntilFull := (tb.capacity - tb.tokens) / tb.refillRate
		resetTime = now.Add(time.Duration(secondsUntilFull * float64(time.Second)))
	}
	return allowed, remaining, resetTime
}

// Info reports rate limit status for response headers.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// EndpointLimit configures one endpoint class by path prefix and method.
type EndpointLimit struct {
	PathPrefix string
	Method     string
	Limit      int
	Window     time.Duration
	Burst      int
}

// Config holds limiter configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Endpoints       []EndpointLimit
}

// Limiter tracks a token bucket per client+endpoint combination and
// evicts idle buckets in the background.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucketEntry
	config  *Config
	stop    chan struct{}
}

type bucketEntry struct {
	bucket     *tokenBucket
	lastAccess time.Time
}

// NewLimiter creates a limiter from config; a nil config gets sane
// defaults with limiting enabled.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    600,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		buckets: make(map[string]*bucketEntry),
		config:  config,
		stop:    make(chan struct{}),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		go l.cleanupLoop(config.CleanupInterval)
	}
	return l
}

// Allow checks whether a request from clientID to the given endpoint is
// within limits.
func (l *Limiter) Allow(clientID, endpoint, method string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{Allowed: true}
	}

	limit, window, burst := l.limitsFor(endpoint, method)
	if limit <= 0 {
		return true, Info{Allowed: true}
	}

	key := clientID + ":" + endpoint + ":" + method
	entry := l.entry(key, limit, window, burst)

	allowed, remaining, resetTime := entry.bucket.take()

	var retryAfter time.Duration
	if !allowed {
		if retryAfter = time.Until(resetTime); retryAfter < 0 {
			retryAfter = 0
		}
	}

	return allowed, Info{
		Allowed:    allowed,
		Limit:      limit,
		Remaining:  remaining,
		ResetTime:  resetTime,
		RetryAfter: retryAfter,
	}
}

// limitsFor resolves the endpoint class: longest matching prefix with a
// matching method wins, otherwise the default limit applies.
func (l *Limiter) limitsFor(endpoint, method string) (limit int, window time.Duration, burst int) {
	var best *EndpointLimit
	for i := range l.config.Endpoints {
		ep := &l.config.Endpoints[i]
		if ep.Method != "" && ep.Method != method {
			continue
		}
		if !strings.HasPrefix(endpoint, ep.PathPrefix) {
			continue
		}
		if best == nil || len(ep.PathPrefix) > len(best.PathPrefix) {
			best = ep
		}
	}
	if best != nil {
		burst = best.Burst
		if burst <= 0 {
			burst = best.Limit
		}
		return best.Limit, best.Window, burst
	}
	return l.config.DefaultLimit, l.config.DefaultWindow, l.config.DefaultLimit
}

func (l *Limiter) entry(key string, limit int, window time.Duration, burst int) *bucketEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.buckets[key]
	if !ok {
		refillRate := float64(limit) / window.Seconds()
		entry = &bucketEntry{bucket: newTokenBucket(burst, refillRate)}
		l.buckets[key] = entry
	}
	entry.lastAccess = time.Now()
	return entry
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.evictIdle(time.Now().Add(-1 * time.Hour))
		case <-l.stop:
			return
		}
	}
}

func (l *Limiter) evictIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, entry := range l.buckets {
		if entry.lastAccess.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop halts the background cleanup goroutine.
func (l *Limiter) Stop() {
	close(l.stop)
}
