// Package ratelimit limits requests per client and endpoint with token buckets.
package ratelimit

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type bucket struct {
	limiter    *rate.Limiter
	limit      int
	lastAccess time.Time
}

// Limiter manages one token bucket per client and endpoint.
type Limiter struct {
	config *Config

	mu      sync.Mutex
	buckets map[string]*bucket

	cleanupStop chan struct{}
	stopOnce    sync.Once
	now         func() time.Time
}

// NewLimiter creates a new rate limiter with the given configuration.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = NewConfig(60, "")
	}

	l := &Limiter{
		config:  config,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupStop = make(chan struct{})
		go l.cleanup(config.CleanupInterval)
	}
	return l
}

// Allow reports whether a request from clientID to the endpoint may proceed.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}

	limit, window, burst, key := l.resolve(clientID, path, method)
	if limit == 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	b := l.bucketFor(key, limit, window, burst, now)

	reservation := b.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, l.info(b, now, false, window)
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		info := l.info(b, now, false, window)
		info.RetryAfter = delay
		return false, info
	}
	return true, l.info(b, now, true, window)
}

// Stop stops the cleanup goroutine.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}

func (l *Limiter) resolve(clientID, path, method string) (int, time.Duration, int, string) {
	if ep := MatchEndpoint(path, method, l.config.EndpointConfigs); ep != nil {
		return ep.Limit, ep.Window, ep.Burst, clientID + "|" + ep.key()
	}
	return l.config.DefaultLimit, l.config.DefaultWindow, 0, clientID
}

func (l *Limiter) bucketFor(key string, limit int, window time.Duration, burst int, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		if burst <= 0 {
			burst = limit
		}
		every := rate.Every(window / time.Duration(limit))
		b = &bucket{limiter: rate.NewLimiter(every, burst), limit: limit}
		l.buckets[key] = b
	}
	b.lastAccess = now
	return b
}

func (l *Limiter) info(b *bucket, now time.Time, allowed bool, window time.Duration) Info {
	tokens := b.limiter.TokensAt(now)
	missing := float64(b.limiter.Burst()) - tokens
	reset := now
	if missing > 0 && b.limiter.Limit() > 0 {
		reset = now.Add(time.Duration(missing / float64(b.limiter.Limit()) * float64(time.Second)))
	}
	if reset.Sub(now) > window {
		reset = now.Add(window)
	}
	return Info{
		Allowed:   allowed,
		Limit:     b.limit,
		Remaining: max(int(math.Floor(tokens)), 0),
		ResetTime: reset,
	}
}

func (l *Limiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.evictIdle(l.now())
		case <-l.cleanupStop:
			return
		}
	}
}

// evictIdle drops buckets that have not been used within the idle timeout
func (l *Limiter) evictIdle(now time.Time) {
	idle := l.config.IdleTimeout
	if idle <= 0 {
		idle = 2 * l.config.CleanupInterval
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if now.Sub(b.lastAccess) > idle {
			delete(l.buckets, key)
		}
	}
}

func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
