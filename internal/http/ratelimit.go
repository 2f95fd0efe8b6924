package http

import (
	"sync"
	"time"
)

// rateLimiter caps requests per client IP with a fixed window. Counters are
// kept in memory, so the limit is per process.
type rateLimiter struct {
	limit  int
	window time.Duration

	mu           sync.Mutex
	seen         map[string]*clientWindow
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientWindow struct {
	start    time.Time
	requests int
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		limit:       limit,
		window:      window,
		seen:        make(map[string]*clientWindow),
		stopCleanup: make(chan struct{}),
	}
	go rl.runCleanup()
	return rl
}

func (rl *rateLimiter) runCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.dropIdleClients()
		case <-rl.stopCleanup:
			return
		}
	}
}

// dropIdleClients forgets IPs whose window expired long ago.
func (rl *rateLimiter) dropIdleClients() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * rl.window)
	for ip, cw := range rl.seen {
		if cw.start.Before(cutoff) {
			delete(rl.seen, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		close(rl.stopCleanup)
	})
}

// allow reports whether another request from the given IP fits in its current
// window.
func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cw, ok := rl.seen[clientIP]
	if !ok || now.Sub(cw.start) > rl.window {
		rl.seen[clientIP] = &clientWindow{start: now, requests: 1}
		return true
	}

	cw.requests++
	return cw.requests <= rl.limit
}
