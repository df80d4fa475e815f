package ratelimiter

import (
	"strings"
	"sync"
	"time"
)

// Policy caps attempts per key inside a sliding window.
type Policy struct {
	MaxAttempts int
	Window      time.Duration
}

// RateLimiter is an in-memory sliding-window limiter keyed by "namespace:key".
// Namespaces without a policy deny everything.
//
//	rl := ratelimiter.NewRateLimiter()
//	rl.SetPolicy("signin", 5, 5*time.Minute)
//	if !rl.Allow("signin", email) { ... }
type RateLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	policies map[string]Policy
	stop     chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{
		attempts: make(map[string][]time.Time),
		policies: make(map[string]Policy),
		stop:     make(chan struct{}),
		now:      time.Now,
	}
	go rl.cleanupLoop(time.Minute)
	return rl
}

func (rl *RateLimiter) SetPolicy(namespace string, maxAttempts int, window time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.policies[namespace] = Policy{MaxAttempts: maxAttempts, Window: window}
}

// Allow records an attempt and reports whether it fits the namespace policy.
func (rl *RateLimiter) Allow(namespace, key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	policy, ok := rl.policies[namespace]
	if !ok {
		return false
	}

	now := rl.now()
	composite := namespace + ":" + key
	valid := pruned(rl.attempts[composite], now.Add(-policy.Window))

	if len(valid) >= policy.MaxAttempts {
		rl.attempts[composite] = valid
		return false
	}

	rl.attempts[composite] = append(valid, now)
	return true
}

func (rl *RateLimiter) Reset(namespace, key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.attempts, namespace+":"+key)
}

// RetryAfter returns the whole seconds until the oldest attempt leaves the window.
func (rl *RateLimiter) RetryAfter(namespace, key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	policy, ok := rl.policies[namespace]
	if !ok {
		return 0
	}

	now := rl.now()
	valid := pruned(rl.attempts[namespace+":"+key], now.Add(-policy.Window))
	if len(valid) == 0 {
		return 0
	}

	remaining := valid[0].Add(policy.Window).Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(remaining.Seconds()) + 1
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// pruned keeps attempts after cutoff; attempts are appended in time order.
func pruned(attempts []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(attempts) && !attempts[i].After(cutoff) {
		i++
	}
	return attempts[i:]
}

func (rl *RateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stop:
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for composite, attempts := range rl.attempts {
		namespace, _, _ := strings.Cut(composite, ":")
		policy, ok := rl.policies[namespace]
		if !ok || len(pruned(attempts, now.Add(-policy.Window))) == 0 {
			delete(rl.attempts, composite)
		}
	}
}
