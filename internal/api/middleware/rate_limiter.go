package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
)

// RateLimiterConfig holds configuration for rate limiting
type RateLimiterConfig struct {
	// Max requests per window
	Max int
	// Window duration
	Window time.Duration
	// KeyGenerator picks the bucket a request is counted against.
	// An empty key skips limiting.
	KeyGenerator func(c *fiber.Ctx) string
}

// DefaultRateLimiterConfig limits authenticated callers per user
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		Max:          300,
		Window:       time.Minute,
		KeyGenerator: UserKey,
	}
}

// UserKey buckets by the authenticated user; must run after Auth
func UserKey(c *fiber.Ctx) string {
	userID, ok := c.Locals(LocalUserID).(uuid.UUID)
	if !ok {
		return ""
	}
	return userID.String()
}

// IPKey buckets by client address, for routes used before login
func IPKey(c *fiber.Ctx) string {
	return "ip:" + c.IP()
}

type bucket struct {
	count      int
	windowEnd  time.Time
	lastAccess time.Time
}

// RateLimiter implements fixed-window rate limiting in memory
type RateLimiter struct {
	config  RateLimiterConfig
	buckets map[string]*bucket
	mu      sync.Mutex
	done    chan struct{}
	once    sync.Once
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	defaults := DefaultRateLimiterConfig()
	if config.Max == 0 {
		config.Max = defaults.Max
	}
	if config.Window == 0 {
		config.Window = defaults.Window
	}
	if config.KeyGenerator == nil {
		config.KeyGenerator = defaults.KeyGenerator
	}

	rl := &RateLimiter{
		config:  config,
		buckets: make(map[string]*bucket),
		done:    make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// Stop shuts down the cleanup goroutine; safe to call more than once
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.done) })
}

// Handler returns the Fiber middleware handler
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := rl.config.KeyGenerator(c)
		if key == "" {
			return c.Next()
		}

		now := time.Now()

		rl.mu.Lock()
		b, exists := rl.buckets[key]
		if !exists || now.After(b.windowEnd) {
			b = &bucket{windowEnd: now.Add(rl.config.Window)}
			rl.buckets[key] = b
		}
		b.count++
		b.lastAccess = now
		count := b.count
		windowEnd := b.windowEnd
		rl.mu.Unlock()

		remaining := rl.config.Max - count
		if remaining < 0 {
			remaining = 0
		}
		c.Set("X-RateLimit-Limit", strconv.Itoa(rl.config.Max))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Set("X-RateLimit-Reset", windowEnd.Format(time.RFC3339))

		if count > rl.config.Max {
			c.Set("Retry-After", strconv.Itoa(int(time.Until(windowEnd).Seconds())+1))
			return domain.ErrRateLimitExceeded
		}

		return c.Next()
	}
}

// cleanup removes stale entries
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for key, b := range rl.buckets {
				// Remove entries that haven't been accessed in 2 windows
				if now.Sub(b.lastAccess) > 2*rl.config.Window {
					delete(rl.buckets, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}
