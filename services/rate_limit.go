package services

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/daffahardhan/portfolio_api/dto"
	"github.com/daffahardhan/portfolio_api/shared"
)

type rateLimitEntry struct {
	count     int
	resetTime time.Time
}

// Limiter is a fixed-window request counter keyed by client identifier.
// State lives in process memory only: it is created empty at startup, never
// persisted, and cleared only by a restart. Entries are logically reset in
// place once their window elapses rather than deleted.
type Limiter struct {
	window time.Duration
	max    int

	mu      sync.Mutex
	entries map[string]*rateLimitEntry
}

func NewLimiter(window time.Duration, maxRequests int) *Limiter {
	return &Limiter{
		window:  window,
		max:     maxRequests,
		entries: make(map[string]*rateLimitEntry),
	}
}

// Allow records a request for key at time now and decides whether it fits in
// the current window. A request landing exactly on the stored reset time
// starts a new window.
func (l *Limiter) Allow(key string, now time.Time) dto.RateLimitDecision {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok || !now.Before(e.resetTime) {
		e = &rateLimitEntry{count: 1, resetTime: now.Add(l.window)}
		l.entries[key] = e
		return dto.RateLimitDecision{
			Allowed:   true,
			Remaining: l.max - 1,
			ResetTime: e.resetTime,
		}
	}

	e.count++
	if e.count > l.max {
		retryAfter := int(math.Ceil(e.resetTime.Sub(now).Seconds()))
		return dto.RateLimitDecision{
			Allowed:           false,
			Remaining:         0,
			ResetTime:         e.resetTime,
			RetryAfterSeconds: retryAfter,
		}
	}

	return dto.RateLimitDecision{
		Allowed:   true,
		Remaining: l.max - e.count,
		ResetTime: e.resetTime,
	}
}

// RateLimitService owns the process-wide limiters: a general one covering the
// whole API and a stricter one for the contact form. The two share no state,
// so saturating one never affects the other.
type RateLimitService struct {
	context.DefaultService

	general *Limiter
	contact *Limiter
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *context.Context) error {
	window := envDurationMs("RATE_LIMIT_WINDOW_MS", 15*time.Minute)
	maxRequests := envInt("RATE_LIMIT_MAX_REQUESTS", 100)
	contactMax := envInt("RATE_LIMIT_CONTACT_MAX", 5)

	svc.general = NewLimiter(window, maxRequests)
	svc.contact = NewLimiter(window, contactMax)

	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	return nil
}

// GeneralRateLimit applies the per-IP limit covering every API route.
func (svc *RateLimitService) GeneralRateLimit() fiber.Handler {
	return svc.middleware(svc.general)
}

// ContactRateLimit applies the stricter contact-form limit. It keeps its own
// key space, independent of the general limiter.
func (svc *RateLimitService) ContactRateLimit() fiber.Handler {
	return svc.middleware(svc.contact)
}

func (svc *RateLimitService) middleware(limiter *Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision := limiter.Allow(shared.ClientIP(c), time.Now())

		c.Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetTime.Unix(), 10))

		if !decision.Allowed {
			c.Set("Retry-After", strconv.Itoa(decision.RetryAfterSeconds))

			log.WithFields(log.Fields{
				"ip":          shared.ClientIP(c),
				"path":        c.Path(),
				"retry_after": decision.RetryAfterSeconds,
			}).Warn("Rate limit exceeded")

			return shared.ResponseTooManyRequests(c,
				fmt.Sprintf("Please try again in %d seconds", decision.RetryAfterSeconds))
		}

		return c.Next()
	}
}

func envDurationMs(name string, fallback time.Duration) time.Duration {
	if v := os.Getenv(name); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
		log.Printf("Invalid %s value %q, using default", name, v)
	}
	return fallback
}

func envInt(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		log.Printf("Invalid %s value %q, using default", name, v)
	}
	return fallback
}

