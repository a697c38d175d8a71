package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimitMessage is the plain-text body sent with a 429.
const RateLimitMessage = "Too many requests in a minute, please try again later."

// RateLimitConfig configures RateLimit.
type RateLimitConfig struct {
	Max    int
	Window time.Duration
	// Storage holds the counters. nil keeps them in process memory.
	Storage fiber.Storage
}

// RateLimit allows at most cfg.Max requests per client IP in each fixed
// window of cfg.Window. The counter resets when the window expires.
func RateLimit(cfg RateLimitConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        cfg.Max,
		Expiration: cfg.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).SendString(RateLimitMessage)
		},
		Storage:           cfg.Storage,
		LimiterMiddleware: limiter.FixedWindow{},
	})
}
