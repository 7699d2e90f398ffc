package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"sekolahku_backend/internals/configs"
	helper "sekolahku_backend/internals/helpers"
)

func newLimiter(max int, window time.Duration, msg string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, msg)
		},
	})
}

// Global limiter for all /api endpoints.
func GlobalRateLimiter() fiber.Handler {
	return newLimiter(configs.RateLimitMax, configs.RateLimitWindow,
		"Too many requests. Please try again later.")
}

// Stricter limiter for the login route.
func LoginRateLimiter() fiber.Handler {
	return newLimiter(5, 1*time.Minute,
		"Too many login attempts. Try again in a minute.")
}

// Limiter for the register route.
func RegisterRateLimiter() fiber.Handler {
	return newLimiter(3, 5*time.Minute,
		"Too many registration attempts. Wait a few minutes.")
}

// Limiter for forgot-password.
func ForgotPasswordRateLimiter() fiber.Handler {
	return newLimiter(2, 10*time.Minute,
		"Too many password reset requests. Try again in 10 minutes.")
}
