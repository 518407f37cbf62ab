package http

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/jhoicas/Offers-api/internal/application/dto"
	"github.com/jhoicas/Offers-api/pkg/config"
)

// KeyExtractor agrupa las peticiones que comparten límite (IP, usuario, etc.).
type KeyExtractor func(*fiber.Ctx) string

// IPKey agrupa por IP del cliente (respeta ProxyHeader si Fiber lo tiene configurado).
func IPKey(c *fiber.Ctx) string { return c.IP() }

type rateLimiter struct {
	limiters    sync.Map // map[string]*rate.Limiter
	rate        rate.Limit
	burst       int
	mu          sync.Mutex
	lastCleanup time.Time
}

func (rl *rateLimiter) getLimiter(key string) *rate.Limiter {
	if limiter, ok := rl.limiters.Load(key); ok {
		return limiter.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(rl.rate, rl.burst)
	actual, _ := rl.limiters.LoadOrStore(key, limiter)
	rl.maybeCleanup()
	return actual.(*rate.Limiter)
}

// maybeCleanup elimina cada 5 minutos los limiters con el bucket lleno (inactivos).
func (rl *rateLimiter) maybeCleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if time.Since(rl.lastCleanup) < 5*time.Minute {
		return
	}
	rl.lastCleanup = time.Now()
	rl.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(rl.burst) {
			rl.limiters.Delete(key)
		}
		return true
	})
}

// RateLimit limita las peticiones por clave con un token bucket.
// Al superar el límite responde 429 RATE_LIMITED con Retry-After.
func RateLimit(cfg config.RateLimitConfig, key KeyExtractor) fiber.Handler {
	burst := cfg.AuthBurst
	if burst <= 0 {
		burst = cfg.AuthRequests
	}
	rl := &rateLimiter{
		rate:        rate.Limit(float64(cfg.AuthRequests) / cfg.AuthWindow.Seconds()),
		burst:       burst,
		lastCleanup: time.Now(),
	}
	limitHeader := strconv.Itoa(cfg.AuthRequests)
	windowHeader := strconv.Itoa(int(cfg.AuthWindow.Seconds()))

	return func(c *fiber.Ctx) error {
		k := key(c)
		if k == "" {
			return c.Next()
		}
		limiter := rl.getLimiter(k)
		if !limiter.Allow() {
			reservation := limiter.Reserve()
			delay := reservation.Delay()
			reservation.Cancel()

			retryAfter := max(int(delay.Seconds()), 1)
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
			c.Set("X-RateLimit-Limit", limitHeader)
			c.Set("X-RateLimit-Window", windowHeader)
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiadas peticiones, intente más tarde",
			})
		}
		return c.Next()
	}
}
