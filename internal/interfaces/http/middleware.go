package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jhoicas/elbaul-api/pkg/logger"
)

// RequestLogger registra cada petición con método, ruta, status, latencia y request id.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, isFiber := err.(*fiber.Error); isFiber {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		evt := log.Info()
		if status >= fiber.StatusInternalServerError {
			evt = log.Error().Err(err)
		}
		evt.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Str("usuario_id", GetUserID(c)).
			Msg("http")
		return err
	}
}

// HTTPObserver recibe una observación por petición (métricas).
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// Metrics alimenta obs con el patrón de ruta de cada petición.
func Metrics(obs HTTPObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if fe, isFiber := err.(*fiber.Error); isFiber {
			status = fe.Code
		}
		route := ""
		if r := c.Route(); r != nil {
			route = r.Path
		}
		obs.ObserveHTTP(c.Method(), route, status, time.Since(start))
		return err
	}
}

// LoginRateLimit limita los intentos de login por IP en ventanas de un minuto.
// El almacenamiento en memoria de fiber descarta las IPs cuya ventana expiró.
func LoginRateLimit(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		perMinute = 10
	}
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return fail(c, fiber.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Demasiados intentos. Intente más tarde")
		},
	})
}
