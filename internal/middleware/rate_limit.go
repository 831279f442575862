package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"fourcut/internal/metrics"
	"fourcut/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

type Limiter interface {
	AllowRequest(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit ограничивает изменяющие запросы участника (или IP для анонимных) в окне window.
// Если Redis недоступен, запрос пропускается.
func RateLimit(log *slog.Logger, limiter Limiter, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			key := "ratelimit:ip:" + c.RealIP()
			if id := MemberID(c); id != 0 {
				key = fmt.Sprintf("ratelimit:member:%d", id)
			}

			allowed, err := limiter.AllowRequest(c.Request().Context(), key, limit, window)
			if err != nil {
				log.Warn("rate limiter unavailable", slog.String("op", "middleware.RateLimit"), slog.Any("err", err))
			}
			if !allowed {
				metrics.RateLimitedTotal.Inc()
				return c.JSON(http.StatusTooManyRequests, response.RateLimited())
			}

			return next(c)
		}
	}
}
