package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/ratelimit"
	"github.com/medicore/hospital-portal/internal/pkg/metrics"
)

// KeyFunc picks the rate-limit identifier of a request.
type KeyFunc func(c echo.Context) string

// ByIP keys requests by client IP, prefixed with the session id when Auth
// ran first.
func ByIP(c echo.Context) string {
	if sid, ok := c.Get(CtxSessionID).(string); ok && sid != "" {
		return sid + ":" + c.RealIP()
	}
	return c.RealIP()
}

// RateLimit applies limiter to every request. Refusals surface as
// *domain.RateLimitError so the error handler writes Retry-After.
func RateLimit(limiter *ratelimit.Limiter, scope string, key KeyFunc) echo.MiddlewareFunc {
	if key == nil {
		key = ByIP
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d, err := limiter.Allow(c.Request().Context(), key(c))
			if err != nil {
				return err
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			if !d.Allowed {
				metrics.RateLimitedTotal.WithLabelValues(scope).Inc()
				return &domain.RateLimitError{RetryAfter: d.RetryAfter}
			}
			return next(c)
		}
	}
}
