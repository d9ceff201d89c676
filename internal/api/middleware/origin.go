package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-portal/internal/core/service"
)

// Origin records the request path and client IP on the request context for
// the security audit trail.
func Origin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := service.WithOrigin(req.Context(), service.Origin{
				Path:     req.URL.Path,
				RemoteIP: c.RealIP(),
			})
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}
