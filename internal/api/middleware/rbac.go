package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-portal/internal/core/authz"
)

// RBAC enforces an API allow-list. An empty list admits every authenticated
// role. Denials are 403 with the caller's own dashboard as a hint.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			d := authz.IsRouteAllowed(c.Path(), role, allowedRoles...)
			if !d.Allowed {
				if role == "" {
					return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
				}
				return c.JSON(http.StatusForbidden, map[string]string{
					"error":    "forbidden",
					"redirect": d.Redirect,
				})
			}
			return next(c)
		}
	}
}

// RouteGuard protects a view. Unauthorized visitors are redirected with 303
// to the route authz picks for them: the login page or their own dashboard.
func RouteGuard(table *authz.RouteTable) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			d := table.Check(c.Request().URL.Path, role)
			if !d.Allowed {
				return c.Redirect(http.StatusSeeOther, d.Redirect)
			}
			return next(c)
		}
	}
}
