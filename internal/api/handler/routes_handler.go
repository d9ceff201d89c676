package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-portal/internal/api/middleware"
	"github.com/medicore/hospital-portal/internal/core/authz"
)

// RoutesHandler answers navigation questions from the route table.
type RoutesHandler struct {
	table *authz.RouteTable
	views []string
}

func NewRoutesHandler(table *authz.RouteTable, views []string) *RoutesHandler {
	return &RoutesHandler{table: table, views: views}
}

// Check tells the caller whether its role may open route.
//
// @Summary      Check route access
// @Tags         navigation
// @Produce      json
// @Security     BearerAuth
// @Param        route  query     string  true  "View route, e.g. /patients"
// @Success      200    {object}  authz.Decision
// @Failure      400    {object}  errorResponse
// @Router       /api/routes/check [get]
func (h *RoutesHandler) Check(c echo.Context) error {
	route := c.QueryParam("route")
	if route == "" || route[0] != '/' {
		return echo.NewHTTPError(http.StatusBadRequest, "route must be an absolute path")
	}
	role, _ := c.Get(middleware.CtxRole).(string)
	return c.JSON(http.StatusOK, h.table.Check(route, role))
}

type dashboardResponse struct {
	Role      string   `json:"role"`
	Username  string   `json:"username"`
	Dashboard string   `json:"dashboard"`
	Theme     string   `json:"theme,omitempty"`
	Views     []string `json:"views"`
}

// Dashboard is the landing payload of a role dashboard. RouteGuard has
// already redirected callers who may not see it.
//
// @Summary      Role dashboard
// @Tags         navigation
// @Produce      json
// @Security     BearerAuth
// @Param        role  path  string  true  "Dashboard slug, e.g. doctor"
// @Success      200   {object}  dashboardResponse
// @Success      303
// @Router       /dashboard/{role} [get]
func (h *RoutesHandler) Dashboard(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	role := string(sess.Role)
	views := make([]string, 0, len(h.views))
	for _, v := range h.views {
		if h.table.Check(v, role).Allowed {
			views = append(views, v)
		}
	}
	return c.JSON(http.StatusOK, dashboardResponse{
		Role:      role,
		Username:  sess.Username,
		Dashboard: c.Request().URL.Path,
		Theme:     sess.Theme,
		Views:     views,
	})
}
