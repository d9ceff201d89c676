package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-portal/internal/core/domain"
)

type SecurityEventLister interface {
	Recent(ctx context.Context, limit int) ([]*domain.SecurityEvent, error)
}

type SecurityEventsHandler struct {
	events SecurityEventLister
}

func NewSecurityEventsHandler(events SecurityEventLister) *SecurityEventsHandler {
	return &SecurityEventsHandler{events: events}
}

// Recent lists the latest flagged inputs. Only fingerprints are returned.
//
// @Summary      Recent security events
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query  int  false  "At most 500, default 50"
// @Success      200    {array}   domain.SecurityEvent
// @Router       /api/admin/security-events [get]
func (h *SecurityEventsHandler) Recent(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}
	events, err := h.events.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}
