package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-portal/internal/core/domain"
)

type AccessCodeService interface {
	List(ctx context.Context, sess *domain.Session) ([]domain.AccessCode, error)
	Create(ctx context.Context, sess *domain.Session, note string, expiry *time.Time) (*domain.AccessCode, error)
	Deactivate(ctx context.Context, sess *domain.Session, id string) error
	Delete(ctx context.Context, sess *domain.Session, id string) error
}

type AccessCodeHandler struct {
	svc AccessCodeService
}

func NewAccessCodeHandler(svc AccessCodeService) *AccessCodeHandler {
	return &AccessCodeHandler{svc: svc}
}

type createAccessCodeRequest struct {
	Note   string     `json:"note" validate:"max=200"`
	Expiry *time.Time `json:"expiry,omitempty"`
}

// List returns every access code.
//
// @Summary      List access codes
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.AccessCode
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/access-codes [get]
func (h *AccessCodeHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	codes, err := h.svc.List(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, codes)
}

// Create issues a new access code.
//
// @Summary      Create access code
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAccessCodeRequest  true  "Optional note and expiry"
// @Success      201   {object}  domain.AccessCode
// @Failure      422   {object}  errorResponse
// @Router       /api/admin/access-codes [post]
func (h *AccessCodeHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req createAccessCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	code, err := h.svc.Create(c.Request().Context(), sess, req.Note, req.Expiry)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, code)
}

// Deactivate disables an access code.
//
// @Summary      Deactivate access code
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Access code id"
// @Success      204
// @Router       /api/admin/access-codes/{id}/deactivate [patch]
func (h *AccessCodeHandler) Deactivate(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.svc.Deactivate(c.Request().Context(), sess, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes an access code.
//
// @Summary      Delete access code
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Access code id"
// @Success      204
// @Router       /api/admin/access-codes/{id} [delete]
func (h *AccessCodeHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), sess, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
