package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-portal/internal/core/security"
)

type InputValidator interface {
	Run(ctx context.Context, c security.Check) (security.Verdict, error)
}

// ValidateHandler exposes the input validators so forms can check a field
// before submitting it.
type ValidateHandler struct {
	validator InputValidator
}

func NewValidateHandler(v InputValidator) *ValidateHandler {
	return &ValidateHandler{validator: v}
}

type validateRequest struct {
	Kind  string   `json:"kind" validate:"required,max=32"`
	Field string   `json:"field" validate:"max=64"`
	Value string   `json:"value" validate:"max=10000"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
}

// Validate runs one validator and returns its verdict. An invalid value is
// still a 200: the verdict carries the errors.
//
// @Summary      Validate a field value
// @Tags         validation
// @Accept       json
// @Produce      json
// @Param        body  body      validateRequest  true  "kind: input, email, phone, username, name, password, number, date, future_date, past_date"
// @Success      200   {object}  security.Verdict
// @Failure      422   {object}  errorResponse
// @Router       /api/validate [post]
func (h *ValidateHandler) Validate(c echo.Context) error {
	var req validateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	verdict, err := h.validator.Run(c.Request().Context(), security.Check{
		Kind:  security.Kind(req.Kind),
		Field: req.Field,
		Value: req.Value,
		Min:   req.Min,
		Max:   req.Max,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, verdict)
}
