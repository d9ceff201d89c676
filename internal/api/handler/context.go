package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-portal/internal/api/middleware"
	"github.com/medicore/hospital-portal/internal/core/domain"
)

// ctxSession returns the session injected by the Auth middleware. Its absence
// means the route was registered without Auth; reject with 401.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return sess, nil
}

// errorResponse documents the error envelope for swag.
type errorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}
