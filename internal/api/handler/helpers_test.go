package handler

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-portal/internal/api/middleware"
	"github.com/medicore/hospital-portal/internal/core/domain"
)

func newEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	v, err := NewValidator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	e.Validator = v
	return e
}

func newJSONContext(e *echo.Echo, method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withSession(c echo.Context, s *domain.Session) {
	c.Set(middleware.CtxSession, s)
	c.Set(middleware.CtxSessionID, s.ID)
	c.Set(middleware.CtxRole, string(s.Role))
	c.Set(middleware.CtxUsername, s.Username)
}
