package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-portal/internal/core/domain"
)

// Keys of the values Auth stores on the echo context.
const (
	CtxSession   = "session"
	CtxSessionID = "session_id"
	CtxRole      = "role"
	CtxUsername  = "username"
)

// SessionFrom returns the session loaded by Auth.
func SessionFrom(c echo.Context) (*domain.Session, bool) {
	s, ok := c.Get(CtxSession).(*domain.Session)
	return s, ok && s != nil
}
