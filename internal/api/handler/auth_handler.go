package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-portal/internal/core/authz"
	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/service"
)

// SessionCookie carries the browser's session id across logins, so the
// theme preference survives a logout.
const SessionCookie = "portal_sid"

type AuthService interface {
	Login(ctx context.Context, sid, identifier, password, remoteIP string) (*service.LoginResult, error)
	Logout(ctx context.Context, sid string) error
	SetTheme(ctx context.Context, sid, theme string) error
}

type AuthHandler struct {
	authService  AuthService
	secureCookie bool
}

func NewAuthHandler(authService AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

type loginRequest struct {
	Username string `json:"username" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=128"`
}

type loginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Session   *domain.Session `json:"session"`
	Redirect  string          `json:"redirect"`
}

type sessionResponse struct {
	State   string          `json:"state"`
	Session *domain.Session `json:"session"`
}

type themeRequest struct {
	Theme string `json:"theme" validate:"required,max=16"`
}

type redirectResponse struct {
	Redirect string `json:"redirect"`
}

// Login authenticates against the hospital backend and opens a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Username or email and password"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var sid string
	if ck, err := c.Cookie(SessionCookie); err == nil {
		sid = ck.Value
	}

	res, err := h.authService.Login(c.Request().Context(), sid, req.Username, req.Password, c.RealIP())
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    res.Session.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
		Expires:  res.ExpiresAt,
	})

	return c.JSON(http.StatusOK, loginResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		Session:   res.Session,
		Redirect:  res.Session.DashboardPath,
	})
}

// Logout ends the current session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  redirectResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), sess.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, redirectResponse{Redirect: authz.LoginRoute})
}

// Session returns the current session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{State: domain.Authenticated.String(), Session: sess})
}

// SetTheme stores the display theme preference.
//
// @Summary      Set theme preference
// @Tags         auth
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  themeRequest  true  "light or dark"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /auth/preferences/theme [put]
func (h *AuthHandler) SetTheme(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req themeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.authService.SetTheme(c.Request().Context(), sess.ID, req.Theme); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
