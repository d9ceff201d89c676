package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/service"
	"github.com/medicore/hospital-portal/internal/core/session"
)

type stubSessions map[string]*domain.Session

func (s stubSessions) Session(_ context.Context, sid string) (*domain.Session, error) {
	if sess, ok := s[sid]; ok {
		return sess, nil
	}
	return nil, domain.ErrUnauthenticated
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	sessions := stubSessions{"s1": {ID: "s1", Token: "backend", Role: domain.RoleNurse, Username: "jackie"}}
	token := signToken(t, "secret", jwt.MapClaims{"sid": "s1", "exp": time.Now().Add(time.Hour).Unix()})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req = req.WithContext(service.WithOrigin(req.Context(), service.Origin{RemoteIP: "10.0.0.5"}))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret", sessions)(func(c echo.Context) error {
		called = true
		if c.Get(CtxRole) != "NURSE" {
			t.Fatalf("role not set")
		}
		if c.Get(CtxUsername) != "jackie" {
			t.Fatalf("username not set")
		}
		if sess, ok := SessionFrom(c); !ok || sess.Token != "backend" {
			t.Fatalf("session not set")
		}
		ctx := c.Request().Context()
		if sid, _ := session.IDFrom(ctx); sid != "s1" {
			t.Fatalf("session id missing from request context")
		}
		if o := service.OriginFrom(ctx); o.Username != "jackie" || o.RemoteIP != "10.0.0.5" {
			t.Fatalf("origin not updated: %+v", o)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	ended := signToken(t, "secret", jwt.MapClaims{"sid": "gone"})
	noSid := signToken(t, "secret", jwt.MapClaims{"role": "ADMIN"})
	wrongKey := signToken(t, "other", jwt.MapClaims{"sid": "s1"})
	expired := signToken(t, "secret", jwt.MapClaims{"sid": "s1", "exp": time.Now().Add(-time.Minute).Unix()})

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Token abc",
		"garbage":        "Bearer not-a-token",
		"wrong key":      "Bearer " + wrongKey,
		"expired":        "Bearer " + expired,
		"no sid":         "Bearer " + noSid,
		"session ended":  "Bearer " + ended,
	}
	sessions := stubSessions{"s1": {ID: "s1", Role: domain.RoleAdmin}}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := Auth("secret", sessions)(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})
			err := handler(c)
			if err == nil {
				t.Fatalf("expected error")
			}
			if he, ok := err.(*echo.HTTPError); ok {
				if he.Code != http.StatusUnauthorized {
					t.Fatalf("expected 401, got %d", he.Code)
				}
				return
			}
			if err != domain.ErrUnauthenticated {
				t.Fatalf("expected ErrUnauthenticated, got %v", err)
			}
		})
	}
}
