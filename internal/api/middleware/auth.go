package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/service"
	"github.com/medicore/hospital-portal/internal/core/session"
)

// SessionLoader resolves a session id to the live session.
type SessionLoader interface {
	Session(ctx context.Context, sid string) (*domain.Session, error)
}

// Auth validates the portal JWT, loads the session named by its sid claim
// and injects it into the echo and request contexts. A token whose session
// was ended is rejected like a missing one.
func Auth(jwtSecret string, sessions SessionLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (any, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sid, _ := claims["sid"].(string)
			if sid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing session")
			}

			sess, err := sessions.Session(c.Request().Context(), sid)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					return domain.ErrUnauthenticated
				}
				return err
			}

			c.Set(CtxSession, sess)
			c.Set(CtxSessionID, sess.ID)
			c.Set(CtxRole, string(sess.Role))
			c.Set(CtxUsername, sess.Username)

			ctx := session.WithID(c.Request().Context(), sess.ID)
			origin := service.OriginFrom(ctx)
			origin.Username = sess.Username
			ctx = service.WithOrigin(ctx, origin)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
