package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medicore/hospital-portal/internal/core/authz"
	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/service"
	"github.com/medicore/hospital-portal/internal/infrastructure/backend"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error    string       `json:"error"`
	Redirect string       `json:"redirect,omitempty"`
	Fields   []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field     string   `json:"field"`
	Errors    []string `json:"errors"`
	Sanitized string   `json:"sanitized,omitempty"`
	Security  bool     `json:"security"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps the portal
// error taxonomy to status codes. Unexpected errors are logged and rendered
// as a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		resp := errorResponse{Error: fmt.Sprintf("%v", he.Message)}
		if he.Code == http.StatusUnauthorized {
			resp.Redirect = authz.LoginRoute
		}
		return he.Code, resp
	}

	if fields := service.FieldErrors(err); len(fields) > 0 {
		resp := errorResponse{Error: "validation failed"}
		for _, f := range fields {
			resp.Fields = append(resp.Fields, fieldError{
				Field:     f.Field,
				Errors:    f.Result.Errors,
				Sanitized: f.Result.Sanitized,
				Security:  f.Security,
			})
		}
		return http.StatusUnprocessableEntity, resp
	}

	var rl *domain.RateLimitError
	if errors.As(err, &rl) {
		c.Response().Header().Set("Retry-After", strconv.Itoa(rl.RetryAfterSeconds()))
		return http.StatusTooManyRequests, errorResponse{Error: "too many requests, please try again later"}
	}

	var apiErr *backend.APIError
	switch {
	case errors.Is(err, domain.ErrSecurityViolation), errors.Is(err, domain.ErrFormatInvalid):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid username or password"}
	case errors.Is(err, domain.ErrAuthRejected), errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, errorResponse{Error: "session expired, please log in again", Redirect: authz.LoginRoute}
	case errors.Is(err, domain.ErrAuthForbidden):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	case errors.Is(err, domain.ErrRateLimited):
		c.Response().Header().Set("Retry-After", "1")
		return http.StatusTooManyRequests, errorResponse{Error: "too many requests, please try again later"}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: "not found"}
	case errors.Is(err, domain.ErrNetworkFailure):
		log.Warn().Err(err).Str("path", c.Path()).Msg("backend unreachable")
		return http.StatusBadGateway, errorResponse{Error: "the hospital service is unreachable, please try again"}
	case errors.As(err, &apiErr):
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.Status)
		}
		status := apiErr.Status
		if status < 400 || status >= 500 {
			status = http.StatusBadGateway
		}
		return status, errorResponse{Error: msg}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
