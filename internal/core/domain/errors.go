package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrSecurityViolation marks input that matched an injection pattern.
	ErrSecurityViolation = errors.New("security violation")
	// ErrFormatInvalid marks input that failed a format or range check.
	ErrFormatInvalid = errors.New("invalid format")

	ErrAuthRejected    = errors.New("authentication rejected")
	ErrAuthForbidden   = errors.New("access forbidden")
	ErrRateLimited     = errors.New("rate limit exceeded")
	ErrNetworkFailure  = errors.New("backend unreachable")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrNotFound        = errors.New("not found")

	// ErrInvalidCredentials is a login the backend refused. No session
	// existed, so nothing is torn down.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// FieldError carries the validation verdict of a single field. It unwraps to
// ErrSecurityViolation or ErrFormatInvalid.
type FieldError struct {
	Field    string
	Result   ValidationResult
	Security bool
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, strings.Join(e.Result.Errors, "; "))
}

func (e *FieldError) Unwrap() error {
	if e.Security {
		return ErrSecurityViolation
	}
	return ErrFormatInvalid
}

// RateLimitError is returned when a caller exceeded its request budget.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }

// RetryAfterSeconds rounds RetryAfter up to whole seconds, never below one.
func (e *RateLimitError) RetryAfterSeconds() int {
	secs := int((e.RetryAfter + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
