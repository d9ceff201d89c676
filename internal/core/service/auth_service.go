package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/ports"
	"github.com/medicore/hospital-portal/internal/core/ratelimit"
	"github.com/medicore/hospital-portal/internal/core/security"
	"github.com/medicore/hospital-portal/internal/core/session"
	"github.com/medicore/hospital-portal/internal/pkg/metrics"
)

// Themes accepted as a display preference.
var Themes = []string{"light", "dark"}

// LoginResult is handed to the browser after a successful login.
type LoginResult struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Session   *domain.Session `json:"session"`
}

// AuthService drives the session lifecycle: login through the backend,
// logout, teardown on rejected credentials and the theme preference.
type AuthService struct {
	gateway   ports.AuthGateway
	sessions  ports.SessionStores
	limiter   *ratelimit.Limiter
	validator *ValidationService
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

func NewAuthService(
	gateway ports.AuthGateway,
	sessions ports.SessionStores,
	limiter *ratelimit.Limiter,
	validator *ValidationService,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 8 * time.Hour
	}
	return &AuthService{
		gateway:   gateway,
		sessions:  sessions,
		limiter:   limiter,
		validator: validator,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
		now:       time.Now,
	}
}

// Manager returns the session manager of sid.
func (s *AuthService) Manager(sid string) *session.Manager {
	return session.NewManager(sid, s.sessions.For(sid))
}

// Login authenticates identifier/password against the backend and begins a
// session. sid is the browser's existing session id; a new one is minted
// when it is empty.
func (s *AuthService) Login(ctx context.Context, sid, identifier, password, remoteIP string) (*LoginResult, error) {
	identifier = strings.TrimSpace(identifier)

	if s.limiter != nil {
		d, err := s.limiter.Allow(ctx, strings.ToLower(identifier)+"|"+remoteIP)
		if err != nil {
			return nil, fmt.Errorf("login rate limit: %w", err)
		}
		if !d.Allowed {
			metrics.RateLimitedTotal.WithLabelValues("login").Inc()
			return nil, &domain.RateLimitError{RetryAfter: d.RetryAfter}
		}
	}

	checks := s.validator.checks(ctx)
	checks.required("Username", identifier)
	checks.required("Password", password)
	if err := checks.err(); err != nil {
		return nil, err
	}

	login, err := s.gateway.Login(ctx, identifier, password)
	if errors.Is(err, domain.ErrAuthRejected) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if sid == "" {
		sid = uuid.NewString()
	}
	sess, err := s.Manager(sid).Begin(ctx, *login)
	if err != nil {
		return nil, err
	}

	expires := s.now().Add(s.tokenTTL)
	token, err := s.generateToken(sess, expires)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	metrics.SessionsStartedTotal.WithLabelValues(string(sess.Role)).Inc()
	s.log.Info().
		Str("session_id", sid).
		Str("username", sess.Username).
		Str("role", string(sess.Role)).
		Msg("session started")

	return &LoginResult{Token: token, ExpiresAt: expires, Session: sess}, nil
}

func (s *AuthService) generateToken(sess *domain.Session, expires time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sid":      sess.ID,
		"role":     string(sess.Role),
		"username": sess.Username,
		"iat":      s.now().Unix(),
		"exp":      expires.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// Session returns the live session of sid or domain.ErrUnauthenticated.
func (s *AuthService) Session(ctx context.Context, sid string) (*domain.Session, error) {
	return s.Manager(sid).Current(ctx)
}

// Logout tells the backend and ends the session. A backend failure is logged
// and does not keep the session alive.
func (s *AuthService) Logout(ctx context.Context, sid string) error {
	m := s.Manager(sid)
	sess, err := m.Current(ctx)
	if errors.Is(err, domain.ErrUnauthenticated) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.gateway.Logout(ctx, sess.Token); err != nil {
		s.log.Warn().Err(err).Str("session_id", sid).Msg("backend logout failed")
	}
	if err := m.End(ctx); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	metrics.SessionsEndedTotal.WithLabelValues("logout").Inc()
	return nil
}

// EndRejected tears down the session found in ctx after the backend refused
// its token. Other in-flight calls of that session are left running.
func (s *AuthService) EndRejected(ctx context.Context) {
	sid, ok := session.IDFrom(ctx)
	if !ok {
		return
	}
	if err := s.Manager(sid).End(context.WithoutCancel(ctx)); err != nil {
		s.log.Error().Err(err).Str("session_id", sid).Msg("session teardown failed")
		return
	}
	metrics.SessionsEndedTotal.WithLabelValues("auth_rejected").Inc()
	s.log.Info().Str("session_id", sid).Msg("session ended after auth rejection")
}

// SetTheme stores the display preference of sid.
func (s *AuthService) SetTheme(ctx context.Context, sid, theme string) error {
	theme = strings.ToLower(strings.TrimSpace(theme))
	for _, t := range Themes {
		if t == theme {
			return s.Manager(sid).SetTheme(ctx, theme)
		}
	}
	if err := s.validator.Field(ctx, security.Check{Kind: security.KindInput, Field: "Theme", Value: theme}); err != nil {
		return err
	}
	return &domain.FieldError{
		Field: "Theme",
		Result: domain.ValidationResult{
			Errors: []string{"Theme must be one of " + strings.Join(Themes, ", ")},
		},
	}
}

// Authenticated reports whether sid still holds a token. Calls that finish
// after a teardown use it to discard their results.
func (s *AuthService) Authenticated(ctx context.Context, sid string) bool {
	return s.Manager(sid).State(ctx) == domain.Authenticated
}
