package service

import (
	"context"
	"fmt"
	"time"

	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/ports"
	"github.com/medicore/hospital-portal/internal/core/security"
)

// AccessCodeService fronts the backend's access-code administration. The
// backend owns every rule about codes; the portal validates free text only.
type AccessCodeService struct {
	gateway   ports.AccessCodeGateway
	validator *ValidationService
	sessions  SessionChecker
	now       func() time.Time
}

func NewAccessCodeService(gateway ports.AccessCodeGateway, validator *ValidationService, sessions SessionChecker) *AccessCodeService {
	return &AccessCodeService{gateway: gateway, validator: validator, sessions: sessions, now: time.Now}
}

func (s *AccessCodeService) List(ctx context.Context, sess *domain.Session) ([]domain.AccessCode, error) {
	codes, err := s.gateway.List(ctx, sess.Token)
	if err != nil {
		return nil, fmt.Errorf("list access codes: %w", err)
	}
	if err := s.stillValid(ctx, sess); err != nil {
		return nil, err
	}
	return codes, nil
}

// Create issues a code. A non-nil expiry must lie in the future.
func (s *AccessCodeService) Create(ctx context.Context, sess *domain.Session, note string, expiry *time.Time) (*domain.AccessCode, error) {
	checks := s.validator.checks(ctx)
	checks.optional(security.KindInput, "Note", note)
	if err := checks.err(); err != nil {
		return nil, err
	}
	if expiry != nil && !expiry.After(s.now()) {
		return nil, &domain.FieldError{
			Field:  "Expiry",
			Result: domain.ValidationResult{Errors: []string{"Expiry must be in the future"}},
		}
	}

	code, err := s.gateway.Create(ctx, sess.Token, note, expiry)
	if err != nil {
		return nil, fmt.Errorf("create access code: %w", err)
	}
	if err := s.stillValid(ctx, sess); err != nil {
		return nil, err
	}
	return code, nil
}

func (s *AccessCodeService) Deactivate(ctx context.Context, sess *domain.Session, id string) error {
	if err := s.checkID(ctx, id); err != nil {
		return err
	}
	if err := s.gateway.Deactivate(ctx, sess.Token, id); err != nil {
		return fmt.Errorf("deactivate access code %s: %w", id, err)
	}
	return s.stillValid(ctx, sess)
}

func (s *AccessCodeService) Delete(ctx context.Context, sess *domain.Session, id string) error {
	if err := s.checkID(ctx, id); err != nil {
		return err
	}
	if err := s.gateway.Delete(ctx, sess.Token, id); err != nil {
		return fmt.Errorf("delete access code %s: %w", id, err)
	}
	return s.stillValid(ctx, sess)
}

func (s *AccessCodeService) checkID(ctx context.Context, id string) error {
	checks := s.validator.checks(ctx)
	checks.required("ID", id)
	return checks.err()
}

func (s *AccessCodeService) stillValid(ctx context.Context, sess *domain.Session) error {
	if s.sessions == nil || s.sessions.Authenticated(ctx, sess.ID) {
		return nil
	}
	return fmt.Errorf("access codes: session ended during call: %w", domain.ErrAuthRejected)
}
