package service

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/blake2b"

	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/ports"
	"github.com/medicore/hospital-portal/internal/pkg/metrics"
)

// EventQueue accepts audit events without blocking.
type EventQueue interface {
	Enqueue(event *domain.SecurityEvent) bool
}

// AuditService turns violation reports into security events. The raw input
// never leaves this type; only its BLAKE2b-256 fingerprint is stored.
type AuditService struct {
	queue EventQueue
	repo  ports.SecurityEventRepository
	log   zerolog.Logger
	now   func() time.Time
}

var _ ports.SecurityAuditor = (*AuditService)(nil)

func NewAuditService(queue EventQueue, repo ports.SecurityEventRepository, log zerolog.Logger) *AuditService {
	return &AuditService{queue: queue, repo: repo, log: log, now: time.Now}
}

func (s *AuditService) Report(_ context.Context, r ports.ViolationReport) {
	for _, f := range r.Families {
		metrics.SecurityViolationsTotal.WithLabelValues(f).Inc()
	}

	event := &domain.SecurityEvent{
		ID:          uuid.NewString(),
		Field:       r.Field,
		Families:    r.Families,
		Fingerprint: Fingerprint(r.Input),
		Path:        r.Path,
		RemoteIP:    r.RemoteIP,
		Username:    r.Username,
		OccurredAt:  s.now().UTC(),
	}

	s.log.Warn().
		Str("event_id", event.ID).
		Str("field", event.Field).
		Strs("families", event.Families).
		Str("remote_ip", event.RemoteIP).
		Msg("security violation")

	if s.queue != nil {
		s.queue.Enqueue(event)
	}
}

// Recent returns the latest persisted events, newest first.
func (s *AuditService) Recent(ctx context.Context, limit int) ([]*domain.SecurityEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return s.repo.ListRecent(ctx, limit)
}

// Fingerprint is the hex BLAKE2b-256 digest of input.
func Fingerprint(input string) string {
	sum := blake2b.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
