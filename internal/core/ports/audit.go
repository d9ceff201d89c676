package ports

import (
	"context"

	"github.com/medicore/hospital-portal/internal/core/domain"
)

// SecurityEventRepository persists flagged-input audit records.
type SecurityEventRepository interface {
	Insert(ctx context.Context, event *domain.SecurityEvent) error
	ListRecent(ctx context.Context, limit int) ([]*domain.SecurityEvent, error)
}

// SecurityAuditor records flagged input. Implementations must not block the
// caller on persistence.
type SecurityAuditor interface {
	Report(ctx context.Context, report ViolationReport)
}

// ViolationReport is what a validation site knows about a flagged input.
type ViolationReport struct {
	Field    string
	Input    string
	Families []string
	Path     string
	RemoteIP string
	Username string
}
