package ports

import (
	"context"
	"time"

	"github.com/medicore/hospital-portal/internal/core/domain"
)

// ListQuery filters a backend collection. Zero values are omitted from the
// query string.
type ListQuery struct {
	Page      int    `url:"page,omitempty"`
	Size      int    `url:"size,omitempty"`
	Search    string `url:"search,omitempty"`
	PatientID string `url:"patientId,omitempty"`
	DoctorID  string `url:"doctorId,omitempty"`
	Status    string `url:"status,omitempty"`
}

// AuthGateway is the backend's authentication surface.
type AuthGateway interface {
	Login(ctx context.Context, identifier, password string) (*domain.Login, error)
	Logout(ctx context.Context, token string) error
}

// ResourceGateway is the backend CRUD surface of one record type.
type ResourceGateway[T any] interface {
	List(ctx context.Context, token string, q ListQuery) ([]T, error)
	Get(ctx context.Context, token, id string) (*T, error)
	Create(ctx context.Context, token string, in *T) (*T, error)
	Update(ctx context.Context, token, id string, in *T) (*T, error)
	Delete(ctx context.Context, token, id string) error
}

// AccessCodeGateway is the backend surface of the admin access-code utility.
type AccessCodeGateway interface {
	List(ctx context.Context, token string) ([]domain.AccessCode, error)
	Create(ctx context.Context, token, note string, expiry *time.Time) (*domain.AccessCode, error)
	Deactivate(ctx context.Context, token, id string) error
	Delete(ctx context.Context, token, id string) error
}
