package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/ports"
)

const collectionSecurityEvents = "security_events"

// SecurityEventRepository implements ports.SecurityEventRepository.
type SecurityEventRepository struct {
	col *mongo.Collection
}

var _ ports.SecurityEventRepository = (*SecurityEventRepository)(nil)

func NewSecurityEventRepository(db *mongo.Database) *SecurityEventRepository {
	return &SecurityEventRepository{col: db.Collection(collectionSecurityEvents)}
}

type securityEventDoc struct {
	ID          string    `bson:"_id"`
	Field       string    `bson:"field"`
	Families    []string  `bson:"families"`
	Fingerprint string    `bson:"fingerprint"`
	Path        string    `bson:"path,omitempty"`
	RemoteIP    string    `bson:"remote_ip,omitempty"`
	Username    string    `bson:"username,omitempty"`
	OccurredAt  time.Time `bson:"occurred_at"`
}

func toSecurityEventDoc(e *domain.SecurityEvent) securityEventDoc {
	return securityEventDoc{
		ID:          e.ID,
		Field:       e.Field,
		Families:    e.Families,
		Fingerprint: e.Fingerprint,
		Path:        e.Path,
		RemoteIP:    e.RemoteIP,
		Username:    e.Username,
		OccurredAt:  e.OccurredAt.UTC(),
	}
}

func (d securityEventDoc) toDomain() *domain.SecurityEvent {
	return &domain.SecurityEvent{
		ID:          d.ID,
		Field:       d.Field,
		Families:    d.Families,
		Fingerprint: d.Fingerprint,
		Path:        d.Path,
		RemoteIP:    d.RemoteIP,
		Username:    d.Username,
		OccurredAt:  d.OccurredAt,
	}
}

// EnsureIndexes creates the lookup indexes on occurred_at and remote_ip.
func (r *SecurityEventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "occurred_at", Value: -1}}},
		{Keys: bson.D{{Key: "remote_ip", Value: 1}, {Key: "occurred_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("security_events indexes: %w", err)
	}
	return nil
}

// Insert stores one event. Re-inserting an id already stored is a no-op.
func (r *SecurityEventRepository) Insert(ctx context.Context, e *domain.SecurityEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toSecurityEventDoc(e)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("insert security event: %w", err)
	}
	return nil
}

// ListRecent returns up to limit events, newest first.
func (r *SecurityEventRepository) ListRecent(ctx context.Context, limit int) ([]*domain.SecurityEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find security events: %w", err)
	}
	defer cur.Close(ctx)

	var docs []securityEventDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode security events: %w", err)
	}

	events := make([]*domain.SecurityEvent, 0, len(docs))
	for _, d := range docs {
		events = append(events, d.toDomain())
	}
	return events, nil
}
