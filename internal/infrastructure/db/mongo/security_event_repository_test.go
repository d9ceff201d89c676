package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/medicore/hospital-portal/internal/core/domain"
)

func TestSecurityEventDoc_BSONShape(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.FixedZone("CET", 3600))
	doc := toSecurityEventDoc(&domain.SecurityEvent{
		ID:          "evt-1",
		Field:       "Username",
		Families:    []string{"sql"},
		Fingerprint: "ab12",
		RemoteIP:    "10.0.0.9",
		OccurredAt:  at,
	})

	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["_id"] != "evt-1" {
		t.Fatalf("_id = %v", m["_id"])
	}
	if _, ok := m["path"]; ok {
		t.Fatalf("empty path should be omitted")
	}
	if m["remote_ip"] != "10.0.0.9" {
		t.Fatalf("remote_ip = %v", m["remote_ip"])
	}

	var back securityEventDoc
	if err := bson.Unmarshal(raw, &back); err != nil {
		t.Fatalf("decode doc: %v", err)
	}
	e := back.toDomain()
	if !e.OccurredAt.Equal(at) {
		t.Fatalf("occurred_at = %v, want %v", e.OccurredAt, at)
	}
	if len(e.Families) != 1 || e.Families[0] != "sql" {
		t.Fatalf("families = %v", e.Families)
	}
}
