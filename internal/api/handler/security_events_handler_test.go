package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/medicore/hospital-portal/internal/core/domain"
)

type stubEvents struct {
	limit int
}

func (s *stubEvents) Recent(_ context.Context, limit int) ([]*domain.SecurityEvent, error) {
	s.limit = limit
	return []*domain.SecurityEvent{{ID: "e1", Field: "notes", Families: []string{"sql"}}}, nil
}

func TestSecurityEventsHandler_Recent(t *testing.T) {
	e := newEcho(t)
	stub := &stubEvents{}
	h := NewSecurityEventsHandler(stub)

	c, rec := newJSONContext(e, http.MethodGet, "/api/admin/security-events?limit=20", nil)
	if err := h.Recent(c); err != nil {
		t.Fatalf("recent: %v", err)
	}
	if rec.Code != http.StatusOK || stub.limit != 20 {
		t.Fatalf("unexpected result %d limit=%d", rec.Code, stub.limit)
	}

	c, _ = newJSONContext(e, http.MethodGet, "/api/admin/security-events?limit=abc", nil)
	if err := h.Recent(c); err == nil {
		t.Fatalf("expected error for bad limit")
	}
}
