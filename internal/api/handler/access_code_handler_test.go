package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/medicore/hospital-portal/internal/core/domain"
)

type stubCodes struct {
	note   string
	expiry *time.Time
	id     string
}

func (s *stubCodes) List(context.Context, *domain.Session) ([]domain.AccessCode, error) {
	return []domain.AccessCode{{ID: "c1", Code: "WARD-7", IsActive: true}}, nil
}

func (s *stubCodes) Create(_ context.Context, _ *domain.Session, note string, expiry *time.Time) (*domain.AccessCode, error) {
	s.note, s.expiry = note, expiry
	return &domain.AccessCode{ID: "c2", Note: note, Expiry: expiry}, nil
}

func (s *stubCodes) Deactivate(_ context.Context, _ *domain.Session, id string) error {
	s.id = id
	return nil
}

func (s *stubCodes) Delete(_ context.Context, _ *domain.Session, id string) error {
	s.id = id
	return nil
}

func TestAccessCodeHandler_Create(t *testing.T) {
	e := newEcho(t)
	stub := &stubCodes{}
	h := NewAccessCodeHandler(stub)

	c, rec := newJSONContext(e, http.MethodPost, "/api/admin/access-codes",
		strings.NewReader(`{"note":"locum staff","expiry":"2031-05-01T00:00:00Z"}`))
	withSession(c, &domain.Session{ID: "s", Role: domain.RoleAdmin})

	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if stub.note != "locum staff" || stub.expiry == nil || stub.expiry.Year() != 2031 {
		t.Fatalf("payload not forwarded: %+v", stub)
	}
}

func TestAccessCodeHandler_Deactivate(t *testing.T) {
	e := newEcho(t)
	stub := &stubCodes{}
	h := NewAccessCodeHandler(stub)

	c, rec := newJSONContext(e, http.MethodPatch, "/api/admin/access-codes/c1/deactivate", nil)
	c.SetParamNames("id")
	c.SetParamValues("c1")
	withSession(c, &domain.Session{ID: "s", Role: domain.RoleTest})

	if err := h.Deactivate(c); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if rec.Code != http.StatusNoContent || stub.id != "c1" {
		t.Fatalf("unexpected result %d %q", rec.Code, stub.id)
	}
}
