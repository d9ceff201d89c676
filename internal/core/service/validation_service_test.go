package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/security"
)

func TestValidationService_Run(t *testing.T) {
	auditor := &recordingAuditor{}
	v := NewValidationService(auditor)
	ctx := WithOrigin(context.Background(), Origin{RemoteIP: "10.9.9.9", Username: "cuddy"})

	verdict, err := v.Run(ctx, security.Check{Kind: security.KindEmail, Value: "cuddy@ppth.org"})
	if err != nil || !verdict.IsValid {
		t.Fatalf("expected valid email, got %+v %v", verdict, err)
	}
	if auditor.count() != 0 {
		t.Fatalf("clean input audited")
	}

	verdict, err = v.Run(ctx, security.Check{Kind: security.KindInput, Field: "Notes", Value: "see ../../secrets"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if verdict.IsValid {
		t.Fatalf("path traversal accepted")
	}
	if auditor.count() != 1 || auditor.reports[0].Username != "cuddy" {
		t.Fatalf("unexpected reports %+v", auditor.reports)
	}

	if _, err := v.Run(ctx, security.Check{Kind: "zipcode", Value: "1"}); !errors.Is(err, domain.ErrFormatInvalid) {
		t.Fatalf("expected ErrFormatInvalid for unknown kind, got %v", err)
	}
}

func TestValidationService_PasswordStrength(t *testing.T) {
	v := NewValidationService(nil)
	verdict, err := v.Run(context.Background(), security.Check{Kind: security.KindPassword, Value: "Secret#123"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if verdict.Strength != domain.StrengthStrong {
		t.Fatalf("expected strong, got %s", verdict.Strength)
	}
}

func TestFieldErrors_Flattens(t *testing.T) {
	a := &domain.FieldError{Field: "A"}
	b := &domain.FieldError{Field: "B", Security: true}
	err := fmt.Errorf("create: %w", errors.Join(a, errors.New("other"), b))

	got := FieldErrors(err)
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("unexpected flatten result %v", got)
	}
	if FieldErrors(nil) != nil {
		t.Fatalf("nil error should flatten to nil")
	}
}
