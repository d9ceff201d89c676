package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/ports"
	"github.com/medicore/hospital-portal/internal/core/security"
)

// ValidationService runs the input validators and reports every input that
// matched an injection family to the security auditor.
type ValidationService struct {
	auditor ports.SecurityAuditor
}

func NewValidationService(auditor ports.SecurityAuditor) *ValidationService {
	return &ValidationService{auditor: auditor}
}

// Run validates c. The verdict is returned as is; only an unknown kind is an
// error.
func (v *ValidationService) Run(ctx context.Context, c security.Check) (security.Verdict, error) {
	verdict, err := security.Run(c)
	if err != nil {
		return security.Verdict{}, err
	}
	v.audit(ctx, fieldName(c), c.Value)
	return verdict, nil
}

// Field validates c and turns a failing verdict into a *domain.FieldError.
func (v *ValidationService) Field(ctx context.Context, c security.Check) error {
	verdict, err := v.Run(ctx, c)
	if err != nil {
		return err
	}
	if verdict.IsValid {
		return nil
	}
	return &domain.FieldError{
		Field:    fieldName(c),
		Result:   verdict.ValidationResult,
		Security: len(security.Families(c.Value)) > 0,
	}
}

func (v *ValidationService) audit(ctx context.Context, field, value string) {
	families := security.Families(value)
	if len(families) == 0 || v.auditor == nil {
		return
	}
	o := OriginFrom(ctx)
	v.auditor.Report(ctx, ports.ViolationReport{
		Field:    field,
		Input:    value,
		Families: families,
		Path:     o.Path,
		RemoteIP: o.RemoteIP,
		Username: o.Username,
	})
}

func fieldName(c security.Check) string {
	if c.Field != "" {
		return c.Field
	}
	return string(c.Kind)
}

// FieldChecks collects the field errors of one payload.
type FieldChecks struct {
	ctx  context.Context
	v    *ValidationService
	errs []error

	// Update is set when the payload edits an existing record.
	Update bool
}

func (v *ValidationService) checks(ctx context.Context) *FieldChecks {
	return &FieldChecks{ctx: ctx, v: v}
}

func (f *FieldChecks) check(kind security.Kind, field, value string) {
	if err := f.v.Field(f.ctx, security.Check{Kind: kind, Field: field, Value: value}); err != nil {
		f.errs = append(f.errs, err)
	}
}

// optional checks value only when it is set.
func (f *FieldChecks) optional(kind security.Kind, field, value string) {
	if strings.TrimSpace(value) != "" {
		f.check(kind, field, value)
	}
}

// required rejects a blank value, then runs the free-text check.
func (f *FieldChecks) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		f.errs = append(f.errs, &domain.FieldError{
			Field: field,
			Result: domain.ValidationResult{
				Errors: []string{field + " is required"},
			},
		})
		return
	}
	f.check(security.KindInput, field, value)
}

func (f *FieldChecks) number(field string, value, min, max float64) {
	c := security.Check{Kind: security.KindNumber, Field: field, Value: formatFloat(value), Min: &min, Max: &max}
	if err := f.v.Field(f.ctx, c); err != nil {
		f.errs = append(f.errs, err)
	}
}

func (f *FieldChecks) err() error {
	return errors.Join(f.errs...)
}

// FieldErrors flattens err into the field errors it carries.
func FieldErrors(err error) []*domain.FieldError {
	var out []*domain.FieldError
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if fe, ok := e.(*domain.FieldError); ok {
			out = append(out, fe)
			return
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return out
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
