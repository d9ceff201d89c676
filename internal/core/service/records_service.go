package service

import (
	"context"
	"fmt"

	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/ports"
	"github.com/medicore/hospital-portal/internal/core/security"
)

// maxBillAmount bounds a single bill.
const maxBillAmount = 10_000_000

// Rules validates one record before it is sent to the backend.
type Rules[T any] func(f *FieldChecks, in *T)

// SessionChecker reports whether a session is still authenticated.
type SessionChecker interface {
	Authenticated(ctx context.Context, sid string) bool
}

// RecordService proxies one record collection to the backend on behalf of a
// session.
type RecordService[T any] struct {
	name      string
	gateway   ports.ResourceGateway[T]
	validator *ValidationService
	rules     Rules[T]
	sessions  SessionChecker
}

func NewRecordService[T any](
	name string,
	gateway ports.ResourceGateway[T],
	validator *ValidationService,
	rules Rules[T],
	sessions SessionChecker,
) *RecordService[T] {
	return &RecordService[T]{
		name:      name,
		gateway:   gateway,
		validator: validator,
		rules:     rules,
		sessions:  sessions,
	}
}

func (s *RecordService[T]) Name() string { return s.name }

func (s *RecordService[T]) List(ctx context.Context, sess *domain.Session, q ports.ListQuery) ([]T, error) {
	checks := s.validator.checks(ctx)
	checks.optional(security.KindInput, "Search", q.Search)
	checks.optional(security.KindInput, "Status", q.Status)
	if err := checks.err(); err != nil {
		return nil, err
	}
	out, err := s.gateway.List(ctx, sess.Token, q)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.name, err)
	}
	if err := s.stillValid(ctx, sess); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RecordService[T]) Get(ctx context.Context, sess *domain.Session, id string) (*T, error) {
	if err := s.checkID(ctx, id); err != nil {
		return nil, err
	}
	out, err := s.gateway.Get(ctx, sess.Token, id)
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", s.name, id, err)
	}
	if err := s.stillValid(ctx, sess); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RecordService[T]) Create(ctx context.Context, sess *domain.Session, in *T) (*T, error) {
	if err := s.validate(ctx, in, false); err != nil {
		return nil, err
	}
	out, err := s.gateway.Create(ctx, sess.Token, in)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", s.name, err)
	}
	if err := s.stillValid(ctx, sess); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RecordService[T]) Update(ctx context.Context, sess *domain.Session, id string, in *T) (*T, error) {
	if err := s.checkID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, in, true); err != nil {
		return nil, err
	}
	out, err := s.gateway.Update(ctx, sess.Token, id, in)
	if err != nil {
		return nil, fmt.Errorf("update %s %s: %w", s.name, id, err)
	}
	if err := s.stillValid(ctx, sess); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RecordService[T]) Delete(ctx context.Context, sess *domain.Session, id string) error {
	if err := s.checkID(ctx, id); err != nil {
		return err
	}
	if err := s.gateway.Delete(ctx, sess.Token, id); err != nil {
		return fmt.Errorf("delete %s %s: %w", s.name, id, err)
	}
	return s.stillValid(ctx, sess)
}

func (s *RecordService[T]) validate(ctx context.Context, in *T, update bool) error {
	checks := s.validator.checks(ctx)
	checks.Update = update
	if s.rules != nil {
		s.rules(checks, in)
	}
	return checks.err()
}

func (s *RecordService[T]) checkID(ctx context.Context, id string) error {
	checks := s.validator.checks(ctx)
	checks.required("ID", id)
	return checks.err()
}

// stillValid discards a result whose session was torn down while the call
// was in flight.
func (s *RecordService[T]) stillValid(ctx context.Context, sess *domain.Session) error {
	if s.sessions == nil || s.sessions.Authenticated(ctx, sess.ID) {
		return nil
	}
	return fmt.Errorf("%s: session ended during call: %w", s.name, domain.ErrAuthRejected)
}

func PatientRules(f *FieldChecks, p *domain.Patient) {
	f.check(security.KindName, "First name", p.FirstName)
	f.check(security.KindName, "Last name", p.LastName)
	f.optional(security.KindEmail, "Email", p.Email)
	f.optional(security.KindPhone, "Phone", p.Phone)
	f.optional(security.KindPastDate, "Date of birth", p.DateOfBirth)
	f.optional(security.KindInput, "Gender", p.Gender)
	f.optional(security.KindInput, "Address", p.Address)
	f.optional(security.KindInput, "Blood group", p.BloodGroup)
}

func DoctorRules(f *FieldChecks, d *domain.Doctor) {
	f.check(security.KindName, "First name", d.FirstName)
	f.check(security.KindName, "Last name", d.LastName)
	f.optional(security.KindEmail, "Email", d.Email)
	f.optional(security.KindPhone, "Phone", d.Phone)
	f.optional(security.KindInput, "Specialization", d.Specialization)
	f.optional(security.KindInput, "Department", d.Department)
	f.optional(security.KindInput, "License number", d.LicenseNumber)
}

func AppointmentRules(f *FieldChecks, a *domain.Appointment) {
	f.required("Patient", a.PatientID)
	f.required("Doctor", a.DoctorID)
	// Edits may touch appointments that already took place.
	if f.Update {
		f.check(security.KindDate, "Appointment date", a.Date)
	} else {
		f.check(security.KindFutureDate, "Appointment date", a.Date)
	}
	f.optional(security.KindInput, "Appointment time", a.Time)
	f.optional(security.KindInput, "Reason", a.Reason)
	f.optional(security.KindInput, "Status", a.Status)
}

func PrescriptionRules(f *FieldChecks, p *domain.Prescription) {
	f.required("Patient", p.PatientID)
	f.required("Doctor", p.DoctorID)
	f.required("Medication", p.Medication)
	f.optional(security.KindInput, "Dosage", p.Dosage)
	f.optional(security.KindInput, "Frequency", p.Frequency)
	f.optional(security.KindInput, "Instructions", p.Instructions)
	f.optional(security.KindDate, "Issued at", p.IssuedAt)
}

func BillRules(f *FieldChecks, b *domain.Bill) {
	f.required("Patient", b.PatientID)
	f.number("Amount", b.Amount, 0, maxBillAmount)
	f.optional(security.KindInput, "Description", b.Description)
	f.optional(security.KindInput, "Status", b.Status)
	f.optional(security.KindDate, "Due date", b.DueDate)
}
