// Package session keeps the client-side session record in a flat key/value
// store and exposes its two-state lifecycle.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/medicore/hospital-portal/internal/core/authz"
	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/ports"
)

// Manager reads and writes one session's keys.
type Manager struct {
	id    string
	store ports.KeyValueStore
}

func NewManager(id string, store ports.KeyValueStore) *Manager {
	return &Manager{id: id, store: store}
}

// ID returns the session id the manager was created for.
func (m *Manager) ID() string { return m.id }

// Begin stores a successful login and moves the session to Authenticated.
func (m *Manager) Begin(ctx context.Context, login domain.Login) (*domain.Session, error) {
	if login.Token == "" {
		return nil, fmt.Errorf("begin session: empty token: %w", domain.ErrAuthRejected)
	}
	role := domain.NormalizeRole(login.Role)
	values := map[string]string{
		domain.KeyToken:         login.Token,
		domain.KeyRole:          string(role),
		domain.KeyUserID:        login.UserID,
		domain.KeyUsername:      login.Username,
		domain.KeyEmail:         login.Email,
		domain.KeyDashboardPath: authz.DashboardRouteFor(string(role)),
	}
	for _, k := range domain.SessionKeys {
		if err := m.store.Set(ctx, k, values[k]); err != nil {
			return nil, fmt.Errorf("begin session: set %s: %w", k, err)
		}
	}
	return m.Current(ctx)
}

// State is Authenticated exactly when a token is present.
func (m *Manager) State(ctx context.Context) domain.SessionState {
	tok, err := m.store.Get(ctx, domain.KeyToken)
	if err != nil || tok == "" {
		return domain.Unauthenticated
	}
	return domain.Authenticated
}

// Current returns the stored session or domain.ErrUnauthenticated.
func (m *Manager) Current(ctx context.Context) (*domain.Session, error) {
	tok, err := m.get(ctx, domain.KeyToken)
	if err != nil {
		return nil, err
	}
	if tok == "" {
		return nil, domain.ErrUnauthenticated
	}

	s := &domain.Session{ID: m.id, Token: tok}
	fields := []struct {
		key string
		dst *string
	}{
		{domain.KeyUserID, &s.UserID},
		{domain.KeyUsername, &s.Username},
		{domain.KeyEmail, &s.Email},
		{domain.KeyDashboardPath, &s.DashboardPath},
		{domain.KeyTheme, &s.Theme},
	}
	for _, f := range fields {
		if *f.dst, err = m.get(ctx, f.key); err != nil {
			return nil, err
		}
	}
	role, err := m.get(ctx, domain.KeyRole)
	if err != nil {
		return nil, err
	}
	s.Role = domain.Role(role)
	if s.DashboardPath == "" {
		s.DashboardPath = authz.DashboardRouteFor(role)
	}
	return s, nil
}

// End removes the session keys (logout or auth rejected). The theme
// preference survives.
func (m *Manager) End(ctx context.Context) error {
	var errs []error
	for _, k := range domain.SessionKeys {
		if err := m.store.Remove(ctx, k); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", k, err))
		}
	}
	return errors.Join(errs...)
}

// Clear wipes every key, preferences included.
func (m *Manager) Clear(ctx context.Context) error {
	return m.store.Clear(ctx)
}

func (m *Manager) Theme(ctx context.Context) (string, error) {
	return m.get(ctx, domain.KeyTheme)
}

func (m *Manager) SetTheme(ctx context.Context, theme string) error {
	return m.store.Set(ctx, domain.KeyTheme, theme)
}

// get maps a missing key to the empty string.
func (m *Manager) get(ctx context.Context, key string) (string, error) {
	v, err := m.store.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session get %s: %w", key, err)
	}
	return v, nil
}
