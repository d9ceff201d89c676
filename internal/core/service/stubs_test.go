package service

import (
	"context"
	"sync"

	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/ports"
)

type recordingAuditor struct {
	mu      sync.Mutex
	reports []ports.ViolationReport
}

func (a *recordingAuditor) Report(_ context.Context, r ports.ViolationReport) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reports = append(a.reports, r)
}

func (a *recordingAuditor) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.reports)
}

type stubAuthGateway struct {
	login       *domain.Login
	loginErr    error
	logoutErr   error
	loginCalls  int
	logoutToken string
}

func (g *stubAuthGateway) Login(_ context.Context, identifier, _ string) (*domain.Login, error) {
	g.loginCalls++
	if g.loginErr != nil {
		return nil, g.loginErr
	}
	l := *g.login
	if l.Username == "" {
		l.Username = identifier
	}
	return &l, nil
}

func (g *stubAuthGateway) Logout(_ context.Context, token string) error {
	g.logoutToken = token
	return g.logoutErr
}

type stubResource[T any] struct {
	items   map[string]T
	calls   int
	lastTok string
	// during runs inside every call, before the result is returned.
	during func()
	err    error
}

func newStubResource[T any]() *stubResource[T] {
	return &stubResource[T]{items: map[string]T{}}
}

func (r *stubResource[T]) hit(token string) error {
	r.calls++
	r.lastTok = token
	if r.during != nil {
		r.during()
	}
	return r.err
}

func (r *stubResource[T]) List(_ context.Context, token string, _ ports.ListQuery) ([]T, error) {
	if err := r.hit(token); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(r.items))
	for _, v := range r.items {
		out = append(out, v)
	}
	return out, nil
}

func (r *stubResource[T]) Get(_ context.Context, token, id string) (*T, error) {
	if err := r.hit(token); err != nil {
		return nil, err
	}
	v, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &v, nil
}

func (r *stubResource[T]) Create(_ context.Context, token string, in *T) (*T, error) {
	if err := r.hit(token); err != nil {
		return nil, err
	}
	r.items["new"] = *in
	out := *in
	return &out, nil
}

func (r *stubResource[T]) Update(_ context.Context, token, id string, in *T) (*T, error) {
	if err := r.hit(token); err != nil {
		return nil, err
	}
	r.items[id] = *in
	out := *in
	return &out, nil
}

func (r *stubResource[T]) Delete(_ context.Context, token, id string) error {
	if err := r.hit(token); err != nil {
		return err
	}
	delete(r.items, id)
	return nil
}

type fixedSessions struct{ ok bool }

func (f fixedSessions) Authenticated(context.Context, string) bool { return f.ok }
