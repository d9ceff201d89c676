package backend

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/ports"
)

// Resource is the CRUD client of one backend collection.
type Resource[T any] struct {
	c    *Client
	path string
}

var _ ports.ResourceGateway[domain.Patient] = (*Resource[domain.Patient])(nil)

func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{c: c, path: path}
}

func (r *Resource[T]) List(ctx context.Context, token string, q ports.ListQuery) ([]T, error) {
	var out []T
	err := r.c.Do(ctx, Request{Method: http.MethodGet, Path: r.path, Token: token, Query: q}, &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (r *Resource[T]) Get(ctx context.Context, token, id string) (*T, error) {
	var out T
	if err := r.c.Do(ctx, Request{Method: http.MethodGet, Path: r.item(id), Token: token}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Create(ctx context.Context, token string, in *T) (*T, error) {
	var out T
	if err := r.c.Do(ctx, Request{Method: http.MethodPost, Path: r.path, Token: token, Body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Update(ctx context.Context, token, id string, in *T) (*T, error) {
	var out T
	if err := r.c.Do(ctx, Request{Method: http.MethodPut, Path: r.item(id), Token: token, Body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Delete(ctx context.Context, token, id string) error {
	return r.c.Do(ctx, Request{Method: http.MethodDelete, Path: r.item(id), Token: token}, nil)
}

func (r *Resource[T]) item(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

// Resources groups the record collections the portal proxies.
type Resources struct {
	Patients      *Resource[domain.Patient]
	Doctors       *Resource[domain.Doctor]
	Appointments  *Resource[domain.Appointment]
	Prescriptions *Resource[domain.Prescription]
	Bills         *Resource[domain.Bill]
}

func NewResources(c *Client) *Resources {
	return &Resources{
		Patients:      NewResource[domain.Patient](c, "/api/patients"),
		Doctors:       NewResource[domain.Doctor](c, "/api/doctors"),
		Appointments:  NewResource[domain.Appointment](c, "/api/appointments"),
		Prescriptions: NewResource[domain.Prescription](c, "/api/prescriptions"),
		Bills:         NewResource[domain.Bill](c, "/api/bills"),
	}
}

// Auth is the backend login/logout client.
type Auth struct {
	c *Client
}

var _ ports.AuthGateway = (*Auth)(nil)

func NewAuth(c *Client) *Auth {
	return &Auth{c: c}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *Auth) Login(ctx context.Context, identifier, password string) (*domain.Login, error) {
	var out domain.Login
	req := Request{
		Method: http.MethodPost,
		Path:   "/api/auth/login",
		Body:   loginRequest{Username: identifier, Password: password},
	}
	if err := a.c.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *Auth) Logout(ctx context.Context, token string) error {
	return a.c.Do(ctx, Request{Method: http.MethodPost, Path: "/api/auth/logout", Token: token}, nil)
}

// AccessCodes is the client of the admin access-code utility.
type AccessCodes struct {
	c *Client
}

var _ ports.AccessCodeGateway = (*AccessCodes)(nil)

const accessCodesPath = "/api/admin/access-codes"

func NewAccessCodes(c *Client) *AccessCodes {
	return &AccessCodes{c: c}
}

func (a *AccessCodes) List(ctx context.Context, token string) ([]domain.AccessCode, error) {
	out := []domain.AccessCode{}
	if err := a.c.Do(ctx, Request{Method: http.MethodGet, Path: accessCodesPath, Token: token}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type createAccessCodeRequest struct {
	Note   string     `json:"note,omitempty"`
	Expiry *time.Time `json:"expiry,omitempty"`
}

func (a *AccessCodes) Create(ctx context.Context, token, note string, expiry *time.Time) (*domain.AccessCode, error) {
	var out domain.AccessCode
	req := Request{
		Method: http.MethodPost,
		Path:   accessCodesPath,
		Token:  token,
		Body:   createAccessCodeRequest{Note: note, Expiry: expiry},
	}
	if err := a.c.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AccessCodes) Deactivate(ctx context.Context, token, id string) error {
	path := accessCodesPath + "/" + url.PathEscape(id) + "/deactivate"
	return a.c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Token: token}, nil)
}

func (a *AccessCodes) Delete(ctx context.Context, token, id string) error {
	return a.c.Do(ctx, Request{Method: http.MethodDelete, Path: accessCodesPath + "/" + url.PathEscape(id), Token: token}, nil)
}
