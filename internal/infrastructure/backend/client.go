// Package backend is the REST client of the hospital backend. Request bodies
// are sanitized before they leave the process and responses are unwrapped
// from the {success, message, data} envelope.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/rs/zerolog"

	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/security"
	"github.com/medicore/hospital-portal/internal/pkg/metrics"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx answer, or a 2xx answer with success=false, that is
// not covered by the auth and rate-limit errors.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d", e.Status)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// Is lets callers match a 404 with domain.ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == domain.ErrNotFound && e.Status == http.StatusNotFound
}

type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client performs plain request/response calls. It never retries.
type Client struct {
	baseURL        *url.URL
	http           *http.Client
	log            zerolog.Logger
	onAuthRejected func(ctx context.Context)
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithAuthRejectedHook registers the function run on every 401, whichever
// call received it.
func WithAuthRejectedHook(fn func(ctx context.Context)) Option {
	return func(c *Client) { c.onAuthRejected = fn }
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("backend url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend url %q: scheme and host required", baseURL)
	}
	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: defaultTimeout},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Request describes one backend call. Query is encoded with go-querystring
// struct tags; Body is sanitized and JSON-encoded.
type Request struct {
	Method string
	Path   string
	Token  string
	Query  any
	Body   any
}

// Do sends r and decodes the envelope data into out when out is non-nil.
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(r.Method, "error").Inc()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", r.Method, r.Path, ctxErr)
		}
		c.log.Warn().Err(err).Str("method", r.Method).Str("path", r.Path).Msg("backend unreachable")
		return fmt.Errorf("%s %s: %w: %v", r.Method, r.Path, domain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	metrics.BackendRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(resp.StatusCode)).Inc()
	metrics.BackendRequestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w: %v", r.Method, r.Path, domain.ErrNetworkFailure, err)
	}

	if err := c.statusError(ctx, resp, body); err != nil {
		return fmt.Errorf("%s %s: %w", r.Method, r.Path, err)
	}
	if err := unwrap(resp.StatusCode, body, out); err != nil {
		return fmt.Errorf("%s %s: %w", r.Method, r.Path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	ref, err := url.Parse(strings.TrimLeft(r.Path, "/"))
	if err != nil {
		return nil, fmt.Errorf("request path: %w", err)
	}
	u := *c.baseURL
	base := strings.TrimRight(u.EscapedPath(), "/")
	u.Path = strings.TrimRight(u.Path, "/") + "/" + ref.Path
	u.RawPath = base + "/" + ref.EscapedPath()
	if r.Query != nil {
		v, err := query.Values(r.Query)
		if err != nil {
			return nil, fmt.Errorf("encode query: %w", err)
		}
		u.RawQuery = v.Encode()
	}

	var rd io.Reader
	if r.Body != nil {
		payload, err := sanitizedJSON(r.Body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		rd = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u.String(), rd)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}
	return req, nil
}

// sanitizedJSON passes every string leaf of v through the sanitizer. Numbers
// keep their literal form.
func sanitizedJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	return json.Marshal(security.SanitizeObject(generic))
}

func (c *Client) statusError(ctx context.Context, resp *http.Response, body []byte) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if c.onAuthRejected != nil {
			c.onAuthRejected(ctx)
		}
		return domain.ErrAuthRejected
	case resp.StatusCode == http.StatusForbidden:
		return domain.ErrAuthForbidden
	case resp.StatusCode == http.StatusTooManyRequests:
		return &domain.RateLimitError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	case resp.StatusCode >= 400:
		var env envelope
		_ = json.Unmarshal(body, &env)
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	return nil
}

func parseRetryAfter(h string) time.Duration {
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return time.Second
}

// unwrap decodes an enveloped or bare JSON body into out.
func unwrap(status int, body []byte, out any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}

	var fields map[string]json.RawMessage
	if trimmed[0] == '{' && json.Unmarshal(trimmed, &fields) == nil && isEnvelope(fields) {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return fmt.Errorf("decode envelope: %w", err)
		}
		if env.Success != nil && !*env.Success {
			return &APIError{Status: status, Message: env.Message}
		}
		if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
			return nil
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
		return nil
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

func isEnvelope(fields map[string]json.RawMessage) bool {
	_, hasSuccess := fields["success"]
	_, hasData := fields["data"]
	return hasSuccess || hasData
}
