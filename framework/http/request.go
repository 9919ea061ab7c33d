package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/km-arc/go-nestforge/framework/container"
)

// Request wraps *http.Request with the serving state a handler needs: the
// application Container and the name of the module that owns the route.
type Request struct {
	raw       *http.Request
	container *container.Container
	module    string
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// NewModuleRequest wraps r for a route owned by module, resolving injected
// services from c.
func NewModuleRequest(r *http.Request, c *container.Container, module string) *Request {
	return &Request{raw: r, container: c, module: module}
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// Container returns the application container, or nil.
func (req *Request) Container() *container.Container { return req.container }

// Module returns the name of the module owning the route.
func (req *Request) Module() string { return req.module }

// Context returns the request's context.
func (req *Request) Context() context.Context { return req.raw.Context() }

// WithContext returns a shallow copy of req carrying ctx.
func (req *Request) WithContext(ctx context.Context) *Request {
	cp := *req
	cp.raw = req.raw.WithContext(ctx)
	return &cp
}

// ── Binding ──────────────────────────────────────────────────────────────────

// Bind decodes the request body into v.
// JSON bodies map via `json:"name"`; urlencoded forms are mapped onto the same
// json tags.
func (req *Request) Bind(v any) error {
	if strings.Contains(req.ContentType(), "application/json") || req.ContentType() == "" {
		return req.bindJSON(v)
	}
	if err := req.raw.ParseForm(); err != nil {
		return err
	}
	return bindForm(req.raw.PostForm, v)
}

func (req *Request) bindJSON(v any) error {
	if req.raw.Body == nil {
		return errors.New("empty request body")
	}
	defer req.raw.Body.Close()
	body, err := io.ReadAll(req.raw.Body)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return errors.New("empty request body")
	}
	return json.Unmarshal(body, v)
}

func bindForm(values map[string][]string, v any) error {
	m := make(map[string]any, len(values))
	for k, vals := range values {
		if len(vals) == 1 {
			m[k] = vals[0]
		} else {
			m[k] = vals
		}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// ── Input helpers ────────────────────────────────────────────────────────────

// Query returns a query-string value.
func (req *Request) Query(key string, fallback ...string) string {
	v := req.raw.URL.Query().Get(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// RouteParam returns a URL route parameter (chi).
func (req *Request) RouteParam(key string) string {
	return chi.URLParam(req.raw, key)
}

// Header returns a request header value.
func (req *Request) Header(key string) string {
	return req.raw.Header.Get(key)
}

// BearerToken extracts the token from Authorization: Bearer <token>.
func (req *Request) BearerToken() string {
	auth := req.raw.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// Method returns the HTTP method.
func (req *Request) Method() string { return req.raw.Method }

// Path returns the URL path.
func (req *Request) Path() string { return req.raw.URL.Path }

// ContentType returns the Content-Type header value.
func (req *Request) ContentType() string {
	return req.raw.Header.Get("Content-Type")
}
