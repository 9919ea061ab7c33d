package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gohttp "github.com/km-arc/go-nestforge/framework/http"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func newJSONRequest(t *testing.T, body string) *gohttp.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return gohttp.NewRequest(req)
}

func newFormRequest(t *testing.T, values url.Values) *gohttp.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return gohttp.NewRequest(req)
}

// withParams attaches chi route params the way the router does.
func withParams(t *testing.T, r *http.Request, kv ...string) *http.Request {
	t.Helper()
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// ── Bind ─────────────────────────────────────────────────────────────────────

func TestRequest_BindJSON(t *testing.T) {
	type user struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	var u user
	require.NoError(t, newJSONRequest(t, `{"name":"Alice","email":"alice@example.com"}`).Bind(&u))
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "alice@example.com", u.Email)
}

func TestRequest_BindJSON_EmptyBody(t *testing.T) {
	var v map[string]any
	assert.Error(t, newJSONRequest(t, "").Bind(&v))
}

func TestRequest_BindForm(t *testing.T) {
	var v struct {
		Name string   `json:"name"`
		Tags []string `json:"tags"`
	}
	req := newFormRequest(t, url.Values{"name": {"Bob"}, "tags": {"a", "b"}})

	require.NoError(t, req.Bind(&v))
	assert.Equal(t, "Bob", v.Name)
	assert.Equal(t, []string{"a", "b"}, v.Tags)
}

// ── Accessors ────────────────────────────────────────────────────────────────

func TestRequest_Accessors(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/users/9?page=2", nil)
	r.Header.Set("Authorization", "Bearer tok")
	r.Header.Set("X-Custom", "yes")
	req := gohttp.NewRequest(withParams(t, r, "id", "9"))

	assert.Equal(t, http.MethodGet, req.Method())
	assert.Equal(t, "/users/9", req.Path())
	assert.Equal(t, "2", req.Query("page"))
	assert.Equal(t, "10", req.Query("limit", "10"))
	assert.Equal(t, "9", req.RouteParam("id"))
	assert.Equal(t, "tok", req.BearerToken())
	assert.Equal(t, "yes", req.Header("X-Custom"))
	assert.Nil(t, req.Container())
}

func TestRequest_WithContext(t *testing.T) {
	type ctxKey struct{}
	req := gohttp.NewRequest(httptest.NewRequest(http.MethodGet, "/", nil))

	next := req.WithContext(context.WithValue(req.Context(), ctxKey{}, "v"))

	assert.Equal(t, "v", next.Context().Value(ctxKey{}))
	assert.Nil(t, req.Context().Value(ctxKey{}), "original untouched")
}
