package http_test

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gohttp "github.com/km-arc/go-nestforge/framework/http"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func write(t *testing.T, res *gohttp.Response) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	require.NoError(t, res.Write(rr))
	return rr
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&m))
	return m
}

// ── Response ─────────────────────────────────────────────────────────────────

func TestResponse_JSON(t *testing.T) {
	rr := write(t, gohttp.JSON(http.StatusOK, map[string]any{"key": "val"}))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "val", decodeJSON(t, rr)["key"])
}

func TestResponse_SuccessEnvelope(t *testing.T) {
	rr := write(t, gohttp.Success(map[string]any{"id": 1}))

	data, ok := decodeJSON(t, rr)["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), data["id"])
}

func TestResponse_Created(t *testing.T) {
	rr := write(t, gohttp.Created(map[string]any{"name": "Alice"}))
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, decodeJSON(t, rr), "data")
}

func TestResponse_Text(t *testing.T) {
	rr := write(t, gohttp.Text(http.StatusOK, "OK"))

	assert.Equal(t, "OK", rr.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
}

func TestResponse_NoContentAndHeaders(t *testing.T) {
	rr := write(t, gohttp.NoContent().WithHeader("X-Trace", "1"))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
	assert.Equal(t, "1", rr.Header().Get("X-Trace"))
}

func TestResponse_RawBytesAndDefaultStatus(t *testing.T) {
	rr := write(t, &gohttp.Response{Body: []byte("raw")})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "raw", rr.Body.String())
}

func TestResponse_UnencodableBodyIsInternalError(t *testing.T) {
	rr := httptest.NewRecorder()
	err := gohttp.Success(math.NaN()).WithHeader("Content-Type", "application/vnd.custom").Write(rr)
	require.Error(t, err)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	m := decodeJSON(t, rr)
	assert.Equal(t, float64(500), m["statusCode"])
	assert.Equal(t, "Internal Server Error", m["error"])
}

// ── HttpException ────────────────────────────────────────────────────────────

func TestHttpException_Body(t *testing.T) {
	rr := write(t, gohttp.BadRequest("id must be greater than 0").Response())

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t,
		`{"statusCode":400,"error":"Bad Request","message":"id must be greater than 0"}`,
		rr.Body.String())
}

func TestHttpException_Details(t *testing.T) {
	exc := gohttp.BadRequest("Validation failed").WithDetails(map[string][]string{"name": {"required"}})
	m := decodeJSON(t, write(t, exc.Response()))

	assert.Equal(t, map[string]any{"name": []any{"required"}}, m["errors"])
}

func TestHttpException_Constructors(t *testing.T) {
	tests := []struct {
		exc    *gohttp.HttpException
		status int
		reason string
	}{
		{gohttp.Unauthorized("x"), http.StatusUnauthorized, "Unauthorized"},
		{gohttp.Forbidden("x"), http.StatusForbidden, "Forbidden"},
		{gohttp.NotFound("x"), http.StatusNotFound, "Not Found"},
		{gohttp.InternalServerError("x"), http.StatusInternalServerError, "Internal Server Error"},
		{gohttp.NewException(gohttp.StatusClientClosedRequest, "x"), 499, "Client Closed Request"},
		{gohttp.NewException(599, "x"), 599, "Error"},
	}

	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.exc.Status)
			assert.Equal(t, tt.reason, gohttp.StatusReason(tt.exc.Status))
		})
	}
}

func TestFromError(t *testing.T) {
	assert.Nil(t, gohttp.FromError(nil))

	nf := gohttp.NotFound("gone")
	assert.Same(t, nf, gohttp.FromError(nf))

	exc := gohttp.FromError(errors.New("secret"))
	assert.Equal(t, http.StatusInternalServerError, exc.Status)
	assert.NotContains(t, exc.Message, "secret")
}

func TestResultHelpers(t *testing.T) {
	assert.NoError(t, gohttp.OrBadRequest(nil))

	var he *gohttp.HttpException
	require.ErrorAs(t, gohttp.OrBadRequest(errors.New("bad input")), &he)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "bad input", he.Message)

	_, err := gohttp.OrNotFound(0, false)("user not found")
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Status)

	v, err := gohttp.OrNotFound("found", true)("unused")
	require.NoError(t, err)
	assert.Equal(t, "found", v)

	assert.Equal(t, "user with id 3 not found", gohttp.NotFoundID("user", 3).Message)
}
