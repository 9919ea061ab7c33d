package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/km-arc/go-nestforge/framework/ctxlog"
	gohttp "github.com/km-arc/go-nestforge/framework/http"
)

// RequestContext is the immutable snapshot of the current request handed to
// every guard and interceptor.
type RequestContext struct {
	Method    string
	Path      string
	URI       string
	RequestID string
	Module    string

	ctx context.Context
}

// NewRequestContext snapshots r. The request ID is taken from chi's
// RequestID middleware when present, otherwise a UUID is generated.
func NewRequestContext(r *http.Request, module string) *RequestContext {
	id := middleware.GetReqID(r.Context())
	if id == "" {
		id = uuid.NewString()
	}
	return &RequestContext{
		Method:    r.Method,
		Path:      r.URL.Path,
		URI:       r.URL.RequestURI(),
		RequestID: id,
		Module:    module,
		ctx:       r.Context(),
	}
}

// Context returns the request's context. It is canceled when the client
// disconnects or the server deadline passes.
func (rc *RequestContext) Context() context.Context {
	if rc.ctx == nil {
		return context.Background()
	}
	return rc.ctx
}

// Logger returns the request-scoped logger.
func (rc *RequestContext) Logger() *slog.Logger {
	return ctxlog.FromContext(rc.Context())
}

// interrupted converts a done context into the exception answered to the
// client, or nil while the request is still live.
func (rc *RequestContext) interrupted() *gohttp.HttpException {
	err := rc.Context().Err()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return gohttp.NewException(http.StatusRequestTimeout, "request timeout")
	default:
		return gohttp.NewException(gohttp.StatusClientClosedRequest, "client closed request")
	}
}
