package routing

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router wraps chi.Router. The application mounts its route table on it.
type Router struct {
	mux chi.Router
}

// NewRouter creates a Router with RequestID, RealIP and Recoverer installed.
func NewRouter() *Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	return &Router{mux: r}
}

// ── Mounting ─────────────────────────────────────────────────────────────────

// Mount registers h for method and pattern, wrapped by route-scoped middleware.
func (r *Router) Mount(method, pattern string, h http.Handler, mw ...Middleware) {
	if len(mw) == 0 {
		r.mux.Method(method, pattern, h)
		return
	}
	r.mux.With(mw...).Method(method, pattern, h)
}

// ── Middleware ───────────────────────────────────────────────────────────────

// Use adds middleware to every route. chi requires this before any Mount.
func (r *Router) Use(mw ...Middleware) {
	r.mux.Use(mw...)
}

// NotFound sets the handler for unmatched paths.
func (r *Router) NotFound(h http.HandlerFunc) { r.mux.NotFound(h) }

// MethodNotAllowed sets the handler for a matched path with the wrong method.
func (r *Router) MethodNotAllowed(h http.HandlerFunc) { r.mux.MethodNotAllowed(h) }

// ── Introspection ────────────────────────────────────────────────────────────

// Walk visits every mounted method and pattern.
func (r *Router) Walk(fn func(method, pattern string) error) error {
	return chi.Walk(r.mux, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		return fn(method, route)
	})
}

// ── Serve ────────────────────────────────────────────────────────────────────

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}
