package routing

import (
	"net/http"

	"github.com/km-arc/go-nestforge/framework/pipeline"
)

// Middleware is a plain net/http middleware, attached per route through chi.
type Middleware = func(http.Handler) http.Handler

// ── Controller ────────────────────────────────────────────────────────────────

// Controller declares a group of routes under a base path.
//
//	type UsersController struct{}
//
//	func (UsersController) BasePath() string { return "/users" }
//
//	func (c UsersController) Routes(r *routing.Builder) {
//	    r.Get("/", c.list)
//	    r.Get("/{id}", c.show).Guards(RequireValidIDGuard{})
//	}
type Controller interface {
	BasePath() string
	Routes(r *Builder)
}

// Versioned is implemented by controllers whose routes share an API version.
// A version set on an individual route wins.
type Versioned interface {
	Version() string
}

// ── Route ─────────────────────────────────────────────────────────────────────

// Route is one declared endpoint. The fluent setters return the route so
// declarations read top to bottom.
type Route struct {
	method       string
	path         string
	version      string
	handler      pipeline.Handler
	guards       []pipeline.Guard
	interceptors []pipeline.Interceptor
	middleware   []Middleware
}

// Guards appends route-scoped guards. They run after the global ones.
func (r *Route) Guards(g ...pipeline.Guard) *Route {
	r.guards = append(r.guards, g...)
	return r
}

// Interceptors appends route-scoped interceptors. They run inside the global
// ones.
func (r *Route) Interceptors(i ...pipeline.Interceptor) *Route {
	r.interceptors = append(r.interceptors, i...)
	return r
}

// Version sets the API version segment ("1" mounts under /v1).
func (r *Route) Version(v string) *Route {
	r.version = v
	return r
}

// Use attaches net/http middleware around this route only.
func (r *Route) Use(mw ...Middleware) *Route {
	r.middleware = append(r.middleware, mw...)
	return r
}

// Method returns the HTTP method.
func (r *Route) Method() string { return r.method }

// Path returns the declared sub-path.
func (r *Route) Path() string { return r.path }

// ── Builder ───────────────────────────────────────────────────────────────────

// Builder collects a controller's routes.
type Builder struct {
	routes []*Route
}

// Handle declares a route for any method.
func (b *Builder) Handle(method, path string, h pipeline.Handler) *Route {
	r := &Route{method: method, path: path, handler: h}
	b.routes = append(b.routes, r)
	return r
}

func (b *Builder) Get(path string, h pipeline.Handler) *Route {
	return b.Handle(http.MethodGet, path, h)
}

func (b *Builder) Post(path string, h pipeline.Handler) *Route {
	return b.Handle(http.MethodPost, path, h)
}

func (b *Builder) Put(path string, h pipeline.Handler) *Route {
	return b.Handle(http.MethodPut, path, h)
}

func (b *Builder) Patch(path string, h pipeline.Handler) *Route {
	return b.Handle(http.MethodPatch, path, h)
}

func (b *Builder) Delete(path string, h pipeline.Handler) *Route {
	return b.Handle(http.MethodDelete, path, h)
}

// Routes returns the declared routes in declaration order.
func (b *Builder) Routes() []*Route { return b.routes }

// Collect runs c.Routes on a fresh Builder.
func Collect(c Controller) []*Route {
	b := &Builder{}
	c.Routes(b)
	return b.routes
}
