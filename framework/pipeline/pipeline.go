package pipeline

import (
	"errors"
	"sync/atomic"

	gohttp "github.com/km-arc/go-nestforge/framework/http"
)

// ErrNextCalledTwice marks an interceptor that invoked its continuation more
// than once.
var ErrNextCalledTwice = errors.New("pipeline next called multiple times")

// ── Guards ────────────────────────────────────────────────────────────────────

// Guard decides whether a request may proceed. A non-nil error rejects it:
// an *HttpException is answered as-is, any other error becomes a 403.
type Guard interface {
	CanActivate(rc *RequestContext) error
}

// GuardFunc adapts a function to Guard.
type GuardFunc func(rc *RequestContext) error

func (f GuardFunc) CanActivate(rc *RequestContext) error { return f(rc) }

// RunGuards evaluates guards in order and returns the first rejection.
// Guards after a rejection never run.
func RunGuards(guards []Guard, rc *RequestContext) *gohttp.HttpException {
	for _, g := range guards {
		if exc := rc.interrupted(); exc != nil {
			return exc
		}
		if err := g.CanActivate(rc); err != nil {
			var he *gohttp.HttpException
			if errors.As(err, &he) {
				if he == nil {
					return gohttp.Forbidden("Forbidden resource")
				}
				return he
			}
			return gohttp.Forbidden(err.Error())
		}
	}
	return nil
}

// ── Interceptors ──────────────────────────────────────────────────────────────

// Interceptor wraps the rest of the chain. It may work before and after
// calling next.Run, return next.Run's response unchanged, or skip next
// entirely and answer on its own. next.Run may be called at most once.
type Interceptor interface {
	Around(rc *RequestContext, req *gohttp.Request, next *Next) *gohttp.Response
}

// InterceptorFunc adapts a function to Interceptor.
type InterceptorFunc func(rc *RequestContext, req *gohttp.Request, next *Next) *gohttp.Response

func (f InterceptorFunc) Around(rc *RequestContext, req *gohttp.Request, next *Next) *gohttp.Response {
	return f(rc, req, next)
}

// Handler is the terminal business logic of a route.
type Handler func(req *gohttp.Request) (*gohttp.Response, error)

// Next is the continuation handed to one interceptor invocation. It is a
// cursor into the chain: Run executes the interceptor at the cursor, or the
// handler once the interceptors are exhausted.
type Next struct {
	chain *chain
	index int
	used  atomic.Bool
}

// Run invokes the remainder of the chain. A second call on the same Next
// does not re-run anything: it flags the request as failed and returns a 500.
func (n *Next) Run(req *gohttp.Request) *gohttp.Response {
	if !n.used.CompareAndSwap(false, true) {
		n.chain.fatal.Store(true)
		n.chain.rc.Logger().Error(ErrNextCalledTwice.Error(), "interceptor_index", n.index-1)
		return nextCalledTwice().Response()
	}
	return n.chain.step(n.index, req)
}

type chain struct {
	rc           *RequestContext
	interceptors []Interceptor
	handler      Handler
	fatal        atomic.Bool
}

func (c *chain) step(i int, req *gohttp.Request) *gohttp.Response {
	if exc := c.rc.interrupted(); exc != nil {
		return exc.Response()
	}
	if i >= len(c.interceptors) {
		return c.invoke(req)
	}

	resp := c.interceptors[i].Around(c.rc, req, &Next{chain: c, index: i + 1})
	if resp == nil {
		return gohttp.InternalServerError("interceptor returned no response").Response()
	}
	return resp
}

func (c *chain) invoke(req *gohttp.Request) *gohttp.Response {
	resp, err := c.handler(req)
	if err != nil {
		var he *gohttp.HttpException
		if !errors.As(err, &he) {
			c.rc.Logger().Error("handler failed", "error", err)
		}
		return gohttp.FromError(err).Response()
	}
	if resp == nil {
		return gohttp.NoContent()
	}
	return resp
}

func nextCalledTwice() *gohttp.HttpException {
	return gohttp.InternalServerError("Pipeline next called multiple times")
}

// ── Execute ───────────────────────────────────────────────────────────────────

// Execute runs one request through the pipeline:
//
//	guards (in order, first rejection wins)
//	  → interceptors[0] → ... → interceptors[n-1]
//	    → handler
//
// Interceptors nest like an onion: the first sees the request first and the
// response last. If any interceptor called its continuation twice the
// request fails with a 500 whatever the interceptors returned.
func Execute(rc *RequestContext, req *gohttp.Request, guards []Guard, interceptors []Interceptor, handler Handler) *gohttp.Response {
	if exc := RunGuards(guards, rc); exc != nil {
		return exc.Response()
	}

	c := &chain{rc: rc, interceptors: interceptors, handler: handler}
	resp := c.step(0, req)
	if c.fatal.Load() {
		return nextCalledTwice().Response()
	}
	return resp
}

// Merge returns global followed by route-scoped items, leaving both inputs
// untouched.
func Merge[T any](global, route []T) []T {
	out := make([]T, 0, len(global)+len(route))
	out = append(out, global...)
	return append(out, route...)
}
