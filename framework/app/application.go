package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/km-arc/go-nestforge/framework/config"
	"github.com/km-arc/go-nestforge/framework/container"
	"github.com/km-arc/go-nestforge/framework/ctxlog"
	gohttp "github.com/km-arc/go-nestforge/framework/http"
	"github.com/km-arc/go-nestforge/framework/module"
	"github.com/km-arc/go-nestforge/framework/pipeline"
	"github.com/km-arc/go-nestforge/framework/providers"
	"github.com/km-arc/go-nestforge/framework/routing"
)

const defaultShutdownTimeout = 10 * time.Second

// Application is a booted module graph with its routes mounted.
//
//	application, err := app.Create(AppModule{},
//	    app.WithGlobalPrefix("api"),
//	    app.UseGuards(AllowAllGuard{}),
//	    app.UseInterceptors(LoggingInterceptor{}),
//	)
//	if err != nil { ... }
//	application.Listen(ctx, ":3000")
type Application struct {
	cfg       *config.Config
	logger    *slog.Logger
	container *container.Container
	graph     *module.Graph
	table     *routing.Table
	router    *routing.Router
}

// Create boots root:
//
//  1. The framework providers (*config.Config, *slog.Logger) are registered.
//  2. The module graph is initialized.
//  3. AfterInit hooks run.
//  4. Every controller's routes are merged into one table and mounted.
//
// Any failure aborts boot and is returned as is.
func Create(root module.Definition, opts ...Option) (*Application, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	cfg := o.config
	if cfg == nil {
		cfg = config.Load()
	}
	logger := o.logger
	if logger == nil {
		logger = NewLogger(cfg.Log, os.Stderr)
	}

	c := container.New(container.WithLogger(logger))
	if err := providers.Register(c, providers.Core(cfg, logger)...); err != nil {
		return nil, fmt.Errorf("boot: %w", err)
	}

	graph, err := module.Initialize(root, c, module.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("boot: %w", err)
	}
	for _, fn := range o.afterInit {
		if err := fn(c); err != nil {
			return nil, fmt.Errorf("boot: %w", err)
		}
	}

	prefix := cfg.HTTP.Prefix
	if o.prefix != nil {
		prefix = *o.prefix
	}
	table := routing.NewTable(prefix)
	for _, b := range graph.Controllers {
		if err := table.AddController(b.Module.Name(), b.Controller); err != nil {
			return nil, fmt.Errorf("boot: %w", err)
		}
	}

	a := &Application{
		cfg:       cfg,
		logger:    logger,
		container: c,
		graph:     graph,
		table:     table,
	}
	a.router = a.mount(o)
	return a, nil
}

// ── Router assembly ──────────────────────────────────────────────────────────

func (a *Application) mount(o *options) *routing.Router {
	r := routing.NewRouter()
	r.Use(a.requestLogger)
	if a.cfg.HTTP.AccessLog {
		r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
			Logger:  slog.NewLogLogger(a.logger.Handler(), slog.LevelInfo),
			NoColor: true,
		}))
	}
	r.Use(o.middleware...)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		a.write(w, req, gohttp.NotFound(fmt.Sprintf("Cannot %s %s", req.Method, req.URL.Path)).Response())
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		a.write(w, req, gohttp.NewException(http.StatusMethodNotAllowed, "Method Not Allowed").Response())
	})

	for _, e := range a.table.Entries() {
		r.Mount(e.Method, e.Path, a.endpoint(e, o), e.Middleware...)
	}

	mounted := 0
	if err := r.Walk(func(method, pattern string) error {
		mounted++
		a.logger.Debug("mapped route", "method", method, "path", pattern)
		return nil
	}); err != nil {
		a.logger.Warn("failed to walk mounted routes", "error", err)
	}
	a.logger.Info("routes mounted", "count", mounted)
	return r
}

// requestLogger attaches the request-scoped logger to the context.
func (a *Application) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := a.logger.With("request_id", middleware.GetReqID(r.Context()))
		next.ServeHTTP(w, r.WithContext(ctxlog.WithLogger(r.Context(), l)))
	})
}

// endpoint adapts one route to net/http. Global guards run first and global
// interceptors wrap the route's own.
func (a *Application) endpoint(e routing.Entry, o *options) http.Handler {
	guards := pipeline.Merge(o.guards, e.Guards)
	interceptors := pipeline.Merge(o.interceptors, e.Interceptors)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(ctxlog.With(r.Context(), "module", e.Module))
		rc := pipeline.NewRequestContext(r, e.Module)
		req := gohttp.NewModuleRequest(r, a.container, e.Module)
		a.write(w, r, a.execute(rc, req, guards, interceptors, e.Handler))
	})
}

// execute runs the pipeline and turns a panic in any stage into a 500
// response. chi's Recoverer stays installed for panics outside the pipeline.
func (a *Application) execute(rc *pipeline.RequestContext, req *gohttp.Request, guards []pipeline.Guard, interceptors []pipeline.Interceptor, h pipeline.Handler) (resp *gohttp.Response) {
	defer func() {
		if rvr := recover(); rvr != nil {
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}
			rc.Logger().Error("panic in request pipeline", "panic", rvr, "stack", string(debug.Stack()))
			resp = gohttp.InternalServerError("Internal Server Error").Response()
		}
	}()
	return pipeline.Execute(rc, req, guards, interceptors, h)
}

func (a *Application) write(w http.ResponseWriter, r *http.Request, resp *gohttp.Response) {
	if err := resp.Write(w); err != nil {
		ctxlog.FromContext(r.Context()).Error("failed to write response", "error", err)
	}
}

// ── Accessors ────────────────────────────────────────────────────────────────

// Container returns the application container.
func (a *Application) Container() *container.Container { return a.container }

// Graph returns the initialized module graph.
func (a *Application) Graph() *module.Graph { return a.graph }

// Routes returns the mounted route table in registration order.
func (a *Application) Routes() []routing.Entry { return a.table.Entries() }

// Config returns the framework configuration.
func (a *Application) Config() *config.Config { return a.cfg }

// Logger returns the application logger.
func (a *Application) Logger() *slog.Logger { return a.logger }

// Handler returns the application as an http.Handler.
func (a *Application) Handler() http.Handler { return a.router }

// ── Serve ────────────────────────────────────────────────────────────────────

// Listen serves on addr until ctx is canceled, then shuts down gracefully
// within HTTP_SHUTDOWN_TIMEOUT. An empty addr uses HTTP_HOST:HTTP_PORT.
func (a *Application) Listen(ctx context.Context, addr string) error {
	if addr == "" {
		addr = a.cfg.HTTP.Addr()
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return a.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled.
func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:  a.router,
		ErrorLog: slog.NewLogLogger(a.logger.Handler(), slog.LevelError),
		BaseContext: func(net.Listener) context.Context {
			return ctxlog.WithLogger(context.Background(), a.logger)
		},
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	a.logger.Info("application listening", "app", a.cfg.App.Name, "addr", ln.Addr().String(), "env", a.cfg.App.Env)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := a.cfg.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	a.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
