package app

import (
	"log/slog"

	"github.com/km-arc/go-nestforge/framework/config"
	"github.com/km-arc/go-nestforge/framework/container"
	"github.com/km-arc/go-nestforge/framework/pipeline"
	"github.com/km-arc/go-nestforge/framework/routing"
)

// Option configures Create.
type Option func(*options)

type options struct {
	config       *config.Config
	logger       *slog.Logger
	prefix       *string
	guards       []pipeline.Guard
	interceptors []pipeline.Interceptor
	middleware   []routing.Middleware
	afterInit    []func(*container.Container) error
}

// WithConfig uses cfg instead of calling config.Load.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) { o.config = cfg }
}

// WithLogger uses l instead of a logger built from the config.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithGlobalPrefix mounts every route under prefix. It overrides HTTP_PREFIX.
func WithGlobalPrefix(prefix string) Option {
	return func(o *options) { o.prefix = &prefix }
}

// UseGuards appends global guards. They run before route guards, in order.
func UseGuards(g ...pipeline.Guard) Option {
	return func(o *options) { o.guards = append(o.guards, g...) }
}

// UseInterceptors appends global interceptors. They wrap route interceptors.
func UseInterceptors(i ...pipeline.Interceptor) Option {
	return func(o *options) { o.interceptors = append(o.interceptors, i...) }
}

// Use appends net/http middleware applied to every request.
func Use(mw ...routing.Middleware) Option {
	return func(o *options) { o.middleware = append(o.middleware, mw...) }
}

// AfterInit runs fn once the module graph is initialized and before any
// route is mounted.
func AfterInit(fn func(c *container.Container) error) Option {
	return func(o *options) { o.afterInit = append(o.afterInit, fn) }
}
