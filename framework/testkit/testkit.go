// Package testkit boots a module graph for tests, with selected providers
// replaced by test doubles.
//
//	mod, err := testkit.New(AppModule{}).
//	    Override(testkit.Provide(&AppConfig{AppName: "test"})).
//	    Build()
//	cfg, err := testkit.Resolve[*AppConfig](mod)
package testkit

import (
	"log/slog"
	"net/http"

	"github.com/km-arc/go-nestforge/framework/app"
	"github.com/km-arc/go-nestforge/framework/config"
	"github.com/km-arc/go-nestforge/framework/container"
	"github.com/km-arc/go-nestforge/framework/module"
)

// Override replaces one registration after the graph is initialized.
type Override func(c *container.Container) error

// Provide overrides the registered T with value.
func Provide[T any](value T) Override {
	return func(c *container.Container) error {
		return container.Replace(c, value)
	}
}

// Factory builds the registered T with the graph's container and stores it
// in place of the original.
func Factory[T any](fn func(c *container.Container) (T, error)) Override {
	return func(c *container.Container) error {
		v, err := fn(c)
		if err != nil {
			return &container.ProviderError{Type: container.TypeName[T](), Err: err}
		}
		return container.Replace(c, v)
	}
}

// Decorate wraps the registered T, keeping the original reachable from fn.
func Decorate[T any](fn func(T) T) Override {
	return func(c *container.Container) error {
		return container.Extend(c, fn)
	}
}

// TestFactory collects overrides and options before building.
type TestFactory struct {
	root      module.Definition
	overrides []Override
	opts      []app.Option
}

// New starts a test build of root.
func New(root module.Definition) *TestFactory {
	return &TestFactory{root: root}
}

// Override queues o. Overrides apply in call order.
func (f *TestFactory) Override(o ...Override) *TestFactory {
	f.overrides = append(f.overrides, o...)
	return f
}

// With passes application options through, such as app.WithGlobalPrefix.
func (f *TestFactory) With(opts ...app.Option) *TestFactory {
	f.opts = append(f.opts, opts...)
	return f
}

// Build boots the application. Logging is discarded and the configuration is
// the zero Config unless options say otherwise.
func (f *TestFactory) Build() (*TestingModule, error) {
	opts := []app.Option{
		app.WithConfig(&config.Config{App: config.AppConfig{Name: "testing", Env: "testing"}}),
		app.WithLogger(slog.New(slog.DiscardHandler)),
	}
	opts = append(opts, f.opts...)
	for _, o := range f.overrides {
		opts = append(opts, app.AfterInit(o))
	}

	a, err := app.Create(f.root, opts...)
	if err != nil {
		return nil, err
	}
	return &TestingModule{app: a}, nil
}

// TestingModule is a booted application under test.
type TestingModule struct {
	app *app.Application
}

// Container returns the container with overrides applied.
func (m *TestingModule) Container() *container.Container { return m.app.Container() }

// App returns the underlying application.
func (m *TestingModule) App() *app.Application { return m.app }

// Handler returns the application's http.Handler for httptest.
func (m *TestingModule) Handler() http.Handler { return m.app.Handler() }

// Resolve resolves T from m's container.
func Resolve[T any](m *TestingModule) (T, error) {
	return container.Resolve[T](m.Container())
}
