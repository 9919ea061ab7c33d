package config

import (
	"github.com/km-arc/go-nestforge/framework/container"
	"github.com/km-arc/go-nestforge/framework/module"
)

// FromEnv builds a typed configuration value out of a store.
type FromEnv[T any] func(env *EnvStore) (T, error)

// ForRoot loads a store with opts, checks opts.Schema and builds T.
//
//	cfg, err := config.ForRoot(config.Options{EnvFile: ".env"}, func(env *config.EnvStore) (*AppConfig, error) {
//	    return &AppConfig{AppName: env.Value("APP_NAME", "NestForge")}, nil
//	})
func ForRoot[T any](opts Options, from FromEnv[T]) (T, error) {
	var zero T
	env, err := LoadStore(opts)
	if err != nil {
		return zero, err
	}
	if opts.Schema != nil {
		if err := opts.Schema.Validate(env); err != nil {
			return zero, err
		}
	}
	return from(env)
}

// Module returns a global module that registers the T built by ForRoot.
// Import it once from the root module.
func Module[T any](opts Options, from FromEnv[T]) module.Definition {
	return configModule[T]{opts: opts, from: from}
}

type configModule[T any] struct {
	module.BaseModule
	opts Options
	from FromEnv[T]
}

func (configModule[T]) Name() string { return "ConfigModule" }

func (configModule[T]) Global() bool { return true }

func (m configModule[T]) Providers() []container.Provider {
	return []container.Provider{
		container.Factory(func(*container.Container) (T, error) {
			return ForRoot(m.opts, m.from)
		}),
	}
}

func (configModule[T]) Exports() []string { return []string{container.TypeName[T]()} }
