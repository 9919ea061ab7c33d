// Package container provides the type-keyed service registry shared by every
// module of a NestForge application.
//
// # Overview
//
// A Container stores at most one value per Go type. Modules fill it at boot
// through Providers; handlers read from it while serving requests.
//
// Because Go methods cannot carry type parameters, the operations are
// package-level generic functions taking the container first.
//
// # Registering
//
//	c := container.New(container.WithLogger(logger))
//
//	// Fails with ErrAlreadyRegistered on a second call for the same type
//	err := container.Register(c, &AppConfig{AppName: "NestForge"})
//
//	// Overwrites unconditionally (test overrides)
//	err = container.Replace(c, &AppConfig{AppName: "test"})
//
// # Resolving
//
//	cfg, err := container.Resolve[*AppConfig](c)
//	if errors.Is(err, container.ErrNotRegistered) { ... }
//
//	// Same, but the error names the module that asked
//	cfg, err = container.ResolveInModule[*AppConfig](c, "UsersModule")
//
// # Providers
//
//	providers := []container.Provider{
//	    container.Value(&AppConfig{AppName: "NestForge"}),
//	    container.Factory(func(c *container.Container) (*UsersService, error) {
//	        cfg, err := container.Resolve[*AppConfig](c)
//	        if err != nil {
//	            return nil, err
//	        }
//	        return &UsersService{Name: cfg.AppName}, nil
//	    }),
//	}
//	for _, p := range providers {
//	    if err := p.Register(c); err != nil { ... }
//	}
//
// A failing factory is reported as a *ProviderError naming the type it was
// meant to build.
//
// # Pointer vs value types
//
// The key is the static type argument, so Register(c, cfg) with cfg of type
// *AppConfig is resolved with Resolve[*AppConfig], not Resolve[AppConfig].
// Register pointers for services that carry state so every resolver shares
// the same instance.
package container
