package container

// ── Provider ──────────────────────────────────────────────────────────────────

// Provider describes how to produce one service value.
//
// Two kinds exist: Value wraps a ready instance, Factory builds the instance
// at registration time and may resolve services registered before it.
//
//	container.Value(&AppConfig{AppName: "NestForge"})
//	container.Factory(func(c *container.Container) (*UsersService, error) {
//	    cfg, err := container.Resolve[*AppConfig](c)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return NewUsersService(cfg), nil
//	})
type Provider interface {
	// Register produces the value and stores it in c.
	Register(c *Container) error

	// TypeName names the type the provider stores.
	TypeName() string
}

type valueProvider[T any] struct {
	value T
}

// Value returns a provider for a precomputed instance.
func Value[T any](value T) Provider {
	return &valueProvider[T]{value: value}
}

func (p *valueProvider[T]) TypeName() string { return TypeName[T]() }

func (p *valueProvider[T]) Register(c *Container) error {
	c.logger.Debug("registering service", "type", p.TypeName(), "kind", "value")
	return Register(c, p.value)
}

type factoryProvider[T any] struct {
	build func(*Container) (T, error)
}

// Factory returns a provider whose value is built by fn when the provider is
// registered.
func Factory[T any](fn func(c *Container) (T, error)) Provider {
	return &factoryProvider[T]{build: fn}
}

func (p *factoryProvider[T]) TypeName() string { return TypeName[T]() }

func (p *factoryProvider[T]) Register(c *Container) error {
	c.logger.Debug("registering service", "type", p.TypeName(), "kind", "factory")
	v, err := p.build(c)
	if err != nil {
		return &ProviderError{Type: p.TypeName(), Err: err}
	}
	return Register(c, v)
}

// RegisterProvider registers p into c.
func RegisterProvider(c *Container, p Provider) error {
	return p.Register(c)
}
