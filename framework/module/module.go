package module

import (
	"reflect"

	"github.com/km-arc/go-nestforge/framework/container"
	"github.com/km-arc/go-nestforge/framework/routing"
)

// Definition describes one module of the application graph.
//
//	type UsersModule struct{ module.BaseModule }
//
//	func (UsersModule) Imports() []module.Definition   { return []module.Definition{SharedModule{}} }
//	func (UsersModule) Providers() []container.Provider {
//	    return []container.Provider{container.Factory(NewUsersService)}
//	}
//	func (UsersModule) Controllers() []routing.Controller { return []routing.Controller{UsersController{}} }
type Definition interface {
	Imports() []Definition
	Providers() []container.Provider
	Controllers() []routing.Controller
	Exports() []string
	Global() bool
}

// Named lets a definition pick its display name instead of its Go type name.
type Named interface {
	Name() string
}

// Initializer is implemented by modules that need a hook once every provider
// of the graph has been registered.
type Initializer interface {
	OnModuleInit(c *container.Container) error
}

// BaseModule provides no-op defaults. Embed it and override what you need.
type BaseModule struct{}

func (BaseModule) Imports() []Definition             { return nil }
func (BaseModule) Providers() []container.Provider   { return nil }
func (BaseModule) Controllers() []routing.Controller { return nil }
func (BaseModule) Exports() []string                 { return nil }
func (BaseModule) Global() bool                      { return false }

// ── Ref ───────────────────────────────────────────────────────────────────────

// Ref is the stable identity of a module: its dynamic Go type plus its
// display name. Two values of the same module type are the same module.
type Ref struct {
	typ  reflect.Type
	name string
}

// RefOf returns the identity of def. A nil def yields the zero Ref named
// "<nil>".
func RefOf(def Definition) Ref {
	if def == nil {
		return Ref{name: "<nil>"}
	}
	t := reflect.TypeOf(def)
	name := ""
	if n, ok := def.(Named); ok {
		name = n.Name()
	}
	if name == "" {
		base := t
		for base.Kind() == reflect.Pointer {
			base = base.Elem()
		}
		name = base.Name()
		if name == "" {
			name = t.String()
		}
	}
	return Ref{typ: t, name: name}
}

// Name returns the display name used in logs and errors.
func (r Ref) Name() string { return r.name }

func (r Ref) String() string { return r.name }
