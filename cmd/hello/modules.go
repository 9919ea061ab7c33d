package main

import (
	"github.com/km-arc/go-nestforge/framework/config"
	"github.com/km-arc/go-nestforge/framework/container"
	"github.com/km-arc/go-nestforge/framework/module"
	"github.com/km-arc/go-nestforge/framework/routing"
)

// AppModule is the root module.
type AppModule struct{ module.BaseModule }

func (AppModule) Name() string { return "AppModule" }

func (AppModule) Imports() []module.Definition {
	return []module.Definition{
		config.Module(config.Options{
			Schema: config.NewSchema().OneOf("LOG_LEVEL", "debug", "info", "warn", "error"),
		}, loadAppConfig),
		UsersModule{},
		SettingsModule{},
		VersioningModule{},
	}
}

func (AppModule) Controllers() []routing.Controller {
	return []routing.Controller{AppController{}, HealthController{}}
}

// SharedModule owns the audit trail every feature module writes to.
type SharedModule struct{ module.BaseModule }

func (SharedModule) Name() string { return "SharedModule" }

func (SharedModule) Providers() []container.Provider {
	return []container.Provider{container.Value(NewAuditLog())}
}

func (SharedModule) Exports() []string { return []string{container.TypeName[*AuditLog]()} }

func (SharedModule) OnModuleInit(c *container.Container) error {
	audit, err := container.Resolve[*AuditLog](c)
	if err != nil {
		return err
	}
	audit.Record("boot", "shared module ready")
	return nil
}

type UsersModule struct{ module.BaseModule }

func (UsersModule) Name() string { return "UsersModule" }

func (UsersModule) Imports() []module.Definition { return []module.Definition{SharedModule{}} }

func (UsersModule) Providers() []container.Provider {
	return []container.Provider{container.Factory(NewUsersService)}
}

func (UsersModule) Controllers() []routing.Controller { return []routing.Controller{UsersController{}} }

func (UsersModule) Exports() []string { return []string{container.TypeName[*UsersService]()} }

type SettingsModule struct{ module.BaseModule }

func (SettingsModule) Name() string { return "SettingsModule" }

func (SettingsModule) Imports() []module.Definition { return []module.Definition{SharedModule{}} }

func (SettingsModule) Providers() []container.Provider {
	return []container.Provider{container.Factory(NewSettingsService)}
}

func (SettingsModule) Controllers() []routing.Controller {
	return []routing.Controller{SettingsController{}}
}

func (SettingsModule) Exports() []string { return []string{container.TypeName[*SettingsService]()} }

type VersioningModule struct{ module.BaseModule }

func (VersioningModule) Name() string { return "VersioningModule" }

func (VersioningModule) Controllers() []routing.Controller {
	return []routing.Controller{VersioningController{}}
}
