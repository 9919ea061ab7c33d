package main

import (
	"net/http"

	gohttp "github.com/km-arc/go-nestforge/framework/http"
	"github.com/km-arc/go-nestforge/framework/routing"
)

// ── App / Health ──────────────────────────────────────────────────────────────

type AppController struct{}

func (AppController) BasePath() string { return "" }

func (AppController) Routes(r *routing.Builder) {
	r.Get("/", func(req *gohttp.Request) (*gohttp.Response, error) {
		cfg, err := gohttp.Inject[*AppConfig](req)
		if err != nil {
			return nil, err
		}
		return gohttp.Text(http.StatusOK, "Welcome to "+cfg.AppName), nil
	})
	r.Get("/audit", func(req *gohttp.Request) (*gohttp.Response, error) {
		audit, err := gohttp.Inject[*AuditLog](req)
		if err != nil {
			return nil, err
		}
		return gohttp.Success(audit.Events()), nil
	})
}

type HealthController struct{}

func (HealthController) BasePath() string { return "/health" }

func (HealthController) Routes(r *routing.Builder) {
	r.Get("", func(*gohttp.Request) (*gohttp.Response, error) {
		return gohttp.Text(http.StatusOK, "OK"), nil
	})
}

// ── Users ─────────────────────────────────────────────────────────────────────

type UsersController struct{}

func (UsersController) BasePath() string { return "/users" }
func (UsersController) Version() string  { return "1" }

func (c UsersController) Routes(r *routing.Builder) {
	r.Get("/", c.list)
	r.Get("/count", c.count)
	r.Get("/{id}", c.show).Guards(RequireValidIDGuard{})
	r.Get("/{id}/exists", c.exists).Guards(RequireValidIDGuard{})
	r.Post("/", c.create)
	r.Put("/{id}", c.update).Guards(RequireValidIDGuard{})
	r.Put("/{id}/replace", c.replace).Guards(RequireValidIDGuard{})
	r.Delete("/{id}", c.delete).Guards(RequireValidIDGuard{})
}

func (UsersController) list(req *gohttp.Request) (*gohttp.Response, error) {
	users, err := gohttp.Inject[*UsersService](req)
	if err != nil {
		return nil, err
	}
	return gohttp.Success(users.List()), nil
}

func (UsersController) count(req *gohttp.Request) (*gohttp.Response, error) {
	users, err := gohttp.Inject[*UsersService](req)
	if err != nil {
		return nil, err
	}
	return gohttp.Success(map[string]int{"total": users.Count()}), nil
}

func (UsersController) show(req *gohttp.Request) (*gohttp.Response, error) {
	id, err := gohttp.Param[uint64](req, "id")
	if err != nil {
		return nil, err
	}
	users, err := gohttp.Inject[*UsersService](req)
	if err != nil {
		return nil, err
	}
	user, ok := users.Get(id)
	if !ok {
		return nil, gohttp.NotFoundID("User", id)
	}
	return gohttp.Success(user), nil
}

func (UsersController) exists(req *gohttp.Request) (*gohttp.Response, error) {
	id, err := gohttp.Param[uint64](req, "id")
	if err != nil {
		return nil, err
	}
	users, err := gohttp.Inject[*UsersService](req)
	if err != nil {
		return nil, err
	}
	return gohttp.Success(map[string]any{"id": id, "exists": users.Exists(id)}), nil
}

func (UsersController) create(req *gohttp.Request) (*gohttp.Response, error) {
	dto, err := gohttp.ValidatedBody[CreateUserDTO](req)
	if err != nil {
		return nil, err
	}
	users, err := gohttp.Inject[*UsersService](req)
	if err != nil {
		return nil, err
	}
	user, err := users.Create(dto)
	if err := gohttp.OrBadRequest(err); err != nil {
		return nil, err
	}
	return gohttp.Created(user), nil
}

func (UsersController) update(req *gohttp.Request) (*gohttp.Response, error) {
	id, err := gohttp.Param[uint64](req, "id")
	if err != nil {
		return nil, err
	}
	dto, err := gohttp.ValidatedBody[UpdateUserDTO](req)
	if err != nil {
		return nil, err
	}
	users, err := gohttp.Inject[*UsersService](req)
	if err != nil {
		return nil, err
	}
	user, ok, err := users.Update(id, dto)
	if err := gohttp.OrBadRequest(err); err != nil {
		return nil, err
	}
	if !ok {
		return nil, gohttp.NotFoundID("User", id)
	}
	return gohttp.Success(user), nil
}

func (UsersController) replace(req *gohttp.Request) (*gohttp.Response, error) {
	id, err := gohttp.Param[uint64](req, "id")
	if err != nil {
		return nil, err
	}
	dto, err := gohttp.ValidatedBody[CreateUserDTO](req)
	if err != nil {
		return nil, err
	}
	users, err := gohttp.Inject[*UsersService](req)
	if err != nil {
		return nil, err
	}
	user, ok, err := users.Replace(id, dto)
	if err := gohttp.OrBadRequest(err); err != nil {
		return nil, err
	}
	if !ok {
		return nil, gohttp.NotFoundID("User", id)
	}
	return gohttp.Success(user), nil
}

func (UsersController) delete(req *gohttp.Request) (*gohttp.Response, error) {
	id, err := gohttp.Param[uint64](req, "id")
	if err != nil {
		return nil, err
	}
	users, err := gohttp.Inject[*UsersService](req)
	if err != nil {
		return nil, err
	}
	return wrapFound(users.Delete(id))(gohttp.NotFoundID("User", id).Message)
}

// ── Settings ──────────────────────────────────────────────────────────────────

type SettingsController struct{}

func (SettingsController) BasePath() string { return "/settings" }
func (SettingsController) Version() string  { return "1" }

func (c SettingsController) Routes(r *routing.Builder) {
	r.Get("/runtime", c.runtime)
	r.Get("/", c.list)
	r.Get("/{id}", c.show)
	r.Post("/", c.create)
	r.Put("/{id}", c.update)
	r.Delete("/{id}", c.delete)
}

func (SettingsController) runtime(req *gohttp.Request) (*gohttp.Response, error) {
	cfg, err := gohttp.Inject[*AppConfig](req)
	if err != nil {
		return nil, err
	}
	return gohttp.Success(Setting{
		Key:   "app_name",
		Value: cfg.AppName + " (log_level=" + cfg.LogLevel + ")",
	}), nil
}

func (SettingsController) list(req *gohttp.Request) (*gohttp.Response, error) {
	settings, err := gohttp.Inject[*SettingsService](req)
	if err != nil {
		return nil, err
	}
	return gohttp.Success(settings.List()), nil
}

func (SettingsController) show(req *gohttp.Request) (*gohttp.Response, error) {
	id, err := gohttp.Param[uint64](req, "id")
	if err != nil {
		return nil, err
	}
	settings, err := gohttp.Inject[*SettingsService](req)
	if err != nil {
		return nil, err
	}
	return wrapFound(settings.Get(id))(gohttp.NotFoundID("Setting", id).Message)
}

func (SettingsController) create(req *gohttp.Request) (*gohttp.Response, error) {
	dto, err := gohttp.ValidatedBody[CreateSettingDTO](req)
	if err != nil {
		return nil, err
	}
	settings, err := gohttp.Inject[*SettingsService](req)
	if err != nil {
		return nil, err
	}
	return gohttp.Created(settings.Create(dto)), nil
}

func (SettingsController) update(req *gohttp.Request) (*gohttp.Response, error) {
	id, err := gohttp.Param[uint64](req, "id")
	if err != nil {
		return nil, err
	}
	dto, err := gohttp.ValidatedBody[UpdateSettingDTO](req)
	if err != nil {
		return nil, err
	}
	settings, err := gohttp.Inject[*SettingsService](req)
	if err != nil {
		return nil, err
	}
	return wrapFound(settings.Update(id, dto))(gohttp.NotFoundID("Setting", id).Message)
}

func (SettingsController) delete(req *gohttp.Request) (*gohttp.Response, error) {
	id, err := gohttp.Param[uint64](req, "id")
	if err != nil {
		return nil, err
	}
	settings, err := gohttp.Inject[*SettingsService](req)
	if err != nil {
		return nil, err
	}
	return wrapFound(settings.Delete(id))(gohttp.NotFoundID("Setting", id).Message)
}

// wrapFound answers 200 {"data": v}, or 404 with message when ok is false.
func wrapFound[T any](v T, ok bool) func(message string) (*gohttp.Response, error) {
	return func(message string) (*gohttp.Response, error) {
		found, err := gohttp.OrNotFound(v, ok)(message)
		if err != nil {
			return nil, err
		}
		return gohttp.Success(found), nil
	}
}

// ── Versioning ────────────────────────────────────────────────────────────────

type VersioningController struct{}

func (VersioningController) BasePath() string { return "/versioning" }

func (VersioningController) Routes(r *routing.Builder) {
	r.Get("/hello", func(*gohttp.Request) (*gohttp.Response, error) {
		return gohttp.Text(http.StatusOK, "Hello from API v1"), nil
	}).Version("1")
	r.Get("/hello", func(*gohttp.Request) (*gohttp.Response, error) {
		return gohttp.Text(http.StatusOK, "Hello from API v2"), nil
	}).Version("2")
}
