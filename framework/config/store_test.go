package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-nestforge/framework/config"
	"github.com/km-arc/go-nestforge/framework/container"
	"github.com/km-arc/go-nestforge/framework/module"
)

// ── EnvStore ─────────────────────────────────────────────────────────────────

func TestLoadStore_ReadsFile(t *testing.T) {
	env, err := config.LoadStore(config.Options{EnvFile: "testdata/app.env", ExcludeProcessEnv: true})
	require.NoError(t, err)

	assert.Equal(t, 5, env.Len())
	assert.Equal(t, "FromFile", env.Value("APP_NAME", ""))
	assert.Equal(t, "testing", env.Value("APP_ENV", ""))
	assert.Equal(t, "0123456789abcdef", env.Value("APP_KEY", ""))

	port, err := env.Int("HTTP_PORT", 0)
	require.NoError(t, err)
	assert.Equal(t, 4000, port)

	flag, err := env.Bool("FEATURE_FLAG", false)
	require.NoError(t, err)
	assert.True(t, flag)
}

func TestLoadStore_ProcessEnvWins(t *testing.T) {
	t.Setenv("APP_NAME", "FromProcess")

	env, err := config.LoadStore(config.Options{EnvFile: "testdata/app.env"})
	require.NoError(t, err)
	assert.Equal(t, "FromProcess", env.Value("APP_NAME", ""))

	env, err = config.LoadStore(config.Options{EnvFile: "testdata/app.env", ExcludeProcessEnv: true})
	require.NoError(t, err)
	assert.Equal(t, "FromFile", env.Value("APP_NAME", ""))
}

func TestLoadStore_MissingFileIsFine(t *testing.T) {
	env, err := config.LoadStore(config.Options{EnvFile: "testdata/nope.env", ExcludeProcessEnv: true})
	require.NoError(t, err)
	assert.Zero(t, env.Len())
}

func TestLoadStore_BrokenFile(t *testing.T) {
	_, err := config.LoadStore(config.Options{EnvFile: "testdata/broken.env", ExcludeProcessEnv: true})
	var re *config.ReadError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "testdata/broken.env", re.Path)
}

func TestEnvStore_Accessors(t *testing.T) {
	env := config.FromPairs("A", "1", "B", "yes?", "EMPTY", "")

	v, ok := env.Get("A")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, err := env.Require("MISSING")
	assert.ErrorIs(t, err, config.ErrMissingKey)

	n, err := env.Int("EMPTY", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = env.Bool("B", false)
	assert.Error(t, err)
}

// ── Schema ───────────────────────────────────────────────────────────────────

func TestSchema_Rules(t *testing.T) {
	s := config.NewSchema().
		Required("APP_NAME").
		MinLen("APP_KEY", 32).
		OneOf("APP_ENV", "local", "production")

	assert.Equal(t, "required", s.Rules()["APP_NAME"])
	assert.Equal(t, "nullable|min:32", s.Rules()["APP_KEY"])
	assert.Equal(t, "nullable|in:local,production", s.Rules()["APP_ENV"])
}

func TestSchema_Validate(t *testing.T) {
	s := config.NewSchema().
		Required("APP_NAME").
		MinLen("APP_KEY", 32).
		OneOf("APP_ENV", "local", "production")

	err := s.Validate(config.FromPairs("APP_KEY", "short", "APP_ENV", "staging"))

	var verr *config.ValidationError
	require.ErrorAs(t, err, &verr)
	keys := make([]string, 0, len(verr.Issues))
	for _, is := range verr.Issues {
		keys = append(keys, is.Key)
	}
	assert.Equal(t, []string{"APP_ENV", "APP_KEY", "APP_NAME"}, keys)
	assert.Contains(t, err.Error(), "environment validation failed")

	assert.NoError(t, s.Validate(config.FromPairs("APP_NAME", "x", "APP_ENV", "local")))
}

// ── ForRoot / Module ─────────────────────────────────────────────────────────

type appConfig struct {
	AppName string
	Port    int
}

func fromEnv(env *config.EnvStore) (*appConfig, error) {
	port, err := env.Int("HTTP_PORT", 3000)
	if err != nil {
		return nil, err
	}
	return &appConfig{AppName: env.Value("APP_NAME", "NestForge"), Port: port}, nil
}

func TestForRoot(t *testing.T) {
	cfg, err := config.ForRoot(config.Options{EnvFile: "testdata/app.env", ExcludeProcessEnv: true}, fromEnv)
	require.NoError(t, err)
	assert.Equal(t, &appConfig{AppName: "FromFile", Port: 4000}, cfg)
}

func TestForRoot_SchemaFailure(t *testing.T) {
	opts := config.Options{
		EnvFile:           "testdata/app.env",
		ExcludeProcessEnv: true,
		Schema:            config.NewSchema().MinLen("APP_KEY", 32),
	}
	_, err := config.ForRoot(opts, fromEnv)
	var verr *config.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "APP_KEY", verr.Issues[0].Key)
}

func TestModule_RegistersGlobalConfig(t *testing.T) {
	mod := config.Module(config.Options{EnvFile: "testdata/app.env", ExcludeProcessEnv: true}, fromEnv)
	assert.True(t, mod.Global())
	assert.Equal(t, "ConfigModule", module.RefOf(mod).Name())

	c := container.New()
	g, err := module.Initialize(mod, c)
	require.NoError(t, err)

	cfg, err := container.Resolve[*appConfig](c)
	require.NoError(t, err)
	assert.Equal(t, "FromFile", cfg.AppName)
	assert.Len(t, g.Globals, 1)
}
