package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/km-arc/go-pore/framework/config"
)

// ── helpers ──────────────────────────────────────────────────────────────────

var managedKeys = []string{
	"APP_NAME", "APP_ENV", "APP_DEBUG", "APP_PORT",
	"LOG_LEVEL", "LOG_FORMAT",
	"REGISTRY_MANIFEST", "REGISTRY_INSPECTOR", "METRICS_ENABLED",
}

// clearEnv blanks every key Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range managedKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// ── Load ─────────────────────────────────────────────────────────────────────

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := config.Load("testdata/empty.env")

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"App.Name", cfg.App.Name, "Pore"},
		{"App.Env", cfg.App.Env, "local"},
		{"App.Debug", cfg.App.Debug, true},
		{"App.Port", cfg.App.Port, "8000"},
		{"Log.Level", cfg.Log.Level, "info"},
		{"Log.Format", cfg.Log.Format, "text"},
		{"Registry.Manifest", cfg.Registry.Manifest, ""},
		{"Registry.Inspector", cfg.Registry.Inspector, true},
		{"Metrics.Enabled", cfg.Metrics.Enabled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_NAME", "MyApp")
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("METRICS_ENABLED", "true")

	cfg := config.Load("testdata/empty.env")

	assert.Equal(t, "MyApp", cfg.App.Name)
	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	clearEnv(t)
	cfg := config.Load("testdata/app.env")

	assert.Equal(t, "FromFile", cfg.App.Name)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "bindings.yaml", cfg.Registry.Manifest)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_NAME", "FromEnv")

	cfg := config.Load("testdata/app.env")
	assert.Equal(t, "FromEnv", cfg.App.Name)
}

func TestLoad_MissingFileIsNotFatal(t *testing.T) {
	clearEnv(t)
	cfg := config.Load("testdata/does-not-exist.env")
	assert.Equal(t, "Pore", cfg.App.Name)
}

func TestLoad_AppDebugFalse(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_DEBUG", "false")
	cfg := config.Load("testdata/empty.env")
	assert.False(t, cfg.App.Debug)
}

func TestConfig_Settings(t *testing.T) {
	clearEnv(t)
	cfg := config.Load("testdata/empty.env")
	settings := cfg.Settings()

	assert.Equal(t, "Pore", settings["app.name"])
	assert.Equal(t, true, settings["registry.inspector"])
	assert.Len(t, settings, 9)
}

// ── Get / GetInt / GetBool ───────────────────────────────────────────────────

func TestGet_ReturnsValue(t *testing.T) {
	t.Setenv("CUSTOM_KEY", "hello")
	assert.Equal(t, "hello", config.Get("CUSTOM_KEY", "default"))
}

func TestGet_ReturnsFallback(t *testing.T) {
	os.Unsetenv("MISSING_KEY")
	assert.Equal(t, "fallback", config.Get("MISSING_KEY", "fallback"))
}

func TestGetInt_ReturnsInt(t *testing.T) {
	t.Setenv("SOME_INT", "42")
	assert.Equal(t, 42, config.GetInt("SOME_INT", 0))
}

func TestGetInt_ReturnsFallbackOnInvalid(t *testing.T) {
	t.Setenv("SOME_INT", "notanint")
	assert.Equal(t, 99, config.GetInt("SOME_INT", 99))
}

func TestGetBool_True(t *testing.T) {
	for _, val := range []string{"true", "1", "True", "TRUE"} {
		t.Setenv("BOOL_KEY", val)
		assert.True(t, config.GetBool("BOOL_KEY", false), val)
	}
}

func TestGetBool_ReturnsFallbackOnInvalid(t *testing.T) {
	t.Setenv("BOOL_KEY", "notabool")
	assert.True(t, config.GetBool("BOOL_KEY", true))
}
