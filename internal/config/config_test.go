package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found.
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "fr", cfg.Google.Language)
	assert.Equal(t, "fr", cfg.Google.Region)
	assert.Equal(t, 10, cfg.Google.QPS)
	assert.Equal(t, map[string]string{"country": "france"}, cfg.Place.Components)
	assert.False(t, cfg.Place.Business)
	assert.Equal(t, 10, cfg.Place.CodeLength)
	assert.InDelta(t, 0.85, cfg.Place.Thresholds.Overall, 0.001)
	assert.InDelta(t, 0.9, cfg.Place.Thresholds.City, 0.001)
	assert.InDelta(t, 1.0, cfg.Place.Thresholds.PostalCode, 0.001)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "gistools.db", cfg.Store.DatabaseURL)
	assert.Equal(t, 8, cfg.Batch.Workers)
	assert.True(t, cfg.Batch.Cache)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	chdirTemp(t)

	yaml := `
google:
  key: test-key
  language: en
place:
  business: true
  thresholds:
    overall: 0.7
store:
  driver: postgres
  database_url: postgres://localhost/gistools
batch:
  workers: 4
server:
  port: 9090
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(".", "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.Google.Key)
	assert.Equal(t, "en", cfg.Google.Language)
	assert.True(t, cfg.Place.Business)
	assert.InDelta(t, 0.7, cfg.Place.Thresholds.Overall, 0.001)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Defaults still apply for unset values.
	assert.InDelta(t, 0.9, cfg.Place.Thresholds.City, 0.001)
	assert.Equal(t, 10, cfg.Place.CodeLength)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	chdirTemp(t)

	yaml := `
store:
  driver: postgres
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(".", "config.yaml"), []byte(yaml), 0644))

	t.Setenv("GISTOOLS_STORE_DRIVER", "sqlite")
	t.Setenv("GISTOOLS_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file.
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("GISTOOLS_SERVER_PORT", "3000")
	t.Setenv("GISTOOLS_GOOGLE_KEY", "env-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "env-key", cfg.Google.Key)
}

func validDefaults() *Config {
	cfg := &Config{}
	cfg.Google.Key = "test-key"
	cfg.Place.CodeLength = 10
	cfg.Place.Thresholds.Overall = 0.85
	cfg.Place.Thresholds.City = 0.9
	cfg.Place.Thresholds.PostalCode = 1
	cfg.Store.Driver = "sqlite"
	cfg.Store.DatabaseURL = "gistools.db"
	cfg.Batch.Workers = 8
	cfg.Server.Port = 8080
	return cfg
}

func TestValidateResolve(t *testing.T) {
	assert.NoError(t, validDefaults().Validate("resolve"))
}

func TestValidateResolve_MissingKey(t *testing.T) {
	cfg := validDefaults()
	cfg.Google.Key = ""

	err := cfg.Validate("resolve")
	assert.ErrorContains(t, err, "google.key is required")
}

func TestValidateBatch_BadDriver(t *testing.T) {
	cfg := validDefaults()
	cfg.Store.Driver = "oracle"

	err := cfg.Validate("batch")
	assert.ErrorContains(t, err, "store.driver must be sqlite or postgres")
}

func TestValidateBatch_WorkerBounds(t *testing.T) {
	cfg := validDefaults()

	cfg.Batch.Workers = 0
	assert.ErrorContains(t, cfg.Validate("batch"), "batch.workers must be between 1 and 64")

	cfg.Batch.Workers = 65
	assert.ErrorContains(t, cfg.Validate("batch"), "batch.workers must be between 1 and 64")

	cfg.Batch.Workers = 64
	assert.NoError(t, cfg.Validate("batch"))
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	assert.ErrorContains(t, err, "server.port must be > 0")
}

func TestValidateThresholdRange(t *testing.T) {
	cfg := validDefaults()
	cfg.Place.Thresholds.City = 1.2

	err := cfg.Validate("resolve")
	assert.ErrorContains(t, err, "place.thresholds.city must be between 0 and 1")
}

func TestValidateCodeLength(t *testing.T) {
	cfg := validDefaults()
	cfg.Place.CodeLength = 1

	err := cfg.Validate("resolve")
	assert.ErrorContains(t, err, "place.code_length must be between 2 and 15")
}

func TestValidateUnknownMode(t *testing.T) {
	err := validDefaults().Validate("unknown")
	assert.ErrorContains(t, err, "unknown mode")
}

func TestPlaceOptions(t *testing.T) {
	cfg := validDefaults()
	cfg.Place.Business = true
	cfg.Google.Language = "en"

	opts := cfg.PlaceOptions()
	assert.Len(t, opts, 5)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
