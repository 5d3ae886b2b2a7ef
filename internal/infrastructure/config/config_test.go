package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/domnus-go/internal/infrastructure/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_FileValuesAndDefaults(t *testing.T) {
	// Arrange
	path := writeConfig(t, `
store:
  base_url: https://kingdoms.example.net/api
  functions_key: secret
database:
  type: sqlite
  path: ":memory:"
catalog:
  path: /etc/domnus/tables.yaml
`)

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "http", cfg.Store.Kind)
	assert.Equal(t, "https://kingdoms.example.net/api", cfg.Store.BaseURL)
	assert.Equal(t, "secret", cfg.Store.FunctionsKey)
	assert.Equal(t, 10*time.Second, cfg.Store.Timeout)
	assert.Equal(t, 5, cfg.Store.Circuit.MaxFailures)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "/etc/domnus/tables.yaml", cfg.Catalog.Path)
	assert.Equal(t, "localhost:50061", cfg.Server.Address)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	// Arrange
	path := writeConfig(t, `
store:
  base_url: https://kingdoms.example.net/api
server:
  address: localhost:6000
`)
	t.Setenv("DOMNUS_SERVER_ADDRESS", "0.0.0.0:7000")
	t.Setenv("DOMNUS_STORE_FUNCTIONS_KEY", "from-env")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:7000", cfg.Server.Address)
	assert.Equal(t, "from-env", cfg.Store.FunctionsKey)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	// Arrange
	path := writeConfig(t, `
store:
  kind: carrier-pigeon
logging:
  level: loud
`)

	// Act
	_, err := config.LoadConfig(path)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadConfig_FileOutputNeedsPath(t *testing.T) {
	// Arrange
	path := writeConfig(t, `
logging:
  output: file
`)

	// Act
	_, err := config.LoadConfig(path)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.file_path")
}

func TestSetDefaults_DatabaseStoreSkipsBaseURL(t *testing.T) {
	// Arrange
	cfg := &config.Config{Store: config.StoreConfig{Kind: "database"}}

	// Act
	config.SetDefaults(cfg)

	// Assert
	assert.Empty(t, cfg.Store.BaseURL)
	require.NoError(t, config.ValidateConfig(cfg))
}

func TestValidateConfig_ServerAddressNeedsPort(t *testing.T) {
	// Arrange
	cfg := &config.Config{Store: config.StoreConfig{Kind: "database"}}
	config.SetDefaults(cfg)
	cfg.Server.Address = "localhost"

	// Act
	err := config.ValidateConfig(cfg)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.address")
	assert.Contains(t, err.Error(), "hostport")
}

func TestValidateConfig_HTTPStoreNeedsBaseURL(t *testing.T) {
	// Arrange
	cfg := &config.Config{Store: config.StoreConfig{Kind: "database"}}
	config.SetDefaults(cfg)
	cfg.Store.Kind = "http"

	// Act
	err := config.ValidateConfig(cfg)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.base_url")
	assert.Contains(t, err.Error(), "required_for_http")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	// Arrange
	postgres := config.DatabaseConfig{Type: "postgres", Host: "db", Port: 5432, User: "domnus", Password: "pw", Name: "domnus", SSLMode: "disable"}
	withURL := postgres
	withURL.URL = "postgresql://domnus:pw@db:5432/domnus"
	sqliteFile := config.DatabaseConfig{Type: "sqlite", Path: "/var/lib/domnus/kingdoms.db"}
	sqliteMemory := config.DatabaseConfig{Type: "sqlite"}

	// Act & Assert
	assert.Equal(t, "host=db port=5432 user=domnus password=pw dbname=domnus sslmode=disable", postgres.DSN())
	assert.Equal(t, withURL.URL, withURL.DSN())
	assert.Equal(t, "/var/lib/domnus/kingdoms.db", sqliteFile.DSN())
	assert.False(t, sqliteFile.InMemory())
	assert.Equal(t, ":memory:", sqliteMemory.DSN())
	assert.True(t, sqliteMemory.InMemory())
}

func TestMetricsConfig_URL(t *testing.T) {
	// Arrange
	cfg := &config.Config{}
	config.SetDefaults(cfg)

	// Act
	url := cfg.Metrics.URL()

	// Assert
	assert.Equal(t, "localhost:9090", cfg.Metrics.Address())
	assert.Equal(t, "http://localhost:9090/metrics", url)
}

func TestValidateConfig_NaiveTimeZoneMustBeKnown(t *testing.T) {
	// Arrange
	cfg := &config.Config{Store: config.StoreConfig{Kind: "database"}}
	config.SetDefaults(cfg)
	cfg.Store.NaiveTimeZone = "Mars/Olympus_Mons"

	// Act
	err := config.ValidateConfig(cfg)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.naive_time_zone")
	assert.Contains(t, err.Error(), "timezone")
}

func TestSetDefaults_NaiveTimesAreUTC(t *testing.T) {
	// Arrange
	cfg := &config.Config{}

	// Act
	config.SetDefaults(cfg)

	// Assert
	assert.Equal(t, "UTC", cfg.Store.NaiveTimeZone)
}
