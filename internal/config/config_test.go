package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 9000
database:
  host: "db.internal"
  port: 5432
  user: "app"
  password: "secret"
  database: "medicare"
stripe:
  api_key: "sk_test_xxx"
log:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.GetServerAddress())
	assert.Contains(t, cfg.GetDatabaseConnectionString(), "dbname=medicare")
	assert.Contains(t, cfg.GetDatabaseConnectionString(), "sslmode=disable")
	// Defaults fill in what the file omits.
	assert.Equal(t, "0 0 2 * * *", cfg.Scheduler.MarkOverdueContracts)
	assert.Equal(t, "uploads/contracts", cfg.Documents.OutputDir)
}

func TestLoadRequiresDatabase(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  host: "db.internal"
  database: "medicare"
`)

	t.Setenv("DB_HOST", "override.internal")
	t.Setenv("STRIPE_SECRET_KEY", "sk_live_from_env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "override.internal", cfg.Database.Host)
	assert.Equal(t, "sk_live_from_env", cfg.Stripe.APIKey)
}
