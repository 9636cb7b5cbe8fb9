package config

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "from-env")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.False(t, cfg.Server.IsProduction())
	assert.Equal(t, "from-env", cfg.Session.SecretKey)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "session", cfg.Session.CookieName)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxSizeBytes)
	assert.Equal(t, DefaultAllowedTypes, cfg.Upload.AllowedTypes)
	assert.False(t, cfg.Upload.VerifyContent)
	assert.Equal(t, time.Hour, cfg.PasswordReset.TTL)
	assert.Equal(t, "us-east-1", cfg.S3Config.Region)
	assert.Empty(t, cfg.S3Config.AccessKey)
}

func TestLoadConfig_FileAndEnvironment(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
  environment: production
session:
  secret_key: from-file
  ttl: 2h
s3Config:
  enabled: true
  local: true
upload:
  allowed_types: ["application/pdf"]
`)
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("DATABASE_DSN", "postgres://override")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.True(t, cfg.Server.IsProduction())
	assert.Equal(t, "from-file", cfg.Session.SecretKey)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "postgres://override", cfg.DatabaseConfig.DSN)
	assert.Equal(t, []string{"application/pdf"}, cfg.Upload.AllowedTypes)
	assert.Equal(t, "minioadmin", cfg.S3Config.AccessKey)
	assert.Equal(t, "minioadmin", cfg.S3Config.SecretKey)
}

func TestLoadConfig_ShippedExample(t *testing.T) {
	t.Setenv("SESSION_SECRET", "from-env")

	cfg, err := LoadConfig(filepath.Join("..", "config.yaml"))
	require.NoError(t, err)

	assert.False(t, cfg.Upload.VerifyContent, "content sniffing stays opt-in")
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxSizeBytes)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	_, err := LoadConfig(writeConfig(t, "server: ["))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "server:\n  addr: \":8080\"\n"))
	assert.EqualError(t, err, "session secret key is not configured")
}

func TestRunMigrations(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	database := &Database{sqlx.NewDb(db, "postgres")}

	original := gooseUpContext
	t.Cleanup(func() { gooseUpContext = original })

	var gotDB *sql.DB
	var gotDir string
	gooseUpContext = func(_ context.Context, db *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		gotDB, gotDir = db, dir
		return nil
	}
	require.NoError(t, RunMigrations(context.Background(), database))
	assert.Same(t, db, gotDB)
	assert.Equal(t, ".", gotDir)

	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("dirty schema")
	}
	err = RunMigrations(context.Background(), database)
	assert.ErrorContains(t, err, "failed to apply migrations")
}
