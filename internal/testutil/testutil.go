// Package testutil builds the configuration and database shared by tests.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"savvy/config"
	"savvy/internal/infra/persistence/database"
)

// NewConfig returns a validated configuration backed by in-memory SQLite
// with argon2 costs low enough for unit tests.
func NewConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Env.ServiceName = "savvy-test"
	cfg.Env.Log.Level = "error"
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.SQLitePath = ":memory:"
	cfg.Security.SecretKey = "test-secret-key"
	cfg.Argon2 = config.Argon2Config{
		MemoryKiB:     1024,
		Iterations:    1,
		Parallelism:   1,
		SaltLength:    16,
		KeyLength:     32,
		MaxConcurrent: 4,
	}
	cfg.ApplyDefaults()

	return cfg
}

// Logger discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewDB opens a private in-memory database with the schema migrated. It is
// closed when the test ends.
func NewDB(t testing.TB, cfg *config.Config) *gorm.DB {
	t.Helper()

	db, err := database.Open(cfg, Logger())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}
