// Package testutil opens throwaway catalog databases for tests.
package testutil

import (
	"fmt"
	"io"
	"testing"
	"time"

	"catalog-backend/internal/config"
	"catalog-backend/internal/database"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

// NewTestDB returns a migrated in-memory SQLite database with foreign keys
// enforced. A single connection keeps every query on the same memory store.
func NewTestDB(t testing.TB) *database.Database {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", uuid.NewString())
	db, err := database.Open(sqlite.Open(dsn), config.DatabaseConfig{
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		QueryTimeout:    5 * time.Second,
	})
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// NewLogger returns a logger that discards output.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Date parses a YYYY-MM-DD literal into a UTC time pointer.
func Date(t testing.TB, value string) *time.Time {
	t.Helper()

	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return &d
}
