// Package testutil provides the shared in-memory database harness for
// package tests.
package testutil

import (
	"database/sql"
	"fmt"
	"regexp"
	"sync/atomic"
	"testing"

	"github.com/abdelouahedbenahmed071-cell/school-app/app/config"
	"github.com/abdelouahedbenahmed071-cell/school-app/app/database"
)

var dbSeq atomic.Int64

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]+`)

// SetupDB opens a fresh in-memory sqlite database for the test, applies
// the schema and installs it as the process config, so handlers reaching
// config.GetDB() see the test database. The database is torn down with
// the test.
func SetupDB(t *testing.T) *sql.DB {
	t.Helper()

	name := fmt.Sprintf("%s_%d", nonAlnum.ReplaceAllString(t.Name(), "_"), dbSeq.Add(1))
	cfg := &config.Config{
		AdminCode: "test-admin-code",
		SecretKey: "test-secret-key",
		DBPath:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		UploadDir: t.TempDir(),
	}
	if err := config.InitDB(cfg); err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = cfg.DB.Close() })

	if err := database.RunMigrations(cfg.DB); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return cfg.DB
}
