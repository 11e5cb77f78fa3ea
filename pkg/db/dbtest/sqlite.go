// Package dbtest opens migrated in-memory databases for store-backed tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/topicdesk/topicdesk-backend/pkg/config"
	"github.com/topicdesk/topicdesk-backend/pkg/db"
	"github.com/topicdesk/topicdesk-backend/pkg/migrate"
)

// Open returns a client over a private in-memory sqlite database with the
// full schema applied.
func Open(t testing.TB) *db.Client {
	t.Helper()

	cfg := config.DBConfig{
		Driver: config.DBDriverSQLite,
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=1",
	}
	client, err := db.New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	sqlDB, err := client.SQL()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	if _, err := migrate.Up(context.Background(), sqlDB, cfg.Driver); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return client
}
