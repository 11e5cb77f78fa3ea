//go:build db
// +build db

package profiles

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/topicdesk/topicdesk-backend/internal/users"
	"github.com/topicdesk/topicdesk-backend/pkg/config"
	"github.com/topicdesk/topicdesk-backend/pkg/db"
	"github.com/topicdesk/topicdesk-backend/pkg/enums"
	"github.com/topicdesk/topicdesk-backend/pkg/migrate"
)

func openPostgres(t *testing.T) *db.Client {
	t.Helper()

	dsn := os.Getenv(config.EnvDBDSN)
	if dsn == "" {
		t.Skip("TOPICDESK_DB_DSN is not set")
	}

	cfg := config.DBConfig{Driver: config.DBDriverPostgres, DSN: dsn, MaxOpenConns: 5, MaxIdleConns: 2}
	client, err := db.New(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	sqlDB, err := client.SQL()
	require.NoError(t, err)
	_, err = migrate.Up(context.Background(), sqlDB, cfg.Driver)
	require.NoError(t, err)
	return client
}

func uniqueLogin(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, uuid.NewString()[:8])
}

func TestPostgresSynchronizeInsertsThenUpdates(t *testing.T) {
	client := openPostgres(t)
	id := seedUser(t, client, uniqueLogin("pg_teacher"), enums.RoleTeacher, false)
	svc := newSyncService(t, client, nil)
	ctx := context.Background()

	_, err := svc.Synchronize(ctx, id, TeacherFields{FullName: "First", Department: strPtr("Math")})
	require.NoError(t, err)

	synced, err := svc.Synchronize(ctx, id, TeacherFields{FullName: "Second", Position: strPtr("Docent")})
	require.NoError(t, err)
	require.NotNil(t, synced.Teacher)
	assert.Equal(t, "Second", synced.Teacher.FullName)
	assert.Nil(t, synced.Teacher.Department)

	_, teachers := countProfiles(t, client, id)
	assert.Equal(t, int64(1), teachers)
}

func TestPostgresConcurrentSynchronizeKeepsSingleProfile(t *testing.T) {
	client := openPostgres(t)
	id := seedUser(t, client, uniqueLogin("pg_student"), enums.RoleStudent, false)
	svc := newSyncService(t, client, nil)

	group, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < 4; i++ {
		name := fmt.Sprintf("Writer %d", i)
		group.Go(func() error {
			_, err := svc.Synchronize(ctx, id, StudentFields{FullName: name})
			return err
		})
	}
	require.NoError(t, group.Wait())

	students, _ := countProfiles(t, client, id)
	assert.Equal(t, int64(1), students)
}

func TestPostgresDuplicateLoginCarriesConstraintName(t *testing.T) {
	client := openPostgres(t)
	login := uniqueLogin("pg_dup")
	seedUser(t, client, login, enums.RoleStudent, false)

	_, err := users.NewRepository(client.DB()).Create(context.Background(), users.CreateUserDTO{
		Login: login, PasswordHash: "hash", Role: enums.RoleTeacher, FullName: "Other",
	})
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, "users_login_key"))
}
