package auth

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/topicdesk/topicdesk-backend/internal/users"
	"github.com/topicdesk/topicdesk-backend/pkg/config"
	"github.com/topicdesk/topicdesk-backend/pkg/db"
	"github.com/topicdesk/topicdesk-backend/pkg/db/dbtest"
	"github.com/topicdesk/topicdesk-backend/pkg/enums"
	pkgerrors "github.com/topicdesk/topicdesk-backend/pkg/errors"
	"github.com/topicdesk/topicdesk-backend/pkg/metrics"
	"github.com/topicdesk/topicdesk-backend/pkg/security"
	"gorm.io/gorm"
)

var testPasswordConfig = config.PasswordConfig{
	ArgonMemoryKB:    1024,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

func newRegisterService(t *testing.T, client *db.Client, mutate func(*RegisterServiceParams)) RegisterService {
	t.Helper()
	params := RegisterServiceParams{
		Tx:     client,
		Hasher: security.NewPasswordHasher(testPasswordConfig),
	}
	if mutate != nil {
		mutate(&params)
	}
	svc, err := NewRegisterService(params)
	require.NoError(t, err)
	return svc
}

func countRows(t *testing.T, conn *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, conn.Table(table).Count(&n).Error)
	return n
}

func TestRegisterCreatesIdentityAndProfile(t *testing.T) {
	ctx := context.Background()
	client := dbtest.Open(t)
	svc := newRegisterService(t, client, nil)

	for _, tc := range []struct {
		login string
		role  string
		table string
	}{
		{login: "student1", role: "student", table: "students"},
		{login: "teacher1", role: "teacher", table: "teachers"},
	} {
		res, err := svc.Register(ctx, RegisterRequest{Login: tc.login, Password: "pw-123", Role: tc.role, FullName: "  Some Name  "})
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, res.ID)

		user, err := users.NewRepository(client.DB()).FindByID(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, "Some Name", user.FullName)
		assert.Equal(t, tc.role, user.Role.String())
		assert.NotEqual(t, "pw-123", user.PasswordHash)

		ok, err := security.VerifyPassword("pw-123", user.PasswordHash)
		require.NoError(t, err)
		assert.True(t, ok)

		students, teachers, err := users.NewProfileRepository(client.DB()).CountProfiles(ctx, res.ID)
		require.NoError(t, err)
		if tc.table == "students" {
			assert.Equal(t, int64(1), students)
			assert.Zero(t, teachers)
		} else {
			assert.Zero(t, students)
			assert.Equal(t, int64(1), teachers)
		}
	}
}

func TestRegisterValidation(t *testing.T) {
	client := dbtest.Open(t)
	svc := newRegisterService(t, client, nil)

	cases := []RegisterRequest{
		{Password: "pw", Role: "student", FullName: "A"},
		{Login: "a", Role: "student", FullName: "A"},
		{Login: "a", Password: "   ", Role: "student", FullName: "A"},
		{Login: "a", Password: "pw", FullName: "A"},
		{Login: "a", Password: "pw", Role: "student", FullName: "   "},
		{Login: "a", Password: "pw", Role: "admin", FullName: "A"},
	}
	for _, req := range cases {
		_, err := svc.Register(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err), "request %+v", req)
	}
	assert.Zero(t, countRows(t, client.DB(), "users"))
}

// Duplicate login: exactly one identity survives and the second call conflicts.
func TestRegisterDuplicateLoginConflicts(t *testing.T) {
	ctx := context.Background()
	client := dbtest.Open(t)
	svc := newRegisterService(t, client, nil)

	_, err := svc.Register(ctx, RegisterRequest{Login: "dup", Password: "pw", Role: "student", FullName: "First"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Login: "dup", Password: "other", Role: "teacher", FullName: "Second"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.CodeOf(err))

	assert.Equal(t, int64(1), countRows(t, client.DB(), "users"))
	assert.Equal(t, int64(1), countRows(t, client.DB(), "students"))
	assert.Zero(t, countRows(t, client.DB(), "teachers"))
}

// Concurrent registrations of one login: at most one wins.
func TestRegisterConcurrentSameLogin(t *testing.T) {
	ctx := context.Background()
	client := dbtest.Open(t)
	svc := newRegisterService(t, client, nil)

	const workers = 4
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(ctx, RegisterRequest{Login: "race", Password: "pw", Role: "teacher", FullName: "Racer"})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.CodeOf(err))
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, int64(1), countRows(t, client.DB(), "users"))
	assert.Equal(t, int64(1), countRows(t, client.DB(), "teachers"))
}

type failingProfileCreator struct{}

func (failingProfileCreator) CreateEmpty(context.Context, uuid.UUID, enums.Role) error {
	return errors.New("disk full")
}

// A failed profile insert leaves no identity behind.
func TestRegisterRollsBackWhenProfileInsertFails(t *testing.T) {
	client := dbtest.Open(t)
	svc := newRegisterService(t, client, func(p *RegisterServiceParams) {
		p.ProfileRepo = func(*gorm.DB) profileCreator { return failingProfileCreator{} }
	})

	_, err := svc.Register(context.Background(), RegisterRequest{Login: "ghost", Password: "pw", Role: "student", FullName: "Ghost"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStore, pkgerrors.CodeOf(err))
	assert.Zero(t, countRows(t, client.DB(), "users"))
	assert.Zero(t, countRows(t, client.DB(), "students"))
}

type racingIdentityWriter struct {
	*users.Repository
}

// ExistsByLogin misses a row committed by a concurrent registration.
func (racingIdentityWriter) ExistsByLogin(context.Context, string) (bool, error) {
	return false, nil
}

func TestRegisterMapsUniqueViolationToConflict(t *testing.T) {
	ctx := context.Background()
	client := dbtest.Open(t)
	_, err := users.NewRepository(client.DB()).Create(ctx, users.CreateUserDTO{
		Login: "late", PasswordHash: "h", Role: enums.RoleStudent, FullName: "Early Bird",
	})
	require.NoError(t, err)

	svc := newRegisterService(t, client, func(p *RegisterServiceParams) {
		p.IdentityRepo = func(tx *gorm.DB) identityWriter {
			return racingIdentityWriter{Repository: users.NewRepository(tx)}
		}
	})

	_, err = svc.Register(ctx, RegisterRequest{Login: "late", Password: "pw", Role: "student", FullName: "Late"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.CodeOf(err))
	assert.Equal(t, int64(1), countRows(t, client.DB(), "users"))
}

func TestRegisterRecordsWorkflowMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	client := dbtest.Open(t)
	svc := newRegisterService(t, client, func(p *RegisterServiceParams) {
		p.WorkflowMetrics = metrics.NewWorkflowMetrics(reg)
	})

	_, _ = svc.Register(context.Background(), RegisterRequest{Login: "m", Password: "pw", Role: "student", FullName: "M"})
	_, _ = svc.Register(context.Background(), RegisterRequest{Login: "m", Password: "pw", Role: "student", FullName: "M"})

	mfs, err := reg.Gather()
	require.NoError(t, err)
	outcomes := map[string]float64{}
	for _, mf := range mfs {
		if mf.GetName() != "topicdesk_workflow_outcomes_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "outcome" {
					outcomes[l.GetValue()] = m.GetCounter().GetValue()
				}
			}
		}
	}
	assert.Equal(t, float64(1), outcomes["ok"])
	assert.Equal(t, float64(1), outcomes["CONFLICT"])
}

func TestNewRegisterServiceRequiresDeps(t *testing.T) {
	_, err := NewRegisterService(RegisterServiceParams{})
	assert.Error(t, err)
	_, err = NewRegisterService(RegisterServiceParams{Tx: db.NewFromGorm(nil)})
	assert.Error(t, err)
}

var _ identityWriter = (*users.Repository)(nil)
var _ profileCreator = (*users.ProfileRepository)(nil)
var _ userRepository = (*users.Repository)(nil)
