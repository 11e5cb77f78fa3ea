package profiles

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/topicdesk/topicdesk-backend/internal/users"
	"github.com/topicdesk/topicdesk-backend/pkg/db"
	"github.com/topicdesk/topicdesk-backend/pkg/db/dbtest"
	"github.com/topicdesk/topicdesk-backend/pkg/db/models"
	"github.com/topicdesk/topicdesk-backend/pkg/enums"
	pkgerrors "github.com/topicdesk/topicdesk-backend/pkg/errors"
	"gorm.io/gorm"
)

func strPtr(v string) *string { return &v }

func newSyncService(t *testing.T, client *db.Client, mutate func(*ServiceParams)) Service {
	t.Helper()
	params := ServiceParams{Store: client}
	if mutate != nil {
		mutate(&params)
	}
	svc, err := NewService(params)
	require.NoError(t, err)
	return svc
}

func seedUser(t *testing.T, client *db.Client, login string, role enums.Role, withProfile bool) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	user, err := users.NewRepository(client.DB()).Create(ctx, users.CreateUserDTO{
		Login: login, PasswordHash: "hash", Role: role, FullName: "Original Name",
	})
	require.NoError(t, err)
	if withProfile {
		require.NoError(t, users.NewProfileRepository(client.DB()).CreateEmpty(ctx, user.ID, role))
	}
	return user.ID
}

func countProfiles(t *testing.T, client *db.Client, id uuid.UUID) (int64, int64) {
	t.Helper()
	students, teachers, err := users.NewProfileRepository(client.DB()).CountProfiles(context.Background(), id)
	require.NoError(t, err)
	return students, teachers
}

func TestSynchronizeStudentUpdatesExistingProfile(t *testing.T) {
	client := dbtest.Open(t)
	id := seedUser(t, client, "stud", enums.RoleStudent, true)
	svc := newSyncService(t, client, nil)

	synced, err := svc.Synchronize(context.Background(), id, StudentFields{
		FullName:  " Ivan Petrov ",
		GroupName: strPtr("CS-101"),
		Phone:     strPtr("+100200300"),
	})
	require.NoError(t, err)
	require.NotNil(t, synced.Student)
	assert.Nil(t, synced.Teacher)
	assert.Equal(t, enums.RoleStudent, synced.Role)
	assert.Equal(t, "Ivan Petrov", synced.Student.FullName)
	assert.Equal(t, "stud", synced.Student.Login)
	require.NotNil(t, synced.Student.GroupName)
	assert.Equal(t, "CS-101", *synced.Student.GroupName)
	require.NotNil(t, synced.Student.Phone)
	assert.Equal(t, "+100200300", *synced.Student.Phone)

	students, teachers := countProfiles(t, client, id)
	assert.Equal(t, int64(1), students)
	assert.Zero(t, teachers)
}

func TestSynchronizeInsertsMissingProfile(t *testing.T) {
	client := dbtest.Open(t)
	id := seedUser(t, client, "teach", enums.RoleTeacher, false)
	svc := newSyncService(t, client, nil)

	synced, err := svc.Synchronize(context.Background(), id, TeacherFields{
		FullName:   "Dr. Smith",
		Department: strPtr("Mathematics"),
	})
	require.NoError(t, err)
	require.NotNil(t, synced.Teacher)
	assert.Equal(t, "Dr. Smith", synced.Teacher.FullName)
	require.NotNil(t, synced.Teacher.Department)
	assert.Equal(t, "Mathematics", *synced.Teacher.Department)
	assert.Nil(t, synced.Teacher.Position)

	_, teachers := countProfiles(t, client, id)
	assert.Equal(t, int64(1), teachers)
}

// Repeating a sync never produces a second profile row.
func TestSynchronizeIsIdempotentOnRowCount(t *testing.T) {
	ctx := context.Background()
	client := dbtest.Open(t)
	id := seedUser(t, client, "again", enums.RoleStudent, false)
	svc := newSyncService(t, client, nil)

	for _, group := range []string{"A-1", "B-2", "B-2"} {
		synced, err := svc.Synchronize(ctx, id, StudentFields{FullName: "Repeat", GroupName: strPtr(group)})
		require.NoError(t, err)
		assert.Equal(t, group, *synced.Student.GroupName)
	}

	students, _ := countProfiles(t, client, id)
	assert.Equal(t, int64(1), students)
}

func TestSynchronizeClearsOmittedFields(t *testing.T) {
	ctx := context.Background()
	client := dbtest.Open(t)
	id := seedUser(t, client, "clear", enums.RoleStudent, true)
	svc := newSyncService(t, client, nil)

	_, err := svc.Synchronize(ctx, id, StudentFields{FullName: "X", GroupName: strPtr("G"), Phone: strPtr("1")})
	require.NoError(t, err)

	synced, err := svc.Synchronize(ctx, id, StudentFields{FullName: "X", Phone: strPtr("  ")})
	require.NoError(t, err)
	assert.Nil(t, synced.Student.GroupName)
	assert.Nil(t, synced.Student.Phone)
}

func TestSynchronizeFailures(t *testing.T) {
	client := dbtest.Open(t)
	studentID := seedUser(t, client, "s", enums.RoleStudent, true)
	svc := newSyncService(t, client, nil)

	cases := []struct {
		name   string
		id     uuid.UUID
		fields ProfileFields
		code   pkgerrors.Code
	}{
		{name: "blank full name", id: studentID, fields: StudentFields{FullName: "  "}, code: pkgerrors.CodeValidation},
		{name: "nil fields", id: studentID, fields: nil, code: pkgerrors.CodeValidation},
		{name: "nil id", id: uuid.Nil, fields: StudentFields{FullName: "A"}, code: pkgerrors.CodeValidation},
		{name: "unknown identity", id: uuid.New(), fields: StudentFields{FullName: "A"}, code: pkgerrors.CodeNotFound},
		{name: "role mismatch", id: studentID, fields: TeacherFields{FullName: "A"}, code: pkgerrors.CodeValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Synchronize(context.Background(), tc.id, tc.fields)
			require.Error(t, err)
			assert.Equal(t, tc.code, pkgerrors.CodeOf(err))
		})
	}

	// none of the failures touched the stored name or created a teacher row
	user, err := users.NewRepository(client.DB()).FindByID(context.Background(), studentID)
	require.NoError(t, err)
	assert.Equal(t, "Original Name", user.FullName)
	_, teachers := countProfiles(t, client, studentID)
	assert.Zero(t, teachers)
}

type failingProfileWriter struct {
	*users.ProfileRepository
}

func (failingProfileWriter) UpdateStudent(context.Context, *models.Student) (int64, error) {
	return 0, errors.New("write timeout")
}

// A failed profile write rolls back the full_name update.
func TestSynchronizeRollsBackIdentityOnProfileFailure(t *testing.T) {
	ctx := context.Background()
	client := dbtest.Open(t)
	id := seedUser(t, client, "rb", enums.RoleStudent, true)
	svc := newSyncService(t, client, func(p *ServiceParams) {
		p.ProfileRepo = func(tx *gorm.DB) profileWriter {
			return failingProfileWriter{ProfileRepository: users.NewProfileRepository(tx)}
		}
	})

	_, err := svc.Synchronize(ctx, id, StudentFields{FullName: "Should Not Stick"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStore, pkgerrors.CodeOf(err))

	user, err := users.NewRepository(client.DB()).FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Original Name", user.FullName)
}

type loginClashWriter struct {
	*users.ProfileRepository
}

func (loginClashWriter) UpdateTeacher(context.Context, *models.Teacher) (int64, error) {
	return 0, errors.New("UNIQUE constraint failed: users.login")
}

func TestSynchronizeMapsLoginUniqueViolationToConflict(t *testing.T) {
	client := dbtest.Open(t)
	id := seedUser(t, client, "t", enums.RoleTeacher, true)
	svc := newSyncService(t, client, func(p *ServiceParams) {
		p.ProfileRepo = func(tx *gorm.DB) profileWriter {
			return loginClashWriter{ProfileRepository: users.NewProfileRepository(tx)}
		}
	})

	_, err := svc.Synchronize(context.Background(), id, TeacherFields{FullName: "T"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.CodeOf(err))
}

func TestNewServiceRequiresStore(t *testing.T) {
	_, err := NewService(ServiceParams{})
	require.Error(t, err)
}
