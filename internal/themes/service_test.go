package themes

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/topicdesk/topicdesk-backend/internal/users"
	"github.com/topicdesk/topicdesk-backend/pkg/db"
	"github.com/topicdesk/topicdesk-backend/pkg/db/dbtest"
	"github.com/topicdesk/topicdesk-backend/pkg/enums"
	pkgerrors "github.com/topicdesk/topicdesk-backend/pkg/errors"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func seedTeacher(t *testing.T, client *db.Client, login, name string) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	user, err := users.NewRepository(client.DB()).Create(ctx, users.CreateUserDTO{
		Login: login, PasswordHash: "hash", Role: enums.RoleTeacher, FullName: name,
	})
	require.NoError(t, err)
	require.NoError(t, users.NewProfileRepository(client.DB()).CreateEmpty(ctx, user.ID, enums.RoleTeacher))
	return user.ID
}

func newThemeService(t *testing.T, client *db.Client) Service {
	t.Helper()
	svc, err := NewService(NewRepository(client.DB()))
	require.NoError(t, err)
	return svc
}

func TestCreateThemeAndList(t *testing.T) {
	ctx := context.Background()
	client := dbtest.Open(t)
	supervisor := seedTeacher(t, client, "sup", "Prof. Ada")
	svc := newThemeService(t, client)

	created, err := svc.Create(ctx, supervisor, CreateThemeInput{
		Title:        "  Graph databases  ",
		Description:  strPtr("storage engines"),
		Type:         "bachelor",
		Source:       "teacher",
		SupervisorID: &supervisor,
		Priority:     intPtr(2),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Graph databases", created.Title)
	assert.Equal(t, enums.ThemeStatusAvailable, created.Status)
	assert.Equal(t, supervisor, created.CreatedBy)
	assert.Equal(t, 2, created.Priority)

	time.Sleep(2 * time.Millisecond)
	second, err := svc.Create(ctx, supervisor, CreateThemeInput{Title: "Open topic", Type: "other", Source: "employer"})
	require.NoError(t, err)
	assert.Zero(t, second.Priority)
	assert.Nil(t, second.SupervisorID)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Nil(t, list[0].SupervisorName)
	assert.Equal(t, created.ID, list[1].ID)
	require.NotNil(t, list[1].SupervisorName)
	assert.Equal(t, "Prof. Ada", *list[1].SupervisorName)
}

func TestCreateThemeValidation(t *testing.T) {
	client := dbtest.Open(t)
	creator := seedTeacher(t, client, "c", "Creator")
	svc := newThemeService(t, client)

	cases := []struct {
		name  string
		input CreateThemeInput
	}{
		{name: "missing title", input: CreateThemeInput{Type: "master", Source: "student"}},
		{name: "bad type", input: CreateThemeInput{Title: "T", Type: "phd", Source: "student"}},
		{name: "bad source", input: CreateThemeInput{Title: "T", Type: "master", Source: "robot"}},
		{name: "priority too high", input: CreateThemeInput{Title: "T", Type: "master", Source: "student", Priority: intPtr(4)}},
		{name: "negative priority", input: CreateThemeInput{Title: "T", Type: "master", Source: "student", Priority: intPtr(-1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), creator, tc.input)
			require.Error(t, err)
			assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
		})
	}
}

func TestCreateThemeRequiresCaller(t *testing.T) {
	client := dbtest.Open(t)
	svc := newThemeService(t, client)

	_, err := svc.Create(context.Background(), uuid.Nil, CreateThemeInput{Title: "T", Type: "master", Source: "student"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.CodeOf(err))
}

func TestCreateThemeUnknownSupervisor(t *testing.T) {
	client := dbtest.Open(t)
	creator := seedTeacher(t, client, "c", "Creator")
	svc := newThemeService(t, client)

	ghost := uuid.New()
	_, err := svc.Create(context.Background(), creator, CreateThemeInput{Title: "T", Type: "master", Source: "teacher", SupervisorID: &ghost})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestBuildThemeDropsBlankDescription(t *testing.T) {
	theme, err := buildTheme(uuid.New(), CreateThemeInput{Title: "T", Description: strPtr("   "), Type: "coursework", Source: "other"})
	require.NoError(t, err)
	assert.Nil(t, theme.Description)
	assert.Equal(t, enums.ThemeTypeCoursework, theme.Type)
}
