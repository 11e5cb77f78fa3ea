package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/topicdesk/topicdesk-backend/internal/auth"
	"github.com/topicdesk/topicdesk-backend/internal/distributions"
	"github.com/topicdesk/topicdesk-backend/internal/profiles"
	"github.com/topicdesk/topicdesk-backend/internal/themes"
	"github.com/topicdesk/topicdesk-backend/internal/users"
)

type stubRegisterService struct {
	got    auth.RegisterRequest
	result *auth.RegisterResult
	err    error
}

func (s *stubRegisterService) Register(_ context.Context, req auth.RegisterRequest) (*auth.RegisterResult, error) {
	s.got = req
	return s.result, s.err
}

type stubAuthService struct {
	resp *auth.LoginResponse
	err  error
}

func (s stubAuthService) Login(context.Context, auth.LoginRequest) (*auth.LoginResponse, error) {
	return s.resp, s.err
}

type stubProfileService struct {
	gotID     uuid.UUID
	gotFields profiles.ProfileFields
	result    *profiles.SyncedProfile
	err       error
}

func (s *stubProfileService) Synchronize(_ context.Context, id uuid.UUID, fields profiles.ProfileFields) (*profiles.SyncedProfile, error) {
	s.gotID = id
	s.gotFields = fields
	return s.result, s.err
}

type stubThemeService struct {
	gotCreator uuid.UUID
	gotInput   themes.CreateThemeInput
	created    *themes.ThemeDTO
	list       []themes.ThemeDTO
	err        error
}

func (s *stubThemeService) Create(_ context.Context, creator uuid.UUID, input themes.CreateThemeInput) (*themes.ThemeDTO, error) {
	s.gotCreator = creator
	s.gotInput = input
	return s.created, s.err
}

func (s *stubThemeService) List(context.Context) ([]themes.ThemeDTO, error) {
	return s.list, s.err
}

type stubDirectoryService struct {
	teachers []users.TeacherListing
	students []users.StudentView
	err      error
}

func (s stubDirectoryService) Teachers(context.Context) ([]users.TeacherListing, error) {
	return s.teachers, s.err
}

func (s stubDirectoryService) Students(context.Context) ([]users.StudentView, error) {
	return s.students, s.err
}

type stubDistributionService struct {
	gotStatus string
	list      []distributions.DistributionDTO
	item      *distributions.DistributionDTO
	err       error
}

func (s *stubDistributionService) List(context.Context) ([]distributions.DistributionDTO, error) {
	return s.list, s.err
}

func (s *stubDistributionService) Create(context.Context, distributions.CreateDistributionInput) (*distributions.DistributionDTO, error) {
	return s.item, s.err
}

func (s *stubDistributionService) UpdateStatus(_ context.Context, _ uuid.UUID, status string) (*distributions.DistributionDTO, error) {
	s.gotStatus = status
	return s.item, s.err
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return env
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func strPtr(v string) *string { return &v }
