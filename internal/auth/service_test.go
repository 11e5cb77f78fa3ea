package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/topicdesk/topicdesk-backend/pkg/db/models"
	"github.com/topicdesk/topicdesk-backend/pkg/enums"
	pkgerrors "github.com/topicdesk/topicdesk-backend/pkg/errors"
	"github.com/topicdesk/topicdesk-backend/pkg/security"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	user *models.User
	err  error
}

func (s stubUserRepo) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user == nil || s.user.Login != login {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func buildLoginService(t *testing.T, repo userRepository) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{UserRepo: repo, Hasher: security.NewPasswordHasher(testPasswordConfig)})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestServiceLoginSuccess(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Login:        "ivanov",
		PasswordHash: mustHashPassword(t, "s3cret"),
		Role:         enums.RoleStudent,
		FullName:     "Ivan Ivanov",
	}
	svc := buildLoginService(t, stubUserRepo{user: user})

	resp, err := svc.Login(context.Background(), LoginRequest{Login: " ivanov ", Password: "s3cret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.User.ID != user.ID || resp.User.Role != enums.RoleStudent || resp.User.FullName != "Ivan Ivanov" {
		t.Fatalf("unexpected user %+v", resp.User)
	}

	encoded, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(encoded), "password") || strings.Contains(string(encoded), user.PasswordHash) {
		t.Fatalf("login response leaks credential material: %s", encoded)
	}
}

func TestServiceLoginLegacyBcryptDigest(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("old"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	user := &models.User{ID: uuid.New(), Login: "legacy", PasswordHash: string(legacy), Role: enums.RoleTeacher}
	svc := buildLoginService(t, stubUserRepo{user: user})

	if _, err := svc.Login(context.Background(), LoginRequest{Login: "legacy", Password: "old"}); err != nil {
		t.Fatalf("expected legacy digest to authenticate: %v", err)
	}
}

func TestServiceLoginFailures(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Login:        "petrov",
		PasswordHash: mustHashPassword(t, "right"),
		Role:         enums.RoleTeacher,
	}

	tests := []struct {
		name string
		repo stubUserRepo
		req  LoginRequest
		code pkgerrors.Code
	}{
		{name: "missing login", repo: stubUserRepo{user: user}, req: LoginRequest{Password: "right"}, code: pkgerrors.CodeValidation},
		{name: "missing password", repo: stubUserRepo{user: user}, req: LoginRequest{Login: "petrov"}, code: pkgerrors.CodeValidation},
		{name: "blank password", repo: stubUserRepo{user: user}, req: LoginRequest{Login: "petrov", Password: "   "}, code: pkgerrors.CodeValidation},
		{name: "unknown login", repo: stubUserRepo{user: user}, req: LoginRequest{Login: "nobody", Password: "right"}, code: pkgerrors.CodeNotFound},
		{name: "wrong password", repo: stubUserRepo{user: user}, req: LoginRequest{Login: "petrov", Password: "wrong"}, code: pkgerrors.CodeInvalidCredentials},
		{name: "store failure", repo: stubUserRepo{err: errors.New("connection reset")}, req: LoginRequest{Login: "petrov", Password: "right"}, code: pkgerrors.CodeStore},
		{name: "corrupt digest", repo: stubUserRepo{user: &models.User{Login: "petrov", PasswordHash: "garbage"}}, req: LoginRequest{Login: "petrov", Password: "right"}, code: pkgerrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := buildLoginService(t, tt.repo)
			_, err := svc.Login(context.Background(), tt.req)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := pkgerrors.CodeOf(err); got != tt.code {
				t.Fatalf("expected %s, got %s (%v)", tt.code, got, err)
			}
		})
	}
}

func TestNewServiceRequiresDeps(t *testing.T) {
	if _, err := NewService(ServiceParams{}); err == nil {
		t.Fatal("expected error without repository")
	}
	if _, err := NewService(ServiceParams{UserRepo: stubUserRepo{}}); err == nil {
		t.Fatal("expected error without hasher")
	}
}
