package auth

import (
	"github.com/google/uuid"
	"github.com/topicdesk/topicdesk-backend/internal/users"
)

// RegisterRequest carries the four fields needed to create an identity.
type RegisterRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
	FullName string `json:"full_name" validate:"required"`
}

// RegisterResult is returned after the identity and its profile commit.
type RegisterResult struct {
	ID uuid.UUID `json:"id"`
}

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse exposes identity attributes only; no session is issued.
type LoginResponse struct {
	User *users.UserDTO `json:"user"`
}
