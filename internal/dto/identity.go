package dto

import (
	"time"

	"github.com/avistalabs/ledger_backend/internal/core/domain"
)

// CreateUserRequest registers a human identity.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest authenticates a user.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserID    string    `json:"userID"`
}

// UserResponse is the API view of a user.
type UserResponse struct {
	UserID    string    `json:"userID"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User, omitting credentials.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Username:  u.Username,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

// CreateEntityRequest registers an accounting entity.
type CreateEntityRequest struct {
	Name      string           `json:"name" binding:"required"`
	LegalType domain.LegalType `json:"legalType" binding:"required,oneof=LLC C_CORP"`
}

// EntityResponse is the API view of an entity.
type EntityResponse struct {
	EntityID  int64  `json:"entityID"`
	Name      string `json:"name"`
	LegalType string `json:"legalType"`
	Status    string `json:"status"`
}

// ToEntityResponse converts a domain.Entity.
func ToEntityResponse(e *domain.Entity) EntityResponse {
	return EntityResponse{
		EntityID:  e.EntityID,
		Name:      e.Name,
		LegalType: string(e.LegalType),
		Status:    string(e.Status),
	}
}
