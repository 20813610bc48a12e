package dto

import (
	"github.com/SscSPs/cek_senet_app/internal/core/domain"
)

// CreateUserRequest defines the data needed to register a user.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=72"` // bcrypt ignores bytes past 72
	Name     string `json:"name" binding:"required,max=200"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// LoginRequest carries username and password credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=200"`
	Email *string `json:"email" binding:"omitempty,email"`
}

type UserResponse struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:   user.UserID,
		Username: user.Username,
		Name:     user.Name,
		Email:    user.Email,
	}
}
