package dto

import "github.com/SscSPs/workspace_dashboard/internal/core/domain"

// LoginRequest is forwarded to the backend login endpoint.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ToCredentials converts the request to domain credentials.
func (r LoginRequest) ToCredentials() domain.LoginCredentials {
	return domain.LoginCredentials{Email: r.Email, Password: r.Password}
}

// UserResponse defines data returned for the calling user.
type UserResponse struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// ToUserResponse converts domain.User to DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{UserID: u.UserID, Name: u.Name, Email: u.Email}
}

// RecoveryAction is the single way out offered on page-level errors.
type RecoveryAction struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error    string          `json:"error"`
	Notice   string          `json:"notice,omitempty"`
	Recovery *RecoveryAction `json:"recovery,omitempty"`
	Redirect string          `json:"redirect,omitempty"`
}
