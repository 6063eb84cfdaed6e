package repositories

import (
	"context"

	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
)

// UserRepository defines the account operations of the backend
type UserRepository interface {
	Me(ctx context.Context) (*domain.User, error)
	Login(ctx context.Context, creds domain.LoginCredentials) (*domain.AuthResult, error)
	Logout(ctx context.Context) (*domain.AuthResult, error)
	DeleteAccount(ctx context.Context) (*domain.AuthResult, error)
}
