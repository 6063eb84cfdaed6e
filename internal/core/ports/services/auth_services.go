package services

import (
	"context"

	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
)

// AuthSvc proxies account operations to the backend
type AuthSvc interface {
	Login(ctx context.Context, creds domain.LoginCredentials) (*domain.AuthResult, error)

	// Logout and DeleteAccount also tear down the user's session.
	Logout(ctx context.Context, userID string) (*domain.AuthResult, error)
	DeleteAccount(ctx context.Context, userID string, confirm bool) (*domain.AuthResult, error)

	Me(ctx context.Context) (*domain.User, error)
}
