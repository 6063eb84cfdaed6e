package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/workspace_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/workspace_dashboard/internal/core/ports/services"
)

// authService relays account calls to the backend and keeps the session
// registry in step with them.
type authService struct {
	BaseService
	repo     portsrepo.UserRepository
	sessions *SessionRegistry
}

// NewAuthService creates a new instance of authService.
func NewAuthService(repo portsrepo.UserRepository, sessions *SessionRegistry) portssvc.AuthSvc {
	return &authService{repo: repo, sessions: sessions}
}

var _ portssvc.AuthSvc = (*authService)(nil)

// Login validates the credentials locally before forwarding them.
func (s *authService) Login(ctx context.Context, creds domain.LoginCredentials) (*domain.AuthResult, error) {
	if err := validateParams(creds); err != nil {
		return nil, err
	}
	res, err := s.repo.Login(ctx, creds)
	if err != nil {
		s.LogWarn(ctx, "Login rejected by backend", slog.String("error", err.Error()))
		return nil, err
	}
	if res.User != nil {
		s.LogInfo(ctx, "User logged in", slog.String("user_id", res.User.UserID))
	}
	return res, nil
}

// Logout drops the local session even when the backend call fails, so a
// stale cookie can never resurrect cached state.
func (s *authService) Logout(ctx context.Context, userID string) (*domain.AuthResult, error) {
	res, err := s.repo.Logout(ctx)
	s.sessions.Teardown(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Backend logout failed", slog.String("user_id", userID))
		return nil, err
	}
	return res, nil
}

// DeleteAccount is destructive and needs confirmation.
func (s *authService) DeleteAccount(ctx context.Context, userID string, confirm bool) (*domain.AuthResult, error) {
	if err := requireConfirmation(confirm, "deleting your account"); err != nil {
		return nil, err
	}
	res, err := s.repo.DeleteAccount(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("user_id", userID))
		return nil, err
	}
	s.sessions.Teardown(ctx, userID)
	s.LogInfo(ctx, "Account deleted", slog.String("user_id", userID))
	return res, nil
}

func (s *authService) Me(ctx context.Context) (*domain.User, error) {
	return s.repo.Me(ctx)
}
