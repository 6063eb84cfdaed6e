package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/workspace_dashboard/internal/apperrors"
	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
	"github.com/SscSPs/workspace_dashboard/internal/core/permissions"
)

// workspaceAccess is the resolved view of one user on one workspace.
type workspaceAccess struct {
	session   *Session
	workspace *domain.Workspace
	role      domain.Role
	caps      permissions.Capabilities
}

// authorizer resolves a route workspace through the user's session and checks
// the role gate before any backend mutation.
type authorizer struct {
	BaseService
	sessions *SessionRegistry
}

func (a *authorizer) authorize(ctx context.Context, userID, workspaceID string, action permissions.Action) (*workspaceAccess, error) {
	if workspaceID == "" {
		return nil, apperrors.ErrNoSelection
	}
	session := a.sessions.Session(userID)
	ws, err := session.Store.EnsureSelected(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, apperrors.ErrNoSelection
	}

	role := domain.NewRoleIndex(ws).RoleOf(userID)
	if role == domain.RoleNone {
		a.LogDebug(ctx, "User is not a member of workspace",
			slog.String("user_id", userID),
			slog.String("workspace_id", workspaceID))
		return nil, apperrors.NewForbiddenError("you are not a member of this workspace")
	}
	caps := permissions.CapabilitiesFor(role)
	if !caps.Allows(action) {
		a.LogDebug(ctx, "User lacks capability",
			slog.String("user_id", userID),
			slog.String("workspace_id", workspaceID),
			slog.String("role", string(role)),
			slog.String("action", string(action)))
		return nil, apperrors.NewForbiddenError(fmt.Sprintf("your role (%s) does not allow %s", role, action))
	}
	return &workspaceAccess{session: session, workspace: ws, role: role, caps: caps}, nil
}

func requireConfirmation(confirm bool, what string) error {
	if confirm {
		return nil
	}
	return apperrors.NewAppError(http.StatusPreconditionRequired, what+" must be confirmed", apperrors.ErrConfirmationRequired)
}
