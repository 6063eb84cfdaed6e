package services

import (
	"context"

	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
)

// WorkspaceSessionSvc exposes the per-user session store
type WorkspaceSessionSvc interface {
	// Session returns the current session, loading the workspace lists on first use.
	Session(ctx context.Context, userID string) (*SessionSnapshot, error)

	// ListWorkspaces refreshes the owned and shared lists. A failed fetch is not an
	// error: the snapshot carries status load_failed and the cause.
	ListWorkspaces(ctx context.Context, userID string) (*SessionSnapshot, error)

	// OpenWorkspace makes workspaceID the selection (the route is the source of truth).
	OpenWorkspace(ctx context.Context, userID, workspaceID string) (*SessionSnapshot, error)

	// ResolveRoute maps a workspace onto its dashboard route prefix.
	ResolveRoute(ctx context.Context, userID, workspaceID string) (*RouteResolution, error)

	// ClearSelection leaves the user with no workspace selected.
	ClearSelection(ctx context.Context, userID string) *SessionSnapshot
}

// WorkspaceWriterSvc defines write operations for workspaces
type WorkspaceWriterSvc interface {
	CreateWorkspace(ctx context.Context, userID string, params domain.CreateWorkspaceParams) (*domain.Workspace, error)
	UpdateWorkspace(ctx context.Context, userID, workspaceID string, params domain.UpdateWorkspaceParams) (*domain.Workspace, error)

	// DeleteWorkspace is owner only and requires confirm.
	DeleteWorkspace(ctx context.Context, userID, workspaceID string, confirm bool) error
}

// WorkspaceMembershipSvc defines operations for managing workspace membership
type WorkspaceMembershipSvc interface {
	ListMembers(ctx context.Context, userID, workspaceID string) ([]domain.Member, error)

	// InviteMember rejects before any backend call once the shared member ceiling is reached.
	InviteMember(ctx context.Context, userID, workspaceID string, params domain.InviteParams) (*domain.Invitation, error)

	RemoveMember(ctx context.Context, userID, workspaceID, targetUserID string, confirm bool) error
	UpdateMemberRole(ctx context.Context, userID, workspaceID, targetUserID string, role domain.Role) (*domain.Member, error)
}

// InvitationSvc defines operations on invitations addressed to the user
type InvitationSvc interface {
	GetInvitation(ctx context.Context, userID, invitationID string) (*domain.Invitation, error)
	AcceptInvitation(ctx context.Context, userID, invitationID string) (*domain.Workspace, error)
	RejectInvitation(ctx context.Context, userID, invitationID string) error
}

// WorkspaceSvcFacade combines all workspace-related service interfaces
type WorkspaceSvcFacade interface {
	WorkspaceSessionSvc
	WorkspaceWriterSvc
	WorkspaceMembershipSvc
	InvitationSvc
}
