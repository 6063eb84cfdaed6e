package repositories

import (
	"context"

	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
)

// WorkspaceReader defines read operations for workspace data
type WorkspaceReader interface {
	// ListWorkspaces retrieves the owned and shared workspaces of the session user.
	ListWorkspaces(ctx context.Context) (*domain.WorkspaceList, error)

	// GetWorkspace retrieves a specific workspace, members and table included.
	GetWorkspace(ctx context.Context, workspaceID string) (*domain.Workspace, error)
}

// WorkspaceWriter defines write operations for workspace data
type WorkspaceWriter interface {
	CreateWorkspace(ctx context.Context, params domain.CreateWorkspaceParams) (*domain.Workspace, error)
	UpdateWorkspace(ctx context.Context, workspaceID string, params domain.UpdateWorkspaceParams) (*domain.Workspace, error)
	DeleteWorkspace(ctx context.Context, workspaceID string) error
}

// WorkspaceMembershipManager defines operations for managing workspace memberships
type WorkspaceMembershipManager interface {
	ListMembers(ctx context.Context, workspaceID string) ([]domain.Member, error)
	InviteMember(ctx context.Context, workspaceID string, params domain.InviteParams) (*domain.Invitation, error)
	RemoveMember(ctx context.Context, workspaceID, userID string) error
	UpdateMemberRole(ctx context.Context, workspaceID, userID string, role domain.Role) (*domain.Member, error)
}

// InvitationManager defines operations on invitations addressed to the session user
type InvitationManager interface {
	GetInvitation(ctx context.Context, invitationID string) (*domain.Invitation, error)
	AcceptInvitation(ctx context.Context, invitationID string) (*domain.Workspace, error)
	RejectInvitation(ctx context.Context, invitationID string) error
}

// WorkspaceRepositoryFacade combines all workspace-related repository interfaces
// This is a facade for clients that need access to all operations
type WorkspaceRepositoryFacade interface {
	WorkspaceReader
	WorkspaceWriter
	WorkspaceMembershipManager
	InvitationManager
}
