package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/workspace_dashboard/internal/apperrors"
	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
	"github.com/SscSPs/workspace_dashboard/internal/core/permissions"
	portsrepo "github.com/SscSPs/workspace_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/workspace_dashboard/internal/core/ports/services"
)

const defaultMaxSharedMembers = 5

// workspaceService implements the WorkspaceSvcFacade interface
type workspaceService struct {
	authorizer
	repo             portsrepo.WorkspaceRepositoryFacade
	maxSharedMembers int
}

// WorkspaceServiceOption configures a workspace service.
type WorkspaceServiceOption func(*workspaceService)

// WithMaxSharedMembers sets the ceiling on non-owner members per workspace.
func WithMaxSharedMembers(n int) WorkspaceServiceOption {
	return func(s *workspaceService) {
		if n > 0 {
			s.maxSharedMembers = n
		}
	}
}

// NewWorkspaceService creates a new workspace service with the provided dependencies
func NewWorkspaceService(sessions *SessionRegistry, repo portsrepo.WorkspaceRepositoryFacade, opts ...WorkspaceServiceOption) portssvc.WorkspaceSvcFacade {
	s := &workspaceService{
		authorizer:       authorizer{sessions: sessions},
		repo:             repo,
		maxSharedMembers: defaultMaxSharedMembers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure workspaceService implements the WorkspaceSvcFacade interface
var _ portssvc.WorkspaceSvcFacade = (*workspaceService)(nil)

// Session returns the user's session, loading the lists on first use
func (s *workspaceService) Session(ctx context.Context, userID string) (*portssvc.SessionSnapshot, error) {
	store := s.sessions.Session(userID).Store
	if !store.ListsLoaded() {
		if _, err := store.LoadWorkspaces(ctx); err != nil && errors.Is(err, apperrors.ErrStaleResponse) {
			return nil, err
		}
	}
	return store.Snapshot(), nil
}

// ListWorkspaces refreshes the owned and shared lists
func (s *workspaceService) ListWorkspaces(ctx context.Context, userID string) (*portssvc.SessionSnapshot, error) {
	store := s.sessions.Session(userID).Store
	if _, err := store.LoadWorkspaces(ctx); err != nil {
		if errors.Is(err, apperrors.ErrStaleResponse) {
			return nil, err
		}
		s.LogDebug(ctx, "Workspace list load failed; reporting load_failed", slog.String("user_id", userID))
	}
	return store.Snapshot(), nil
}

// OpenWorkspace selects the route workspace
func (s *workspaceService) OpenWorkspace(ctx context.Context, userID, workspaceID string) (*portssvc.SessionSnapshot, error) {
	access, err := s.authorize(ctx, userID, workspaceID, permissions.ActionView)
	if err != nil {
		return nil, err
	}
	store := access.session.Store
	if !store.ListsLoaded() {
		// the snapshot is still useful without the lists
		_, _ = store.LoadWorkspaces(ctx)
	}
	return store.Snapshot(), nil
}

// ResolveRoute maps the workspace focus onto its dashboard route
func (s *workspaceService) ResolveRoute(ctx context.Context, userID, workspaceID string) (*portssvc.RouteResolution, error) {
	access, err := s.authorize(ctx, userID, workspaceID, permissions.ActionView)
	if err != nil {
		return nil, err
	}
	res := &portssvc.RouteResolution{
		WorkspaceID: workspaceID,
		MainFocus:   access.workspace.MainFocus,
	}
	prefix, ok := access.workspace.MainFocus.RoutePrefix()
	if !ok {
		s.LogWarn(ctx, "Workspace has an unroutable focus",
			slog.String("workspace_id", workspaceID),
			slog.String("main_focus", string(access.workspace.MainFocus)))
		return res, nil
	}
	res.Routable = true
	res.Prefix = prefix
	res.Path = fmt.Sprintf("/dashboard/%s/%s", prefix, workspaceID)
	return res, nil
}

// ClearSelection leaves the user with no workspace selected
func (s *workspaceService) ClearSelection(ctx context.Context, userID string) *portssvc.SessionSnapshot {
	store := s.sessions.Session(userID).Store
	store.ClearSelection()
	return store.Snapshot()
}

// CreateWorkspace validates, checks the owned-workspace ceiling, then creates
func (s *workspaceService) CreateWorkspace(ctx context.Context, userID string, params domain.CreateWorkspaceParams) (*domain.Workspace, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}
	if _, ok := params.MainFocus.RoutePrefix(); !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("mainFocus %q is not supported", params.MainFocus))
	}

	store := s.sessions.Session(userID).Store
	if !store.ListsLoaded() {
		if _, err := store.LoadWorkspaces(ctx); err != nil {
			return nil, fmt.Errorf("cannot check workspace limit: %w", err)
		}
	}
	if !store.CanCreateWorkspace() {
		s.LogInfo(ctx, "Workspace limit reached", slog.String("user_id", userID))
		return nil, apperrors.NewLimitError("you have reached the maximum number of workspaces")
	}

	ws, err := s.repo.CreateWorkspace(ctx, params)
	if err != nil {
		s.LogError(ctx, err, "Failed to create workspace", slog.String("user_id", userID))
		return nil, err
	}
	store.AddOwned(ws)
	store.InvalidateLists(ctx)

	s.LogInfo(ctx, "Workspace created successfully",
		slog.String("workspace_id", ws.WorkspaceID),
		slog.String("creator_id", userID))
	return ws, nil
}

// UpdateWorkspace changes name or description
func (s *workspaceService) UpdateWorkspace(ctx context.Context, userID, workspaceID string, params domain.UpdateWorkspaceParams) (*domain.Workspace, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}
	if params.Name == nil && params.Description == nil {
		return nil, apperrors.NewValidationError("nothing to update")
	}
	access, err := s.authorize(ctx, userID, workspaceID, permissions.ActionManageWorkspace)
	if err != nil {
		return nil, err
	}

	ws, err := s.repo.UpdateWorkspace(ctx, workspaceID, params)
	if err != nil {
		s.LogError(ctx, err, "Failed to update workspace", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	if ws.WorkspaceID == "" {
		ws.WorkspaceID = workspaceID
	}
	access.session.Store.ApplyWorkspace(ws)
	access.session.Store.InvalidateLists(ctx)
	return ws, nil
}

// DeleteWorkspace is owner only and needs explicit confirmation
func (s *workspaceService) DeleteWorkspace(ctx context.Context, userID, workspaceID string, confirm bool) error {
	if err := requireConfirmation(confirm, "deleting a workspace"); err != nil {
		return err
	}
	access, err := s.authorize(ctx, userID, workspaceID, permissions.ActionDeleteWorkspace)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteWorkspace(ctx, workspaceID); err != nil {
		s.LogError(ctx, err, "Failed to delete workspace", slog.String("workspace_id", workspaceID))
		return err
	}
	access.session.Store.RemoveWorkspace(workspaceID)
	access.session.DropWorkspace(ctx, workspaceID)
	access.session.Store.InvalidateLists(ctx)

	s.LogInfo(ctx, "Workspace deleted", slog.String("workspace_id", workspaceID), slog.String("user_id", userID))
	return nil
}

// ListMembers refreshes the member list of the workspace
func (s *workspaceService) ListMembers(ctx context.Context, userID, workspaceID string) ([]domain.Member, error) {
	access, err := s.authorize(ctx, userID, workspaceID, permissions.ActionView)
	if err != nil {
		return nil, err
	}
	members, err := s.repo.ListMembers(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list members", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	access.session.Store.ApplyMembers(workspaceID, members)
	return members, nil
}

// InviteMember rejects once the shared member ceiling is reached, before any backend call
func (s *workspaceService) InviteMember(ctx context.Context, userID, workspaceID string, params domain.InviteParams) (*domain.Invitation, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}
	access, err := s.authorize(ctx, userID, workspaceID, permissions.ActionManageMembers)
	if err != nil {
		return nil, err
	}
	if count := access.workspace.SharedMemberCount(); count >= s.maxSharedMembers {
		s.LogInfo(ctx, "Shared member limit reached",
			slog.String("workspace_id", workspaceID),
			slog.Int("members", count),
			slog.Int("limit", s.maxSharedMembers))
		return nil, apperrors.NewLimitError(fmt.Sprintf("a workspace can be shared with at most %d members", s.maxSharedMembers))
	}

	inv, err := s.repo.InviteMember(ctx, workspaceID, params)
	if err != nil {
		s.LogError(ctx, err, "Failed to invite member", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	s.LogInfo(ctx, "Member invited",
		slog.String("workspace_id", workspaceID),
		slog.String("role", string(params.Role)))
	return inv, nil
}

// RemoveMember needs confirmation and never removes the owner
func (s *workspaceService) RemoveMember(ctx context.Context, userID, workspaceID, targetUserID string, confirm bool) error {
	if targetUserID == "" {
		return apperrors.NewValidationError("user id is required")
	}
	if err := requireConfirmation(confirm, "removing a member"); err != nil {
		return err
	}
	access, err := s.authorize(ctx, userID, workspaceID, permissions.ActionManageMembers)
	if err != nil {
		return err
	}
	if domain.NewRoleIndex(access.workspace).OwnerID() == targetUserID {
		return apperrors.NewForbiddenError("the workspace owner cannot be removed")
	}

	if err := s.repo.RemoveMember(ctx, workspaceID, targetUserID); err != nil {
		s.LogError(ctx, err, "Failed to remove member",
			slog.String("workspace_id", workspaceID),
			slog.String("target_user_id", targetUserID))
		return err
	}
	members := make([]domain.Member, 0, len(access.workspace.Members))
	for _, m := range access.workspace.Members {
		if m.User.ID != targetUserID {
			members = append(members, m)
		}
	}
	access.session.Store.ApplyMembers(workspaceID, members)
	access.session.Store.InvalidateLists(ctx)
	return nil
}

// UpdateMemberRole never assigns or alters the owner role
func (s *workspaceService) UpdateMemberRole(ctx context.Context, userID, workspaceID, targetUserID string, role domain.Role) (*domain.Member, error) {
	if targetUserID == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}
	if !role.Valid() || role == domain.RoleOwner {
		return nil, apperrors.NewValidationError("role must be one of: admin editor viewer")
	}
	access, err := s.authorize(ctx, userID, workspaceID, permissions.ActionManageMembers)
	if err != nil {
		return nil, err
	}
	if domain.NewRoleIndex(access.workspace).OwnerID() == targetUserID {
		return nil, apperrors.NewForbiddenError("the owner's role cannot be changed")
	}

	member, err := s.repo.UpdateMemberRole(ctx, workspaceID, targetUserID, role)
	if err != nil {
		s.LogError(ctx, err, "Failed to update member role",
			slog.String("workspace_id", workspaceID),
			slog.String("target_user_id", targetUserID))
		return nil, err
	}
	members := append([]domain.Member(nil), access.workspace.Members...)
	for i := range members {
		if members[i].User.ID == targetUserID {
			members[i].Role = role
		}
	}
	access.session.Store.ApplyMembers(workspaceID, members)
	return member, nil
}

// GetInvitation fetches an invitation addressed to the user
func (s *workspaceService) GetInvitation(ctx context.Context, userID, invitationID string) (*domain.Invitation, error) {
	if invitationID == "" {
		return nil, apperrors.NewValidationError("invitation id is required")
	}
	inv, err := s.repo.GetInvitation(ctx, invitationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get invitation", slog.String("invitation_id", invitationID))
		}
		return nil, err
	}
	return inv, nil
}

// AcceptInvitation joins the workspace and records it as shared
func (s *workspaceService) AcceptInvitation(ctx context.Context, userID, invitationID string) (*domain.Workspace, error) {
	if invitationID == "" {
		return nil, apperrors.NewValidationError("invitation id is required")
	}
	ws, err := s.repo.AcceptInvitation(ctx, invitationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to accept invitation", slog.String("invitation_id", invitationID))
		return nil, err
	}
	store := s.sessions.Session(userID).Store
	store.AddShared(ws)
	store.InvalidateLists(ctx)
	s.LogInfo(ctx, "Invitation accepted",
		slog.String("invitation_id", invitationID),
		slog.String("workspace_id", ws.WorkspaceID))
	return ws, nil
}

// RejectInvitation declines an invitation
func (s *workspaceService) RejectInvitation(ctx context.Context, userID, invitationID string) error {
	if invitationID == "" {
		return apperrors.NewValidationError("invitation id is required")
	}
	if err := s.repo.RejectInvitation(ctx, invitationID); err != nil {
		s.LogError(ctx, err, "Failed to reject invitation", slog.String("invitation_id", invitationID))
		return err
	}
	return nil
}
