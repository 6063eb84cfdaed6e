package dto

import (
	"time"

	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
	"github.com/SscSPs/workspace_dashboard/internal/core/permissions"
	portssvc "github.com/SscSPs/workspace_dashboard/internal/core/ports/services"
)

// --- Workspace DTOs ---

// CreateWorkspaceRequest defines data for creating a new workspace.
type CreateWorkspaceRequest struct {
	Name        string           `json:"name" binding:"required,min=3,max=64"`
	Description string           `json:"description" binding:"max=500"`
	MainFocus   domain.MainFocus `json:"mainFocus" binding:"required"`
}

// ToParams converts the request to domain params.
func (r CreateWorkspaceRequest) ToParams() domain.CreateWorkspaceParams {
	return domain.CreateWorkspaceParams{Name: r.Name, Description: r.Description, MainFocus: r.MainFocus}
}

// UpdateWorkspaceRequest defines the mutable fields of a workspace. mainFocus cannot change.
type UpdateWorkspaceRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=3,max=64"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// ToParams converts the request to domain params.
func (r UpdateWorkspaceRequest) ToParams() domain.UpdateWorkspaceParams {
	return domain.UpdateWorkspaceParams{Name: r.Name, Description: r.Description}
}

// MemberResponse defines data returned for a workspace member.
type MemberResponse struct {
	UserID   string      `json:"userId"`
	Name     string      `json:"name,omitempty"`
	Email    string      `json:"email,omitempty"`
	Role     domain.Role `json:"role"`
	JoinedAt *time.Time  `json:"joinedAt,omitempty"`
}

// ToMemberResponse converts domain.Member to DTO.
func ToMemberResponse(m domain.Member) MemberResponse {
	return MemberResponse{
		UserID:   m.User.ID,
		Name:     m.User.Name,
		Email:    m.User.Email,
		Role:     m.Role,
		JoinedAt: m.JoinedAt,
	}
}

// ToMemberResponses converts a member list, resolving roles through the role index so
// the owner shows up exactly once.
func ToMemberResponses(ws *domain.Workspace, members []domain.Member) []MemberResponse {
	idx := domain.NewRoleIndex(&domain.Workspace{Owner: ws.Owner, Members: members})
	out := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		resp := ToMemberResponse(m)
		if role := idx.RoleOf(m.User.ID); role != domain.RoleNone {
			resp.Role = role
		}
		out = append(out, resp)
	}
	return out
}

// WorkspaceResponse defines data returned for a workspace.
type WorkspaceResponse struct {
	WorkspaceID  string           `json:"workspaceId"`
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	MainFocus    domain.MainFocus `json:"mainFocus"`
	RoutePrefix  string           `json:"routePrefix,omitempty"`
	OwnerID      string           `json:"ownerId"`
	Members      []MemberResponse `json:"members"`
	SharedWith   int              `json:"sharedWith"`
	Table        *domain.Table    `json:"table,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	LastUpdateAt time.Time        `json:"updatedAt"`
}

// ToWorkspaceResponse converts domain.Workspace to DTO.
func ToWorkspaceResponse(w *domain.Workspace) WorkspaceResponse {
	prefix, _ := w.MainFocus.RoutePrefix()
	return WorkspaceResponse{
		WorkspaceID:  w.WorkspaceID,
		Name:         w.Name,
		Description:  w.Description,
		MainFocus:    w.MainFocus,
		RoutePrefix:  prefix,
		OwnerID:      domain.NewRoleIndex(w).OwnerID(),
		Members:      ToMemberResponses(w, w.Members),
		SharedWith:   w.SharedMemberCount(),
		Table:        w.Table,
		CreatedAt:    w.CreatedAt,
		LastUpdateAt: w.UpdatedAt,
	}
}

func toWorkspaceResponses(ws []domain.Workspace) []WorkspaceResponse {
	list := make([]WorkspaceResponse, len(ws))
	for i := range ws {
		list[i] = ToWorkspaceResponse(&ws[i])
	}
	return list
}

// SessionResponse is the dashboard session of the calling user.
type SessionResponse struct {
	Status             portssvc.SessionStatus   `json:"status"`
	SelectedWorkspace  *WorkspaceResponse       `json:"selectedWorkspace"`
	Role               domain.Role              `json:"role"`
	Permissions        permissions.Capabilities `json:"permissions"`
	RoutePrefix        string                   `json:"routePrefix,omitempty"`
	Owned              []WorkspaceResponse      `json:"owned"`
	Shared             []WorkspaceResponse      `json:"shared"`
	LoadError          string                   `json:"loadError,omitempty"`
	CanCreateWorkspace bool                     `json:"canCreateWorkspace"`
}

// ToSessionResponse converts a session snapshot to DTO.
func ToSessionResponse(s *portssvc.SessionSnapshot) SessionResponse {
	resp := SessionResponse{
		Status:             s.Status,
		Role:               s.Role,
		Permissions:        s.Permissions,
		RoutePrefix:        s.RoutePrefix,
		Owned:              toWorkspaceResponses(s.Owned),
		Shared:             toWorkspaceResponses(s.Shared),
		LoadError:          s.LoadError,
		CanCreateWorkspace: s.CanCreateWorkspace,
	}
	if s.HasSelection() {
		selected := ToWorkspaceResponse(s.SelectedWorkspace)
		resp.SelectedWorkspace = &selected
	}
	return resp
}

// --- Membership DTOs ---

// InviteMemberRequest defines data for inviting a user to a workspace.
type InviteMemberRequest struct {
	Email string      `json:"email" binding:"required,email"`
	Role  domain.Role `json:"role" binding:"required,oneof=admin editor viewer"`
}

// ToParams converts the request to domain params.
func (r InviteMemberRequest) ToParams() domain.InviteParams {
	return domain.InviteParams{Email: r.Email, Role: r.Role}
}

// UpdateMemberRoleRequest defines data for changing a member's role.
type UpdateMemberRoleRequest struct {
	Role domain.Role `json:"role" binding:"required,oneof=admin editor viewer"`
}

// ConfirmQuery carries the explicit confirmation destructive endpoints require.
type ConfirmQuery struct {
	Confirm bool `form:"confirm"`
}
