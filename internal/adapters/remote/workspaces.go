package remote

import (
	"context"
	"net/http"

	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
)

// ListWorkspaces calls GET /workspaces.
func (c *Client) ListWorkspaces(ctx context.Context) (*domain.WorkspaceList, error) {
	var out domain.WorkspaceList
	if _, err := c.doJSON(ctx, http.MethodGet, c.endpoint("workspaces"), nil, &out); err != nil {
		return nil, err
	}
	if out.Owned == nil {
		out.Owned = []domain.Workspace{}
	}
	if out.Shared == nil {
		out.Shared = []domain.Workspace{}
	}
	return &out, nil
}

// GetWorkspace calls GET /workspaces/:id.
func (c *Client) GetWorkspace(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	var out domain.Workspace
	if _, err := c.doJSON(ctx, http.MethodGet, c.endpoint("workspaces", workspaceID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateWorkspace calls POST /workspaces.
func (c *Client) CreateWorkspace(ctx context.Context, params domain.CreateWorkspaceParams) (*domain.Workspace, error) {
	var out domain.Workspace
	if _, err := c.doJSON(ctx, http.MethodPost, c.endpoint("workspaces"), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateWorkspace calls PUT /workspaces/:id.
func (c *Client) UpdateWorkspace(ctx context.Context, workspaceID string, params domain.UpdateWorkspaceParams) (*domain.Workspace, error) {
	var out domain.Workspace
	if _, err := c.doJSON(ctx, http.MethodPut, c.endpoint("workspaces", workspaceID), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteWorkspace calls DELETE /workspaces/:id.
func (c *Client) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, c.endpoint("workspaces", workspaceID), nil, nil)
	return err
}

// ListMembers calls GET /workspaces/:id/members.
func (c *Client) ListMembers(ctx context.Context, workspaceID string) ([]domain.Member, error) {
	var out []domain.Member
	if _, err := c.doJSON(ctx, http.MethodGet, c.endpoint("workspaces", workspaceID, "members"), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Member{}
	}
	return out, nil
}

// InviteMember calls POST /workspaces/:id/invite.
func (c *Client) InviteMember(ctx context.Context, workspaceID string, params domain.InviteParams) (*domain.Invitation, error) {
	var out domain.Invitation
	if _, err := c.doJSON(ctx, http.MethodPost, c.endpoint("workspaces", workspaceID, "invite"), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveMember calls DELETE /workspaces/:id/members/:userId.
func (c *Client) RemoveMember(ctx context.Context, workspaceID, userID string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, c.endpoint("workspaces", workspaceID, "members", userID), nil, nil)
	return err
}

type updateRoleBody struct {
	Role domain.Role `json:"role"`
}

// UpdateMemberRole calls PATCH /workspaces/:id/members/:userId.
func (c *Client) UpdateMemberRole(ctx context.Context, workspaceID, userID string, role domain.Role) (*domain.Member, error) {
	var out domain.Member
	target := c.endpoint("workspaces", workspaceID, "members", userID)
	if _, err := c.doJSON(ctx, http.MethodPatch, target, updateRoleBody{Role: role}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetInvitation calls GET /workspaces/invitations/:id.
func (c *Client) GetInvitation(ctx context.Context, invitationID string) (*domain.Invitation, error) {
	var out domain.Invitation
	if _, err := c.doJSON(ctx, http.MethodGet, c.endpoint("workspaces", "invitations", invitationID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AcceptInvitation calls POST /workspaces/invitations/:id/accept and returns the joined workspace.
func (c *Client) AcceptInvitation(ctx context.Context, invitationID string) (*domain.Workspace, error) {
	var out domain.Workspace
	target := c.endpoint("workspaces", "invitations", invitationID, "accept")
	if _, err := c.doJSON(ctx, http.MethodPost, target, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RejectInvitation calls POST /workspaces/invitations/:id/reject.
func (c *Client) RejectInvitation(ctx context.Context, invitationID string) error {
	_, err := c.doJSON(ctx, http.MethodPost, c.endpoint("workspaces", "invitations", invitationID, "reject"), nil, nil)
	return err
}
