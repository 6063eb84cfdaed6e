package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/workspace_dashboard/internal/core/ports/services"
	"github.com/SscSPs/workspace_dashboard/internal/dto"
	"github.com/SscSPs/workspace_dashboard/internal/middleware"
)

// membershipHandler handles membership and invitation requests.
type membershipHandler struct {
	workspaceService portssvc.WorkspaceSvcFacade
}

func newMembershipHandler(ws portssvc.WorkspaceSvcFacade) *membershipHandler {
	return &membershipHandler{workspaceService: ws}
}

// registerMemberRoutes nests member management under a single workspace.
func registerMemberRoutes(workspace *gin.RouterGroup, workspaceService portssvc.WorkspaceSvcFacade) {
	h := newMembershipHandler(workspaceService)

	members := workspace.Group("/members")
	{
		members.GET("", h.listMembers)
		members.POST("", h.inviteMember)
		members.PATCH("/:user_id", h.updateMemberRole)
		members.DELETE("/:user_id", h.removeMember)
	}
}

// registerInvitationRoutes registers the invitations addressed to the caller.
func registerInvitationRoutes(rg *gin.RouterGroup, workspaceService portssvc.WorkspaceSvcFacade) {
	h := newMembershipHandler(workspaceService)

	invitations := rg.Group("/invitations/:invitation_id")
	{
		invitations.GET("", h.getInvitation)
		invitations.POST("/accept", h.acceptInvitation)
		invitations.POST("/reject", h.rejectInvitation)
	}
}

// listMembers godoc
// @Summary List workspace members
// @Tags members
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {array} dto.MemberResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/members [get]
func (h *membershipHandler) listMembers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	workspaceID := c.Param("workspace_id")

	members, err := h.workspaceService.ListMembers(c.Request.Context(), userID, workspaceID)
	if err != nil {
		respondError(c, logger, "list members", err)
		return
	}
	resp := make([]dto.MemberResponse, len(members))
	for i, m := range members {
		resp[i] = dto.ToMemberResponse(m)
	}
	c.JSON(http.StatusOK, resp)
}

// inviteMember godoc
// @Summary Invite a user to the workspace
// @Description Requires member management rights. Rejected once the shared member ceiling is reached.
// @Tags members
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   invitation body dto.InviteMemberRequest true "Invitee"
// @Success 201 {object} domain.Invitation
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Member limit reached"
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/members [post]
func (h *membershipHandler) inviteMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "InviteMember", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	workspaceID := c.Param("workspace_id")
	logger = logger.With(slog.String("workspace_id", workspaceID))

	inv, err := h.workspaceService.InviteMember(c.Request.Context(), userID, workspaceID, req.ToParams())
	if err != nil {
		respondError(c, logger, "invite member", err)
		return
	}
	logger.Info("Member invited", slog.String("invitation_id", inv.InvitationID), slog.String("role", string(req.Role)))
	c.JSON(http.StatusCreated, inv)
}

// updateMemberRole godoc
// @Summary Change a member's role
// @Tags members
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   user_id path string true "Member user ID"
// @Param   role body dto.UpdateMemberRoleRequest true "New role"
// @Success 200 {object} dto.MemberResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/members/{user_id} [patch]
func (h *membershipHandler) updateMemberRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "UpdateMemberRole", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	target := c.Param("user_id")

	member, err := h.workspaceService.UpdateMemberRole(c.Request.Context(), userID, c.Param("workspace_id"), target, req.Role)
	if err != nil {
		respondError(c, logger, "update member role", err)
		return
	}
	logger.Info("Member role updated", slog.String("target_user_id", target), slog.String("role", string(req.Role)))
	c.JSON(http.StatusOK, dto.ToMemberResponse(*member))
}

// removeMember godoc
// @Summary Remove a member
// @Description The owner cannot be removed. Requires confirm=true.
// @Tags members
// @Param   workspace_id path string true "Workspace ID"
// @Param   user_id path string true "Member user ID"
// @Param   confirm query bool true "Explicit confirmation"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 428 {object} dto.ErrorResponse "Confirmation required"
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/members/{user_id} [delete]
func (h *membershipHandler) removeMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.ConfirmQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, logger, "RemoveMember", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	target := c.Param("user_id")

	if err := h.workspaceService.RemoveMember(c.Request.Context(), userID, c.Param("workspace_id"), target, q.Confirm); err != nil {
		respondError(c, logger, "remove member", err)
		return
	}
	logger.Info("Member removed", slog.String("target_user_id", target))
	c.Status(http.StatusNoContent)
}

// getInvitation godoc
// @Summary Get an invitation
// @Tags invitations
// @Produce  json
// @Param   invitation_id path string true "Invitation ID"
// @Success 200 {object} domain.Invitation
// @Failure 404 {object} dto.ErrorResponse "Invitation not found"
// @Security CookieAuth
// @Router /invitations/{invitation_id} [get]
func (h *membershipHandler) getInvitation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	inv, err := h.workspaceService.GetInvitation(c.Request.Context(), userID, c.Param("invitation_id"))
	if err != nil {
		respondError(c, logger, "get invitation", err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

// acceptInvitation godoc
// @Summary Accept an invitation
// @Description Joins the workspace and refreshes the caller's workspace lists.
// @Tags invitations
// @Produce  json
// @Param   invitation_id path string true "Invitation ID"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 404 {object} dto.ErrorResponse "Invitation not found"
// @Security CookieAuth
// @Router /invitations/{invitation_id}/accept [post]
func (h *membershipHandler) acceptInvitation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	invitationID := c.Param("invitation_id")

	ws, err := h.workspaceService.AcceptInvitation(c.Request.Context(), userID, invitationID)
	if err != nil {
		respondError(c, logger, "accept invitation", err)
		return
	}
	logger.Info("Invitation accepted", slog.String("invitation_id", invitationID), slog.String("workspace_id", ws.WorkspaceID))
	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(ws))
}

// rejectInvitation godoc
// @Summary Reject an invitation
// @Tags invitations
// @Param   invitation_id path string true "Invitation ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Invitation not found"
// @Security CookieAuth
// @Router /invitations/{invitation_id}/reject [post]
func (h *membershipHandler) rejectInvitation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	if err := h.workspaceService.RejectInvitation(c.Request.Context(), userID, c.Param("invitation_id")); err != nil {
		respondError(c, logger, "reject invitation", err)
		return
	}
	c.Status(http.StatusNoContent)
}
