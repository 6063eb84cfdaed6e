package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/workspace_dashboard/internal/core/ports/services"
	"github.com/SscSPs/workspace_dashboard/internal/dto"
	"github.com/SscSPs/workspace_dashboard/internal/middleware"
)

// workspaceHandler handles HTTP requests related to workspaces and the session.
type workspaceHandler struct {
	workspaceService portssvc.WorkspaceSvcFacade
}

// newWorkspaceHandler creates a new workspaceHandler.
func newWorkspaceHandler(ws portssvc.WorkspaceSvcFacade) *workspaceHandler {
	return &workspaceHandler{
		workspaceService: ws,
	}
}

// registerSessionRoutes registers the per-user session routes.
func registerSessionRoutes(rg *gin.RouterGroup, workspaceService portssvc.WorkspaceSvcFacade) {
	h := newWorkspaceHandler(workspaceService)

	session := rg.Group("/session")
	{
		session.GET("", h.getSession)
		session.DELETE("/selection", h.clearSelection)
	}
}

// registerWorkspaceRoutes registers routes for workspaces themselves. The returned group
// is the single-workspace group other handlers nest under.
func registerWorkspaceRoutes(rg *gin.RouterGroup, workspaceService portssvc.WorkspaceSvcFacade) *gin.RouterGroup {
	h := newWorkspaceHandler(workspaceService)

	workspacesTopLevel := rg.Group("/workspaces")
	{
		workspacesTopLevel.POST("", h.createWorkspace)
		workspacesTopLevel.GET("", h.listWorkspaces)
	}

	workspaceSpecific := rg.Group("/workspaces/:workspace_id")
	{
		workspaceSpecific.GET("", h.getWorkspace)
		workspaceSpecific.PUT("", h.updateWorkspace)
		workspaceSpecific.DELETE("", h.deleteWorkspace)
		workspaceSpecific.GET("/route", h.resolveRoute)
	}
	return workspaceSpecific
}

// getSession godoc
// @Summary Get the dashboard session
// @Description Returns the selection, role, permissions and workspace lists of the caller. Lists are loaded on first use.
// @Tags session
// @Produce  json
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security CookieAuth
// @Router /session [get]
func (h *workspaceHandler) getSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	snap, err := h.workspaceService.Session(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, "load session", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionResponse(snap))
}

// clearSelection godoc
// @Summary Clear the selected workspace
// @Tags session
// @Produce  json
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security CookieAuth
// @Router /session/selection [delete]
func (h *workspaceHandler) clearSelection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionResponse(h.workspaceService.ClearSelection(c.Request.Context(), userID)))
}

// createWorkspace godoc
// @Summary Create a new workspace
// @Description Creates a workspace owned by the caller. Rejected once the workspace ceiling is reached.
// @Tags workspaces
// @Accept  json
// @Produce  json
// @Param   workspace body dto.CreateWorkspaceRequest true "Workspace details"
// @Success 201 {object} dto.WorkspaceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Workspace limit reached"
// @Failure 502 {object} dto.ErrorResponse "Backend unavailable"
// @Security CookieAuth
// @Router /workspaces [post]
func (h *workspaceHandler) createWorkspace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "CreateWorkspace", err)
		return
	}

	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to create workspace", slog.String("workspace_name", req.Name), slog.String("main_focus", string(req.MainFocus)))

	ws, err := h.workspaceService.CreateWorkspace(c.Request.Context(), userID, req.ToParams())
	if err != nil {
		respondError(c, logger, "create workspace", err)
		return
	}

	logger.Info("Workspace created successfully", slog.String("workspace_id", ws.WorkspaceID))
	c.JSON(http.StatusCreated, dto.ToWorkspaceResponse(ws))
}

// listWorkspaces godoc
// @Summary List workspaces for current user
// @Description Refreshes the owned and shared lists. A failed fetch answers 200 with status load_failed.
// @Tags workspaces
// @Produce  json
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security CookieAuth
// @Router /workspaces [get]
func (h *workspaceHandler) listWorkspaces(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	snap, err := h.workspaceService.ListWorkspaces(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, "list workspaces", err)
		return
	}
	if snap.LoadError != "" {
		logger.Warn("Workspace lists failed to load", slog.String("error", snap.LoadError))
	}
	c.JSON(http.StatusOK, dto.ToSessionResponse(snap))
}

// getWorkspace godoc
// @Summary Open a workspace
// @Description Selects the workspace and returns the updated session.
// @Tags workspaces
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 403 {object} dto.ErrorResponse "Not a member"
// @Failure 404 {object} dto.ErrorResponse "Workspace not found"
// @Failure 409 {object} dto.ErrorResponse "Superseded by a newer selection"
// @Failure 502 {object} dto.ErrorResponse "Backend unavailable"
// @Security CookieAuth
// @Router /workspaces/{workspace_id} [get]
func (h *workspaceHandler) getWorkspace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	workspaceID := c.Param("workspace_id")

	snap, err := h.workspaceService.OpenWorkspace(c.Request.Context(), userID, workspaceID)
	if err != nil {
		respondError(c, logger.With(slog.String("workspace_id", workspaceID)), "open workspace", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionResponse(snap))
}

// updateWorkspace godoc
// @Summary Update a workspace
// @Tags workspaces
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   workspace body dto.UpdateWorkspaceRequest true "Fields to change"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Security CookieAuth
// @Router /workspaces/{workspace_id} [put]
func (h *workspaceHandler) updateWorkspace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "UpdateWorkspace", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	workspaceID := c.Param("workspace_id")
	logger = logger.With(slog.String("workspace_id", workspaceID))

	ws, err := h.workspaceService.UpdateWorkspace(c.Request.Context(), userID, workspaceID, req.ToParams())
	if err != nil {
		respondError(c, logger, "update workspace", err)
		return
	}
	logger.Info("Workspace updated")
	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(ws))
}

// deleteWorkspace godoc
// @Summary Delete a workspace
// @Description Owner only. Requires confirm=true.
// @Tags workspaces
// @Param   workspace_id path string true "Workspace ID"
// @Param   confirm query bool true "Explicit confirmation"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 428 {object} dto.ErrorResponse "Confirmation required"
// @Security CookieAuth
// @Router /workspaces/{workspace_id} [delete]
func (h *workspaceHandler) deleteWorkspace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.ConfirmQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, logger, "DeleteWorkspace", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	workspaceID := c.Param("workspace_id")
	logger = logger.With(slog.String("workspace_id", workspaceID))

	if err := h.workspaceService.DeleteWorkspace(c.Request.Context(), userID, workspaceID, q.Confirm); err != nil {
		respondError(c, logger, "delete workspace", err)
		return
	}
	logger.Info("Workspace deleted")
	c.Status(http.StatusNoContent)
}

// resolveRoute godoc
// @Summary Resolve the dashboard route of a workspace
// @Tags workspaces
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {object} portssvc.RouteResolution
// @Failure 404 {object} dto.ErrorResponse "Workspace not found"
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/route [get]
func (h *workspaceHandler) resolveRoute(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	route, err := h.workspaceService.ResolveRoute(c.Request.Context(), userID, c.Param("workspace_id"))
	if err != nil {
		respondError(c, logger, "resolve route", err)
		return
	}
	if !route.Routable {
		logger.Warn("Workspace focus has no dashboard route", slog.String("main_focus", string(route.MainFocus)))
	}
	c.JSON(http.StatusOK, route)
}
