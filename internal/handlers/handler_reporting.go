package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/workspace_dashboard/internal/core/ports/services"
	"github.com/SscSPs/workspace_dashboard/internal/dto"
	"github.com/SscSPs/workspace_dashboard/internal/middleware"
)

// reportingHandler handles HTTP requests related to table reports
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingSvc) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to table reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newReportingHandler(reportingService)

	// Routes for reports are nested under a specific workspace
	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/breakdown", h.getBreakdown)
		reportingGroup.GET("/progress", h.getProgress)
	}
}

// getBreakdown godoc
// @Summary Group rows by a column
// @Description Counts rows per distinct value of the column, with percentages rounded to 2 places
// @Tags reports
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param column query string true "Column to group by"
// @Success 200 {object} domain.Breakdown
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden (User not a member)"
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/reports/breakdown [get]
func (h *reportingHandler) getBreakdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, logger, "RowBreakdown", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	workspaceID := c.Param("workspace_id")
	logger = logger.With(
		slog.String("workspace_id", workspaceID),
		slog.String("column", q.Column),
	)
	logger.Info("Generating row breakdown")

	report, err := h.reportingService.RowBreakdown(c.Request.Context(), userID, workspaceID, q.Column)
	if err != nil {
		respondError(c, logger, "generate breakdown", err)
		return
	}

	logger.Info("Row breakdown generated", slog.Int("buckets", len(report.Buckets)))
	c.JSON(http.StatusOK, report)
}

// getProgress godoc
// @Summary Project completion
// @Description Reports the share of done tasks of a project workspace
// @Tags reports
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Success 200 {object} domain.ProjectProgress
// @Failure 400 {object} dto.ErrorResponse "Not a project workspace"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden (User not a member)"
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/reports/progress [get]
func (h *reportingHandler) getProgress(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	workspaceID := c.Param("workspace_id")
	logger = logger.With(slog.String("workspace_id", workspaceID))

	progress, err := h.reportingService.ProjectProgress(c.Request.Context(), userID, workspaceID)
	if err != nil {
		respondError(c, logger, "generate progress report", err)
		return
	}

	logger.Info("Project progress generated", slog.Int("total", progress.Total), slog.Int("done", progress.Done))
	c.JSON(http.StatusOK, progress)
}
