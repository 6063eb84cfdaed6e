package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
	portssvc "github.com/SscSPs/workspace_dashboard/internal/core/ports/services"
	"github.com/SscSPs/workspace_dashboard/internal/dto"
	"github.com/SscSPs/workspace_dashboard/internal/middleware"
)

// contentHandler handles forms, trackers, attachments and the assistant.
type contentHandler struct {
	contentService portssvc.ContentSvcFacade
}

func newContentHandler(cs portssvc.ContentSvcFacade) *contentHandler {
	return &contentHandler{contentService: cs}
}

// registerContentRoutes nests content routes under a single workspace.
// Extra handlers run in front of the assistant route only.
func registerContentRoutes(workspace *gin.RouterGroup, contentService portssvc.ContentSvcFacade, askMiddleware ...gin.HandlerFunc) {
	h := newContentHandler(contentService)

	forms := workspace.Group("/forms")
	{
		forms.GET("", h.listForms)
		forms.POST("", h.createForm)
		forms.GET("/:form_id/submissions", h.listSubmissions)
		forms.POST("/:form_id/submissions", h.submitForm)
		forms.DELETE("/:form_id/submissions/:submission_id", h.deleteSubmission)
	}

	workspace.GET("/issues", h.listIssues)
	workspace.POST("/issues", h.createIssue)
	workspace.GET("/requests", h.listRequests)
	workspace.POST("/requests", h.createRequest)

	attachments := workspace.Group("/attachments")
	{
		attachments.GET("", h.listAttachments)
		attachments.POST("", h.uploadAttachment)
		attachments.GET("/:attachment_id", h.downloadAttachment)
	}

	workspace.POST("/ai/ask", append(askMiddleware, h.ask)...)
}

// listForms godoc
// @Summary List forms
// @Tags forms
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {array} domain.Form
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/forms [get]
func (h *contentHandler) listForms(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	forms, err := h.contentService.ListForms(c.Request.Context(), userID, c.Param("workspace_id"))
	if err != nil {
		respondError(c, logger, "list forms", err)
		return
	}
	c.JSON(http.StatusOK, forms)
}

// createForm godoc
// @Summary Create a form
// @Tags forms
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   form body dto.CreateFormRequest true "Form"
// @Success 201 {object} domain.Form
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/forms [post]
func (h *contentHandler) createForm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "CreateForm", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	form, err := h.contentService.CreateForm(c.Request.Context(), userID, c.Param("workspace_id"), req.ToParams())
	if err != nil {
		respondError(c, logger, "create form", err)
		return
	}
	logger.Info("Form created", slog.String("form_id", form.FormID))
	c.JSON(http.StatusCreated, form)
}

// listSubmissions godoc
// @Summary List form submissions
// @Tags forms
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   form_id path string true "Form ID"
// @Success 200 {array} domain.Submission
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/forms/{form_id}/submissions [get]
func (h *contentHandler) listSubmissions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	subs, err := h.contentService.ListSubmissions(c.Request.Context(), userID, c.Param("workspace_id"), c.Param("form_id"))
	if err != nil {
		respondError(c, logger, "list submissions", err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// submitForm godoc
// @Summary Submit a form
// @Tags forms
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   form_id path string true "Form ID"
// @Param   submission body dto.SubmitFormRequest true "Answers"
// @Success 201 {object} domain.Submission
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/forms/{form_id}/submissions [post]
func (h *contentHandler) submitForm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SubmitFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "SubmitForm", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	sub, err := h.contentService.SubmitForm(c.Request.Context(), userID, c.Param("workspace_id"), c.Param("form_id"), req.Answers)
	if err != nil {
		respondError(c, logger, "submit form", err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// deleteSubmission godoc
// @Summary Delete a submission
// @Description Requires confirm=true.
// @Tags forms
// @Param   workspace_id path string true "Workspace ID"
// @Param   form_id path string true "Form ID"
// @Param   submission_id path string true "Submission ID"
// @Param   confirm query bool true "Explicit confirmation"
// @Success 204
// @Failure 428 {object} dto.ErrorResponse "Confirmation required"
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/forms/{form_id}/submissions/{submission_id} [delete]
func (h *contentHandler) deleteSubmission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.ConfirmQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, logger, "DeleteSubmission", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	submissionID := c.Param("submission_id")
	err := h.contentService.DeleteSubmission(c.Request.Context(), userID, c.Param("workspace_id"), c.Param("form_id"), submissionID, q.Confirm)
	if err != nil {
		respondError(c, logger, "delete submission", err)
		return
	}
	logger.Info("Submission deleted", slog.String("submission_id", submissionID))
	c.Status(http.StatusNoContent)
}

// listIssues godoc
// @Summary List issues
// @Tags trackers
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {array} domain.Issue
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/issues [get]
func (h *contentHandler) listIssues(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	issues, err := h.contentService.ListIssues(c.Request.Context(), userID, c.Param("workspace_id"))
	if err != nil {
		respondError(c, logger, "list issues", err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

// createIssue godoc
// @Summary Report an issue
// @Description Project workspaces only.
// @Tags trackers
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   issue body dto.CreateIssueRequest true "Issue"
// @Success 201 {object} domain.Issue
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/issues [post]
func (h *contentHandler) createIssue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "CreateIssue", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	issue, err := h.contentService.CreateIssue(c.Request.Context(), userID, c.Param("workspace_id"), req.ToParams())
	if err != nil {
		respondError(c, logger, "create issue", err)
		return
	}
	logger.Info("Issue created", slog.String("issue_id", issue.IssueID))
	c.JSON(http.StatusCreated, issue)
}

// listRequests godoc
// @Summary List requests
// @Tags trackers
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {array} domain.Request
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/requests [get]
func (h *contentHandler) listRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	reqs, err := h.contentService.ListRequests(c.Request.Context(), userID, c.Param("workspace_id"))
	if err != nil {
		respondError(c, logger, "list requests", err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// createRequest godoc
// @Summary Raise a request
// @Tags trackers
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   request body dto.CreateRequestRequest true "Request"
// @Success 201 {object} domain.Request
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/requests [post]
func (h *contentHandler) createRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "CreateRequest", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	created, err := h.contentService.CreateRequest(c.Request.Context(), userID, c.Param("workspace_id"), req.ToParams())
	if err != nil {
		respondError(c, logger, "create request", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// listAttachments godoc
// @Summary List attachments
// @Tags attachments
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {array} domain.Attachment
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/attachments [get]
func (h *contentHandler) listAttachments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	list, err := h.contentService.ListAttachments(c.Request.Context(), userID, c.Param("workspace_id"))
	if err != nil {
		respondError(c, logger, "list attachments", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// uploadAttachment godoc
// @Summary Upload an attachment
// @Tags attachments
// @Accept  multipart/form-data
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   file formData file true "File"
// @Success 201 {object} domain.Attachment
// @Failure 400 {object} dto.ErrorResponse "Missing file"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/attachments [post]
func (h *contentHandler) uploadAttachment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	header, err := c.FormFile("file")
	if err != nil {
		bindError(c, logger, "UploadAttachment", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	f, err := header.Open()
	if err != nil {
		respondError(c, logger, "read upload", err)
		return
	}
	defer f.Close()

	upload := domain.FileUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     f,
	}
	att, err := h.contentService.UploadAttachment(c.Request.Context(), userID, c.Param("workspace_id"), upload)
	if err != nil {
		respondError(c, logger, "upload attachment", err)
		return
	}
	logger.Info("Attachment uploaded", slog.String("attachment_id", att.AttachmentID), slog.Int64("size", header.Size))
	c.JSON(http.StatusCreated, att)
}

// downloadAttachment godoc
// @Summary Download an attachment
// @Tags attachments
// @Produce  octet-stream
// @Param   workspace_id path string true "Workspace ID"
// @Param   attachment_id path string true "Attachment ID"
// @Success 200 {file} binary
// @Failure 404 {object} dto.ErrorResponse "Attachment not found"
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/attachments/{attachment_id} [get]
func (h *contentHandler) downloadAttachment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	content, err := h.contentService.DownloadAttachment(c.Request.Context(), userID, c.Param("workspace_id"), c.Param("attachment_id"))
	if err != nil {
		respondError(c, logger, "download attachment", err)
		return
	}
	defer content.Body.Close()

	contentType := content.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	headers := map[string]string{}
	if content.FileName != "" {
		headers["Content-Disposition"] = fmt.Sprintf("attachment; filename=%q", content.FileName)
	}
	size := content.Size
	if size <= 0 {
		size = -1
	}
	c.DataFromReader(http.StatusOK, size, contentType, io.Reader(content.Body), headers)
}

// ask godoc
// @Summary Ask the workspace assistant
// @Tags assistant
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   question body dto.AskRequest true "Question"
// @Success 200 {object} domain.AskAnswer
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/ai/ask [post]
func (h *contentHandler) ask(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "Ask", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	answer, err := h.contentService.Ask(c.Request.Context(), userID, c.Param("workspace_id"), domain.AskParams{Question: req.Question})
	if err != nil {
		respondError(c, logger, "ask assistant", err)
		return
	}
	c.JSON(http.StatusOK, answer)
}
