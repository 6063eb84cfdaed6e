package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/workspace_dashboard/internal/apperrors"
	portssvc "github.com/SscSPs/workspace_dashboard/internal/core/ports/services"
	"github.com/SscSPs/workspace_dashboard/internal/dto"
	"github.com/SscSPs/workspace_dashboard/internal/middleware"
)

// tableHandler handles buffered table edits and the kanban board.
type tableHandler struct {
	tableService portssvc.TableSvcFacade
}

func newTableHandler(ts portssvc.TableSvcFacade) *tableHandler {
	return &tableHandler{tableService: ts}
}

// registerTableRoutes nests row, column and board routes under a single workspace.
func registerTableRoutes(workspace *gin.RouterGroup, tableService portssvc.TableSvcFacade) {
	h := newTableHandler(tableService)

	rows := workspace.Group("/rows")
	{
		rows.GET("", h.listRows)
		rows.POST("", h.addRow)
		rows.POST("/direct", h.createRow)
		rows.PATCH("/:row_id", h.updateRow)
		rows.DELETE("/:row_id", h.removeRow)
		rows.POST("/:row_id/mail", h.sendRowMail)
		rows.PUT("/columns", h.setColumns)
		rows.GET("/pending", h.pending)
		rows.POST("/sync", h.sync)
	}

	board := workspace.Group("/board")
	{
		board.GET("", h.board)
		board.POST("/move", h.moveCard)
	}
}

// listRows godoc
// @Summary List table rows
// @Description Returns the rows with pending edits overlaid.
// @Tags rows
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.ListRowsResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/rows [get]
func (h *tableHandler) listRows(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	rows, err := h.tableService.ListRows(c.Request.Context(), userID, c.Param("workspace_id"))
	if err != nil {
		respondError(c, logger, "list rows", err)
		return
	}
	c.JSON(http.StatusOK, dto.ListRowsResponse{Rows: rows})
}

// addRow godoc
// @Summary Stage a new row
// @Description The row is buffered until the next sync. An id is generated when none is given.
// @Tags rows
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   row body dto.AddRowRequest true "Row"
// @Success 202 {object} domain.Row
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/rows [post]
func (h *tableHandler) addRow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AddRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "AddRow", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	row, err := h.tableService.AddRow(c.Request.Context(), userID, c.Param("workspace_id"), req.ToRow())
	if err != nil {
		respondError(c, logger, "add row", err)
		return
	}
	logger.Debug("Row staged", slog.String("row_id", row.RowID))
	c.JSON(http.StatusAccepted, row)
}

// createRow godoc
// @Summary Create a row immediately
// @Description Bypasses the change buffer.
// @Tags rows
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   row body dto.AddRowRequest true "Row"
// @Success 201 {object} domain.Row
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/rows/direct [post]
func (h *tableHandler) createRow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AddRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "CreateRow", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	row, err := h.tableService.CreateRow(c.Request.Context(), userID, c.Param("workspace_id"), req.ToRow())
	if err != nil {
		respondError(c, logger, "create row", err)
		return
	}
	logger.Info("Row created", slog.String("row_id", row.RowID))
	c.JSON(http.StatusCreated, row)
}

// updateRow godoc
// @Summary Stage a row update
// @Tags rows
// @Accept  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   row_id path string true "Row ID"
// @Param   row body dto.UpdateRowRequest true "Changed cells"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/rows/{row_id} [patch]
func (h *tableHandler) updateRow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "UpdateRow", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	if err := h.tableService.UpdateRow(c.Request.Context(), userID, c.Param("workspace_id"), c.Param("row_id"), req.Data); err != nil {
		respondError(c, logger, "update row", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// removeRow godoc
// @Summary Stage a row removal
// @Description Requires confirm=true.
// @Tags rows
// @Param   workspace_id path string true "Workspace ID"
// @Param   row_id path string true "Row ID"
// @Param   confirm query bool true "Explicit confirmation"
// @Success 204
// @Failure 428 {object} dto.ErrorResponse "Confirmation required"
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/rows/{row_id} [delete]
func (h *tableHandler) removeRow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.ConfirmQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, logger, "RemoveRow", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	if err := h.tableService.RemoveRow(c.Request.Context(), userID, c.Param("workspace_id"), c.Param("row_id"), q.Confirm); err != nil {
		respondError(c, logger, "remove row", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// sendRowMail godoc
// @Summary Mail the candidate of a row
// @Tags rows
// @Accept  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   row_id path string true "Row ID"
// @Param   mail body dto.SendRowMailRequest true "Mail"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/rows/{row_id}/mail [post]
func (h *tableHandler) sendRowMail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SendRowMailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "SendRowMail", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	rowID := c.Param("row_id")

	if err := h.tableService.SendRowMail(c.Request.Context(), userID, c.Param("workspace_id"), rowID, req.ToMail()); err != nil {
		respondError(c, logger, "send row mail", err)
		return
	}
	logger.Info("Row mail sent", slog.String("row_id", rowID))
	c.Status(http.StatusNoContent)
}

// setColumns godoc
// @Summary Stage a new table schema
// @Description Default columns are kept and duplicate names dropped.
// @Tags rows
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   columns body dto.SetColumnsRequest true "Columns"
// @Success 202 {object} dto.ColumnsResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/rows/columns [put]
func (h *tableHandler) setColumns(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetColumnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "SetColumns", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	cols, err := h.tableService.SetColumns(c.Request.Context(), userID, c.Param("workspace_id"), req.ToColumns())
	if err != nil {
		respondError(c, logger, "set columns", err)
		return
	}
	c.JSON(http.StatusAccepted, dto.ColumnsResponse{Columns: cols})
}

// pending godoc
// @Summary Show buffered changes
// @Tags rows
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {object} domain.BufferSnapshot
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/rows/pending [get]
func (h *tableHandler) pending(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	snap, err := h.tableService.Pending(c.Request.Context(), userID, c.Param("workspace_id"))
	if err != nil {
		respondError(c, logger, "read pending changes", err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// sync godoc
// @Summary Sync buffered changes
// @Description Sends all pending edits in one call. A failed sync keeps the buffer unchanged.
// @Tags rows
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {object} portssvc.FlushResult
// @Failure 409 {object} dto.ErrorResponse "Sync already in progress"
// @Failure 502 {object} dto.ErrorResponse "Backend unavailable"
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/rows/sync [post]
func (h *tableHandler) sync(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	workspaceID := c.Param("workspace_id")
	logger = logger.With(slog.String("workspace_id", workspaceID))

	res, err := h.tableService.Flush(c.Request.Context(), userID, workspaceID)
	if err != nil {
		respondError(c, logger, "sync changes", err)
		return
	}
	logger.Info("Changes synced",
		slog.Int("added", len(res.Sent.Added)),
		slog.Int("updated", len(res.Sent.Updated)),
		slog.Int("deleted", len(res.Sent.Deleted)))
	c.JSON(http.StatusOK, res)
}

// board godoc
// @Summary Get the kanban board
// @Tags board
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {object} domain.Board
// @Failure 400 {object} dto.ErrorResponse "Not a project workspace"
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/board [get]
func (h *tableHandler) board(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	b, err := h.tableService.Board(c.Request.Context(), userID, c.Param("workspace_id"))
	if err != nil {
		respondError(c, logger, "load board", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// moveCard godoc
// @Summary Move a card to another column
// @Description Moves optimistically and syncs at once. On failure the card is reverted and the reverted board is returned with the error status.
// @Tags board
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   move body dto.MoveCardRequest true "Move"
// @Success 200 {object} domain.Board
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 502 {object} dto.ErrorResponse "Backend unavailable, card reverted"
// @Security CookieAuth
// @Router /workspaces/{workspace_id}/board/move [post]
func (h *tableHandler) moveCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, "MoveCard", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("row_id", req.RowID), slog.String("to_column", req.ToColumn))

	b, err := h.tableService.MoveCard(c.Request.Context(), userID, c.Param("workspace_id"), req.RowID, req.ToColumn)
	if err != nil {
		if b == nil || errors.Is(err, apperrors.ErrForbidden) || errors.Is(err, apperrors.ErrValidation) {
			respondError(c, logger, "move card", err)
			return
		}
		status, body := errorResponse("move card", err)
		logger.Warn("Card move reverted", slog.Int("status", status), slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": body.Error, "recovery": body.Recovery, "board": b})
		return
	}
	c.JSON(http.StatusOK, b)
}
