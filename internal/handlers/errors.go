package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/workspace_dashboard/internal/apperrors"
	"github.com/SscSPs/workspace_dashboard/internal/dto"
	"github.com/SscSPs/workspace_dashboard/internal/middleware"
)

// dashboardRecovery is offered whenever the page itself cannot be shown.
var dashboardRecovery = &dto.RecoveryAction{Label: "Go to Dashboard", Href: "/dashboard"}

// respondError maps a service error onto a status and body and logs it.
// action names the failed operation in the log line and the fallback message.
func respondError(c *gin.Context, logger *slog.Logger, action string, err error) {
	status, body := errorResponse(action, err)
	attrs := []any{slog.String("action", action), slog.Int("status", status), slog.String("error", err.Error())}
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", attrs...)
	} else {
		logger.Warn("Request rejected", attrs...)
	}
	c.JSON(status, body)
}

func errorResponse(action string, err error) (int, dto.ErrorResponse) {
	msg := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, dto.ErrorResponse{Error: msg}
	case errors.Is(err, apperrors.ErrNoSelection):
		return http.StatusBadRequest, dto.ErrorResponse{Error: msg}
	case errors.Is(err, apperrors.ErrForbidden):
		// the view stays as it is; the client only shows the notice
		return http.StatusForbidden, dto.ErrorResponse{Error: "forbidden", Notice: msg}
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, dto.ErrorResponse{Error: "session expired or invalid"}
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, dto.ErrorResponse{Error: msg, Recovery: dashboardRecovery}
	case errors.Is(err, apperrors.ErrConfirmationRequired):
		return http.StatusPreconditionRequired, dto.ErrorResponse{Error: msg}
	case errors.Is(err, apperrors.ErrLimitReached),
		errors.Is(err, apperrors.ErrStaleResponse),
		errors.Is(err, apperrors.ErrFlushInProgress),
		errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict, dto.ErrorResponse{Error: msg}
	case errors.Is(err, apperrors.ErrTransport), errors.Is(err, apperrors.ErrRemote):
		return http.StatusBadGateway, dto.ErrorResponse{Error: "The workspace service is unavailable", Recovery: dashboardRecovery}
	}
	if appErr != nil && appErr.Code != 0 {
		return appErr.Code, dto.ErrorResponse{Error: appErr.Message}
	}
	return http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to " + action}
}

// bindError answers a request whose body or query failed binding.
func bindError(c *gin.Context, logger *slog.Logger, action string, err error) {
	logger.Warn("Failed to bind request for "+action, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
}

// requireUser reads the authenticated user id or answers 401.
func requireUser(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}

// relayCookies copies backend Set-Cookie headers onto the response.
func relayCookies(c *gin.Context, cookies []*http.Cookie) {
	for _, ck := range cookies {
		http.SetCookie(c.Writer, ck)
	}
}
