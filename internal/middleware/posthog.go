package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/workspace_dashboard/internal/utils"
)

// untrackedPrefixes are never reported as product events.
var untrackedPrefixes = []string{"/health", "/swagger"}

// Analytics reports one event per successful authenticated request.
// Event names derive from the route: "/api/v1/workspaces/:workspace_id/rows/sync" becomes
// "api_v1_workspaces_workspace_id_rows_sync".
func Analytics(tracker *utils.AnalyticsClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !tracker.IsInitialized() || untracked(c.Request.URL.Path) {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}
		eventName := routeEventName(c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		if workspaceID := c.Param("workspace_id"); workspaceID != "" {
			props["workspace_id"] = workspaceID
		}
		tracker.Track(userID, eventName, props)
	}
}

func untracked(p string) bool {
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

func routeEventName(fullPath string) string {
	if fullPath == "" {
		return ""
	}
	parts := strings.Split(strings.Trim(fullPath, "/"), "/")
	for i, part := range parts {
		parts[i] = strings.TrimLeft(part, ":*")
	}
	return strings.Join(parts, "_")
}
