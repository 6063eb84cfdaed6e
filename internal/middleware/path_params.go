package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireSafePathParams rejects route parameters that a URL resolver would
// treat as dot segments, so an id can never climb to a parent resource.
func RequireSafePathParams() gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, p := range c.Params {
			switch p.Value {
			case "", ".", "..":
				GetLoggerFromCtx(c.Request.Context()).Warn("Rejected path parameter", slog.String("param", p.Key), slog.String("value", p.Value))
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid path parameter: " + p.Key})
				return
			}
		}
		c.Next()
	}
}
