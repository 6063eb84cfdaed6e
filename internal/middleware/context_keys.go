package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID.
// Using a custom type prevents collisions.
const userIDKey = contextKey("userID")

// WithUserID stores the authenticated user id in ctx.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userIDVal, exists := c.Get(string(userIDKey)); exists {
		userID, ok := userIDVal.(string)
		return userID, ok && userID != ""
	}
	// check in the request context as well
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	return userID, ok && userID != ""
}

const cookiesKey = contextKey("cookies")

// WithCookies attaches browser cookies to ctx; every backend call made with the
// returned context forwards them.
func WithCookies(ctx context.Context, cookies []*http.Cookie) context.Context {
	if len(cookies) == 0 {
		return ctx
	}
	copied := make([]*http.Cookie, len(cookies))
	for i, c := range cookies {
		// only name and value travel on a request
		copied[i] = &http.Cookie{Name: c.Name, Value: c.Value}
	}
	return context.WithValue(ctx, cookiesKey, copied)
}

// CookiesFromContext returns the cookies set by WithCookies.
func CookiesFromContext(ctx context.Context) []*http.Cookie {
	cookies, _ := ctx.Value(cookiesKey).([]*http.Cookie)
	return cookies
}
