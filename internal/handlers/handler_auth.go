package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/SscSPs/workspace_dashboard/internal/core/ports/services"
	"github.com/SscSPs/workspace_dashboard/internal/dto"
	"github.com/SscSPs/workspace_dashboard/internal/middleware"
)

// loginRate caps login attempts per client IP.
const loginRate = "5-M"

// AuthHandler proxies login, logout and account requests to the backend.
type AuthHandler struct {
	authService portssvc.AuthSvc
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as portssvc.AuthSvc) *AuthHandler {
	return &AuthHandler{authService: as}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvc) {
	h := NewAuthHandler(authService)

	rate, _ := limiter.NewRateFromFormatted(loginRate)
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.Login)
	}
}

// registerAccountRoutes sets up the routes that need a session.
func registerAccountRoutes(rg *gin.RouterGroup, authService portssvc.AuthSvc) {
	h := NewAuthHandler(authService)

	rg.POST("/auth/logout", h.Logout)
	users := rg.Group("/users")
	{
		users.GET("/me", h.Me)
		users.DELETE("/me", h.DeleteAccount)
	}
}

// Login godoc
// @Summary User login
// @Description Forwards the credentials to the backend and relays its session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req.ToCredentials())
	if err != nil {
		respondError(c, logger, "log in", err)
		return
	}
	relayCookies(c, res.Cookies)

	if res.User == nil {
		c.Status(http.StatusNoContent)
		return
	}
	logger.Info("User logged in", slog.String("user_id", res.User.UserID))
	c.JSON(http.StatusOK, dto.ToUserResponse(res.User))
}

// Logout godoc
// @Summary User logout
// @Description Ends the backend session and discards the dashboard session held for the caller.
// @Tags auth
// @Success 204
// @Failure 401 {object} dto.ErrorResponse
// @Security CookieAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	res, err := h.authService.Logout(c.Request.Context(), userID)
	if res != nil {
		relayCookies(c, res.Cookies)
	}
	if err != nil {
		respondError(c, logger, "log out", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security CookieAuth
// @Router /users/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := requireUser(c, logger); !ok {
		return
	}
	user, err := h.authService.Me(c.Request.Context())
	if err != nil {
		respondError(c, logger, "load user", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// DeleteAccount godoc
// @Summary Delete the caller's account
// @Description Requires confirm=true.
// @Tags users
// @Param confirm query bool true "Explicit confirmation"
// @Success 204
// @Failure 428 {object} dto.ErrorResponse "Confirmation required"
// @Security CookieAuth
// @Router /users/me [delete]
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.ConfirmQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, logger, "DeleteAccount", err)
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	res, err := h.authService.DeleteAccount(c.Request.Context(), userID, q.Confirm)
	if err != nil {
		respondError(c, logger, "delete account", err)
		return
	}
	relayCookies(c, res.Cookies)
	logger.Info("Account deleted")
	c.Status(http.StatusNoContent)
}
