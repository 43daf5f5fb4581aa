package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	services "github.com/clienthub/crm_backend/internal/core/ports/services"
	"github.com/clienthub/crm_backend/internal/dto"
	"github.com/clienthub/crm_backend/internal/middleware"
	"github.com/clienthub/crm_backend/internal/platform/config"
	"github.com/clienthub/crm_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// loginRateLimit is the per-IP limit on the credential endpoint.
const loginRateLimit = "5-M"

// authHandler handles registration and login.
type authHandler struct {
	authService services.AuthSvcFacade
	cfg         *config.Config
}

// newAuthHandler creates a new authHandler.
func newAuthHandler(as services.AuthSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{
		authService: as,
		cfg:         cfg,
	}
}

// registerAuthRoutes registers the public authentication routes.
func registerAuthRoutes(rg *gin.RouterGroup, as services.AuthSvcFacade, cfg *config.Config) {
	h := newAuthHandler(as, cfg)

	rate, err := limiter.NewRateFromFormatted(loginRateLimit)
	if err != nil {
		panic(fmt.Sprintf("invalid login rate limit %q: %v", loginRateLimit, err))
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", limitMiddleware, h.login)
		auth.POST("/logout", h.logout)
	}
}

// register godoc
// @Summary Register a new user
// @Description Creates a new user account with the given role
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.RegisterRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]any "Invalid input format or validation error"
// @Failure 409 {object} map[string]any "Email already registered"
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for register", slog.String("error", err.Error()))
		respondBindingError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		logger.Warn("Registration failed", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	respondData(c, http.StatusCreated, dto.ToUserResponse(user))
}

// login godoc
// @Summary Authenticate a user
// @Description Verifies credentials and returns a signed JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]any "Invalid input format"
// @Failure 401 {object} map[string]any "Invalid credentials"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for login", slog.String("error", err.Error()))
		respondBindingError(c, err)
		return
	}

	user, err := h.authService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("Login failed", slog.String("email", req.Email))
		respondError(c, err)
		return
	}

	token, err := utils.GenerateJWT(user.UserID, string(user.Role), h.cfg.JWTSecret, h.cfg.JWTExpiryDuration, h.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	respondData(c, http.StatusOK, dto.LoginResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	})
}

// logout godoc
// @Summary Log out
// @Description Acknowledges logout; tokens are stateless, so the client drops its copy
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]any "Logged out"
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	respondMessage(c, http.StatusOK, "Logged out successfully")
}
