package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	portssvc "github.com/SscSPs/cek_senet_app/internal/core/ports/services"
	"github.com/SscSPs/cek_senet_app/internal/dto"
	"github.com/SscSPs/cek_senet_app/internal/middleware"
	"github.com/SscSPs/cek_senet_app/internal/platform/config"
	"github.com/SscSPs/cek_senet_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// authHandler handles authentication related requests.
type authHandler struct {
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
	googleOAuthService portssvc.GoogleOAuthSvcFacade
}

func newAuthHandler(services *portssvc.ServiceContainer) *authHandler {
	return &authHandler{
		userService:        services.User,
		tokenService:       services.TokenService,
		googleOAuthService: services.GoogleOAuth,
	}
}

// registerAuthRoutes sets up the public authentication routes. Every route is rate limited per IP.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) error {
	h := newAuthHandler(services)

	loginLimiter, err := middleware.NewIPRateLimiter(cfg.LoginRateLimit)
	if err != nil {
		return err
	}
	limit := middleware.RateLimit(loginLimiter)

	auth := r.Group("/api/v1/auth", limit)
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/refresh", h.refresh)
		auth.POST("/google", h.googleIDTokenLogin)
		auth.POST("/google/exchange-code", h.googleExchangeCode)
	}
	return nil
}

// issueSession creates an access token and a fresh refresh token for user, storing the refresh token's hash.
func (h *authHandler) issueSession(c *gin.Context, user *domain.User) {
	ctx := c.Request.Context()
	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		respondError(c, err, "Failed to generate token")
		return
	}
	refreshToken, refreshExpiresAt, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		respondError(c, err, "Failed to generate token")
		return
	}
	if err := h.userService.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(refreshToken), refreshExpiresAt); err != nil {
		respondError(c, err, "Failed to store refresh token")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:                 accessToken,
		ExpiresAt:             expiresAt,
		UserID:                user.UserID,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExpiresAt,
	})
}

// register godoc
// @Summary Register new user
// @Description Creates a new user account.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.CreateUserRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username already exists"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	newUser, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(newUser))
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns an access token and a refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}
	h.issueSession(c, user)
}

// refresh godoc
// @Summary Refresh access token
// @Description Exchanges a valid refresh token for a new token pair. The old refresh token stops working.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	user, err := h.tokenService.ValidateAndParseRefreshToken(c.Request.Context(), req.UserID, req.RefreshToken)
	if err != nil {
		respondError(c, err, "Failed to refresh token")
		return
	}
	h.issueSession(c, user)
}

// googleIDTokenLogin godoc
// @Summary Sign in with a Google ID token
// @Description Validates an ID token from Google Sign-In and signs the matching user in, creating it on first use.
// @Tags auth
// @Accept json
// @Produce json
// @Param token body dto.GoogleIDTokenRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "Google sign-in not configured"
// @Router /auth/google [post]
func (h *authHandler) googleIDTokenLogin(c *gin.Context) {
	var req dto.GoogleIDTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	h.googleLogin(c, req.IDToken)
}

// googleExchangeCode godoc
// @Summary Exchange a Google authorization code
// @Description Exchanges an OAuth authorization code with Google and signs the matching user in.
// @Tags auth
// @Accept json
// @Produce json
// @Param code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "Google sign-in not configured"
// @Router /auth/google/exchange-code [post]
func (h *authHandler) googleExchangeCode(c *gin.Context) {
	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	idToken, err := h.googleOAuthService.ExchangeCodeForIDToken(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, err, "Failed to exchange authorization code")
		return
	}
	h.googleLogin(c, idToken)
}

func (h *authHandler) googleLogin(c *gin.Context, idToken string) {
	ctx := c.Request.Context()
	info, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idToken)
	if err != nil {
		respondError(c, err, "Google sign-in failed")
		return
	}
	user, err := h.userService.FindOrCreateGoogleUser(ctx, *info)
	if err != nil {
		respondError(c, err, "Google sign-in failed")
		return
	}
	middleware.GetLoggerFromCtx(ctx).Info("User signed in with Google", slog.String("user_id", user.UserID))
	h.issueSession(c, user)
}
