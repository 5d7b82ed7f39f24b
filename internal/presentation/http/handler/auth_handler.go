package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/insights/internal/application/service"
	"github.com/sangkips/insights/internal/presentation/http/dto/request"
	"github.com/sangkips/insights/internal/presentation/http/dto/response"
	"github.com/sangkips/insights/pkg/apperror"
	"github.com/sangkips/insights/pkg/oauth"
	"go.uber.org/zap"
)

const oauthStateCookie = "oauth_state"

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
	google      *oauth.GoogleProvider
	log         *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, google *oauth.GoogleProvider, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, google: google, log: log}
}

// Login handles email/password sign-in
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", response.LoginResponse{
		User:        response.NewUserResponse(output.User),
		AccessToken: output.AccessToken,
		TokenType:   "Bearer",
	})
}

// GoogleAuth redirects the browser to the Google consent page
// @Summary Google sign-in
// @Tags auth
// @Router /auth/google [get]
func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	if h.google == nil || !h.google.IsConfigured() {
		response.ErrorWithKind(c, http.StatusServiceUnavailable, apperror.KindInternal, "Google sign-in is not configured")
		return
	}
	state, err := oauth.NewState()
	if err != nil {
		h.log.Error("failed to generate oauth state", zap.Error(err))
		response.Error(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 600, "/", "", c.Request.TLS != nil, true)
	c.Redirect(http.StatusTemporaryRedirect, h.google.AuthURL(state))
}

// GoogleCallback completes the Google sign-in and hands the token to the
// frontend in the URL fragment
// @Summary Google sign-in callback
// @Tags auth
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if h.google == nil || !h.google.IsConfigured() {
		response.ErrorWithKind(c, http.StatusServiceUnavailable, apperror.KindInternal, "Google sign-in is not configured")
		return
	}

	state, err := c.Cookie(oauthStateCookie)
	c.SetCookie(oauthStateCookie, "", -1, "/", "", c.Request.TLS != nil, true)
	if err != nil || state == "" || state != c.Query("state") {
		h.redirectError(c, "invalid_state")
		return
	}

	gUser, err := h.google.Authenticate(c.Request.Context(), c.Query("code"))
	if err != nil {
		h.log.Warn("google sign-in failed", zap.Error(err))
		h.redirectError(c, "google_auth_failed")
		return
	}

	output, err := h.authService.LoginWithGoogle(c.Request.Context(), gUser)
	if err != nil {
		h.redirectError(c, string(apperror.KindOf(err)))
		return
	}

	fragment := url.Values{}
	fragment.Set("access_token", output.AccessToken)
	fragment.Set("token_type", "Bearer")
	c.Redirect(http.StatusTemporaryRedirect, h.google.SuccessURL()+"#"+fragment.Encode())
}

func (h *AuthHandler) redirectError(c *gin.Context, reason string) {
	q := url.Values{}
	q.Set("error", reason)
	c.Redirect(http.StatusTemporaryRedirect, h.google.ErrorURL()+"?"+q.Encode())
}

// Logout handles user logout
// @Summary Logout
// @Description JWT is stateless; the client discards its token
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	response.OK(c, "Logged out successfully", nil)
}

// GetProfile returns the signed-in account and the view it routes to
// @Summary Get Profile
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.authService.Profile(c.Request.Context(), GetIdentity(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Profile retrieved successfully", gin.H{
		"user": response.NewUserResponse(user),
	})
}
