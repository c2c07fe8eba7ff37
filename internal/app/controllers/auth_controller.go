package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devcampr/devcampr/internal/app/models"
	"github.com/devcampr/devcampr/internal/app/models/dto"
	"github.com/devcampr/devcampr/internal/app/services"
	"github.com/devcampr/devcampr/internal/middleware"
)

// AuthController handles registration, sessions and password flows.
type AuthController struct {
	authService  services.AuthService
	tokenExpiry  time.Duration
	baseURL      string
	secureCookie bool
}

// NewAuthController creates a new AuthController.
func NewAuthController(authService services.AuthService, tokenExpiry time.Duration, baseURL string, secureCookie bool) *AuthController {
	return &AuthController{
		authService:  authService,
		tokenExpiry:  tokenExpiry,
		baseURL:      baseURL,
		secureCookie: secureCookie,
	}
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	user, token, err := ctrl.authService.Register(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	ctrl.sendTokenResponse(c, http.StatusCreated, user, token)
}

// Login godoc
// @Summary Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.APIResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	user, token, err := ctrl.authService.Login(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	ctrl.sendTokenResponse(c, http.StatusOK, user, token)
}

// Logout godoc
// @Summary Clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /auth/logout [get]
func (ctrl *AuthController) Logout(c *gin.Context) {
	c.SetCookie(middleware.TokenCookieName, "none", 10, "/", "", ctrl.secureCookie, true)
	c.JSON(http.StatusOK, dto.OK(gin.H{}))
}

// GetMe godoc
// @Summary Get the logged-in account
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.APIResponse
// @Router /auth/me [get]
func (ctrl *AuthController) GetMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, dto.OK(user))
}

// UpdateDetails godoc
// @Summary Update the logged-in account's name and email
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateDetailsRequest true "New details"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Router /auth/updatedetails [put]
func (ctrl *AuthController) UpdateDetails(c *gin.Context) {
	var req dto.UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	user, err := ctrl.authService.UpdateDetails(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(user))
}

// UpdatePassword godoc
// @Summary Change the logged-in account's password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdatePasswordRequest true "Current and new password"
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.APIResponse
// @Router /auth/updatepassword [put]
func (ctrl *AuthController) UpdatePassword(c *gin.Context) {
	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	token, err := ctrl.authService.UpdatePassword(c.Request.Context(), user, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	ctrl.sendTokenResponse(c, http.StatusOK, user, token)
}

// ForgotPassword godoc
// @Summary Start the password reset flow
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /auth/forgotpassword [post]
func (ctrl *AuthController) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	if err := ctrl.authService.ForgotPassword(c.Request.Context(), req.Email, ctrl.baseURL); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Email sent"))
}

// ResetPassword godoc
// @Summary Set a new password with a reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param resettoken path string true "Reset token"
// @Param request body dto.ResetPasswordRequest true "New password"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse
// @Router /auth/resetpassword/{resettoken} [put]
func (ctrl *AuthController) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	user, token, err := ctrl.authService.ResetPassword(c.Request.Context(), c.Param("resettoken"), req.Password)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	ctrl.sendTokenResponse(c, http.StatusOK, user, token)
}

// sendTokenResponse sets the session cookie and returns the token alongside
// the account in the envelope.
func (ctrl *AuthController) sendTokenResponse(c *gin.Context, status int, user *models.User, token string) {
	c.SetCookie(middleware.TokenCookieName, token, int(ctrl.tokenExpiry.Seconds()), "/", "", ctrl.secureCookie, true)
	c.JSON(status, dto.APIResponse{Success: true, Token: token, Data: user})
}
