package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/workrec/workhour-api/internal/middleware"
	"github.com/workrec/workhour-api/internal/response"
	"github.com/workrec/workhour-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LoginOrRegister verifies the code and logs the phone in, registering it
// first when unknown.
func (h *AuthHandler) LoginOrRegister(c *gin.Context) {
	type LoginOrRegisterRequest struct {
		Phone string `json:"phone" binding:"required"`
		Code  string `json:"code" binding:"required"`
	}

	var req LoginOrRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	result, err := h.authService.LoginOrRegister(req.Phone, req.Code)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.Success(c, result)
}

// Register creates a password-based account.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Phone    string `json:"phone" binding:"required"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name"`
		Avatar   string `json:"avatar"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	result, err := h.authService.Register(services.RegisterInput{
		Phone:    req.Phone,
		Password: req.Password,
		Name:     req.Name,
		Avatar:   req.Avatar,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.Success(c, result)
}

// Login authenticates a password-based account.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Phone    string `json:"phone" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, "invalid request body")
		return
	}

	result, err := h.authService.Login(req.Phone, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.Success(c, result)
}

// Profile returns the authenticated user's assembled profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.LoginExpired(c)
		return
	}

	profile, err := h.authService.GetProfile(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.Success(c, profile)
}

// Token re-signs the caller's token with their current org context. Clients
// call this after switching organizations.
func (h *AuthHandler) Token(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		response.LoginExpired(c)
		return
	}

	accessToken, err := h.authService.IssueToken(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response.Success(c, gin.H{"access_token": accessToken})
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidVerifyCode),
		errors.Is(err, services.ErrPhoneRequired),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrUserAlreadyExists),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrUserNotFound):
		response.Error(c, err.Error())
	default:
		response.Error(c, "internal server error")
	}
}
