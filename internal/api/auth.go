package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrilife/backend/internal/models"
	"github.com/nutrilife/backend/internal/service"
	"github.com/nutrilife/backend/internal/types"
)

// AuthHandler handles signup, login and logout
type AuthHandler struct {
	authService service.IAuthService
	limiter     gin.HandlerFunc
}

// NewAuthHandler creates a new AuthHandler. limiter guards the credential
// endpoints and may be nil.
func NewAuthHandler(authService service.IAuthService, limiter gin.HandlerFunc) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		limiter:     limiter,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	if h.limiter != nil {
		auth.POST("/signup", h.limiter, h.Signup)
		auth.POST("/login", h.limiter, h.Login)
	} else {
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
	}
	auth.POST("/logout", h.Logout)
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req types.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{"error": "email or username already registered"})
		default:
			internalError(c, "failed to create account", err)
		}
		return
	}

	h.respondWithToken(c, http.StatusCreated, user, "account created", true)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.EmailOrUsername == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "emailOrUsername and password are required"})
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.EmailOrUsername, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		internalError(c, "failed to log in", err)
		return
	}

	h.respondWithToken(c, http.StatusOK, user, "login successful", false)
}

// Logout is stateless; clients discard their token.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *models.User, msg string, isNew bool) {
	token, err := h.authService.GenerateToken(user)
	if err != nil {
		internalError(c, "failed to generate token", err)
		return
	}
	c.JSON(status, types.AuthResponse{
		Token: token,
		User: types.UserSummary{
			ID:       user.ID,
			Email:    user.Email,
			Username: user.Username,
			Roles:    user.Roles(),
		},
		Message:   msg,
		IsNewUser: isNew,
	})
}
